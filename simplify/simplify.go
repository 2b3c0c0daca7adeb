// Package simplify joins line segments that share end points into longer
// lines, used to assemble boundary rings out of OSM ways.
package simplify

func reverse[T comparable](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func closed[T comparable](line []T) bool {
	return len(line) > 2 && line[0] == line[len(line)-1]
}

// Reduce joins lines that share an end point, reversing them where needed.
// Lines that are already closed are not extended. The input slices are
// modified.
func Reduce[T comparable](in [][]T) [][]T {
	// Keep optimizing until we can't find anything left to optimize.
	repeat := true
	for repeat {
		repeat = false

		// Iterate over each piece, try to match the end of a line
		// with the start of other lines.
		for i := 0; i < len(in); i++ {
			line := in[i]
			if len(line) == 0 {
				in = append(in[:i], in[i+1:]...)
				repeat = true
				break
			}
			if closed(line) {
				continue
			}

			start := line[0]
			end := line[len(line)-1]

			for j := 0; j < len(in); j++ {
				line2 := in[j]
				if i == j || len(line2) == 0 || closed(line2) {
					continue
				}

				start2 := line2[0]
				end2 := line2[len(line2)-1]

				if end == start2 {
					in[i] = append(in[i], line2[1:]...)
					in = append(in[:j], in[j+1:]...)
					repeat = true
					break
				}

				// Same end? Append reversed
				if end2 == end {
					reverse(line2)
					in[i] = append(in[i], line2[1:]...)
					in = append(in[:j], in[j+1:]...)
					repeat = true
					break
				}

				// Same start? Prepend!
				if start2 == start {
					reverse(line2)
					in[i] = append(line2[0:len(line2)-1], in[i]...)
					in = append(in[:j], in[j+1:]...)
					repeat = true
					break
				}
			}

			// Need to restart the iteration, break out of current loop
			if repeat {
				break
			}
		}
	}
	return in
}

// Rings reduces the lines and splits the result into closed rings and the
// lines that could not be closed.
func Rings[T comparable](in [][]T) ([][]T, [][]T) {
	rings := make([][]T, 0)
	open := make([][]T, 0)
	for _, line := range Reduce(in) {
		if closed(line) {
			rings = append(rings, line)
		} else {
			open = append(open, line)
		}
	}
	return rings, open
}
