package source

import (
	"log"
	"sort"

	"github.com/paulsmith/gogeos/geos"
)

// makePolygons attaches every hole to the smallest outer ring containing it.
// Holes outside of all outer rings are dropped.
func makePolygons(outer, inner [][][]float64) ([][][][]float64, error) {
	shells := make([]*geos.Geometry, len(outer))
	areas := make([]float64, len(outer))
	for i, ring := range outer {
		g, err := geos.NewPolygon(toCoords(ring))
		if err != nil {
			return nil, err
		}
		area, err := g.Area()
		if err != nil {
			return nil, err
		}
		shells[i] = g
		areas[i] = area
	}

	order := make([]int, len(outer))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return areas[order[a]] < areas[order[b]]
	})

	remaining := append([][][]float64(nil), inner...)
	holes := make([][][][]float64, len(outer))
	for _, i := range order {
		if len(remaining) == 0 {
			break
		}
		pshell := geos.PrepareGeometry(shells[i])

		// Find holes
		for j := 0; j < len(remaining); j++ {
			hole, err := geos.NewPolygon(toCoords(remaining[j]))
			if err != nil {
				return nil, err
			}
			c, err := pshell.Contains(hole)
			if err != nil {
				return nil, err
			}
			if c {
				holes[i] = append(holes[i], remaining[j])
				remaining = append(remaining[:j], remaining[j+1:]...)
				j-- // Counter-act the increment at the end of the iteration
			}
		}
	}
	if len(remaining) > 0 {
		log.Printf("Dropping %d holes outside of any outer ring", len(remaining))
	}

	polygons := make([][][][]float64, 0, len(outer))
	for i, ring := range outer {
		polygon := [][][]float64{ring}
		polygon = append(polygon, holes[i]...)
		polygons = append(polygons, polygon)
	}
	return polygons, nil
}

// ringArea is positive for counter-clockwise rings.
func ringArea(ring [][]float64) float64 {
	sum := 0.0
	for i := 0; i+1 < len(ring); i++ {
		sum += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	return sum / 2
}

// closeRing repeats the first point at the end if needed.
func closeRing(ring [][]float64) [][]float64 {
	if len(ring) == 0 {
		return ring
	}
	first, last := ring[0], ring[len(ring)-1]
	if first[0] != last[0] || first[1] != last[1] {
		ring = append(ring, []float64{first[0], first[1]})
	}
	return ring
}

func toCoords(ring [][]float64) []geos.Coord {
	out := make([]geos.Coord, len(ring))
	for i, c := range ring {
		out[i] = geos.NewCoord(c[0], c[1])
	}
	return out
}
