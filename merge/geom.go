package merge

import (
	"math"

	"github.com/rubenv/countryraster/fixed"
)

// orient returns the sign of the cross product (b-a) x (c-a). Both products
// fit an int64 for any pair of valid coordinates, so they are compared rather
// than subtracted.
func orient(a, b, c fixed.Point) int {
	l := (int64(b.X) - int64(a.X)) * (int64(c.Y) - int64(a.Y))
	r := (int64(b.Y) - int64(a.Y)) * (int64(c.X) - int64(a.X))
	switch {
	case l > r:
		return 1
	case l < r:
		return -1
	}
	return 0
}

// onSegment reports whether c, known to be collinear with a and b, lies
// within the box spanned by a and b.
func onSegment(a, b, c fixed.Point) bool {
	return min32(a.X, b.X) <= c.X && c.X <= max32(a.X, b.X) &&
		min32(a.Y, b.Y) <= c.Y && c.Y <= max32(a.Y, b.Y)
}

func segmentsIntersect(a, b, c, d fixed.Point) bool {
	o1 := orient(a, b, c)
	o2 := orient(a, b, d)
	o3 := orient(c, d, a)
	o4 := orient(c, d, b)

	if o1*o2 < 0 && o3*o4 < 0 {
		return true
	}
	if o1 == 0 && onSegment(a, b, c) {
		return true
	}
	if o2 == 0 && onSegment(a, b, d) {
		return true
	}
	if o3 == 0 && onSegment(c, d, a) {
		return true
	}
	if o4 == 0 && onSegment(c, d, b) {
		return true
	}
	return false
}

const (
	outside  = -1
	boundary = 0
	inside   = 1
)

// locate classifies p against the area enclosed by ring using the winding
// number.
func locate(p fixed.Point, ring fixed.Ring) int {
	wn := 0
	for i := range ring {
		a := ring[i]
		b := ring[(i+1)%len(ring)]

		o := orient(a, b, p)
		if o == 0 && onSegment(a, b, p) {
			return boundary
		}

		if a.Y <= p.Y {
			if b.Y > p.Y && o > 0 {
				wn++
			}
		} else if b.Y <= p.Y && o < 0 {
			wn--
		}
	}
	if wn != 0 {
		return inside
	}
	return outside
}

// angle of the vector a->b, in [0, 2pi).
func angle(a, b fixed.Point) float64 {
	v := math.Atan2(float64(b.Y)-float64(a.Y), float64(b.X)-float64(a.X))
	if v < 0 {
		v += 2 * math.Pi
	}
	return v
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
