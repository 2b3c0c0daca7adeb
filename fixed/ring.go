package fixed

import "sort"

// Ring is a closed loop of points. The closing point is not repeated.
type Ring []Point

// Polygon is a set of outer rings and the holes cut out of them.
type Polygon struct {
	Outer []Ring
	Inner []Ring
}

// EncodeRing converts a [lon, lat] coordinate list. A trailing point equal
// to the first one is dropped, as are consecutive duplicates.
func EncodeRing(coords [][]float64) (Ring, error) {
	ring := make(Ring, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		p, err := EncodePoint(c[0], c[1])
		if err != nil {
			return nil, err
		}
		if len(ring) > 0 && ring[len(ring)-1] == p {
			continue
		}
		ring = append(ring, p)
	}
	for len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	return ring, nil
}

// Coords returns the ring as a closed [lon, lat] list.
func (r Ring) Coords() [][]float64 {
	if len(r) == 0 {
		return [][]float64{}
	}
	out := make([][]float64, 0, len(r)+1)
	for _, p := range r {
		out = append(out, []float64{p.Lon(), p.Lat()})
	}
	return append(out, []float64{r[0].Lon(), r[0].Lat()})
}

// SignedArea is positive for counter-clockwise rings, in square units.
func (r Ring) SignedArea() float64 {
	if len(r) < 3 {
		return 0
	}

	// Relative to the first point to keep the products small
	ox, oy := float64(r[0].X), float64(r[0].Y)
	sum := 0.0
	for i := range r {
		a := r[i]
		b := r[(i+1)%len(r)]
		ax, ay := float64(a.X)-ox, float64(a.Y)-oy
		bx, by := float64(b.X)-ox, float64(b.Y)-oy
		sum += ax*by - bx*ay
	}
	return sum / 2
}

func (r Ring) IsClockwise() bool {
	return r.SignedArea() < 0
}

func (r Ring) Reverse() Ring {
	c := make(Ring, len(r))
	for i := range r {
		c[i] = r[len(r)-i-1]
	}
	return c
}

// Normalize orients the ring and rotates it to start at its smallest point.
func (r Ring) Normalize(clockwise bool) Ring {
	if len(r) == 0 {
		return Ring{}
	}
	if r.IsClockwise() != clockwise {
		r = r.Reverse()
	}

	min := 0
	for i, p := range r {
		if p.Less(r[min]) {
			min = i
		}
	}

	out := make(Ring, 0, len(r))
	out = append(out, r[min:]...)
	return append(out, r[:min]...)
}

// Bounds returns the lower left and upper right corners.
func (r Ring) Bounds() (Point, Point) {
	if len(r) == 0 {
		return Point{}, Point{}
	}
	lo, hi := r[0], r[0]
	for _, p := range r[1:] {
		if p.X < lo.X {
			lo.X = p.X
		}
		if p.Y < lo.Y {
			lo.Y = p.Y
		}
		if p.X > hi.X {
			hi.X = p.X
		}
		if p.Y > hi.Y {
			hi.Y = p.Y
		}
	}
	return lo, hi
}

// Normalize orients outer rings clockwise and holes counter-clockwise, then
// sorts both lists by their first point.
func (p Polygon) Normalize() Polygon {
	out := Polygon{
		Outer: make([]Ring, len(p.Outer)),
		Inner: make([]Ring, len(p.Inner)),
	}
	for i, r := range p.Outer {
		out.Outer[i] = r.Normalize(true)
	}
	for i, r := range p.Inner {
		out.Inner[i] = r.Normalize(false)
	}
	sortRings(out.Outer)
	sortRings(out.Inner)
	return out
}

func sortRings(rings []Ring) {
	sort.SliceStable(rings, func(i, j int) bool {
		return ringLess(rings[i], rings[j])
	})
}

func ringLess(a, b Ring) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i].Less(b[i])
		}
	}
	return len(a) < len(b)
}
