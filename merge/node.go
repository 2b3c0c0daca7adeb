package merge

import (
	"fmt"
	"sort"

	"github.com/rubenv/countryraster/fixed"
)

type vertex struct {
	p    fixed.Point
	ring int
}

// node splits ring edges at vertices of other rings that lie inside them.
// Rings running along each other then share whole edges, and a vertex
// touching another ring's edge becomes a vertex of both rings.
func node(rings []*ring) {
	vertices := make([]vertex, 0)
	for i, r := range rings {
		for _, p := range r.points {
			vertices = append(vertices, vertex{p, i})
		}
	}
	sort.Slice(vertices, func(a, b int) bool {
		return vertices[a].p.Less(vertices[b].p)
	})

	for i, r := range rings {
		out := make(fixed.Ring, 0, len(r.points))
		for j := range r.points {
			e := r.edge(j)
			out = append(out, e.a)
			out = append(out, splits(e, i, vertices)...)
		}
		if len(out) != len(r.points) {
			r.points = out
		}
	}
}

// splits returns the vertices of other rings strictly inside e, ordered from
// e.a to e.b.
func splits(e edge, self int, vertices []vertex) []fixed.Point {
	lo, hi := min32(e.a.X, e.b.X), max32(e.a.X, e.b.X)
	start := sort.Search(len(vertices), func(i int) bool {
		return vertices[i].p.X >= lo
	})

	var out []fixed.Point
	for _, v := range vertices[start:] {
		if v.p.X > hi {
			break
		}
		if v.ring == self || v.p == e.a || v.p == e.b {
			continue
		}
		if orient(e.a, e.b, v.p) == 0 && onSegment(e.a, e.b, v.p) {
			out = append(out, v.p)
		}
	}
	if len(out) == 0 {
		return nil
	}

	dist := func(p fixed.Point) int64 {
		dx := int64(p.X) - int64(e.a.X)
		dy := int64(p.Y) - int64(e.a.Y)
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		return dx + dy
	}
	sort.Slice(out, func(a, b int) bool {
		return dist(out[a]) < dist(out[b])
	})

	k := 0
	for _, p := range out {
		if k > 0 && out[k-1] == p {
			continue
		}
		out[k] = p
		k++
	}
	return out[:k]
}

type segment struct {
	ring int
	i    int
}

// checkCrossings fails when a ring intersects itself, or when two rings
// cross or overlap. Distinct rings may share vertices.
func checkCrossings(rings []*ring) error {
	segs := make([]segment, 0)
	for r, rg := range rings {
		for i := range rg.points {
			segs = append(segs, segment{r, i})
		}
	}

	lo := func(s segment) int32 {
		e := rings[s.ring].edge(s.i)
		return min32(e.a.X, e.b.X)
	}
	hi := func(s segment) int32 {
		e := rings[s.ring].edge(s.i)
		return max32(e.a.X, e.b.X)
	}
	sort.Slice(segs, func(a, b int) bool {
		return lo(segs[a]) < lo(segs[b])
	})

	active := make([]segment, 0)
	for _, s := range segs {
		k := 0
		for _, t := range active {
			if hi(t) >= lo(s) {
				active[k] = t
				k++
			}
		}
		active = active[:k]

		for _, t := range active {
			if conflict(rings, s, t) {
				p := rings[s.ring].points[s.i]
				if s.ring == t.ring {
					return fmt.Errorf("%w: self-intersecting ring near %v", ErrInvalidGeometry, p)
				}
				return fmt.Errorf("%w: rings cross near %v", ErrInvalidGeometry, p)
			}
		}
		active = append(active, s)
	}
	return nil
}

func conflict(rings []*ring, s, t segment) bool {
	e, f := rings[s.ring].edge(s.i), rings[t.ring].edge(t.i)
	if s.ring != t.ring {
		return segmentsIntersect(e.a, e.b, f.a, f.b) && !touching(e.a, e.b, f.a, f.b)
	}

	n := len(rings[s.ring].points)
	switch {
	case t.i == (s.i+1)%n:
		return foldsBack(e.a, e.b, f.b)
	case s.i == (t.i+1)%n:
		return foldsBack(f.a, f.b, e.b)
	}
	return segmentsIntersect(e.a, e.b, f.a, f.b)
}

// touching reports whether segments a-b and c-d meet in a shared end point
// and nowhere else.
func touching(a, b, c, d fixed.Point) bool {
	var p, q, r fixed.Point
	switch {
	case a == c:
		p, q, r = a, b, d
	case a == d:
		p, q, r = a, b, c
	case b == c:
		p, q, r = b, a, d
	case b == d:
		p, q, r = b, a, c
	default:
		return false
	}
	if orient(p, q, r) != 0 {
		return true
	}

	// Collinear: only a touch when they leave p in opposite directions
	dx1, dy1 := float64(q.X)-float64(p.X), float64(q.Y)-float64(p.Y)
	dx2, dy2 := float64(r.X)-float64(p.X), float64(r.Y)-float64(p.Y)
	return dx1*dx2+dy1*dy2 < 0
}
