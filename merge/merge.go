// Package merge turns polygons whose rings share edges into polygons that
// satisfy the OGC Simple Features rules: rings of one polygon touch in at
// most one point and no edge is shared between rings.
//
// Edges are first split at vertices of other rings lying on them. Rings that
// share an edge are then combined by dropping the shared edges and tracing
// the boundary that is left. Rings that only share vertices, or that
// merely contain one another, are left alone.
package merge

import (
	"errors"
	"fmt"
	"math"

	"github.com/rubenv/countryraster/fixed"
)

var ErrInvalidGeometry = errors.New("Invalid geometry")

type edge struct {
	a fixed.Point
	b fixed.Point
}

func (e edge) undirected() edge {
	if e.b.Less(e.a) {
		return edge{e.b, e.a}
	}
	return e
}

type ring struct {
	points fixed.Ring
	hole   bool
	key    [2]int
}

func (r *ring) edge(i int) edge {
	return edge{r.points[i], r.points[(i+1)%len(r.points)]}
}

func keyLess(a, b [2]int) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

// Polygon merges the holes of a single polygon with each other and with
// the shell. The result can contain more than one polygon when merged holes
// cut the shell apart.
func Polygon(shell fixed.Ring, holes []fixed.Ring) ([]fixed.Polygon, error) {
	return MultiPolygon([]fixed.Polygon{{Outer: []fixed.Ring{shell}, Inner: holes}})
}

// MultiPolygon merges all rings of the given polygons. Every polygon in the
// result has exactly one outer ring (counter-clockwise) and its holes
// (clockwise). Output order follows the order of the input rings.
func MultiPolygon(polys []fixed.Polygon) ([]fixed.Polygon, error) {
	rings := make([]*ring, 0)
	add := func(r fixed.Ring, hole bool) error {
		if len(r) < 3 {
			return fmt.Errorf("%w: ring with %d points", ErrInvalidGeometry, len(r))
		}
		area := r.SignedArea()
		if area == 0 {
			return fmt.Errorf("%w: ring without area at %v", ErrInvalidGeometry, r[0])
		}
		if (area < 0) != hole {
			r = r.Reverse()
		}
		rings = append(rings, &ring{
			points: r,
			hole:   hole,
			key:    [2]int{len(rings), 0},
		})
		return nil
	}

	for _, p := range polys {
		for _, r := range p.Outer {
			err := add(r, false)
			if err != nil {
				return nil, err
			}
		}
		for _, r := range p.Inner {
			err := add(r, true)
			if err != nil {
				return nil, err
			}
		}
	}

	node(rings)

	merged := make([]*ring, 0, len(rings))
	for _, group := range groupRings(rings) {
		if len(group) == 1 {
			merged = append(merged, group[0])
			continue
		}

		traced, err := trace(group)
		if err != nil {
			return nil, err
		}
		merged = append(merged, traced...)
	}

	err := checkCrossings(merged)
	if err != nil {
		return nil, err
	}
	return assemble(merged)
}

// groupRings partitions the rings into sets connected by shared edges.
// Groups and their members keep the input order.
func groupRings(rings []*ring) [][]*ring {
	parent := make([]int, len(rings))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	owner := make(map[edge]int)
	for i, r := range rings {
		for j := range r.points {
			e := r.edge(j).undirected()
			o, ok := owner[e]
			if !ok {
				owner[e] = i
				continue
			}
			a, b := find(o), find(i)
			if a == b {
				continue
			}
			// Lowest index becomes the root
			if a < b {
				parent[b] = a
			} else {
				parent[a] = b
			}
		}
	}

	index := make(map[int]int)
	groups := make([][]*ring, 0)
	for i, r := range rings {
		root := find(i)
		g, ok := index[root]
		if !ok {
			g = len(groups)
			index[root] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], r)
	}
	return groups
}

// trace removes every edge that occurs in both directions and walks the
// remaining edges into closed rings.
func trace(group []*ring) ([]*ring, error) {
	remaining := make(map[edge]int)
	for _, r := range group {
		for j := range r.points {
			e := r.edge(j)
			remaining[e]++
			if remaining[e] > 1 {
				return nil, fmt.Errorf("%w: overlapping rings at %v-%v", ErrInvalidGeometry, e.a, e.b)
			}
		}
	}

	for e := range remaining {
		rev := edge{e.b, e.a}
		if remaining[e] > 0 && remaining[rev] > 0 {
			remaining[e] = 0
			remaining[rev] = 0
		}
	}

	adj := make(map[fixed.Point][]fixed.Point)
	for _, r := range group {
		for j := range r.points {
			e := r.edge(j)
			if remaining[e] > 0 {
				adj[e.a] = append(adj[e.a], e.b)
			}
		}
	}

	key := group[0].key[0]
	out := make([]*ring, 0)
	for _, r := range group {
		for j := range r.points {
			e := r.edge(j)
			if remaining[e] == 0 {
				continue
			}

			loops, err := walk(e, remaining, adj)
			if err != nil {
				return nil, err
			}

			for _, l := range loops {
				area := l.SignedArea()
				if len(l) < 3 || area == 0 {
					return nil, fmt.Errorf("%w: collapsed ring at %v", ErrInvalidGeometry, l[0])
				}
				out = append(out, &ring{
					points: l,
					hole:   area < 0,
					key:    [2]int{key, len(out)},
				})
			}
		}
	}

	return out, nil
}

// walk follows edges from start until it gets back to its first vertex.
// Whenever a vertex repeats, the loop closed by it is split off as a ring of
// its own.
func walk(start edge, remaining map[edge]int, adj map[fixed.Point][]fixed.Point) ([]fixed.Ring, error) {
	take := func(e edge) {
		remaining[e]--
		outs := adj[e.a]
		for i, p := range outs {
			if p == e.b {
				adj[e.a] = append(outs[:i:i], outs[i+1:]...)
				break
			}
		}
	}

	take(start)
	path := []fixed.Point{start.a}
	pos := map[fixed.Point]int{start.a: 0}
	prev, cur := start.a, start.b

	loops := make([]fixed.Ring, 0, 1)
	for {
		if i, ok := pos[cur]; ok {
			loop := make(fixed.Ring, len(path)-i)
			copy(loop, path[i:])
			loops = append(loops, loop)
			if i == 0 {
				return loops, nil
			}

			for _, p := range path[i+1:] {
				delete(pos, p)
			}
			path = path[:i+1]
			prev = path[i-1]
		} else {
			pos[cur] = len(path)
			path = append(path, cur)
		}

		next, ok := pick(prev, cur, adj[cur])
		if !ok {
			return nil, fmt.Errorf("%w: open ring at %v", ErrInvalidGeometry, cur)
		}
		take(edge{cur, next})
		prev, cur = cur, next
	}
}

// pick chooses the outgoing edge with the smallest clockwise turn away from
// the edge we arrived on, which keeps the traced rings from crossing at
// vertices with several outgoing edges.
func pick(prev, cur fixed.Point, outs []fixed.Point) (fixed.Point, bool) {
	if len(outs) == 0 {
		return fixed.Point{}, false
	}

	back := angle(cur, prev)
	best := -1
	bestTurn := 0.0
	for i, p := range outs {
		turn := back - angle(cur, p)
		if turn <= 0 {
			turn += 2 * math.Pi
		}
		if best == -1 || turn < bestTurn {
			best = i
			bestTurn = turn
		}
	}
	return outs[best], true
}

// foldsBack reports whether the path a->b->c turns back onto itself.
func foldsBack(a, b, c fixed.Point) bool {
	if orient(a, b, c) != 0 {
		return false
	}
	dx1, dy1 := float64(b.X)-float64(a.X), float64(b.Y)-float64(a.Y)
	dx2, dy2 := float64(c.X)-float64(b.X), float64(c.Y)-float64(b.Y)
	return dx1*dx2+dy1*dy2 < 0
}
