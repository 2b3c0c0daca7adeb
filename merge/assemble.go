package merge

import (
	"fmt"
	"math"
	"sort"

	"github.com/rubenv/countryraster/fixed"
)

type shell struct {
	ring  *ring
	lo    fixed.Point
	hi    fixed.Point
	area  float64
	holes []fixed.Ring
}

func (s *shell) covers(lo, hi fixed.Point) bool {
	return s.lo.X <= lo.X && s.lo.Y <= lo.Y && s.hi.X >= hi.X && s.hi.Y >= hi.Y
}

// contains decides whether hole lies inside the shell, using the first hole
// vertex that is not on the shell boundary.
func (s *shell) contains(hole fixed.Ring) bool {
	for _, p := range hole {
		switch locate(p, s.ring.points) {
		case inside:
			return true
		case outside:
			return false
		}
	}
	return false
}

// assemble attaches every hole to the smallest shell containing it.
func assemble(rings []*ring) ([]fixed.Polygon, error) {
	sort.SliceStable(rings, func(i, j int) bool {
		return keyLess(rings[i].key, rings[j].key)
	})

	shells := make([]*shell, 0)
	for _, r := range rings {
		if r.hole {
			continue
		}
		lo, hi := r.points.Bounds()
		shells = append(shells, &shell{
			ring: r,
			lo:   lo,
			hi:   hi,
			area: math.Abs(r.points.SignedArea()),
		})
	}

	for _, r := range rings {
		if !r.hole {
			continue
		}

		lo, hi := r.points.Bounds()
		var owner *shell
		for _, s := range shells {
			if !s.covers(lo, hi) {
				continue
			}
			if owner != nil && owner.area <= s.area {
				continue
			}
			if s.contains(r.points) {
				owner = s
			}
		}
		if owner == nil {
			return nil, fmt.Errorf("%w: hole at %v is outside of every shell", ErrInvalidGeometry, r.points[0])
		}
		owner.holes = append(owner.holes, r.points)
	}

	out := make([]fixed.Polygon, 0, len(shells))
	for _, s := range shells {
		p := fixed.Polygon{
			Outer: []fixed.Ring{s.ring.points},
			Inner: s.holes,
		}
		if p.Inner == nil {
			p.Inner = []fixed.Ring{}
		}

		err := checkTouches(p)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// checkTouches fails when two rings of the polygon share more than one
// vertex.
func checkTouches(p fixed.Polygon) error {
	if len(p.Inner) == 0 {
		return nil
	}

	rings := make([]fixed.Ring, 0, len(p.Inner)+1)
	rings = append(rings, p.Outer...)
	rings = append(rings, p.Inner...)

	seen := make(map[fixed.Point][]int)
	shared := make(map[[2]int]int)
	for i, r := range rings {
		for _, pt := range r {
			for _, j := range seen[pt] {
				if j == i {
					continue
				}
				pair := [2]int{j, i}
				shared[pair]++
				if shared[pair] > 1 {
					return fmt.Errorf("%w: rings touch in more than one point near %v", ErrInvalidGeometry, pt)
				}
			}
			if n := len(seen[pt]); n == 0 || seen[pt][n-1] != i {
				seen[pt] = append(seen[pt], i)
			}
		}
	}
	return nil
}
