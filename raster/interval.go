package raster

import (
	"math"

	"github.com/Workiva/go-datastructures/augmentedtree"
	"github.com/rubenv/countryraster/fixed"
)

// box is a bounding box in fixed-point units, rounded outwards. Dimension 1
// is longitude, dimension 2 latitude.
type box struct {
	indexed
	low  [2]int64
	high [2]int64
}

func newBox(r Rect) *box {
	return &box{
		low: [2]int64{
			int64(math.Floor(r.MinX * fixed.Scale)),
			int64(math.Floor(r.MinY * fixed.Scale)),
		},
		high: [2]int64{
			int64(math.Ceil(r.MaxX * fixed.Scale)),
			int64(math.Ceil(r.MaxY * fixed.Scale)),
		},
	}
}

func (b *box) LowAtDimension(d uint64) int64 {
	return b.low[d-1]
}

func (b *box) HighAtDimension(d uint64) int64 {
	return b.high[d-1]
}

func (b *box) OverlapsAtDimension(i augmentedtree.Interval, d uint64) bool {
	return b.HighAtDimension(d) >= i.LowAtDimension(d) &&
		b.LowAtDimension(d) <= i.HighAtDimension(d)
}

func (b *box) ID() uint64 {
	return uint64(b.pos) + 1
}

// IntervalTree indexes region bounding boxes in a two dimensional augmented
// interval tree.
type IntervalTree struct {
	tree augmentedtree.Tree
}

func NewIntervalTree(regions []*Region) *IntervalTree {
	tree := augmentedtree.New(2)
	for i, r := range regions {
		b := newBox(r.Bounds)
		b.indexed = indexed{pos: i, region: r}
		tree.Add(b)
	}
	return &IntervalTree{tree: tree}
}

func (t *IntervalTree) Query(r Rect) []*Region {
	found := t.tree.Query(newBox(r))
	items := make([]indexed, 0, len(found))
	for _, f := range found {
		items = append(items, f.(*box).indexed)
	}
	return sortedRegions(items, r)
}

func (t *IntervalTree) Len() int {
	return int(t.tree.Len())
}
