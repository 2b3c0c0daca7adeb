package raster

import (
	"github.com/dhconnelly/rtreego"
)

type rtreeEntry struct {
	indexed
	rect rtreego.Rect
}

func (e *rtreeEntry) Bounds() rtreego.Rect {
	return e.rect
}

// RTree is a bulk-loaded R-tree over region bounding boxes.
type RTree struct {
	tree *rtreego.Rtree
}

func NewRTree(regions []*Region) *RTree {
	objs := make([]rtreego.Spatial, 0, len(regions))
	for i, r := range regions {
		objs = append(objs, &rtreeEntry{
			indexed: indexed{pos: i, region: r},
			rect:    toRTreeRect(r.Bounds),
		})
	}
	return &RTree{
		tree: rtreego.NewTree(2, 25, 50, objs...),
	}
}

func (t *RTree) Query(r Rect) []*Region {
	found := t.tree.SearchIntersect(toRTreeRect(r))
	items := make([]indexed, len(found))
	for i, f := range found {
		items[i] = f.(*rtreeEntry).indexed
	}
	return sortedRegions(items, r)
}

func (t *RTree) Len() int {
	return t.tree.Size()
}

func toRTreeRect(r Rect) rtreego.Rect {
	// Only fails on a dimension mismatch
	rect, _ := rtreego.NewRectFromPoints(
		rtreego.Point{r.MinX, r.MinY},
		rtreego.Point{r.MaxX, r.MaxY},
	)
	return rect
}
