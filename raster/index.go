package raster

import (
	"fmt"
	"sort"
)

type IndexKind string

const (
	RTreeIndex    IndexKind = "rtree"
	IntervalIndex IndexKind = "interval"
)

// Index finds the regions whose bounding box overlaps a cell. Results are
// returned in the order the regions were indexed.
type Index interface {
	Query(r Rect) []*Region
	Len() int
}

func NewIndex(kind IndexKind, regions []*Region) (Index, error) {
	switch kind {
	case RTreeIndex, "":
		return NewRTree(regions), nil
	case IntervalIndex:
		return NewIntervalTree(regions), nil
	}
	return nil, fmt.Errorf("Unknown index type: %s", kind)
}

type indexed struct {
	pos    int
	region *Region
}

func sortedRegions(items []indexed, r Rect) []*Region {
	sort.Slice(items, func(i, j int) bool {
		return items[i].pos < items[j].pos
	})
	out := make([]*Region, 0, len(items))
	for _, item := range items {
		if item.region.Bounds.Overlaps(r) {
			out = append(out, item.region)
		}
	}
	return out
}
