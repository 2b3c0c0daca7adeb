package raster

import (
	"errors"
	"fmt"

	"github.com/rubenv/countryraster/fixed"
	"github.com/rubenv/countryraster/merge"
)

// ErrNotPolygonal is returned by Shape.Clip when the intersection has no
// area.
var ErrNotPolygonal = fmt.Errorf("%w: intersection is not polygonal", merge.ErrInvalidGeometry)

type Relation int

const (
	Disjoint Relation = iota
	Intersects
	Covers
)

func (r Relation) String() string {
	switch r {
	case Covers:
		return "covers"
	case Intersects:
		return "intersects"
	}
	return "disjoint"
}

// Shape is the geometry engine view of a region.
type Shape interface {
	// Relate classifies the cell against the shape. Shapes that only touch
	// the cell boundary are Disjoint.
	Relate(cell Rect) (Relation, error)

	// Clip returns the intersection of shape and cell as closed [lon, lat] rings,
	// outer ring first.
	Clip(cell Rect) ([][][][]float64, error)

	// Area of the region in square degrees.
	Area() (float64, error)
}

type Region struct {
	ID       string
	Bounds   Rect
	Polygons []fixed.Polygon
	Shape    Shape
}

// NewRegion encodes the polygons, merges touching rings and builds the GEOS
// geometry. Each polygon is a list of closed rings, outer ring first.
func NewRegion(id string, polygons [][][][]float64) (*Region, error) {
	if id == "" {
		return nil, errors.New("Region without id")
	}

	parts := make([]fixed.Polygon, 0, len(polygons))
	for _, polygon := range polygons {
		part := fixed.Polygon{}
		for i, coords := range polygon {
			ring, err := fixed.EncodeRing(coords)
			if err != nil {
				return nil, fmt.Errorf("Region %s: %w", id, err)
			}
			if len(ring) < 3 || ring.SignedArea() == 0 {
				if i == 0 {
					break
				}
				continue
			}

			if i == 0 {
				part.Outer = append(part.Outer, ring)
			} else {
				part.Inner = append(part.Inner, ring)
			}
		}
		if len(part.Outer) > 0 {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("Region %s: %w: no polygons", id, merge.ErrInvalidGeometry)
	}

	merged, err := merge.MultiPolygon(parts)
	if err != nil {
		return nil, fmt.Errorf("Region %s: %w", id, err)
	}

	shape, err := NewGeosShape(merged)
	if err != nil {
		return nil, fmt.Errorf("Region %s: %w", id, err)
	}
	shape.area, err = inputArea(polygons)
	if err != nil {
		return nil, fmt.Errorf("Region %s: %w", id, err)
	}

	return &Region{
		ID:       id,
		Bounds:   polygonBounds(merged),
		Polygons: merged,
		Shape:    shape,
	}, nil
}

func polygonBounds(polygons []fixed.Polygon) Rect {
	first := true
	var lo, hi fixed.Point
	for _, p := range polygons {
		for _, r := range p.Outer {
			l, h := r.Bounds()
			if first {
				lo, hi = l, h
				first = false
				continue
			}
			lo.X = min(lo.X, l.X)
			lo.Y = min(lo.Y, l.Y)
			hi.X = max(hi.X, h.X)
			hi.Y = max(hi.Y, h.Y)
		}
	}
	return Rect{
		MinX: lo.Lon(),
		MinY: lo.Lat(),
		MaxX: hi.Lon(),
		MaxY: hi.Lat(),
	}
}
