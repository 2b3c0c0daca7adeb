package raster

import (
	"errors"
)

// boxShape is an axis-aligned rectangle, enough to drive the scheduler
// without GEOS.
type boxShape struct {
	box Rect
	err error
}

func (s *boxShape) Relate(cell Rect) (Relation, error) {
	if s.err != nil {
		return Disjoint, s.err
	}
	if s.box.MinX <= cell.MinX && s.box.MinY <= cell.MinY &&
		s.box.MaxX >= cell.MaxX && s.box.MaxY >= cell.MaxY {
		return Covers, nil
	}
	if s.box.Overlaps(cell) {
		return Intersects, nil
	}
	return Disjoint, nil
}

func (s *boxShape) Clip(cell Rect) ([][][][]float64, error) {
	clipped := Rect{
		MinX: max(s.box.MinX, cell.MinX),
		MinY: max(s.box.MinY, cell.MinY),
		MaxX: min(s.box.MaxX, cell.MaxX),
		MaxY: min(s.box.MaxY, cell.MaxY),
	}
	return [][][][]float64{{clipped.Ring()}}, nil
}

func (s *boxShape) Area() (float64, error) {
	return (s.box.MaxX - s.box.MinX) * (s.box.MaxY - s.box.MinY), nil
}

// tangentShape behaves like a shape whose clip degenerates to a line.
type tangentShape struct {
	boxShape
}

func (s *tangentShape) Clip(cell Rect) ([][][][]float64, error) {
	return nil, ErrNotPolygonal
}

func boxRegion(id string, minX, minY, maxX, maxY float64) *Region {
	box := Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
	return &Region{
		ID:     id,
		Bounds: box,
		Shape:  &boxShape{box: box},
	}
}

var errBroken = errors.New("broken shape")

func brokenRegion(id string) *Region {
	box := Rect{MinX: -180, MinY: -90, MaxX: 180, MaxY: 90}
	return &Region{
		ID:     id,
		Bounds: box,
		Shape:  &boxShape{box: box, err: errBroken},
	}
}

func testRegions() []*Region {
	return []*Region{
		boxRegion("AA", -170, -60, -20, 75),
		boxRegion("BB", -30, -10, 60, 40),
		boxRegion("CC", 10, 5, 170, 85),
		boxRegion("DD", -180, -90, 180, -70),
		boxRegion("EE", 100, -50, 140, -20),
	}
}
