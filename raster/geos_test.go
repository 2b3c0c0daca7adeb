package raster

import (
	"errors"
	"math"
	"testing"

	"github.com/cheekybits/is"
	"github.com/rubenv/countryraster/fixed"
	"github.com/rubenv/countryraster/merge"
)

func square(minX, minY, maxX, maxY float64) [][]float64 {
	return [][]float64{{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY}}
}

func TestGeosWholeGlobe(t *testing.T) {
	is := is.New(t)

	world, err := NewRegion("world", [][][][]float64{{square(-180, -90, 180, 90)}})
	is.NoErr(err)

	r, err := NewGenerator([]*Region{world}).Run(2, 2)
	is.NoErr(err)
	for _, cell := range r.Cells {
		is.Equal(cell.Containing, []string{"world"})
		is.Equal(len(cell.Partial), 0)
	}
	is.Equal(r.Areas["world"], 64800.0)
}

func TestGeosPartialQuadrants(t *testing.T) {
	is := is.New(t)

	region, err := NewRegion("SQ", [][][][]float64{{square(-10, -10, 10, 10)}})
	is.NoErr(err)
	is.Equal(region.Bounds, Rect{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10})

	r, err := NewGenerator([]*Region{region}).Run(2, 2)
	is.NoErr(err)

	is.Equal(r.Areas["SQ"], 400.0)
	for _, cell := range r.Cells {
		is.Equal(len(cell.Containing), 0)
		is.Equal(len(cell.Partial), 1)
		is.Equal(len(cell.Partial[0].Polygon.Outer), 1)
		is.Equal(len(cell.Partial[0].Polygon.Inner), 0)
	}

	// North west quadrant
	is.Equal(r.Cell(0, 0).Partial[0].Polygon.Outer[0], fixed.Ring{
		{X: -100000000, Y: 0},
		{X: -100000000, Y: 100000000},
		{X: 0, Y: 100000000},
		{X: 0, Y: 0},
	})
}

func TestGeosCoversAndTouches(t *testing.T) {
	is := is.New(t)

	region, err := NewRegion("NW", [][][][]float64{{square(-180, 0, 0, 90)}})
	is.NoErr(err)

	rel, err := region.Shape.Relate(CellBounds(0, 0, 2, 2))
	is.NoErr(err)
	is.Equal(rel, Covers)

	rel, err = region.Shape.Relate(CellBounds(1, 0, 2, 2))
	is.NoErr(err)
	is.Equal(rel, Disjoint)

	rel, err = region.Shape.Relate(CellBounds(1, 1, 2, 2))
	is.NoErr(err)
	is.Equal(rel, Disjoint)

	rel, err = region.Shape.Relate(Rect{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10})
	is.NoErr(err)
	is.Equal(rel, Intersects)
}

func TestGeosHole(t *testing.T) {
	is := is.New(t)

	region, err := NewRegion("LK", [][][][]float64{{
		square(-180, -90, 180, 90),
		square(10, 10, 20, 20),
	}})
	is.NoErr(err)
	is.Equal(len(region.Polygons[0].Inner), 1)

	r, err := NewGenerator([]*Region{region}).Run(2, 2)
	is.NoErr(err)
	is.Equal(r.Areas["LK"], 64800.0-100.0)

	is.Equal(r.Cell(0, 0).Containing, []string{"LK"})
	ne := r.Cell(1, 0)
	is.Equal(len(ne.Containing), 0)
	is.Equal(len(ne.Partial), 1)
	is.Equal(ne.Partial[0].Polygon.Inner, []fixed.Ring{{
		{X: 100000000, Y: 100000000},
		{X: 200000000, Y: 100000000},
		{X: 200000000, Y: 200000000},
		{X: 100000000, Y: 200000000},
	}})
}

func TestGeosMergesParts(t *testing.T) {
	is := is.New(t)

	region, err := NewRegion("MP", [][][][]float64{
		{square(0, 0, 4, 4)},
		{{{4, 0}, {8, 4}, {4, 4}, {4, 0}}},
		{square(20, 20, 21, 21)},
	})
	is.NoErr(err)
	is.Equal(len(region.Polygons), 2)
	is.Equal(region.Bounds, Rect{MinX: 0, MinY: 0, MaxX: 21, MaxY: 21})

	area, err := region.Shape.Area()
	is.NoErr(err)
	is.Equal(area, 25.0)
}

func TestGeosAreaBeforeRounding(t *testing.T) {
	is := is.New(t)

	region, err := NewRegion("XX", [][][][]float64{{square(0, 0, 0.123456789, 1)}})
	is.NoErr(err)

	area, err := region.Shape.Area()
	is.NoErr(err)
	is.True(math.Abs(area-0.123456789) < 1e-12)
	is.True(math.Abs(area-0.1234568) > 1e-9)

	r, err := NewGenerator([]*Region{region}).Run(1, 1)
	is.NoErr(err)
	is.Equal(r.Areas["XX"], area)
}

func TestGeosInvalidRegion(t *testing.T) {
	is := is.New(t)

	_, err := NewRegion("", [][][][]float64{{square(0, 0, 1, 1)}})
	is.Err(err)

	_, err = NewRegion("XX", [][][][]float64{{square(0, 0, 4, 4)}, {square(0, 0, 4, 4)}})
	is.True(errors.Is(err, merge.ErrInvalidGeometry))

	_, err = NewRegion("XX", [][][][]float64{{square(0, 0, 200, 4)}})
	is.True(errors.Is(err, fixed.ErrRange))
}
