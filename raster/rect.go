package raster

import "fmt"

// Rect is an axis-aligned box in degrees.
type Rect struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// CellBounds returns the box of cell (x, y) in a width x height grid over
// the globe. Row 0 is the northernmost row. Neighbouring cells compute their
// shared edge with the same expression, so the edges are bit-identical.
func CellBounds(x, y, width, height int) Rect {
	return Rect{
		MinX: -180.0 + 360.0*float64(x)/float64(width),
		MaxY: 90.0 - 180.0*float64(y)/float64(height),
		MaxX: -180.0 + 360.0*float64(x+1)/float64(width),
		MinY: 90.0 - 180.0*float64(y+1)/float64(height),
	}
}

// Overlaps reports whether the interiors of both boxes intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.MinX < o.MaxX && o.MinX < r.MaxX &&
		r.MinY < o.MaxY && o.MinY < r.MaxY
}

// Ring returns the corners as a closed ring, starting at the lower left
// corner and going up first.
func (r Rect) Ring() [][]float64 {
	return [][]float64{
		{r.MinX, r.MinY},
		{r.MinX, r.MaxY},
		{r.MaxX, r.MaxY},
		{r.MaxX, r.MinY},
		{r.MinX, r.MinY},
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%v %v, %v %v]", r.MinX, r.MinY, r.MaxX, r.MaxY)
}
