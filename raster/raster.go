package raster

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/rubenv/countryraster/fixed"
)

var (
	ErrWrite  = errors.New("Failed to write raster")
	ErrFormat = errors.New("Invalid raster data")
)

// Raster is the generated grid. Cells are stored row-major, starting at the
// north west corner.
type Raster struct {
	Width  int
	Height int
	Cells  []*Cell
	Areas  map[string]float64
}

func (r *Raster) Cell(x, y int) *Cell {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return nil
	}
	return r.Cells[x+y*r.Width]
}

// WriteTo serializes the raster. All numbers are big-endian:
//
//	width, height                 uint32
//	area count                    uint32
//	  id, area                    string, float64 (sorted by id)
//	cells, row-major:
//	  containing count            uint32
//	    id                        string
//	  partial count               uint32
//	    id                        string
//	    outer ring count          uint32
//	      point count             uint32
//	        x, y                  int32
//	    inner ring count          uint32
//	      (as outer rings)
//
// Strings are a uint16 byte length followed by UTF-8 bytes.
func (r *Raster) WriteTo(w io.Writer) (int64, error) {
	if len(r.Cells) != r.Width*r.Height {
		return 0, fmt.Errorf("%w: %d cells for a %dx%d raster", ErrWrite, len(r.Cells), r.Width, r.Height)
	}
	for i, cell := range r.Cells {
		if cell == nil {
			return 0, fmt.Errorf("%w: cell %d,%d missing", ErrWrite, i%r.Width, i/r.Width)
		}
	}

	e := &encoder{w: bufio.NewWriter(w)}
	e.u32(r.Width)
	e.u32(r.Height)

	ids := make([]string, 0, len(r.Areas))
	for id := range r.Areas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	e.u32(len(ids))
	for _, id := range ids {
		e.str(id)
		e.f64(r.Areas[id])
	}

	for _, cell := range r.Cells {

		e.u32(len(cell.Containing))
		for _, id := range cell.Containing {
			e.str(id)
		}

		e.u32(len(cell.Partial))
		for _, area := range cell.Partial {
			e.str(area.ID)
			e.rings(area.Polygon.Outer)
			e.rings(area.Polygon.Inner)
		}
	}

	if e.err == nil {
		e.err = e.w.Flush()
	}
	if e.err != nil {
		if errors.Is(e.err, ErrWrite) {
			return e.n, e.err
		}
		return e.n, fmt.Errorf("%w: %s", ErrWrite, e.err)
	}
	return e.n, nil
}

type encoder struct {
	w   *bufio.Writer
	n   int64
	err error
	buf [8]byte
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	n, err := e.w.Write(b)
	e.n += int64(n)
	e.err = err
}

func (e *encoder) u32(v int) {
	if v < 0 || int64(v) > math.MaxUint32 {
		e.fail(fmt.Errorf("%w: count %d out of range", ErrWrite, v))
		return
	}
	binary.BigEndian.PutUint32(e.buf[:4], uint32(v))
	e.write(e.buf[:4])
}

func (e *encoder) i32(v int32) {
	binary.BigEndian.PutUint32(e.buf[:4], uint32(v))
	e.write(e.buf[:4])
}

func (e *encoder) f64(v float64) {
	binary.BigEndian.PutUint64(e.buf[:8], math.Float64bits(v))
	e.write(e.buf[:8])
}

func (e *encoder) str(s string) {
	if len(s) > math.MaxUint16 {
		e.fail(fmt.Errorf("%w: id too long: %d bytes", ErrWrite, len(s)))
		return
	}
	binary.BigEndian.PutUint16(e.buf[:2], uint16(len(s)))
	e.write(e.buf[:2])
	e.write([]byte(s))
}

func (e *encoder) rings(rings []fixed.Ring) {
	e.u32(len(rings))
	for _, ring := range rings {
		e.u32(len(ring))
		for _, p := range ring {
			e.i32(p.X)
			e.i32(p.Y)
		}
	}
}

func (e *encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}
