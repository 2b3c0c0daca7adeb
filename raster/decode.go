package raster

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/rubenv/countryraster/fixed"
)

// maxPrealloc bounds the capacity reserved from counts read off the wire.
const maxPrealloc = 1024

// ReadRaster decodes a raster written by Raster.WriteTo.
func ReadRaster(r io.Reader) (*Raster, error) {
	d := &decoder{r: bufio.NewReader(r)}

	width := d.u32()
	height := d.u32()
	if d.err != nil {
		return nil, d.err
	}
	if width == 0 || height == 0 || uint64(width)*uint64(height) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: bad size %dx%d", ErrFormat, width, height)
	}

	raster := &Raster{
		Width:  int(width),
		Height: int(height),
		Cells:  make([]*Cell, 0, min(int(width*height), maxPrealloc)),
		Areas:  make(map[string]float64),
	}

	n := d.u32()
	for i := uint32(0); i < n && d.err == nil; i++ {
		id := d.str()
		raster.Areas[id] = d.f64()
	}

	total := int(width) * int(height)
	for i := 0; i < total && d.err == nil; i++ {
		cell := &Cell{}

		n := d.u32()
		cell.Containing = make([]string, 0, min(int(n), maxPrealloc))
		for j := uint32(0); j < n && d.err == nil; j++ {
			cell.Containing = append(cell.Containing, d.str())
		}

		n = d.u32()
		cell.Partial = make([]Area, 0, min(int(n), maxPrealloc))
		for j := uint32(0); j < n && d.err == nil; j++ {
			area := Area{ID: d.str()}
			area.Polygon.Outer = d.rings()
			area.Polygon.Inner = d.rings()
			cell.Partial = append(cell.Partial, area)
		}

		raster.Cells = append(raster.Cells, cell)
	}
	if d.err != nil {
		return nil, d.err
	}

	for _, cell := range raster.Cells {
		for _, id := range cell.Containing {
			if _, ok := raster.Areas[id]; !ok {
				return nil, fmt.Errorf("%w: unknown region %s", ErrFormat, id)
			}
		}
		for _, area := range cell.Partial {
			if _, ok := raster.Areas[area.ID]; !ok {
				return nil, fmt.Errorf("%w: unknown region %s", ErrFormat, area.ID)
			}
		}
	}

	return raster, nil
}

type decoder struct {
	r   *bufio.Reader
	err error
	buf [8]byte
}

func (d *decoder) read(n int) []byte {
	if d.err != nil {
		return d.buf[:n]
	}
	_, err := io.ReadFull(d.r, d.buf[:n])
	if err != nil {
		d.err = fmt.Errorf("%w: %s", ErrFormat, err)
	}
	return d.buf[:n]
}

func (d *decoder) u32() uint32 {
	return binary.BigEndian.Uint32(d.read(4))
}

func (d *decoder) i32() int32 {
	return int32(binary.BigEndian.Uint32(d.read(4)))
}

func (d *decoder) f64() float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(d.read(8)))
}

func (d *decoder) str() string {
	n := int(binary.BigEndian.Uint16(d.read(2)))
	if d.err != nil {
		return ""
	}
	b := make([]byte, n)
	_, err := io.ReadFull(d.r, b)
	if err != nil {
		d.err = fmt.Errorf("%w: %s", ErrFormat, err)
		return ""
	}
	return string(b)
}

func (d *decoder) rings() []fixed.Ring {
	n := d.u32()
	rings := make([]fixed.Ring, 0, min(int(n), maxPrealloc))
	for i := uint32(0); i < n && d.err == nil; i++ {
		count := d.u32()
		ring := make(fixed.Ring, 0, min(int(count), maxPrealloc))
		for j := uint32(0); j < count && d.err == nil; j++ {
			x := d.i32()
			y := d.i32()
			ring = append(ring, fixed.Point{X: x, Y: y})
		}
		rings = append(rings, ring)
	}
	return rings
}
