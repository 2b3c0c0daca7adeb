package raster

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/cheekybits/is"
	"github.com/rubenv/countryraster/fixed"
)

type failingWriter struct{}

func (failingWriter) Write(b []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRasterRoundTrip(t *testing.T) {
	is := is.New(t)

	r, err := NewGenerator(testRegions()).Run(8, 4)
	is.NoErr(err)

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	is.NoErr(err)
	is.Equal(n, int64(buf.Len()))

	decoded, err := ReadRaster(bytes.NewReader(buf.Bytes()))
	is.NoErr(err)
	is.Equal(decoded, r)
}

func TestRasterLayout(t *testing.T) {
	is := is.New(t)

	r := &Raster{
		Width:  1,
		Height: 1,
		Cells: []*Cell{{
			Containing: []string{},
			Partial: []Area{{
				ID: "NL",
				Polygon: fixed.Polygon{
					Outer: []fixed.Ring{{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: -6}}},
					Inner: []fixed.Ring{},
				},
			}},
		}},
		Areas: map[string]float64{"NL": 0.5},
	}

	var buf bytes.Buffer
	_, err := r.WriteTo(&buf)
	is.NoErr(err)

	var expected bytes.Buffer
	for _, v := range []interface{}{
		uint32(1), uint32(1),
		uint32(1), uint16(2), []byte("NL"), float64(0.5),
		uint32(0),
		uint32(1), uint16(2), []byte("NL"),
		uint32(1), uint32(3), int32(1), int32(2), int32(3), int32(4), int32(5), int32(-6),
		uint32(0),
	} {
		is.NoErr(binary.Write(&expected, binary.BigEndian, v))
	}
	is.Equal(buf.Bytes(), expected.Bytes())
}

func TestRasterAreasSorted(t *testing.T) {
	is := is.New(t)

	write := func() []byte {
		r := &Raster{
			Width:  1,
			Height: 1,
			Cells:  []*Cell{{Containing: []string{}, Partial: []Area{}}},
			Areas:  map[string]float64{"DE": 1, "AT": 2, "NL": 3, "BE": 4},
		}
		var buf bytes.Buffer
		_, err := r.WriteTo(&buf)
		is.NoErr(err)
		return buf.Bytes()
	}

	first := write()
	for i := 0; i < 10; i++ {
		is.Equal(write(), first)
	}

	decoded, err := ReadRaster(bytes.NewReader(first))
	is.NoErr(err)
	is.Equal(len(decoded.Areas), 4)
	is.Equal(decoded.Areas["AT"], 2.0)
}

func TestWriteFailure(t *testing.T) {
	is := is.New(t)

	r, err := NewGenerator(testRegions()).Run(4, 2)
	is.NoErr(err)

	_, err = r.WriteTo(failingWriter{})
	is.True(errors.Is(err, ErrWrite))
}

func TestWriteMissingCell(t *testing.T) {
	is := is.New(t)

	r, err := NewGenerator(testRegions()).Run(4, 2)
	is.NoErr(err)
	r.Cells[5] = nil

	var buf bytes.Buffer
	_, err = r.WriteTo(&buf)
	is.True(errors.Is(err, ErrWrite))
	is.Equal(buf.Len(), 0)
}

func TestReadTruncated(t *testing.T) {
	is := is.New(t)

	r, err := NewGenerator(testRegions()).Run(4, 2)
	is.NoErr(err)

	var buf bytes.Buffer
	_, err = r.WriteTo(&buf)
	is.NoErr(err)

	data := buf.Bytes()
	_, err = ReadRaster(bytes.NewReader(data[:len(data)-3]))
	is.True(errors.Is(err, ErrFormat))

	_, err = ReadRaster(bytes.NewReader(nil))
	is.True(errors.Is(err, ErrFormat))
}

func TestReadUnknownRegion(t *testing.T) {
	is := is.New(t)

	r := &Raster{
		Width:  1,
		Height: 1,
		Cells:  []*Cell{{Containing: []string{"XX"}, Partial: []Area{}}},
		Areas:  map[string]float64{},
	}
	var buf bytes.Buffer
	_, err := r.WriteTo(&buf)
	is.NoErr(err)

	_, err = ReadRaster(&buf)
	is.True(errors.Is(err, ErrFormat))
}
