// Package fixed stores coordinates as integers with a resolution of 1e-7
// degrees.
package fixed

import (
	"errors"
	"fmt"
	"math"
)

// Scale is the number of fixed-point units per degree.
const Scale = 10000000

const (
	MaxLon = 180 * Scale
	MaxLat = 90 * Scale
)

var ErrRange = errors.New("Coordinate out of range")

// Round converts degrees to fixed-point units, rounding half away from zero.
func Round(deg float64) (int64, error) {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0, fmt.Errorf("%w: %v", ErrRange, deg)
	}
	v := math.Round(deg * Scale)
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%w: %v", ErrRange, deg)
	}
	return int64(v), nil
}

func EncodeLon(deg float64) (int32, error) {
	return encode(deg, MaxLon)
}

func EncodeLat(deg float64) (int32, error) {
	return encode(deg, MaxLat)
}

func encode(deg float64, limit int64) (int32, error) {
	v, err := Round(deg)
	if err != nil {
		return 0, err
	}
	if v > limit || v < -limit {
		return 0, fmt.Errorf("%w: %v", ErrRange, deg)
	}
	return int32(v), nil
}

func Decode(v int32) float64 {
	return float64(v) / Scale
}

// Point is a longitude/latitude pair in fixed-point units.
type Point struct {
	X int32
	Y int32
}

func EncodePoint(lon, lat float64) (Point, error) {
	x, err := EncodeLon(lon)
	if err != nil {
		return Point{}, err
	}
	y, err := EncodeLat(lat)
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

func (p Point) Lon() float64 {
	return Decode(p.X)
}

func (p Point) Lat() float64 {
	return Decode(p.Y)
}

// Less orders points by X, then by Y.
func (p Point) Less(o Point) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	return p.Y < o.Y
}

func (p Point) String() string {
	return fmt.Sprintf("(%d %d)", p.X, p.Y)
}
