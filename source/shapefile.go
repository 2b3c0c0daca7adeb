package source

import (
	"fmt"
	"log"
	"math"
	"reflect"
	"strings"

	"github.com/jonas-p/go-shp"
)

type shapeReader interface {
	Next() bool
	Shape() (int, shp.Shape)
	Attribute(n int) string
	Fields() []shp.Field
	Err() error
	Close() error
}

// LoadShapefile reads polygons from a .shp file, or from the first .shp
// inside a zip archive.
func LoadShapefile(filename string, opts Options) ([]*Feature, error) {
	var r shapeReader
	if strings.HasSuffix(strings.ToLower(filename), ".zip") {
		zr, err := shp.OpenZip(filename)
		if err != nil {
			return nil, err
		}
		r = zr
	} else {
		sr, err := shp.Open(filename)
		if err != nil {
			return nil, err
		}
		r = sr
	}
	defer r.Close()

	log.Printf("Parsing %s", filename)

	field := -1
	for i, f := range r.Fields() {
		if strings.EqualFold(f.String(), opts.IDProperty) {
			field = i
			break
		}
	}
	if field < 0 {
		return nil, fmt.Errorf("No attribute %q in %s", opts.IDProperty, filename)
	}

	features := make([]*Feature, 0)
	for r.Next() {
		n, p := r.Shape()
		poly, ok := p.(*shp.Polygon)
		if !ok {
			log.Printf("Skipping shape %d: %s", n, reflect.TypeOf(p).Elem())
			continue
		}

		id := strings.TrimSpace(r.Attribute(field))
		if id == "" {
			continue
		}

		polygons, err := processPolygon(poly)
		if err != nil {
			return nil, fmt.Errorf("Shape %d (%s): %w", n, id, err)
		}
		if len(polygons) == 0 {
			continue
		}

		features = append(features, &Feature{
			ID:       id,
			Polygons: polygons,
		})
	}
	if r.Err() != nil {
		return nil, r.Err()
	}
	return features, nil
}

func processPolygon(poly *shp.Polygon) ([][][][]float64, error) {
	outer := make([][][]float64, 0)
	inner := make([][][]float64, 0)

	for i, first := range poly.Parts {
		last := len(poly.Points)
		if i < len(poly.Parts)-1 {
			last = int(poly.Parts[i+1])
		}

		points := poly.Points[first:last]
		if len(points) < 3 {
			continue
		}

		ring := make([][]float64, len(points))
		for j, p := range points {
			ring[j] = []float64{p.X, p.Y}
		}
		ring = closeRing(ring)

		area := ringArea(ring)
		if area == 0 || math.IsNaN(area) {
			continue
		}

		// Outer rings are clockwise in shape files, holes
		// counter-clockwise.
		if area < 0 {
			outer = append(outer, ring)
		} else {
			inner = append(inner, ring)
		}
	}

	if len(outer) == 0 {
		return nil, nil
	}
	return makePolygons(outer, inner)
}
