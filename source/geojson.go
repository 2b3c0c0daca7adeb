package source

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	geojson "github.com/paulmach/go.geojson"
)

func LoadGeoJSON(filename string, opts Options) ([]*Feature, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	log.Printf("Parsing %s", filename)
	return ReadGeoJSON(f, opts)
}

func ReadGeoJSON(r io.Reader, opts Options) ([]*Feature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	features := make([]*Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		id := featureID(f, opts.IDProperty)
		if id == "" {
			continue
		}
		if f.Geometry == nil {
			continue
		}

		polygons := geometryPolygons(f.Geometry)
		if len(polygons) == 0 {
			log.Printf("Skipping %s: %s is not polygonal", id, f.Geometry.Type)
			continue
		}

		features = append(features, &Feature{
			ID:       id,
			Polygons: polygons,
		})
	}
	return features, nil
}

func featureID(f *geojson.Feature, property string) string {
	if property != "" {
		if v, ok := f.Properties[property]; ok {
			if id := idString(v); id != "" {
				return id
			}
		}
	}
	return idString(f.ID)
}

func idString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func geometryPolygons(g *geojson.Geometry) [][][][]float64 {
	switch g.Type {
	case geojson.GeometryPolygon:
		return [][][][]float64{g.Polygon}
	case geojson.GeometryMultiPolygon:
		return g.MultiPolygon
	case geojson.GeometryCollection:
		out := make([][][][]float64, 0)
		for _, child := range g.Geometries {
			out = append(out, geometryPolygons(child)...)
		}
		return out
	}
	return nil
}

// WriteGeoJSON writes the features as a FeatureCollection of MultiPolygons.
func WriteGeoJSON(w io.Writer, features []*Feature) error {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		out := geojson.NewMultiPolygonFeature(f.Polygons...)
		out.ID = f.ID
		out.SetProperty("id", f.ID)
		fc.AddFeature(out)
	}

	b, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
