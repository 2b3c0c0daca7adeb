package source

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cheekybits/is"
)

const testCollection = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "id": "AA",
      "properties": {},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 1], [0, 0]]]
      }
    },
    {
      "type": "Feature",
      "id": "ignored",
      "properties": {"id": "BB"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [
          [[[2, 0], [3, 0], [3, 1], [2, 1], [2, 0]]],
          [[[4, 0], [5, 0], [5, 1], [4, 1], [4, 0]]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {"id": "CC"},
      "geometry": {
        "type": "GeometryCollection",
        "geometries": [
          {"type": "Point", "coordinates": [7, 7]},
          {"type": "Polygon", "coordinates": [[[6, 0], [7, 0], [7, 1], [6, 1], [6, 0]]]}
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {"id": "DD"},
      "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}
    },
    {
      "type": "Feature",
      "properties": {"name": "Nowhere"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 0]]]
      }
    }
  ]
}`

func TestReadGeoJSON(t *testing.T) {
	is := is.New(t)

	features, err := ReadGeoJSON(strings.NewReader(testCollection), DefaultOptions())
	is.NoErr(err)
	is.Equal(len(features), 3)

	is.Equal(features[0].ID, "AA")
	is.Equal(len(features[0].Polygons), 1)
	is.Equal(features[0].Polygons[0][0][2], []float64{1, 1})

	is.Equal(features[1].ID, "BB")
	is.Equal(len(features[1].Polygons), 2)

	is.Equal(features[2].ID, "CC")
	is.Equal(len(features[2].Polygons), 1)
	is.Equal(features[2].Polygons[0][0][0], []float64{6, 0})
}

func TestReadGeoJSONProperty(t *testing.T) {
	is := is.New(t)

	opts := DefaultOptions()
	opts.IDProperty = "iso"
	in := `{"type": "FeatureCollection", "features": [{
		"type": "Feature",
		"id": 17,
		"properties": {"iso": "NL"},
		"geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 0]]]}
	}, {
		"type": "Feature",
		"id": 18,
		"properties": {},
		"geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 0]]]}
	}]}`

	features, err := ReadGeoJSON(strings.NewReader(in), opts)
	is.NoErr(err)
	is.Equal(len(features), 2)
	is.Equal(features[0].ID, "NL")
	is.Equal(features[1].ID, "18")
}

func TestReadGeoJSONInvalid(t *testing.T) {
	is := is.New(t)

	_, err := ReadGeoJSON(strings.NewReader(`{"type": `), DefaultOptions())
	is.Err(err)
}

func TestWriteGeoJSON(t *testing.T) {
	is := is.New(t)

	features, err := ReadGeoJSON(strings.NewReader(testCollection), DefaultOptions())
	is.NoErr(err)

	var buf bytes.Buffer
	err = WriteGeoJSON(&buf, features)
	is.NoErr(err)

	again, err := ReadGeoJSON(&buf, DefaultOptions())
	is.NoErr(err)
	is.Equal(len(again), len(features))
	for i, f := range again {
		is.Equal(f.ID, features[i].ID)
		is.Equal(f.Polygons, features[i].Polygons)
	}
}
