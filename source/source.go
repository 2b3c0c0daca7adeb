// Package source reads named boundary polygons from GeoJSON, ESRI shape
// files and OSM extracts.
package source

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/rubenv/countryraster/raster"
)

// Feature is one named boundary. Every polygon is a list of closed
// [lon, lat] rings, outer ring first.
type Feature struct {
	ID       string
	Polygons [][][][]float64
}

type Options struct {
	// Attribute holding the id in GeoJSON and shape files. GeoJSON falls
	// back to the feature id.
	IDProperty string

	// OSM tags holding the id, first match wins.
	IDTags []string

	// Features with these ids are dropped.
	Exclude []string

	// Visvalingam threshold in square degrees, zero disables.
	Simplify float64
}

var DefaultExclude = []string{"FX", "EU"}

func DefaultOptions() Options {
	return Options{
		IDProperty: "id",
		IDTags:     []string{"ISO3166-1:alpha2", "ISO3166-2"},
		Exclude:    DefaultExclude,
	}
}

// Load reads a boundary file, picking the format from the extension.
func Load(filename string, opts Options) ([]*Feature, error) {
	var features []*Feature
	var err error

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json", ".geojson":
		features, err = LoadGeoJSON(filename, opts)
	case ".shp", ".zip":
		features, err = LoadShapefile(filename, opts)
	case ".osm", ".pbf":
		features, err = LoadOSM(filename, opts)
	default:
		return nil, fmt.Errorf("Unsupported file type: %s", ext)
	}
	if err != nil {
		return nil, err
	}

	features = Filter(features, opts.Exclude)
	if opts.Simplify > 0 {
		for _, f := range features {
			f.Polygons = simplifyPolygons(f.Polygons, opts.Simplify)
		}
	}
	return features, nil
}

// Filter drops features without id or with an excluded id.
func Filter(features []*Feature, exclude []string) []*Feature {
	skip := make(map[string]bool)
	for _, id := range exclude {
		skip[id] = true
	}

	out := make([]*Feature, 0, len(features))
	for _, f := range features {
		if f.ID == "" || skip[f.ID] {
			continue
		}
		if len(f.Polygons) == 0 {
			log.Printf("Skipping %s: no polygons", f.ID)
			continue
		}
		out = append(out, f)
	}
	return out
}

// Regions groups the features by id and builds one region per id, in order
// of first appearance.
func Regions(features []*Feature) ([]*raster.Region, error) {
	order := make([]string, 0)
	polygons := make(map[string][][][][]float64)
	for _, f := range features {
		if _, ok := polygons[f.ID]; !ok {
			order = append(order, f.ID)
		}
		polygons[f.ID] = append(polygons[f.ID], f.Polygons...)
	}

	regions := make([]*raster.Region, 0, len(order))
	for _, id := range order {
		region, err := raster.NewRegion(id, polygons[id])
		if err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}
	return regions, nil
}

// FromRegions converts merged regions back into features, one polygon per
// outer ring.
func FromRegions(regions []*raster.Region) []*Feature {
	features := make([]*Feature, 0, len(regions))
	for _, region := range regions {
		polygons := make([][][][]float64, 0, len(region.Polygons))
		for _, p := range region.Polygons {
			for i, outer := range p.Outer {
				polygon := [][][]float64{outer.Coords()}
				if i == 0 {
					for _, inner := range p.Inner {
						polygon = append(polygon, inner.Coords())
					}
				}
				polygons = append(polygons, polygon)
			}
		}
		features = append(features, &Feature{ID: region.ID, Polygons: polygons})
	}
	return features
}
