package source

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/rubenv/countryraster/simplify"
)

type objectScanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

// LoadOSM reads an .osm (XML) or .pbf extract.
func LoadOSM(filename string, opts Options) ([]*Feature, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	log.Printf("Parsing %s", filename)
	ctx := context.Background()
	if strings.HasSuffix(strings.ToLower(filename), ".pbf") {
		return scanOSM(osmpbf.New(ctx, f, runtime.NumCPU()), opts)
	}
	return ReadOSM(ctx, f, opts)
}

// ReadOSM reads closed ways and multipolygon relations tagged with one of
// the id tags from OSM XML.
func ReadOSM(ctx context.Context, r io.Reader, opts Options) ([]*Feature, error) {
	return scanOSM(osmxml.New(ctx, r), opts)
}

func scanOSM(scanner objectScanner, opts Options) ([]*Feature, error) {
	nodes := make(map[osm.NodeID][]float64)
	ways := make(map[osm.WayID][]osm.NodeID)
	tagged := make([]*osm.Way, 0)
	relations := make([]*osm.Relation, 0)

	defer scanner.Close()

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			nodes[o.ID] = []float64{o.Lon, o.Lat}
		case *osm.Way:
			ids := make([]osm.NodeID, len(o.Nodes))
			for i, n := range o.Nodes {
				ids[i] = n.ID
			}
			ways[o.ID] = ids
			if tagID(o.Tags, opts.IDTags) != "" {
				tagged = append(tagged, o)
			}
		case *osm.Relation:
			if tagID(o.Tags, opts.IDTags) != "" {
				relations = append(relations, o)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	features := make([]*Feature, 0, len(tagged)+len(relations))
	for _, w := range tagged {
		id := tagID(w.Tags, opts.IDTags)
		rings, open := simplify.Rings([][]osm.NodeID{ways[w.ID]})
		if len(open) > 0 {
			log.Printf("Skipping way %d (%s): not closed", w.ID, id)
			continue
		}

		outer, err := resolveRings(rings, nodes)
		if err != nil {
			log.Printf("Skipping way %d (%s): %s", w.ID, id, err)
			continue
		}

		polygons, err := makePolygons(outer, nil)
		if err != nil {
			return nil, err
		}
		features = append(features, &Feature{ID: id, Polygons: polygons})
	}

	for _, rel := range relations {
		id := tagID(rel.Tags, opts.IDTags)
		polygons, err := relationPolygons(rel, ways, nodes)
		if err != nil {
			log.Printf("Skipping relation %d (%s): %s", rel.ID, id, err)
			continue
		}
		features = append(features, &Feature{ID: id, Polygons: polygons})
	}

	return features, nil
}

func relationPolygons(rel *osm.Relation, ways map[osm.WayID][]osm.NodeID, nodes map[osm.NodeID][]float64) ([][][][]float64, error) {
	outerWays := make([][]osm.NodeID, 0)
	innerWays := make([][]osm.NodeID, 0)
	for _, m := range rel.Members {
		if m.Type != osm.TypeWay {
			continue
		}

		way, ok := ways[osm.WayID(m.Ref)]
		if !ok {
			return nil, fmt.Errorf("Missing way %d", m.Ref)
		}

		// Copy, joining rewrites the slices
		way = append([]osm.NodeID(nil), way...)
		switch m.Role {
		case "outer", "":
			outerWays = append(outerWays, way)
		case "inner":
			innerWays = append(innerWays, way)
		}
	}

	outerRings, open := simplify.Rings(outerWays)
	if len(open) > 0 {
		return nil, fmt.Errorf("%d unclosed outer rings", len(open))
	}
	innerRings, open := simplify.Rings(innerWays)
	if len(open) > 0 {
		return nil, fmt.Errorf("%d unclosed inner rings", len(open))
	}
	if len(outerRings) == 0 {
		return nil, fmt.Errorf("No outer rings")
	}

	outer, err := resolveRings(outerRings, nodes)
	if err != nil {
		return nil, err
	}
	inner, err := resolveRings(innerRings, nodes)
	if err != nil {
		return nil, err
	}

	return makePolygons(outer, inner)
}

func resolveRings(rings [][]osm.NodeID, nodes map[osm.NodeID][]float64) ([][][]float64, error) {
	out := make([][][]float64, 0, len(rings))
	for _, ring := range rings {
		coords := make([][]float64, len(ring))
		for i, id := range ring {
			c, ok := nodes[id]
			if !ok {
				return nil, fmt.Errorf("Missing node %d", id)
			}
			coords[i] = c
		}
		out = append(out, coords)
	}
	return out, nil
}

func tagID(tags osm.Tags, keys []string) string {
	for _, k := range keys {
		if v := tags.Find(k); v != "" {
			return v
		}
	}
	return ""
}
