package raster

import (
	"errors"
	"log"

	"github.com/rubenv/countryraster/fixed"
)

// Area is the part of a region that falls within a cell.
type Area struct {
	ID      string
	Polygon fixed.Polygon
}

// Cell lists the regions covering a cell completely and the clipped
// geometry of the regions that cover it partially.
type Cell struct {
	Containing []string
	Partial    []Area
}

// classify computes the cell at (x, y). It only reads the index and the
// regions, so cells can be classified concurrently.
func classify(index Index, x, y, width, height int) (*Cell, error) {
	bounds := CellBounds(x, y, width, height)
	cell := &Cell{
		Containing: []string{},
		Partial:    []Area{},
	}

	for _, region := range index.Query(bounds) {
		rel, err := region.Shape.Relate(bounds)
		if err != nil {
			return nil, err
		}

		switch rel {
		case Covers:
			cell.Containing = append(cell.Containing, region.ID)
		case Intersects:
			polygons, err := region.Shape.Clip(bounds)
			if errors.Is(err, ErrNotPolygonal) {
				log.Printf("Skipping %s in cell %d,%d: %s", region.ID, x, y, err)
				continue
			}
			if err != nil {
				return nil, err
			}

			polygon, err := encodeClip(polygons)
			if err != nil {
				return nil, err
			}
			if len(polygon.Outer) == 0 {
				log.Printf("Skipping %s in cell %d,%d: collapsed when encoding", region.ID, x, y)
				continue
			}
			cell.Partial = append(cell.Partial, Area{
				ID:      region.ID,
				Polygon: polygon,
			})
		}
	}

	return cell, nil
}

// encodeClip flattens the clipped polygons into one list of outer rings and
// one list of holes, in fixed-point units and normalized.
func encodeClip(polygons [][][][]float64) (fixed.Polygon, error) {
	out := fixed.Polygon{
		Outer: []fixed.Ring{},
		Inner: []fixed.Ring{},
	}
	for _, polygon := range polygons {
		for i, coords := range polygon {
			ring, err := fixed.EncodeRing(coords)
			if err != nil {
				return out, err
			}
			if len(ring) < 3 {
				if i == 0 {
					break
				}
				continue
			}
			if i == 0 {
				out.Outer = append(out.Outer, ring)
			} else {
				out.Inner = append(out.Inner, ring)
			}
		}
	}
	return out.Normalize(), nil
}
