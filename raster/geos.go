package raster

import (
	"github.com/paulsmith/gogeos/geos"
	"github.com/rubenv/countryraster/fixed"
)

// GeosShape implements Shape on top of GEOS. Calls into GEOS are serialized
// by gogeos, prepared predicates keep the per cell tests cheap.
type GeosShape struct {
	geom     *geos.Geometry
	prepared *geos.PGeometry
	area     float64
}

func NewGeosShape(polygons []fixed.Polygon) (*GeosShape, error) {
	parts := make([]*geos.Geometry, 0, len(polygons))
	for _, p := range polygons {
		for i, outer := range p.Outer {
			holes := [][]geos.Coord{}
			if i == 0 {
				for _, inner := range p.Inner {
					holes = append(holes, toCoords(inner.Coords()))
				}
			}

			polygon, err := geos.NewPolygon(toCoords(outer.Coords()), holes...)
			if err != nil {
				return nil, err
			}
			parts = append(parts, polygon)
		}
	}

	var geom *geos.Geometry
	if len(parts) == 1 {
		geom = parts[0]
	} else {
		g, err := geos.NewCollection(geos.MULTIPOLYGON, parts...)
		if err != nil {
			return nil, err
		}
		geom = g
	}

	area, err := geom.Area()
	if err != nil {
		return nil, err
	}

	return &GeosShape{
		geom:     geom,
		prepared: geos.PrepareGeometry(geom),
		area:     area,
	}, nil
}

func (s *GeosShape) Relate(cell Rect) (Relation, error) {
	box, err := rectGeometry(cell)
	if err != nil {
		return Disjoint, err
	}

	covers, err := s.prepared.Covers(box)
	if err != nil {
		return Disjoint, err
	}
	if covers {
		return Covers, nil
	}

	disjoint, err := s.prepared.Disjoint(box)
	if err != nil {
		return Disjoint, err
	}
	if disjoint {
		return Disjoint, nil
	}

	touches, err := s.prepared.Touches(box)
	if err != nil {
		return Disjoint, err
	}
	if touches {
		return Disjoint, nil
	}

	return Intersects, nil
}

func (s *GeosShape) Clip(cell Rect) ([][][][]float64, error) {
	box, err := rectGeometry(cell)
	if err != nil {
		return nil, err
	}

	clipped, err := s.geom.Intersection(box)
	if err != nil {
		return nil, err
	}

	polygons := make([][][][]float64, 0, 1)
	err = collectPolygons(clipped, &polygons)
	if err != nil {
		return nil, err
	}
	if len(polygons) == 0 {
		return nil, ErrNotPolygonal
	}
	return polygons, nil
}

func (s *GeosShape) Area() (float64, error) {
	return s.area, nil
}

// inputArea sums the area of the polygons as given, before they are
// rounded to fixed point and merged.
func inputArea(polygons [][][][]float64) (float64, error) {
	total := 0.0
	for _, polygon := range polygons {
		if len(polygon) == 0 {
			continue
		}
		outer := closed(polygon[0])
		if len(outer) < 4 {
			continue
		}

		holes := make([][]geos.Coord, 0, len(polygon)-1)
		for _, inner := range polygon[1:] {
			inner = closed(inner)
			if len(inner) < 4 {
				continue
			}
			holes = append(holes, toCoords(inner))
		}

		g, err := geos.NewPolygon(toCoords(outer), holes...)
		if err != nil {
			return 0, err
		}
		area, err := g.Area()
		if err != nil {
			return 0, err
		}
		total += area
	}
	return total, nil
}

func closed(ring [][]float64) [][]float64 {
	if len(ring) == 0 {
		return ring
	}
	first, last := ring[0], ring[len(ring)-1]
	if first[0] == last[0] && first[1] == last[1] {
		return ring
	}
	out := make([][]float64, 0, len(ring)+1)
	out = append(out, ring...)
	return append(out, first)
}

// collectPolygons walks (multi)polygons and collections, skipping the line
// and point parts GEOS produces for tangent boundaries.
func collectPolygons(geom *geos.Geometry, out *[][][][]float64) error {
	empty, err := geom.IsEmpty()
	if err != nil {
		return err
	}
	if empty {
		return nil
	}

	t, err := geom.Type()
	if err != nil {
		return err
	}

	switch t {
	case geos.POLYGON:
		rings, err := polygonRings(geom)
		if err != nil {
			return err
		}
		*out = append(*out, rings)
	case geos.MULTIPOLYGON, geos.GEOMETRYCOLLECTION:
		n, err := geom.NGeometry()
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			g, err := geom.Geometry(i)
			if err != nil {
				return err
			}
			err = collectPolygons(g, out)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func polygonRings(geom *geos.Geometry) ([][][]float64, error) {
	shell, err := geom.Shell()
	if err != nil {
		return nil, err
	}
	c, err := fromCoords(shell)
	if err != nil {
		return nil, err
	}

	holes, err := geom.Holes()
	if err != nil {
		return nil, err
	}

	rings := make([][][]float64, len(holes)+1)
	rings[0] = c
	for i, h := range holes {
		c, err := fromCoords(h)
		if err != nil {
			return nil, err
		}
		rings[i+1] = c
	}
	return rings, nil
}

func fromCoords(ring *geos.Geometry) ([][]float64, error) {
	coords, err := ring.Coords()
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(coords))
	for i, c := range coords {
		out[i] = []float64{c.X, c.Y}
	}
	return out, nil
}

func toCoords(ring [][]float64) []geos.Coord {
	out := make([]geos.Coord, len(ring))
	for i, c := range ring {
		out[i] = geos.NewCoord(c[0], c[1])
	}
	return out
}

func rectGeometry(r Rect) (*geos.Geometry, error) {
	return geos.NewPolygon(toCoords(r.Ring()))
}
