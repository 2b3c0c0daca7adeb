package source

import (
	geo "github.com/paulmach/go.geo"
	"github.com/paulmach/go.geo/reducers"
)

// simplifyPolygons reduces the rings with Visvalingam's algorithm. Rings
// that collapse are dropped, as are polygons whose outer ring collapses.
func simplifyPolygons(polygons [][][][]float64, threshold float64) [][][][]float64 {
	out := make([][][][]float64, 0, len(polygons))
	for _, polygon := range polygons {
		rings := make([][][]float64, 0, len(polygon))
		for i, ring := range polygon {
			simplified := simplifyRing(ring, threshold)
			if len(simplified) < 4 {
				if i == 0 {
					break
				}
				continue
			}
			rings = append(rings, simplified)
		}
		if len(rings) > 0 {
			out = append(out, rings)
		}
	}
	return out
}

func simplifyRing(ring [][]float64, threshold float64) [][]float64 {
	path := geo.NewPathPreallocate(len(ring), len(ring))
	for i, p := range ring {
		path.SetAt(i, &geo.Point{p[0], p[1]})
	}
	simplified := reducers.VisvalingamThreshold(path, threshold)

	length := simplified.Length()
	points := make([][]float64, 0, length)
	for j := 0; j < length; j++ {
		point := simplified.GetAt(j)
		points = append(points, []float64{point[0], point[1]})
	}
	return points
}
