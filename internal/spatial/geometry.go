package spatial

import (
	"math"

	"github.com/golang/geo/s2"
	"gonum.org/v1/gonum/stat"
)

// Point is a location in decimal degrees
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WeightedCentroid returns the weighted mean position. Missing weights count
// as 1; when the weights sum to zero every point counts equally.
func WeightedCentroid(points []Point, weights []float64) Point {
	if len(points) == 0 {
		return Point{}
	}

	lats := make([]float64, len(points))
	lons := make([]float64, len(points))
	w := make([]float64, len(points))
	var total float64
	for i, p := range points {
		lats[i], lons[i] = p.Lat, p.Lon
		w[i] = 1
		if i < len(weights) {
			w[i] = weights[i]
		}
		total += w[i]
	}
	if total == 0 || math.IsNaN(total) {
		w = nil
	}

	return Point{Lat: stat.Mean(lats, w), Lon: stat.Mean(lons, w)}
}

// BoundingBox returns (minLat, minLon, maxLat, maxLon) of the points
func BoundingBox(points []Point) (float64, float64, float64, float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}

	rect := s2.EmptyRect()
	for _, p := range points {
		rect = rect.AddPoint(s2.LatLngFromDegrees(p.Lat, p.Lon))
	}
	lo, hi := rect.Lo(), rect.Hi()
	return lo.Lat.Degrees(), lo.Lng.Degrees(), hi.Lat.Degrees(), hi.Lng.Degrees()
}
