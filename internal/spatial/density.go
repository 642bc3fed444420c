package spatial

import (
	"math"
	"sort"

	"github.com/golang/geo/s2"

	"github.com/jengzang/ev-dashboard-go/internal/models"
	"github.com/jengzang/ev-dashboard-go/internal/stats"
)

// DefaultCellLevel groups points into s2 cells roughly 10 km across
const DefaultCellLevel = 10

// WeightedPoint is a location contributing Weight to its density cell
type WeightedPoint struct {
	Point
	Weight float64
}

// Density bins points into s2 cells of the given level and normalizes the
// summed weights to 0-1 intensities. Cells are ordered by cell id.
func Density(points []WeightedPoint, level int, metric string) models.HeatmapResponse {
	if level < 0 || level > s2.MaxLevel {
		level = DefaultCellLevel
	}

	resp := models.HeatmapResponse{
		Points:    []models.HeatmapPoint{},
		Metric:    metric,
		CellLevel: level,
	}
	if len(points) == 0 {
		return resp
	}

	type cell struct {
		value float64
		count int
	}
	cells := make(map[s2.CellID]*cell)
	for _, p := range points {
		id := s2.CellIDFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon)).Parent(level)
		c, ok := cells[id]
		if !ok {
			c = &cell{}
			cells[id] = c
		}
		c.value += p.Weight
		c.count++
	}

	ids := make([]s2.CellID, 0, len(cells))
	for id := range cells {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	values := make([]float64, len(ids))
	for i, id := range ids {
		values[i] = cells[id].value
	}
	intensities := stats.Normalize(values)

	for i, id := range ids {
		center := id.LatLng()
		resp.Points = append(resp.Points, models.HeatmapPoint{
			Lat:       center.Lat.Degrees(),
			Lng:       center.Lng.Degrees(),
			Intensity: intensities[i],
			Value:     values[i],
			Count:     cells[id].count,
			CellID:    id.ToToken(),
		})
	}

	resp.Count = len(resp.Points)
	resp.MinValue = stats.Min(values)
	resp.MaxValue = stats.Max(values)
	return resp
}

// MapView is the initial viewport of a map chart
type MapView struct {
	Center Point   `json:"center"`
	Zoom   int     `json:"zoom"`
	SpanKM float64 `json:"span_km"` // Diagonal of the points' bounding box
}

// DefaultZoom is used when the points give no better hint
const DefaultZoom = 5

// ViewFor centers the viewport on the weighted centroid and picks a zoom
// level that fits the bounding box of the points
func ViewFor(points []WeightedPoint) MapView {
	if len(points) == 0 {
		return MapView{Zoom: DefaultZoom}
	}

	plain := make([]Point, len(points))
	weights := make([]float64, len(points))
	for i, p := range points {
		plain[i] = p.Point
		weights[i] = p.Weight
	}

	minLat, minLon, maxLat, maxLon := BoundingBox(plain)
	span := HaversineDistance(minLat, minLon, maxLat, maxLon) / 1000

	zoom := DefaultZoom
	if span > 0 {
		// Web-mercator zoom 0 spans the equator, each level halves it
		zoom = int(math.Floor(math.Log2(40075 / span)))
	} else {
		zoom = 10
	}
	if zoom < 1 {
		zoom = 1
	}
	if zoom > 12 {
		zoom = 12
	}

	return MapView{
		Center: WeightedCentroid(plain, weights),
		Zoom:   zoom,
		SpanKM: span,
	}
}
