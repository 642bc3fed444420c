// Package charts builds renderer-independent chart specifications from a
// filtered view. Builders are pure: they read the view and allocate new
// projections, and they return a spec flagged Empty instead of failing when
// the view has no rows.
package charts

import (
	"github.com/jengzang/ev-dashboard-go/internal/models"
	"github.com/jengzang/ev-dashboard-go/internal/spatial"
	"github.com/jengzang/ev-dashboard-go/internal/stats"
)

// Kind is the visual form of a chart
type Kind string

// Chart kinds
const (
	KindBar       Kind = "bar"
	KindArea      Kind = "area"
	KindPie       Kind = "pie"
	KindHistogram Kind = "histogram"
	KindBox       Kind = "box"
	KindScatter   Kind = "scatter"
	KindDensity   Kind = "density"
)

// Notices shown in place of a chart
const (
	NoticeNoData = "No data for the current filters"
	NoticeNoGeo  = "Latitude/Longitude data not available - cannot render map"
)

// Spec describes one chart. Only the fields of its Kind are populated.
type Spec struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"kind"`
	Title  string `json:"title"`
	XLabel string `json:"x_label,omitempty"`
	YLabel string `json:"y_label,omitempty"`

	// bar, area, pie
	Categories []models.ValueCount `json:"categories,omitempty"`
	Markers    bool                `json:"markers,omitempty"`
	Hole       float64             `json:"hole,omitempty"`

	// histogram
	Bins []stats.Bin `json:"bins,omitempty"`

	// box
	Box    *BoxSummary `json:"box,omitempty"`
	Values []float64   `json:"values,omitempty"`

	// scatter
	Groups []ScatterGroup `json:"groups,omitempty"`

	// density
	Heatmap *models.HeatmapResponse `json:"heatmap,omitempty"`
	MapView *spatial.MapView        `json:"map_view,omitempty"`

	Empty   bool   `json:"empty"`
	Skipped bool   `json:"skipped"`
	Notice  string `json:"notice,omitempty"`
}

// Renderable reports whether the spec carries data to draw
func (s Spec) Renderable() bool {
	return !s.Empty && !s.Skipped
}

// BoxSummary is the five-number summary of a box plot with Tukey whiskers
type BoxSummary struct {
	Min         float64 `json:"min"`
	Q1          float64 `json:"q1"`
	Median      float64 `json:"median"`
	Q3          float64 `json:"q3"`
	Max         float64 `json:"max"`
	WhiskerLow  float64 `json:"whisker_low"`  // Smallest value >= Q1 - 1.5*IQR
	WhiskerHigh float64 `json:"whisker_high"` // Largest value <= Q3 + 1.5*IQR
}

// ScatterPoint is one vehicle of a scatter chart
type ScatterPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Model string  `json:"model"`
	Year  int     `json:"year"`
}

// XY is a point of a fitted line
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScatterGroup is one colored series of a scatter chart with its trendline
type ScatterGroup struct {
	Name   string         `json:"name"`
	Points []ScatterPoint `json:"points"`
	Trend  []XY           `json:"trend,omitempty"`
}

func emptySpec(s Spec) Spec {
	s.Empty = true
	s.Notice = NoticeNoData
	return s
}
