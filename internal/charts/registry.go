package charts

import (
	"errors"
	"fmt"

	"github.com/jengzang/ev-dashboard-go/internal/dataset"
)

var (
	// ErrUnknownTab is returned for a tab without charts
	ErrUnknownTab = errors.New("unknown tab")
	// ErrUnknownChart is returned for a chart id not on the tab
	ErrUnknownChart = errors.New("unknown chart")
)

// Tab names
const (
	TabTrends      = "trends"
	TabGeography   = "geography"
	TabPerformance = "performance"
	TabData        = "data"
)

// Builder produces one chart of a tab
type Builder struct {
	ID    string
	Build func(*dataset.View) Spec
}

// Tab is a titled group of charts
type Tab struct {
	Name     string
	Title    string
	Builders []Builder
}

// Tabs lists the dashboard tabs in display order. The data tab has no charts.
var Tabs = []Tab{
	{Name: TabTrends, Title: "Market Trends", Builders: []Builder{
		{ID: "top-manufacturers", Build: TopManufacturers},
		{ID: "adoption-timeline", Build: AdoptionTimeline},
		{ID: "ev-type-distribution", Build: TypeDistribution},
	}},
	{Name: TabGeography, Title: "Geographic Analysis", Builders: []Builder{
		{ID: "top-counties", Build: TopCounties},
		{ID: "top-cities", Build: TopCities},
		{ID: "density-map", Build: DensityMap},
	}},
	{Name: TabPerformance, Title: "Performance Metrics", Builders: []Builder{
		{ID: "range-histogram", Build: RangeHistogram},
		{ID: "price-box", Build: PriceBox},
		{ID: "range-vs-price", Build: RangeVsPrice},
	}},
	{Name: TabData, Title: "Raw Data"},
}

// FindTab returns the tab with the given name
func FindTab(name string) (Tab, bool) {
	for _, t := range Tabs {
		if t.Name == name {
			return t, true
		}
	}
	return Tab{}, false
}

// BuildTab builds every chart of a tab
func BuildTab(name string, v *dataset.View) ([]Spec, error) {
	tab, ok := FindTab(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTab, name)
	}

	specs := make([]Spec, 0, len(tab.Builders))
	for _, b := range tab.Builders {
		specs = append(specs, b.Build(v))
	}
	return specs, nil
}

// Build builds a single chart of a tab
func Build(tabName, chartID string, v *dataset.View) (Spec, error) {
	tab, ok := FindTab(tabName)
	if !ok {
		return Spec{}, fmt.Errorf("%w: %s", ErrUnknownTab, tabName)
	}
	for _, b := range tab.Builders {
		if b.ID == chartID {
			return b.Build(v), nil
		}
	}
	return Spec{}, fmt.Errorf("%w: %s/%s", ErrUnknownChart, tabName, chartID)
}
