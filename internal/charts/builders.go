package charts

import (
	"sort"

	"github.com/jengzang/ev-dashboard-go/internal/dataset"
	"github.com/jengzang/ev-dashboard-go/internal/models"
	"github.com/jengzang/ev-dashboard-go/internal/spatial"
	"github.com/jengzang/ev-dashboard-go/internal/stats"
)

// Chart parameters
const (
	TopN          = 10
	RangeBins     = 20
	DonutHole     = 0.3
	DensityMetric = models.ColumnElectricRange
)

// TopManufacturers is a bar chart of the ten most registered manufacturers
func TopManufacturers(v *dataset.View) Spec {
	return topBar(v, "top-manufacturers", "Top 10 Manufacturers", "Make",
		func(x models.Vehicle) string { return x.Make })
}

// TopCounties is a bar chart of the ten counties with most registrations
func TopCounties(v *dataset.View) Spec {
	return topBar(v, "top-counties", "Top Counties", "County",
		func(x models.Vehicle) string { return x.County })
}

// TopCities is a bar chart of the ten cities with most registrations
func TopCities(v *dataset.View) Spec {
	return topBar(v, "top-cities", "Top Cities", "City",
		func(x models.Vehicle) string { return x.City })
}

func topBar(v *dataset.View, id, title, label string, field func(models.Vehicle) string) Spec {
	s := Spec{ID: id, Kind: KindBar, Title: title, XLabel: label, YLabel: "Count"}
	counts := stats.TopN(stats.ValueCounts(v.Strings(field)), TopN)
	if len(counts) == 0 {
		return emptySpec(s)
	}
	s.Categories = counts
	return s
}

// AdoptionTimeline is an area chart of registrations per model year
func AdoptionTimeline(v *dataset.View) Spec {
	s := Spec{ID: "adoption-timeline", Kind: KindArea, Title: "EV Adoption Timeline",
		XLabel: "Year", YLabel: "Count", Markers: true}
	if v.Len() == 0 {
		return emptySpec(s)
	}

	years := make([]int, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if y := v.Row(i).ModelYear; y != 0 {
			years = append(years, y)
		}
	}
	if len(years) == 0 {
		return emptySpec(s)
	}
	s.Categories = stats.CountByInt(years)
	return s
}

// TypeDistribution is a donut chart of registrations per EV type
func TypeDistribution(v *dataset.View) Spec {
	s := Spec{ID: "ev-type-distribution", Kind: KindPie, Title: "Vehicle Type Distribution", Hole: DonutHole}
	counts := stats.ValueCounts(v.Strings(func(x models.Vehicle) string { return x.EVType }))
	if len(counts) == 0 {
		return emptySpec(s)
	}
	s.Categories = counts
	return s
}

// RangeHistogram is a 20-bin histogram of electric range
func RangeHistogram(v *dataset.View) Spec {
	s := Spec{ID: "range-histogram", Kind: KindHistogram, Title: "Range Distribution",
		XLabel: models.ColumnElectricRange, YLabel: "count"}
	if v.Len() == 0 {
		return emptySpec(s)
	}
	s.Bins = stats.Histogram(v.Ranges(), RangeBins)
	return s
}

// PriceBox is a box plot of base MSRP with every point attached
func PriceBox(v *dataset.View) Spec {
	s := Spec{ID: "price-box", Kind: KindBox, Title: "Price Distribution", YLabel: models.ColumnBaseMSRP}
	if v.Len() == 0 {
		return emptySpec(s)
	}

	prices := v.Prices()
	min, q1, median, q3, max := stats.FiveNumberSummary(prices)
	lowerFence, upperFence := stats.OutliersBounds(prices)

	box := &BoxSummary{Min: min, Q1: q1, Median: median, Q3: q3, Max: max,
		WhiskerLow: q1, WhiskerHigh: q3}
	for _, p := range prices {
		if p >= lowerFence && p < box.WhiskerLow {
			box.WhiskerLow = p
		}
		if p <= upperFence && p > box.WhiskerHigh {
			box.WhiskerHigh = p
		}
	}

	s.Box = box
	s.Values = prices
	return s
}

// RangeVsPrice is a scatter of electric range against base MSRP, colored by
// manufacturer, each group carrying its own LOWESS trendline
func RangeVsPrice(v *dataset.View) Spec {
	s := Spec{ID: "range-vs-price", Kind: KindScatter, Title: "Range vs. Price Correlation",
		XLabel: models.ColumnBaseMSRP, YLabel: models.ColumnElectricRange}
	if v.Len() == 0 {
		return emptySpec(s)
	}

	byMake := make(map[string]*ScatterGroup)
	var names []string
	for i := 0; i < v.Len(); i++ {
		row := v.Row(i)
		g, ok := byMake[row.Make]
		if !ok {
			g = &ScatterGroup{Name: row.Make}
			byMake[row.Make] = g
			names = append(names, row.Make)
		}
		g.Points = append(g.Points, ScatterPoint{X: row.BaseMSRP, Y: row.ElectricRange, Model: row.Model, Year: row.ModelYear})
	}
	sort.Strings(names)

	for _, name := range names {
		g := byMake[name]
		xs := make([]float64, len(g.Points))
		ys := make([]float64, len(g.Points))
		for i, p := range g.Points {
			xs[i], ys[i] = p.X, p.Y
		}
		g.Trend = Lowess(xs, ys, LowessFrac, LowessIterations)
		s.Groups = append(s.Groups, *g)
	}
	return s
}

// DensityMap is a heatmap of vehicle locations weighted by electric range.
// It is skipped with a notice when the source has no coordinate columns.
func DensityMap(v *dataset.View) Spec {
	s := Spec{ID: "density-map", Kind: KindDensity, Title: "Geographic Heatmap"}
	if !v.Table().HasGeo() {
		s.Skipped = true
		s.Notice = NoticeNoGeo
		return s
	}

	var points []spatial.WeightedPoint
	for i := 0; i < v.Len(); i++ {
		row := v.Row(i)
		if !row.HasLocation {
			continue
		}
		points = append(points, spatial.WeightedPoint{
			Point:  spatial.Point{Lat: row.Latitude, Lon: row.Longitude},
			Weight: row.ElectricRange,
		})
	}
	if len(points) == 0 {
		return emptySpec(s)
	}

	heat := spatial.Density(points, spatial.DefaultCellLevel, DensityMetric)
	view := spatial.ViewFor(points)
	s.Heatmap = &heat
	s.MapView = &view
	return s
}
