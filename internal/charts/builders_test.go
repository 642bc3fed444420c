package charts

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/ev-dashboard-go/internal/dataset"
	"github.com/jengzang/ev-dashboard-go/internal/models"
)

const geoCSV = `Make,Model,Model Year,Electric Vehicle Type,County,City,Electric Range,Base MSRP,Latitude,Longitude
TESLA,MODEL Y,2022,BEV,King,Seattle,300,55000,47.6062,-122.3321
TESLA,MODEL 3,2019,BEV,King,Bellevue,220,39990,47.6101,-122.2015
FORD,F-150,2023,PHEV,Pierce,Tacoma,30,40000,47.2529,-122.4443
NISSAN,LEAF,2019,BEV,Snohomish,Everett,75,28800,,
BMW,I3,2017,BEV,King,Seattle,114,44450,47.6062,-122.3321
`

const plainCSV = `Make,Model,Model Year,Electric Vehicle Type,County,City,Electric Range,Base MSRP
TESLA,MODEL Y,2022,BEV,King,Seattle,300,55000
`

func loadView(t *testing.T, csv string) *dataset.View {
	t.Helper()
	table, err := dataset.Read(strings.NewReader(csv))
	require.NoError(t, err)
	return table.All()
}

func emptyView(t *testing.T) *dataset.View {
	t.Helper()
	v := loadView(t, geoCSV)
	return dataset.NewView(v.Table(), nil)
}

func TestTopManufacturers(t *testing.T) {
	s := TopManufacturers(loadView(t, geoCSV))

	assert.Equal(t, KindBar, s.Kind)
	assert.True(t, s.Renderable())
	assert.Equal(t, []models.ValueCount{
		{Label: "TESLA", Count: 2},
		{Label: "BMW", Count: 1},
		{Label: "FORD", Count: 1},
		{Label: "NISSAN", Count: 1},
	}, s.Categories)
}

func TestAdoptionTimeline(t *testing.T) {
	s := AdoptionTimeline(loadView(t, geoCSV))

	assert.Equal(t, KindArea, s.Kind)
	assert.True(t, s.Markers)
	assert.Equal(t, []models.ValueCount{
		{Label: "2017", Count: 1},
		{Label: "2019", Count: 2},
		{Label: "2022", Count: 1},
		{Label: "2023", Count: 1},
	}, s.Categories)
}

func TestTypeDistribution(t *testing.T) {
	s := TypeDistribution(loadView(t, geoCSV))

	assert.Equal(t, KindPie, s.Kind)
	assert.Equal(t, DonutHole, s.Hole)
	assert.Equal(t, []models.ValueCount{{Label: "BEV", Count: 4}, {Label: "PHEV", Count: 1}}, s.Categories)
}

func TestRangeHistogram(t *testing.T) {
	s := RangeHistogram(loadView(t, geoCSV))

	require.Len(t, s.Bins, RangeBins)
	total := 0
	for _, b := range s.Bins {
		total += b.Count
	}
	assert.Equal(t, 5, total)
	assert.Equal(t, 30.0, s.Bins[0].Min)
	assert.Equal(t, 300.0, s.Bins[RangeBins-1].Max)
}

func TestPriceBox(t *testing.T) {
	s := PriceBox(loadView(t, geoCSV))

	require.NotNil(t, s.Box)
	assert.Equal(t, 28800.0, s.Box.Min)
	assert.Equal(t, 40000.0, s.Box.Median)
	assert.Equal(t, 55000.0, s.Box.Max)
	assert.Len(t, s.Values, 5)
	assert.LessOrEqual(t, s.Box.WhiskerLow, s.Box.Q1)
	assert.GreaterOrEqual(t, s.Box.WhiskerHigh, s.Box.Q3)
}

func TestRangeVsPrice(t *testing.T) {
	s := RangeVsPrice(loadView(t, geoCSV))

	require.Len(t, s.Groups, 4)
	names := make([]string, len(s.Groups))
	for i, g := range s.Groups {
		names[i] = g.Name
		assert.NotEmpty(t, g.Trend, g.Name)
	}
	assert.Equal(t, []string{"BMW", "FORD", "NISSAN", "TESLA"}, names)

	tesla := s.Groups[3]
	require.Len(t, tesla.Points, 2)
	assert.Equal(t, ScatterPoint{X: 55000, Y: 300, Model: "MODEL Y", Year: 2022}, tesla.Points[0])
}

func TestDensityMap(t *testing.T) {
	s := DensityMap(loadView(t, geoCSV))

	require.True(t, s.Renderable())
	require.NotNil(t, s.Heatmap)
	require.NotNil(t, s.MapView)
	assert.Equal(t, DensityMetric, s.Heatmap.Metric)

	rows := 0
	for _, p := range s.Heatmap.Points {
		rows += p.Count
	}
	assert.Equal(t, 4, rows, "rows without coordinates are left out")
}

func TestDensityMapWithoutCoordinates(t *testing.T) {
	s := DensityMap(loadView(t, plainCSV))

	assert.True(t, s.Skipped)
	assert.False(t, s.Renderable())
	assert.Equal(t, NoticeNoGeo, s.Notice)
	assert.Nil(t, s.Heatmap)
}

func TestBuildersTolerateEmptyView(t *testing.T) {
	v := emptyView(t)

	for _, tab := range Tabs {
		for _, b := range tab.Builders {
			t.Run(b.ID, func(t *testing.T) {
				s := b.Build(v)
				assert.Equal(t, b.ID, s.ID)
				assert.True(t, s.Empty)
				assert.False(t, s.Renderable())
				assert.Equal(t, NoticeNoData, s.Notice)
			})
		}
	}
}

func TestBuildTab(t *testing.T) {
	v := loadView(t, geoCSV)

	specs, err := BuildTab(TabPerformance, v)
	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.Equal(t, "range-histogram", specs[0].ID)

	data, err := BuildTab(TabData, v)
	require.NoError(t, err)
	assert.Empty(t, data)

	_, err = BuildTab("weather", v)
	assert.True(t, errors.Is(err, ErrUnknownTab))

	s, err := Build(TabGeography, "top-cities", v)
	require.NoError(t, err)
	assert.Equal(t, "Seattle", s.Categories[0].Label)

	_, err = Build(TabGeography, "top-manufacturers", v)
	assert.True(t, errors.Is(err, ErrUnknownChart))
}
