package metrics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/ev-dashboard-go/internal/dataset"
)

const twoVehicles = `Make,Model,Model Year,Electric Vehicle Type,County,City,Electric Range,Base MSRP
TESLA,MODEL Y,2022,BEV,King,Seattle,300,55000
FORD,F-150,2023,PHEV,Pierce,Tacoma,30,40000
`

func loadTable(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	table, err := dataset.Read(strings.NewReader(csv))
	require.NoError(t, err)
	return table
}

func TestSummarizeSingleRow(t *testing.T) {
	table := loadTable(t, twoVehicles)

	s := Summarize(dataset.NewView(table, []int{0}))

	assert.Equal(t, 1, s.TotalVehicles)
	assert.Equal(t, 1, s.UniqueMakes)
	assert.Equal(t, 300.0, s.AvgRange)
	assert.Equal(t, 55000.0, s.AvgPrice)
	assert.Equal(t, "300", s.AvgRangeLabel)
	assert.Equal(t, "55,000", s.AvgPriceLabel)
	assert.Equal(t, "1", s.TotalLabel)
}

func TestSummarizeTruncatesDisplayValues(t *testing.T) {
	table := loadTable(t, twoVehicles+"TESLA,MODEL 3,2019,BEV,King,Bellevue,221,39999\n")

	s := Summarize(table.All())

	assert.Equal(t, 3, s.TotalVehicles)
	assert.Equal(t, 2, s.UniqueMakes)
	assert.InDelta(t, 183.667, s.AvgRange, 1e-3)
	assert.Equal(t, "183", s.AvgRangeLabel)
	assert.Equal(t, "44,999", s.AvgPriceLabel)
}

func TestSummarizeEmptyView(t *testing.T) {
	table := loadTable(t, twoVehicles)

	s := Summarize(dataset.NewView(table, nil))

	assert.Equal(t, 0, s.TotalVehicles)
	assert.Equal(t, 0, s.UniqueMakes)
	assert.Equal(t, 0.0, s.AvgRange)
	assert.Equal(t, 0.0, s.AvgPrice)
	assert.Equal(t, "0", s.AvgRangeLabel)
	assert.Equal(t, "0", s.AvgPriceLabel)
}
