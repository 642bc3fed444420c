package metrics

import (
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/jengzang/ev-dashboard-go/internal/dataset"
	"github.com/jengzang/ev-dashboard-go/internal/models"
	"github.com/jengzang/ev-dashboard-go/internal/stats"
)

// Summarize computes the KPI metrics of a view. It never fails: means of an
// empty view are reported as 0 so the dashboard renders under any filters.
func Summarize(v *dataset.View) models.Summary {
	s := models.Summary{
		TotalVehicles: v.Len(),
		UniqueMakes:   len(stats.Distinct(v.Makes())),
		AvgRange:      stats.Mean(v.Ranges()),
		AvgPrice:      stats.Mean(v.Prices()),
	}

	// Display values are truncated, not rounded
	s.TotalLabel = humanize.Comma(int64(s.TotalVehicles))
	s.AvgRangeLabel = strconv.FormatInt(int64(s.AvgRange), 10)
	s.AvgPriceLabel = humanize.Comma(int64(s.AvgPrice))
	return s
}
