package service

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/jengzang/ev-dashboard-go/internal/charts"
	"github.com/jengzang/ev-dashboard-go/internal/dataset"
	"github.com/jengzang/ev-dashboard-go/internal/export"
	"github.com/jengzang/ev-dashboard-go/internal/filter"
	"github.com/jengzang/ev-dashboard-go/internal/metrics"
	"github.com/jengzang/ev-dashboard-go/internal/models"
)

// Paging limits of the raw data tab
const (
	DefaultRecordsLimit = 100
	MaxRecordsLimit     = 1000
)

// DashboardService recomputes the dashboard from the shared dataset for every request
type DashboardService struct {
	source *dataset.Source
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(source *dataset.Source) *DashboardService {
	return &DashboardService{source: source}
}

// Snapshot is the result of one filter evaluation
type Snapshot struct {
	Table   *dataset.Table
	Params  filter.Params
	Options models.FilterOptions
	View    *dataset.View
}

// Evaluate collects filter parameters from the query and applies them
func (s *DashboardService) Evaluate(q models.DashboardQuery) (*Snapshot, error) {
	table, err := s.source.Table()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	params, opts := filter.Collect(table, filter.StateFromQuery(q))
	return &Snapshot{
		Table:   table,
		Params:  params,
		Options: opts,
		View:    filter.Apply(table, params),
	}, nil
}

// GetOptions retrieves the widget options and effective selection
func (s *DashboardService) GetOptions(q models.DashboardQuery) (models.FilterOptions, error) {
	table, err := s.source.Table()
	if err != nil {
		return models.FilterOptions{}, fmt.Errorf("failed to load dataset: %w", err)
	}
	_, opts := filter.Collect(table, filter.StateFromQuery(q))
	return opts, nil
}

// GetSummary retrieves the KPI metrics of the filtered view
func (s *DashboardService) GetSummary(q models.DashboardQuery) (models.Summary, error) {
	snap, err := s.Evaluate(q)
	if err != nil {
		return models.Summary{}, err
	}
	return metrics.Summarize(snap.View), nil
}

// GetCharts builds every chart of a tab for the filtered view
func (s *DashboardService) GetCharts(q models.DashboardQuery, tab string) ([]charts.Spec, error) {
	if _, ok := charts.FindTab(tab); !ok {
		return nil, fmt.Errorf("%w: %s", charts.ErrUnknownTab, tab)
	}
	snap, err := s.Evaluate(q)
	if err != nil {
		return nil, err
	}
	return charts.BuildTab(tab, snap.View)
}

// GetChart builds one chart of a tab for the filtered view
func (s *DashboardService) GetChart(q models.DashboardQuery, tab, chartID string) (charts.Spec, error) {
	snap, err := s.Evaluate(q)
	if err != nil {
		return charts.Spec{}, err
	}
	return charts.Build(tab, chartID, snap.View)
}

// GetRecords retrieves one page of filtered rows, newest model year first
func (s *DashboardService) GetRecords(q models.DashboardQuery, page models.RecordsQuery) (models.RecordsPage, error) {
	snap, err := s.Evaluate(q)
	if err != nil {
		return models.RecordsPage{}, err
	}
	return Paginate(snap.View, page), nil
}

// Paginate slices the year-sorted rows of a view
func Paginate(v *dataset.View, page models.RecordsQuery) models.RecordsPage {
	if page.Limit <= 0 {
		page.Limit = DefaultRecordsLimit
	}
	if page.Limit > MaxRecordsLimit {
		page.Limit = MaxRecordsLimit
	}
	if page.Offset < 0 {
		page.Offset = 0
	}

	rows := v.SortedByYearDesc()
	start := page.Offset
	if start > len(rows) {
		start = len(rows)
	}
	end := start + page.Limit
	if end > len(rows) {
		end = len(rows)
	}

	return models.RecordsPage{
		Records: rows[start:end],
		Total:   len(rows),
		Offset:  page.Offset,
		Limit:   page.Limit,
	}
}

// Export serializes the filtered view in the requested format
func (s *DashboardService) Export(q models.DashboardQuery, format string) (*export.Payload, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	snap, err := s.Evaluate(q)
	if err != nil {
		return nil, err
	}
	return export.Export(snap.View, f)
}

// EncodeSelection renders an effective selection as query parameters that
// reproduce it exactly, so links keep the current filters
func EncodeSelection(sel models.Selection) url.Values {
	v := url.Values{}
	v.Set("applied", "1")
	for _, m := range sel.Makes {
		v.Add("make", m)
	}
	for _, m := range sel.Models {
		v.Add("model", m)
	}
	for _, t := range sel.EVTypes {
		v.Add("type", t)
	}
	for _, c := range sel.Counties {
		v.Add("county", c)
	}
	for _, c := range sel.Cities {
		v.Add("city", c)
	}
	v.Set("yearMin", strconv.Itoa(sel.Years.Min))
	v.Set("yearMax", strconv.Itoa(sel.Years.Max))
	v.Set("rangeMin", strconv.Itoa(sel.Range.Min))
	v.Set("rangeMax", strconv.Itoa(sel.Range.Max))
	v.Set("priceMin", strconv.Itoa(sel.Price.Min))
	v.Set("priceMax", strconv.Itoa(sel.Price.Max))
	return v
}
