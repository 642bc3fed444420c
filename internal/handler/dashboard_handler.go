package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/ev-dashboard-go/internal/charts"
	"github.com/jengzang/ev-dashboard-go/internal/export"
	"github.com/jengzang/ev-dashboard-go/internal/metrics"
	"github.com/jengzang/ev-dashboard-go/internal/models"
	"github.com/jengzang/ev-dashboard-go/internal/render"
	"github.com/jengzang/ev-dashboard-go/internal/service"
	"github.com/jengzang/ev-dashboard-go/internal/web"
	"github.com/jengzang/ev-dashboard-go/pkg/response"
)

// Size limits of PNG chart renderings
const (
	maxImageWidth  = 2000
	maxImageHeight = 2000
)

// DashboardHandler handles HTTP requests for the dashboard page and its API
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func bindDashboardQuery(c *gin.Context) (models.DashboardQuery, bool) {
	var q models.DashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid filter parameters", err)
		return q, false
	}
	return q, true
}

// failed maps a service error to a response
func failed(c *gin.Context, err error) {
	switch {
	case errors.Is(err, charts.ErrUnknownTab), errors.Is(err, charts.ErrUnknownChart):
		response.NotFound(c, "Chart not found", err)
	case errors.Is(err, export.ErrUnknownFormat):
		response.BadRequest(c, "Invalid format parameter", err)
	default:
		response.InternalError(c, "Failed to compute dashboard", err)
	}
}

// GetOptions handles GET /api/v1/options
func (h *DashboardHandler) GetOptions(c *gin.Context) {
	q, ok := bindDashboardQuery(c)
	if !ok {
		return
	}

	opts, err := h.dashboardService.GetOptions(q)
	if err != nil {
		failed(c, err)
		return
	}

	response.Success(c, opts)
}

// GetMetrics handles GET /api/v1/metrics
func (h *DashboardHandler) GetMetrics(c *gin.Context) {
	q, ok := bindDashboardQuery(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.GetSummary(q)
	if err != nil {
		failed(c, err)
		return
	}

	response.Success(c, summary)
}

// GetCharts handles GET /api/v1/charts/:tab
func (h *DashboardHandler) GetCharts(c *gin.Context) {
	q, ok := bindDashboardQuery(c)
	if !ok {
		return
	}

	specs, err := h.dashboardService.GetCharts(q, c.Param("tab"))
	if err != nil {
		failed(c, err)
		return
	}

	response.Success(c, gin.H{
		"tab":    c.Param("tab"),
		"charts": specs,
	})
}

// GetChartImage handles GET /api/v1/charts/:tab/:chart/png
func (h *DashboardHandler) GetChartImage(c *gin.Context) {
	q, ok := bindDashboardQuery(c)
	if !ok {
		return
	}

	width, err := strconv.Atoi(c.DefaultQuery("width", "800"))
	if err != nil || width <= 0 || width > maxImageWidth {
		response.BadRequest(c, "Invalid width parameter")
		return
	}
	height, err := strconv.Atoi(c.DefaultQuery("height", "450"))
	if err != nil || height <= 0 || height > maxImageHeight {
		response.BadRequest(c, "Invalid height parameter")
		return
	}

	spec, err := h.dashboardService.GetChart(q, c.Param("tab"), c.Param("chart"))
	if err != nil {
		failed(c, err)
		return
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, spec, width, height); err != nil {
		response.InternalError(c, "Failed to render chart", err)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// GetRecords handles GET /api/v1/records
func (h *DashboardHandler) GetRecords(c *gin.Context) {
	q, ok := bindDashboardQuery(c)
	if !ok {
		return
	}

	var page models.RecordsQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "Invalid paging parameters", err)
		return
	}

	records, err := h.dashboardService.GetRecords(q, page)
	if err != nil {
		failed(c, err)
		return
	}

	response.Success(c, records)
}

// Export handles GET /api/v1/export?format=csv|xlsx|json
func (h *DashboardHandler) Export(c *gin.Context) {
	q, ok := bindDashboardQuery(c)
	if !ok {
		return
	}

	payload, err := h.dashboardService.Export(q, c.DefaultQuery("format", string(export.FormatCSV)))
	if err != nil {
		failed(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+payload.FileName+`"`)
	c.Data(http.StatusOK, payload.ContentType, payload.Data)
}

// Page handles GET /, the server-rendered dashboard
func (h *DashboardHandler) Page(c *gin.Context) {
	q, ok := bindDashboardQuery(c)
	if !ok {
		return
	}

	tab := c.DefaultQuery("tab", charts.TabTrends)
	if _, ok := charts.FindTab(tab); !ok {
		tab = charts.TabTrends
	}

	snap, err := h.dashboardService.Evaluate(q)
	if err != nil {
		response.InternalError(c, "Failed to load dataset", err)
		return
	}

	in := web.PageInput{
		ActiveTab: tab,
		Options:   snap.Options,
		Summary:   metrics.Summarize(snap.View),
		Query:     service.EncodeSelection(snap.Options.Selected),
		Now:       time.Now(),
	}

	if tab == charts.TabData {
		var page models.RecordsQuery
		if err := c.ShouldBindQuery(&page); err != nil {
			response.BadRequest(c, "Invalid paging parameters", err)
			return
		}
		records := service.Paginate(snap.View, page)
		in.Records = &records
	} else {
		in.Charts, err = charts.BuildTab(tab, snap.View)
		if err != nil {
			failed(c, err)
			return
		}
	}

	c.HTML(http.StatusOK, web.PageTemplate, web.NewPage(in))
}
