package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/ev-dashboard-go/internal/config"
	"github.com/jengzang/ev-dashboard-go/internal/dataset"
	"github.com/jengzang/ev-dashboard-go/internal/handler"
	"github.com/jengzang/ev-dashboard-go/internal/middleware"
	"github.com/jengzang/ev-dashboard-go/internal/service"
	"github.com/jengzang/ev-dashboard-go/internal/web"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, source *dataset.Source) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())
	r.SetHTMLTemplate(web.Templates())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	dashboardHandler := handler.NewDashboardHandler(service.NewDashboardService(source))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "EV dashboard is running",
			"dataset": source.Path(),
		})
	})

	r.GET("/", dashboardHandler.Page)

	api := r.Group("/api/v1")
	{
		api.GET("/options", dashboardHandler.GetOptions)
		api.GET("/metrics", dashboardHandler.GetMetrics)
		api.GET("/records", dashboardHandler.GetRecords)

		chartsGroup := api.Group("/charts")
		{
			chartsGroup.GET("/:tab", dashboardHandler.GetCharts)
			chartsGroup.GET("/:tab/:chart/png", dashboardHandler.GetChartImage)
		}

		api.GET("/export", middleware.RateLimit(cfg.ExportRateLimit, cfg.ExportRateWindow), dashboardHandler.Export)
	}

	return r
}
