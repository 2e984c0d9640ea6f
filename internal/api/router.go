package api

import (
	"adoption-eda/internal/api/handler"
	_ "adoption-eda/internal/docs"
	"adoption-eda/pkg/router"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RegisterRoutes wires the dashboard API onto r. A nil gatherer disables /metrics.
func RegisterRoutes(r *router.Router, h *handler.Handler, metrics prometheus.Gatherer) {
	r.GET("/api/v1/health", h.Health)
	r.GET("/api/v1/filters", h.GetFilters)
	r.GET("/api/v1/dashboard", h.GetDashboard)
	r.GET("/api/v1/trend", h.GetTrend)
	r.GET("/api/v1/correlation", h.GetCorrelation)
	r.GET("/api/v1/counts/*", h.GetCounts)
	r.GET("/api/v1/charts/*.png", h.GetChartPNG)
	r.POST("/api/v1/exports", h.CreateExport)
	r.GET("/api/v1/exports/*/*", h.DownloadExport)

	if metrics != nil {
		r.Mount("/metrics", promhttp.HandlerFor(metrics, promhttp.HandlerOpts{}))
	}
	r.Mount("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
