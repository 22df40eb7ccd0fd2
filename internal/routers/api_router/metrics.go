package api_router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "document_vault_http_requests_total",
		Help: "Total number of HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "document_vault_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	linksIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "document_vault_links_issued_total",
		Help: "Total number of download links issued",
	})

	linksPurgedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "document_vault_links_purged_total",
		Help: "Total number of expired links purged",
	})
)

// ObserveLinkIssued 记录一次链接签发
func ObserveLinkIssued() {
	linksIssuedTotal.Inc()
}

// ObserveLinksPurged 记录一次清理删除数
func ObserveLinksPurged(count int) {
	linksPurgedTotal.Add(float64(count))
}

// MetricsMiddleware 请求指标采集中间件
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(
			c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler Prometheus 指标导出接口
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
