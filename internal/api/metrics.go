package api

import (
	"github.com/banklite/backoffice-gin/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsHandler Prometheus 指标处理器
func MetricsHandler(c *gin.Context) {
	metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
