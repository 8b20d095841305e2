package api

import (
	"time"

	"github.com/banklite/backoffice-gin/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ContextRequestIDKey gin context 中保存请求 ID 的键
const ContextRequestIDKey = "request_id"

// RequestIDMiddleware 请求 ID 中间件
// 优先沿用客户端传入的 X-Request-ID,缺席时生成新的 UUID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(ContextRequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// RequestID 从 gin context 读取请求 ID
func RequestID(c *gin.Context) string {
	return c.GetString(ContextRequestIDKey)
}

// RequestLogMiddleware 请求日志中间件
func RequestLogMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = GetLogger()
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		requestID := c.GetString(ContextRequestIDKey)

		// 记录 Prometheus 指标
		metrics.RecordAPIRequest(method, path, status, latency.Seconds())

		// 使用结构化日志记录请求信息
		entry := logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     method,
			"path":       path,
			"status":     status,
			"latency":    latency.String(),
			"ip":         c.ClientIP(),
		})

		// 根据状态码选择日志级别
		if status >= 500 {
			entry.Error("API request")
		} else if status >= 400 {
			entry.Warn("API request")
		} else {
			entry.Info("API request")
		}
	}
}
