package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware 全局限流中间件
// 令牌桶按每秒 rps 补充,突发上限 burst;超限请求直接返回 429,
// 保护审批与统计查询等数据库密集型端点
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			Error(c, http.StatusTooManyRequests, "too many requests", "request rate limit exceeded, retry later")
			c.Abort()
			return
		}
		c.Next()
	}
}
