package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError 带 HTTP 状态码的业务错误
// 控制器通过 c.Error 上报后由 ErrorHandlerMiddleware 统一渲染
type APIError struct {
	Code    int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrorHandlerMiddleware 错误处理中间件
// 兜底渲染 handler 链上报的错误: APIError 按其状态码输出,
// 其余错误一律按 500 输出统一的 JSON 错误响应
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			var apiErr *APIError
			if errors.As(err, &apiErr) {
				Error(c, apiErr.Code, apiErr.Message, apiErr.Detail)
			} else {
				Error(c, http.StatusInternalServerError, "internal server error", err.Error())
			}
		}
	}
}

// WrapError 把底层错误包装为带状态码的 APIError
// 原始错误文本保留在 Detail 中
func WrapError(err error, code int, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Detail:  err.Error(),
	}
}
