package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// setupErrorHandlerRouter 搭建挂载错误处理中间件的测试路由
func setupErrorHandlerRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandlerMiddleware())
	router.GET("/boom", handler)
	return router
}

// TestErrorHandlerMiddleware_APIError 测试 APIError 按其状态码响应
func TestErrorHandlerMiddleware_APIError(t *testing.T) {
	router := setupErrorHandlerRouter(func(c *gin.Context) {
		_ = c.Error(WrapError(errors.New("row missing"), http.StatusNotFound, "resource not found"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "resource not found")
	assert.Contains(t, w.Body.String(), "row missing")
}

// TestErrorHandlerMiddleware_PlainError 测试未包装错误回退到 500
func TestErrorHandlerMiddleware_PlainError(t *testing.T) {
	router := setupErrorHandlerRouter(func(c *gin.Context) {
		_ = c.Error(errors.New("unexpected failure"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "unexpected failure")
}
