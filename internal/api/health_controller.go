package api

import (
	"context"
	"net/http"
	"time"

	"github.com/banklite/backoffice-gin/internal/websocket"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthController 健康检查控制器
type HealthController struct {
	db  *gorm.DB
	hub *websocket.Hub
}

// NewHealthController 创建健康检查控制器
func NewHealthController(db *gorm.DB, hub *websocket.Hub) *HealthController {
	return &HealthController{
		db:  db,
		hub: hub,
	}
}

// Check 健康检查
func (c *HealthController) Check(ctx *gin.Context) {
	status := "healthy"
	checks := make(map[string]string)

	// 检查数据库连接
	if c.db != nil {
		if err := c.checkDatabase(ctx.Request.Context()); err != nil {
			status = "unhealthy"
			checks["database"] = "unhealthy: " + err.Error()
		} else {
			checks["database"] = "healthy"
		}
	} else {
		checks["database"] = "not configured"
	}

	response := gin.H{
		"status":    status,
		"timestamp": time.Now().Unix(),
		"checks":    checks,
	}
	if c.hub != nil {
		response["websocket_clients"] = c.hub.ClientCount()
	}

	httpStatus := http.StatusOK
	if status == "unhealthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	ctx.JSON(httpStatus, response)
}

// checkDatabase 检查数据库连接
func (c *HealthController) checkDatabase(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}
