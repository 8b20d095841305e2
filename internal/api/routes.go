package api

import (
	"net/http"

	"github.com/banklite/backoffice-gin/internal/auth"
	"github.com/banklite/backoffice-gin/internal/config"
	"github.com/banklite/backoffice-gin/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RouterDeps 路由依赖
type RouterDeps struct {
	Config       *config.Config
	Logger       *logrus.Logger
	DB           *gorm.DB
	TokenManager *auth.TokenManager
	Hub          *websocket.Hub

	TransactionController *TransactionController
	AccountController     *AccountController
	UserController        *UserController
	TicketController      *TicketController
	StatisticsController  *StatisticsController
}

// SetupRoutes 配置路由
func SetupRoutes(deps *RouterDeps) *gin.Engine {
	if config.IsProduction(deps.Config) {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// 中间件
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware(deps.Logger))
	router.Use(SecurityHeadersMiddleware())
	router.Use(ErrorHandlerMiddleware())
	if deps.Config != nil {
		router.Use(CORSMiddleware(deps.Config.CORS.AllowedOrigins))
		if deps.Config.RateLimit.Enabled {
			router.Use(RateLimitMiddleware(deps.Config.RateLimit.RPS, deps.Config.RateLimit.Burst))
		}
	}

	// 健康检查
	healthController := NewHealthController(deps.DB, deps.Hub)
	router.GET("/health", healthController.Check)

	// Prometheus 指标端点
	router.GET("/metrics", MetricsHandler)

	// WebSocket 交易事件推送
	if deps.Hub != nil && deps.TokenManager != nil {
		router.GET("/ws/transactions", websocket.TransactionFeedHandler(deps.Hub, deps.TokenManager))
	}

	// 登录不需要认证
	router.POST("/api/v1/auth/login", deps.UserController.Login)

	// API v1 路由组,全部需要认证
	v1 := router.Group("/api/v1")
	v1.Use(auth.Middleware(deps.TokenManager))
	{
		// 交易管理路由
		transactions := v1.Group("/transactions")
		{
			transactions.POST("", deps.TransactionController.Create)
			transactions.GET("", deps.TransactionController.List)
			transactions.GET("/check", deps.TransactionController.Check)
			transactions.GET("/:id", deps.TransactionController.Get)
			transactions.GET("/:id/audit", deps.TransactionController.Audit)
			transactions.POST("/:id/approve", deps.TransactionController.Approve)
			transactions.POST("/:id/reject", deps.TransactionController.Reject)
		}

		// 账户管理路由
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", deps.AccountController.Create)
			accounts.GET("", deps.AccountController.List)
			accounts.GET("/:id", deps.AccountController.Get)
			accounts.GET("/:id/behavior", deps.AccountController.Behavior)
			accounts.PUT("/:id/status", deps.AccountController.UpdateStatus)
			accounts.POST("/:id/sub-accounts", deps.AccountController.CreateSubAccount)
			accounts.GET("/:id/sub-accounts", deps.AccountController.ListSubAccounts)
		}

		// 用户管理路由
		users := v1.Group("/users")
		{
			users.POST("", deps.UserController.Create)
			users.GET("", deps.UserController.List)
			users.GET("/:id", deps.UserController.Get)
			users.GET("/:id/audit", deps.UserController.Audit)
			users.PUT("/:id/roles", deps.UserController.UpdateRoles)
		}

		// 工单管理路由
		tickets := v1.Group("/tickets")
		{
			tickets.POST("", deps.TicketController.Create)
			tickets.GET("", deps.TicketController.List)
			tickets.GET("/:id", deps.TicketController.Get)
			tickets.PUT("/:id/status", deps.TicketController.UpdateStatus)
		}

		// 统计路由
		statistics := v1.Group("/statistics")
		{
			statistics.GET("/transactions", deps.StatisticsController.Transactions)
			statistics.GET("/transactions/by-time", deps.StatisticsController.TransactionsByTime)
			statistics.GET("/accounts", deps.StatisticsController.Accounts)
			statistics.GET("/tickets", deps.StatisticsController.Tickets)
		}
	}

	// 自定义 NoRoute 处理器,返回 JSON 格式的 404
	// 必须在所有业务路由注册之后设置,确保未匹配的路由返回 JSON 而不是 HTML
	router.NoRoute(func(c *gin.Context) {
		Error(c, http.StatusNotFound, "route not found", "the requested route does not exist")
	})

	return router
}
