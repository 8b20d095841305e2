package container

import (
	"fmt"
	"time"

	"github.com/banklite/backoffice-gin/internal/auth"
	"github.com/banklite/backoffice-gin/internal/config"
	"github.com/banklite/backoffice-gin/internal/database"
	"github.com/banklite/backoffice-gin/internal/metrics"
	"github.com/banklite/backoffice-gin/internal/policy"
	"github.com/banklite/backoffice-gin/internal/repository"
	"github.com/banklite/backoffice-gin/internal/service"
	"github.com/banklite/backoffice-gin/internal/websocket"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Container 依赖注入容器
// 管理所有应用依赖,包括数据库、策略引擎、服务和 WebSocket Hub
type Container struct {
	db *gorm.DB

	tokenManager *auth.TokenManager
	hub          *websocket.Hub
	collector    *metrics.Collector

	auditLogService    service.AuditLogService
	transactionService service.TransactionService
	accountService     service.AccountService
	userService        service.UserService
	ticketService      service.TicketService
	statisticsService  service.StatisticsService
}

// NewContainer 创建依赖注入容器
// 根据配置初始化所有依赖组件
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	// 1. 初始化数据库（带重试机制）
	// 默认重试 3 次,初始间隔 1 秒,指数退避
	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// 执行数据库迁移
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 2. 审批策略在进程启动时构建一次,注入所有使用方
	approvalPolicy := policy.NewApprovalPolicy()

	// 3. JWT Token 管理器
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, time.Duration(cfg.Auth.TokenTTL)*time.Second)

	// 4. WebSocket Hub 与交易事件广播器
	hub := websocket.NewHub()
	go hub.Run()
	broadcaster := websocket.NewTransactionBroadcaster(hub)

	// 5. 仓储层
	transactionRepo := repository.NewTransactionRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	userRepo := repository.NewUserRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// 6. 服务层
	auditLogService := service.NewAuditLogService(auditLogRepo, logger)
	transactionService := service.NewTransactionService(transactionRepo, approvalPolicy, auditLogService, broadcaster, logger)
	accountService := service.NewAccountService(accountRepo, auditLogService)
	userService := service.NewUserService(userRepo, auditLogService)
	ticketService := service.NewTicketService(ticketRepo, auditLogService)
	statisticsService := service.NewStatisticsService(db)

	// 7. 指标采集器,周期采样连接池与交易状态分布
	collector := metrics.NewCollector(db, 30*time.Second)
	collector.Start()

	return &Container{
		db:                 db,
		tokenManager:       tokenManager,
		hub:                hub,
		collector:          collector,
		auditLogService:    auditLogService,
		transactionService: transactionService,
		accountService:     accountService,
		userService:        userService,
		ticketService:      ticketService,
		statisticsService:  statisticsService,
	}, nil
}

// DB 获取数据库连接
func (c *Container) DB() *gorm.DB {
	return c.db
}

// TokenManager 获取 Token 管理器
func (c *Container) TokenManager() *auth.TokenManager {
	return c.tokenManager
}

// Hub 获取 WebSocket Hub
func (c *Container) Hub() *websocket.Hub {
	return c.hub
}

// AuditLogService 获取审计日志服务
func (c *Container) AuditLogService() service.AuditLogService {
	return c.auditLogService
}

// TransactionService 获取交易服务
func (c *Container) TransactionService() service.TransactionService {
	return c.transactionService
}

// AccountService 获取账户服务
func (c *Container) AccountService() service.AccountService {
	return c.accountService
}

// UserService 获取用户服务
func (c *Container) UserService() service.UserService {
	return c.userService
}

// TicketService 获取工单服务
func (c *Container) TicketService() service.TicketService {
	return c.ticketService
}

// StatisticsService 获取统计服务
func (c *Container) StatisticsService() service.StatisticsService {
	return c.statisticsService
}

// Close 关闭容器,清理资源
func (c *Container) Close() error {
	if c.collector != nil {
		c.collector.Stop()
	}

	if c.db != nil {
		sqlDB, err := c.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	return nil
}
