package database

import (
	"context"
	"fmt"
	"time"

	"github.com/banklite/backoffice-gin/internal/config"
	"github.com/banklite/backoffice-gin/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PoolConfig 连接池配置
type PoolConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int // 秒
	ConnMaxIdleTime int // 秒
}

// BuildDSN 构建 PostgreSQL DSN
func BuildDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// DefaultPoolConfig 默认连接池配置
func DefaultPoolConfig() *PoolConfig {
	return &PoolConfig{
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: 3600, // 1 小时
		ConnMaxIdleTime: 600,  // 10 分钟
	}
}

// Connect 连接数据库并配置连接池
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := BuildDSN(cfg)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// 从配置中读取连接池参数,未设置的项使用默认值
	pool := DefaultPoolConfig()
	if cfg.MaxIdleConns > 0 {
		pool.MaxIdleConns = cfg.MaxIdleConns
	}
	if cfg.MaxOpenConns > 0 {
		pool.MaxOpenConns = cfg.MaxOpenConns
	}
	if cfg.ConnMaxLifetime > 0 {
		pool.ConnMaxLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		pool.ConnMaxIdleTime = cfg.ConnMaxIdleTime
	}

	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleTime) * time.Second)

	return db, nil
}

// ConnectWithRetry 带重试的数据库连接,指数退避
func ConnectWithRetry(cfg config.DatabaseConfig, maxRetries int, retryInterval time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = Connect(cfg)
		if err == nil {
			return db, nil
		}

		if i < maxRetries-1 {
			time.Sleep(retryInterval)
			retryInterval *= 2
		}
	}

	return nil, fmt.Errorf("failed to connect database after %d retries: %w", maxRetries, err)
}

// Migrate 执行数据库迁移
func Migrate(db *gorm.DB) error {
	dialector := db.Dialector.Name()

	// SQLite 不支持 jsonb,需要手动建表
	if dialector == "sqlite" || dialector == "sqlite3" {
		if err := createSQLiteTables(db); err != nil {
			return fmt.Errorf("failed to create SQLite tables: %w", err)
		}
	} else {
		if err := db.AutoMigrate(
			&model.TransactionModel{},
			&model.AccountModel{},
			&model.UserModel{},
			&model.TicketModel{},
			&model.AuditLogModel{},
		); err != nil {
			return fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	if err := CreateIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// createSQLiteTables 为 SQLite 手动创建表（使用 TEXT 替代 jsonb）
func createSQLiteTables(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
			id VARCHAR(64) PRIMARY KEY,
			account_id VARCHAR(64) NOT NULL,
			type VARCHAR(32) NOT NULL,
			amount DECIMAL(20,2) NOT NULL,
			currency VARCHAR(8) NOT NULL DEFAULT 'USD',
			status VARCHAR(32) NOT NULL,
			description TEXT,
			created_by VARCHAR(64),
			decided_by VARCHAR(64),
			decided_at DATETIME,
			decision_reason TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create transactions table: %w", err)
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS accounts (
			id VARCHAR(64) PRIMARY KEY,
			number VARCHAR(64) NOT NULL UNIQUE,
			owner_id VARCHAR(64) NOT NULL,
			parent_id VARCHAR(64),
			status VARCHAR(32) NOT NULL,
			balance DECIMAL(20,2) NOT NULL DEFAULT 0,
			currency VARCHAR(8) NOT NULL DEFAULT 'USD',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create accounts table: %w", err)
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) PRIMARY KEY,
			username VARCHAR(64) NOT NULL UNIQUE,
			email VARCHAR(255),
			password_hash VARCHAR(255) NOT NULL,
			roles VARCHAR(255),
			active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS tickets (
			id VARCHAR(64) PRIMARY KEY,
			owner_id VARCHAR(64) NOT NULL,
			subject VARCHAR(255) NOT NULL,
			content TEXT,
			status VARCHAR(32) NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create tickets table: %w", err)
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS audit_logs (
			id VARCHAR(64) PRIMARY KEY,
			user_id VARCHAR(64) NOT NULL,
			action VARCHAR(64) NOT NULL,
			resource_type VARCHAR(32) NOT NULL,
			resource_id VARCHAR(64) NOT NULL,
			request_id VARCHAR(64),
			ip VARCHAR(45),
			details TEXT,
			created_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create audit_logs table: %w", err)
	}

	return nil
}

// CreateIndexes 创建数据库索引
func CreateIndexes(db *gorm.DB) error {
	// transactions 表索引
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_transactions_status_account ON transactions(status, account_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_transactions_status_account: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_transactions_created_by ON transactions(created_by)").Error; err != nil {
		return fmt.Errorf("failed to create idx_transactions_created_by: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create idx_transactions_created_at: %w", err)
	}

	// accounts 表索引
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_accounts_owner_id ON accounts(owner_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_accounts_owner_id: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_accounts_parent_id ON accounts(parent_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_accounts_parent_id: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_accounts_status ON accounts(status)").Error; err != nil {
		return fmt.Errorf("failed to create idx_accounts_status: %w", err)
	}

	// tickets 表索引
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_tickets_owner_status ON tickets(owner_id, status)").Error; err != nil {
		return fmt.Errorf("failed to create idx_tickets_owner_status: %w", err)
	}

	// audit_logs 表索引
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_audit_resource ON audit_logs(resource_type, resource_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_audit_resource: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_audit_user_id ON audit_logs(user_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_audit_user_id: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_audit_created_at ON audit_logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create idx_audit_created_at: %w", err)
	}

	return nil
}

// CheckHealth 检查数据库连接健康状态
func CheckHealth(db *gorm.DB) bool {
	if db == nil {
		return false
	}

	sqlDB, err := db.DB()
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx) == nil
}
