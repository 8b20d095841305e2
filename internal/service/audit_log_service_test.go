package service_test

import (
	"testing"

	"github.com/banklite/backoffice-gin/internal/model"
	"github.com/banklite/backoffice-gin/internal/repository"
	"github.com/banklite/backoffice-gin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupAuditLogService 创建测试数据库与审计日志服务
func setupAuditLogService(t *testing.T) service.AuditLogService {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&model.AuditLogModel{})
	require.NoError(t, err)

	return service.NewAuditLogService(repository.NewAuditLogRepository(db), nil)
}

// TestAuditLog_RecordAndQuery 测试审计日志写入与双向查询
func TestAuditLog_RecordAndQuery(t *testing.T) {
	svc := setupAuditLogService(t)

	svc.Record(&service.AuditEntry{
		UserID:       "user-001",
		Action:       "create",
		ResourceType: "transaction",
		ResourceID:   "tx-001",
	})
	svc.Record(&service.AuditEntry{
		UserID:       "user-001",
		Action:       "approve",
		ResourceType: "transaction",
		ResourceID:   "tx-001",
		Details:      map[string]interface{}{"comment": "ok"},
	})
	svc.Record(&service.AuditEntry{
		UserID:       "user-002",
		Action:       "create",
		ResourceType: "account",
		ResourceID:   "acc-001",
	})

	byResource, err := svc.GetByResource("transaction", "tx-001")
	require.NoError(t, err)
	assert.Len(t, byResource, 2)

	byUser, err := svc.GetByUser("user-001", 10)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byUser, err = svc.GetByUser("user-002", 10)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, "account", byUser[0].ResourceType)
}

// TestAuditLog_GetByUserLimitFallback 测试非法 limit 回退到默认值
func TestAuditLog_GetByUserLimitFallback(t *testing.T) {
	svc := setupAuditLogService(t)

	svc.Record(&service.AuditEntry{
		UserID:       "user-001",
		Action:       "create",
		ResourceType: "ticket",
		ResourceID:   "tk-001",
	})

	logs, err := svc.GetByUser("user-001", -5)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

// TestAuditLog_RecordNilSafe 测试 nil 条目不会写入
func TestAuditLog_RecordNilSafe(t *testing.T) {
	svc := setupAuditLogService(t)
	svc.Record(nil)

	logs, err := svc.GetByUser("user-001", 10)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
