package repository

import (
	"github.com/banklite/backoffice-gin/internal/model"
	"gorm.io/gorm"
)

// AuditLogRepository 审计日志仓储接口
type AuditLogRepository interface {
	Save(log *model.AuditLogModel) error
	FindByResource(resourceType, resourceID string) ([]*model.AuditLogModel, error)
	FindByUser(userID string, limit int) ([]*model.AuditLogModel, error)
}

// auditLogRepository 审计日志仓储实现
type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository 创建审计日志仓储
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

// Save 保存审计日志
func (r *auditLogRepository) Save(log *model.AuditLogModel) error {
	return r.db.Create(log).Error
}

// FindByResource 查找某资源的全部审计日志
func (r *auditLogRepository) FindByResource(resourceType, resourceID string) ([]*model.AuditLogModel, error) {
	var logs []*model.AuditLogModel
	err := r.db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

// FindByUser 查找某用户的最近审计日志
func (r *auditLogRepository) FindByUser(userID string, limit int) ([]*model.AuditLogModel, error) {
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var logs []*model.AuditLogModel
	err := query.Find(&logs).Error
	return logs, err
}
