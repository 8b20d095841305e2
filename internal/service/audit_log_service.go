package service

import (
	"encoding/json"
	"time"

	"github.com/banklite/backoffice-gin/internal/model"
	"github.com/banklite/backoffice-gin/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditLogService 审计日志服务接口
type AuditLogService interface {
	Record(entry *AuditEntry)
	GetByResource(resourceType, resourceID string) ([]*model.AuditLogModel, error)
	GetByUser(userID string, limit int) ([]*model.AuditLogModel, error)
}

// AuditEntry 审计日志条目
type AuditEntry struct {
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	RequestID    string
	IP           string
	Details      map[string]interface{}
}

// auditLogService 审计日志服务实现
type auditLogService struct {
	repo   repository.AuditLogRepository
	logger *logrus.Logger
}

// NewAuditLogService 创建审计日志服务
func NewAuditLogService(repo repository.AuditLogRepository, logger *logrus.Logger) AuditLogService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &auditLogService{repo: repo, logger: logger}
}

// Record 记录审计日志
// 审计写入失败只记录警告,不阻断业务操作
func (s *auditLogService) Record(entry *AuditEntry) {
	if s.repo == nil || entry == nil {
		return
	}

	var details []byte
	if entry.Details != nil {
		details, _ = json.Marshal(entry.Details)
	}

	log := &model.AuditLogModel{
		ID:           uuid.New().String(),
		UserID:       entry.UserID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		RequestID:    entry.RequestID,
		IP:           entry.IP,
		Details:      details,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Save(log); err != nil {
		s.logger.WithFields(logrus.Fields{
			"action":      entry.Action,
			"resource_id": entry.ResourceID,
		}).WithError(err).Warn("failed to write audit log entry")
	}
}

// GetByResource 查询某资源的审计日志
func (s *auditLogService) GetByResource(resourceType, resourceID string) ([]*model.AuditLogModel, error) {
	return s.repo.FindByResource(resourceType, resourceID)
}

// GetByUser 查询某用户的最近操作记录
func (s *auditLogService) GetByUser(userID string, limit int) ([]*model.AuditLogModel, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.FindByUser(userID, limit)
}
