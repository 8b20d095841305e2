package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/banklite/backoffice-gin/internal/metrics"
	"github.com/banklite/backoffice-gin/internal/model"
	"github.com/banklite/backoffice-gin/internal/policy"
	"github.com/banklite/backoffice-gin/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrTransactionNotPending 交易不处于待审批状态
	ErrTransactionNotPending = errors.New("transaction is not pending")
	// ErrReasonRequired 驳回必须填写原因
	ErrReasonRequired = errors.New("rejection reason is required")
)

// ApprovalDeniedError 审批被拒绝
// 这是预期内的业务结果而非系统故障: 调用方中止审批动作并把消息呈现给用户
type ApprovalDeniedError struct {
	Result policy.ApprovalResult
}

func (e *ApprovalDeniedError) Error() string {
	if e.Result.RequiredRole != "" {
		return fmt.Sprintf("Approval denied. Required role: %s", e.Result.RequiredRole)
	}
	return "Approval denied"
}

// TransactionNotifier 交易事件通知接口
// 由 websocket 层实现,向仪表盘推送交易状态变化
type TransactionNotifier interface {
	NotifyTransactionEvent(eventType string, tx *model.TransactionModel)
}

// Actor 执行操作的用户上下文
type Actor struct {
	UserID     string
	RoleLabels []string
	RequestID  string
	IP         string
}

// EffectiveRole 解析操作者的有效角色
func (a *Actor) EffectiveRole() policy.Role {
	if a == nil {
		return policy.RoleCustomer
	}
	return policy.ResolveEffectiveRole(a.RoleLabels)
}

// CreateTransactionRequest 创建交易请求
type CreateTransactionRequest struct {
	AccountID   string  `json:"account_id" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

// TransactionService 交易服务接口
type TransactionService interface {
	Create(ctx context.Context, req *CreateTransactionRequest, actor *Actor) (*model.TransactionModel, error)
	Get(id string) (*model.TransactionModel, error)
	List(filter *repository.TransactionFilter) ([]*model.TransactionModel, int64, error)
	CheckApproval(amount float64, role policy.Role) policy.ApprovalResult
	Approve(ctx context.Context, id string, actor *Actor, comment string) (*model.TransactionModel, error)
	Reject(ctx context.Context, id string, actor *Actor, reason string) (*model.TransactionModel, error)
}

// transactionService 交易服务实现
type transactionService struct {
	repo     repository.TransactionRepository
	approval *policy.ApprovalPolicy
	audit    AuditLogService
	notifier TransactionNotifier
	logger   *logrus.Logger
}

// NewTransactionService 创建交易服务
// 审批策略在进程启动时构建一次,通过参数注入
func NewTransactionService(
	repo repository.TransactionRepository,
	approval *policy.ApprovalPolicy,
	audit AuditLogService,
	notifier TransactionNotifier,
	logger *logrus.Logger,
) TransactionService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &transactionService{
		repo:     repo,
		approval: approval,
		audit:    audit,
		notifier: notifier,
		logger:   logger,
	}
}

// Create 创建交易,初始状态为 pending
func (s *transactionService) Create(ctx context.Context, req *CreateTransactionRequest, actor *Actor) (*model.TransactionModel, error) {
	if req.Amount < 0 {
		return nil, errors.New("transaction amount must be non-negative")
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	tx := &model.TransactionModel{
		ID:          uuid.New().String(),
		AccountID:   req.AccountID,
		Type:        req.Type,
		Amount:      req.Amount,
		Currency:    currency,
		Status:      model.TransactionStatusPending,
		Description: req.Description,
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	metrics.RecordTransactionCreated()
	s.audit.Record(&AuditEntry{
		UserID:       actor.UserID,
		Action:       "create",
		ResourceType: "transaction",
		ResourceID:   tx.ID,
		RequestID:    actor.RequestID,
		IP:           actor.IP,
		Details:      map[string]interface{}{"amount": tx.Amount, "type": tx.Type},
	})

	return tx, nil
}

// Get 获取交易
func (s *transactionService) Get(id string) (*model.TransactionModel, error) {
	return s.repo.FindByID(id)
}

// List 分页查询交易
func (s *transactionService) List(filter *repository.TransactionFilter) ([]*model.TransactionModel, int64, error) {
	return s.repo.FindByFilter(filter)
}

// CheckApproval 预检审批决策,不产生任何状态变化
// 供列表渲染方决定是否展示审批按钮
func (s *transactionService) CheckApproval(amount float64, role policy.Role) policy.ApprovalResult {
	return s.approval.Evaluate(policy.ApprovalContext{Amount: amount, Role: role})
}

// Approve 审批同意交易
// 状态门控在此处施加: 策略引擎本身不读取交易状态
func (s *transactionService) Approve(ctx context.Context, id string, actor *Actor, comment string) (*model.TransactionModel, error) {
	tx, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !tx.IsPending() {
		return nil, fmt.Errorf("%w (status: %s)", ErrTransactionNotPending, tx.Status)
	}

	role := actor.EffectiveRole()
	result := s.approval.Evaluate(policy.ApprovalContext{Amount: tx.Amount, Role: role})
	if !result.CanApprove {
		metrics.RecordApprovalDecision("denied")
		return nil, &ApprovalDeniedError{Result: result}
	}

	now := time.Now()
	tx.Status = model.TransactionStatusApproved
	tx.DecidedBy = actor.UserID
	tx.DecidedAt = &now
	tx.DecisionReason = comment
	tx.UpdatedAt = now

	if err := s.repo.Save(tx); err != nil {
		return nil, fmt.Errorf("failed to approve transaction: %w", err)
	}

	metrics.RecordApprovalDecision("approved")
	s.audit.Record(&AuditEntry{
		UserID:       actor.UserID,
		Action:       "approve",
		ResourceType: "transaction",
		ResourceID:   tx.ID,
		RequestID:    actor.RequestID,
		IP:           actor.IP,
		Details:      map[string]interface{}{"amount": tx.Amount, "role": string(role), "tier": string(result.Tier)},
	})
	s.notify("transaction.approved", tx)

	s.logger.WithFields(logrus.Fields{
		"transaction_id": tx.ID,
		"amount":         tx.Amount,
		"role":           string(role),
	}).Info("transaction approved")

	return tx, nil
}

// Reject 审批驳回交易
// 驳回使用与审批相同的金额分层门控,且必须填写原因
func (s *transactionService) Reject(ctx context.Context, id string, actor *Actor, reason string) (*model.TransactionModel, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}

	tx, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !tx.IsPending() {
		return nil, fmt.Errorf("%w (status: %s)", ErrTransactionNotPending, tx.Status)
	}

	role := actor.EffectiveRole()
	result := s.approval.Evaluate(policy.ApprovalContext{Amount: tx.Amount, Role: role})
	if !result.CanApprove {
		metrics.RecordApprovalDecision("denied")
		return nil, &ApprovalDeniedError{Result: result}
	}

	now := time.Now()
	tx.Status = model.TransactionStatusRejected
	tx.DecidedBy = actor.UserID
	tx.DecidedAt = &now
	tx.DecisionReason = reason
	tx.UpdatedAt = now

	if err := s.repo.Save(tx); err != nil {
		return nil, fmt.Errorf("failed to reject transaction: %w", err)
	}

	metrics.RecordApprovalDecision("rejected")
	s.audit.Record(&AuditEntry{
		UserID:       actor.UserID,
		Action:       "reject",
		ResourceType: "transaction",
		ResourceID:   tx.ID,
		RequestID:    actor.RequestID,
		IP:           actor.IP,
		Details:      map[string]interface{}{"amount": tx.Amount, "reason": reason},
	})
	s.notify("transaction.rejected", tx)

	return tx, nil
}

// notify 推送交易事件,通知器缺席时静默跳过
func (s *transactionService) notify(eventType string, tx *model.TransactionModel) {
	if s.notifier != nil {
		s.notifier.NotifyTransactionEvent(eventType, tx)
	}
}
