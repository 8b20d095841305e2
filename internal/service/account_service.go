package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/banklite/backoffice-gin/internal/model"
	"github.com/banklite/backoffice-gin/internal/policy"
	"github.com/banklite/backoffice-gin/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrStatusEditDenied 当前角色或账户状态不允许编辑状态
	ErrStatusEditDenied = errors.New("account status edit is not permitted")
	// ErrStatusNotEditable 目标状态不在可选集合内
	ErrStatusNotEditable = errors.New("target status is not editable from current state")
	// ErrSubAccountDenied 不允许在该账户下创建子账户
	ErrSubAccountDenied = errors.New("sub-account creation is not permitted")
	// ErrAccountNumberTaken 账户编号已存在
	ErrAccountNumberTaken = errors.New("account number already exists")
)

// CreateAccountRequest 创建账户请求
type CreateAccountRequest struct {
	Number   string  `json:"number" binding:"required"`
	OwnerID  string  `json:"owner_id" binding:"required"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// AccountBehaviorView 账户行为视图
// 供表格渲染方决定是否展示状态编辑器和子账户按钮
type AccountBehaviorView struct {
	CanEditStatus    bool                  `json:"can_edit_status"`
	CanAddSubAccount bool                  `json:"can_add_sub_account"`
	EditableStatuses []policy.AccountState `json:"editable_statuses,omitempty"`
}

// AccountService 账户服务接口
type AccountService interface {
	Create(ctx context.Context, req *CreateAccountRequest, actor *Actor) (*model.AccountModel, error)
	Get(id string) (*model.AccountModel, error)
	List(filter *repository.AccountFilter) ([]*model.AccountModel, int64, error)
	Behavior(id string, role policy.Role) (*AccountBehaviorView, error)
	UpdateStatus(ctx context.Context, id string, target policy.AccountState, actor *Actor) (*model.AccountModel, error)
	CreateSubAccount(ctx context.Context, parentID string, req *CreateAccountRequest, actor *Actor) (*model.AccountModel, error)
	ListSubAccounts(parentID string) ([]*model.AccountModel, error)
}

// accountService 账户服务实现
type accountService struct {
	repo  repository.AccountRepository
	audit AuditLogService
}

// NewAccountService 创建账户服务
func NewAccountService(repo repository.AccountRepository, audit AuditLogService) AccountService {
	return &accountService{repo: repo, audit: audit}
}

// checkNumberFree 校验账户编号未被占用
func (s *accountService) checkNumberFree(number string) error {
	_, err := s.repo.FindByNumber(number)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrAccountNumberTaken, number)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return err
	}
}

// Create 创建顶级账户,初始状态为 active
func (s *accountService) Create(ctx context.Context, req *CreateAccountRequest, actor *Actor) (*model.AccountModel, error) {
	if err := s.checkNumberFree(req.Number); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	account := &model.AccountModel{
		ID:        uuid.New().String(),
		Number:    req.Number,
		OwnerID:   req.OwnerID,
		Status:    string(policy.AccountStateActive),
		Balance:   req.Balance,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.audit.Record(&AuditEntry{
		UserID:       actor.UserID,
		Action:       "create",
		ResourceType: "account",
		ResourceID:   account.ID,
		RequestID:    actor.RequestID,
		IP:           actor.IP,
	})

	return account, nil
}

// Get 获取账户
func (s *accountService) Get(id string) (*model.AccountModel, error) {
	return s.repo.FindByID(id)
}

// List 分页查询账户
func (s *accountService) List(filter *repository.AccountFilter) ([]*model.AccountModel, int64, error) {
	return s.repo.FindByFilter(filter)
}

// Behavior 查询账户在给定角色下的可操作行为
func (s *accountService) Behavior(id string, role policy.Role) (*AccountBehaviorView, error) {
	account, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	state := policy.AccountState(account.Status)
	return &AccountBehaviorView{
		CanEditStatus:    policy.CanEditAccountStatus(state, role),
		CanAddSubAccount: policy.CanAddSubAccount(state, role, account.Number, account.IsTopLevel()),
		EditableStatuses: policy.EditableStatuses(state, role),
	}, nil
}

// UpdateStatus 编辑账户状态
// 角色与状态表双重门控,且目标状态必须在可选集合内
func (s *accountService) UpdateStatus(ctx context.Context, id string, target policy.AccountState, actor *Actor) (*model.AccountModel, error) {
	account, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	role := actor.EffectiveRole()
	state := policy.AccountState(account.Status)
	if !policy.CanEditAccountStatus(state, role) {
		return nil, ErrStatusEditDenied
	}

	allowed := false
	for _, st := range policy.EditableStatuses(state, role) {
		if st == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s -> %s", ErrStatusNotEditable, account.Status, target)
	}

	previous := account.Status
	account.Status = string(target)
	account.UpdatedAt = time.Now()

	if err := s.repo.Save(account); err != nil {
		return nil, fmt.Errorf("failed to update account status: %w", err)
	}

	s.audit.Record(&AuditEntry{
		UserID:       actor.UserID,
		Action:       "status_change",
		ResourceType: "account",
		ResourceID:   account.ID,
		RequestID:    actor.RequestID,
		IP:           actor.IP,
		Details:      map[string]interface{}{"from": previous, "to": string(target)},
	})

	return account, nil
}

// CreateSubAccount 在集团账户下创建子账户
// 限制: 父账户为活跃的顶级集团账户,操作者为经理或管理员
func (s *accountService) CreateSubAccount(ctx context.Context, parentID string, req *CreateAccountRequest, actor *Actor) (*model.AccountModel, error) {
	parent, err := s.repo.FindByID(parentID)
	if err != nil {
		return nil, err
	}

	role := actor.EffectiveRole()
	state := policy.AccountState(parent.Status)
	if !policy.CanAddSubAccount(state, role, parent.Number, parent.IsTopLevel()) {
		return nil, ErrSubAccountDenied
	}

	if err := s.checkNumberFree(req.Number); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = parent.Currency
	}

	now := time.Now()
	sub := &model.AccountModel{
		ID:        uuid.New().String(),
		Number:    req.Number,
		OwnerID:   req.OwnerID,
		ParentID:  &parent.ID,
		Status:    string(policy.AccountStateActive),
		Balance:   req.Balance,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(sub); err != nil {
		return nil, fmt.Errorf("failed to create sub-account: %w", err)
	}

	s.audit.Record(&AuditEntry{
		UserID:       actor.UserID,
		Action:       "create_sub_account",
		ResourceType: "account",
		ResourceID:   sub.ID,
		RequestID:    actor.RequestID,
		IP:           actor.IP,
		Details:      map[string]interface{}{"parent_id": parent.ID},
	})

	return sub, nil
}

// ListSubAccounts 查询某账户下的全部子账户
func (s *accountService) ListSubAccounts(parentID string) ([]*model.AccountModel, error) {
	if _, err := s.repo.FindByID(parentID); err != nil {
		return nil, err
	}
	return s.repo.FindSubAccounts(parentID)
}
