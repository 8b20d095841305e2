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
)

var (
	// ErrTicketNotVisible 请求者无权查看该工单
	ErrTicketNotVisible = errors.New("ticket is not visible to the requesting user")
	// ErrTicketEditDenied 角色无权修改工单状态
	ErrTicketEditDenied = errors.New("ticket status edit is not permitted for this role")
	// ErrInvalidTicketStatus 未知的工单状态
	ErrInvalidTicketStatus = errors.New("invalid ticket status")
)

// CreateTicketRequest 创建工单请求
type CreateTicketRequest struct {
	Subject string `json:"subject" binding:"required"`
	Content string `json:"content"`
}

// TicketService 工单服务接口
type TicketService interface {
	Create(ctx context.Context, req *CreateTicketRequest, actor *Actor) (*model.TicketModel, error)
	Get(id string, actor *Actor) (*model.TicketModel, error)
	List(filter *repository.TicketFilter, actor *Actor) ([]*model.TicketModel, int64, error)
	UpdateStatus(ctx context.Context, id string, target policy.TicketStatus, actor *Actor) (*model.TicketModel, error)
}

// ticketService 工单服务实现
type ticketService struct {
	repo  repository.TicketRepository
	audit AuditLogService
}

// NewTicketService 创建工单服务
func NewTicketService(repo repository.TicketRepository, audit AuditLogService) TicketService {
	return &ticketService{repo: repo, audit: audit}
}

// Create 创建工单,归属创建者,初始状态为 pending
func (s *ticketService) Create(ctx context.Context, req *CreateTicketRequest, actor *Actor) (*model.TicketModel, error) {
	now := time.Now()
	ticket := &model.TicketModel{
		ID:        uuid.New().String(),
		OwnerID:   actor.UserID,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    string(policy.TicketStatusPending),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ticket.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	s.audit.Record(&AuditEntry{
		UserID:       actor.UserID,
		Action:       "create",
		ResourceType: "ticket",
		ResourceID:   ticket.ID,
		RequestID:    actor.RequestID,
		IP:           actor.IP,
	})

	return ticket, nil
}

// Get 获取工单,受可见性策略约束
func (s *ticketService) Get(id string, actor *Actor) (*model.TicketModel, error) {
	ticket, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if !policy.CanViewTicket(actor.EffectiveRole(), actor.UserID, ticket.OwnerID) {
		return nil, ErrTicketNotVisible
	}
	return ticket, nil
}

// List 分页查询工单
// 非管理员角色强制只能查到自己的工单
func (s *ticketService) List(filter *repository.TicketFilter, actor *Actor) ([]*model.TicketModel, int64, error) {
	if filter == nil {
		filter = &repository.TicketFilter{}
	}

	if actor.EffectiveRole() != policy.RoleAdmin {
		owner := actor.UserID
		filter.OwnerID = &owner
	}

	return s.repo.FindByFilter(filter)
}

// UpdateStatus 修改工单状态
// 仅管理员可修改;目标状态必须合法且与当前状态不同,流转顺序不做约束
func (s *ticketService) UpdateStatus(ctx context.Context, id string, target policy.TicketStatus, actor *Actor) (*model.TicketModel, error) {
	if !policy.ValidTicketStatus(target) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTicketStatus, target)
	}

	ticket, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if !policy.CanEditTicketStatus(actor.EffectiveRole()) {
		return nil, ErrTicketEditDenied
	}
	if ticket.Status == string(target) {
		return ticket, nil
	}

	previous := ticket.Status
	ticket.Status = string(target)
	ticket.UpdatedAt = time.Now()

	if err := s.repo.Save(ticket); err != nil {
		return nil, fmt.Errorf("failed to update ticket status: %w", err)
	}

	s.audit.Record(&AuditEntry{
		UserID:       actor.UserID,
		Action:       "status_change",
		ResourceType: "ticket",
		ResourceID:   ticket.ID,
		RequestID:    actor.RequestID,
		IP:           actor.IP,
		Details:      map[string]interface{}{"from": previous, "to": string(target)},
	})

	return ticket, nil
}
