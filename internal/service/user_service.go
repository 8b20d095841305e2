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
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials 用户名或密码错误
var ErrInvalidCredentials = errors.New("invalid username or password")

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Username string   `json:"username" binding:"required"`
	Email    string   `json:"email"`
	Password string   `json:"password" binding:"required,min=8"`
	Roles    []string `json:"roles"`
}

// UserService 用户服务接口
type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest, actor *Actor) (*model.UserModel, error)
	Get(id string) (*model.UserModel, error)
	List(filter *repository.UserFilter) ([]*model.UserModel, int64, error)
	UpdateRoles(ctx context.Context, id string, roles []string, actor *Actor) (*model.UserModel, error)
	Authenticate(username, password string) (*model.UserModel, error)
	EffectiveRole(user *model.UserModel) policy.Role
}

// userService 用户服务实现
type userService struct {
	repo  repository.UserRepository
	audit AuditLogService
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository, audit AuditLogService) UserService {
	return &userService{repo: repo, audit: audit}
}

// Create 创建用户,密码使用 bcrypt 哈希存储
func (s *userService) Create(ctx context.Context, req *CreateUserRequest, actor *Actor) (*model.UserModel, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.UserModel{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user.SetRoleLabels(req.Roles)

	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit.Record(&AuditEntry{
		UserID:       actor.UserID,
		Action:       "create",
		ResourceType: "user",
		ResourceID:   user.ID,
		RequestID:    actor.RequestID,
		IP:           actor.IP,
		Details:      map[string]interface{}{"roles": req.Roles},
	})

	return user, nil
}

// Get 获取用户
func (s *userService) Get(id string) (*model.UserModel, error) {
	return s.repo.FindByID(id)
}

// List 分页查询用户
func (s *userService) List(filter *repository.UserFilter) ([]*model.UserModel, int64, error) {
	return s.repo.FindByFilter(filter)
}

// UpdateRoles 更新用户角色标签集合
func (s *userService) UpdateRoles(ctx context.Context, id string, roles []string, actor *Actor) (*model.UserModel, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	previous := user.Roles
	user.SetRoleLabels(roles)
	user.UpdatedAt = time.Now()

	if err := s.repo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to update user roles: %w", err)
	}

	s.audit.Record(&AuditEntry{
		UserID:       actor.UserID,
		Action:       "update_roles",
		ResourceType: "user",
		ResourceID:   user.ID,
		RequestID:    actor.RequestID,
		IP:           actor.IP,
		Details:      map[string]interface{}{"from": previous, "to": user.Roles},
	})

	return user, nil
}

// Authenticate 校验用户名和密码
// 登录失败统一返回 ErrInvalidCredentials,不区分用户不存在与密码错误
func (s *userService) Authenticate(username, password string) (*model.UserModel, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// EffectiveRole 从持久化的角色标签派生有效角色
// 每次读取时重新计算,不落库
func (s *userService) EffectiveRole(user *model.UserModel) policy.Role {
	if user == nil {
		return policy.RoleCustomer
	}
	return policy.ResolveEffectiveRole(user.RoleLabels())
}
