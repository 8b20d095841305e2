package service_test

import (
	"context"
	"testing"

	"github.com/banklite/backoffice-gin/internal/model"
	"github.com/banklite/backoffice-gin/internal/policy"
	"github.com/banklite/backoffice-gin/internal/repository"
	"github.com/banklite/backoffice-gin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupUserService 创建测试数据库与用户服务
func setupUserService(t *testing.T) service.UserService {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&model.UserModel{}, &model.AuditLogModel{})
	require.NoError(t, err)

	auditService := service.NewAuditLogService(repository.NewAuditLogRepository(db), nil)
	return service.NewUserService(repository.NewUserRepository(db), auditService)
}

// TestUser_CreateHashesPassword 测试密码以 bcrypt 哈希存储
func TestUser_CreateHashesPassword(t *testing.T) {
	svc := setupUserService(t)

	user, err := svc.Create(context.Background(), &service.CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret-pass-1",
		Roles:    []string{"teller"},
	}, adminActor())
	require.NoError(t, err)

	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret-pass-1", user.PasswordHash)
	assert.Equal(t, []string{"teller"}, user.RoleLabels())
}

// TestUser_Authenticate 测试登录验证
func TestUser_Authenticate(t *testing.T) {
	svc := setupUserService(t)

	_, err := svc.Create(context.Background(), &service.CreateUserRequest{
		Username: "bob",
		Password: "secret-pass-2",
	}, adminActor())
	require.NoError(t, err)

	// 正确密码
	user, err := svc.Authenticate("bob", "secret-pass-2")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)

	// 错误密码与不存在的用户返回同一错误
	_, err = svc.Authenticate("bob", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = svc.Authenticate("nobody", "whatever")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

// TestUser_EffectiveRole 测试有效角色从标签集合派生
func TestUser_EffectiveRole(t *testing.T) {
	svc := setupUserService(t)

	user, err := svc.Create(context.Background(), &service.CreateUserRequest{
		Username: "carol",
		Password: "secret-pass-3",
		Roles:    []string{"teller", "manager"},
	}, adminActor())
	require.NoError(t, err)

	// 多标签取最高优先级
	assert.Equal(t, policy.RoleManager, svc.EffectiveRole(user))

	// 无标签默认为客户
	user.SetRoleLabels(nil)
	assert.Equal(t, policy.RoleCustomer, svc.EffectiveRole(user))
}

// TestUser_UpdateRoles 测试更新角色标签集合
func TestUser_UpdateRoles(t *testing.T) {
	svc := setupUserService(t)

	user, err := svc.Create(context.Background(), &service.CreateUserRequest{
		Username: "dave",
		Password: "secret-pass-4",
		Roles:    []string{"teller"},
	}, adminActor())
	require.NoError(t, err)

	updated, err := svc.UpdateRoles(context.Background(), user.ID, []string{"manager", "admin"}, adminActor())
	require.NoError(t, err)
	assert.Equal(t, []string{"manager", "admin"}, updated.RoleLabels())
	assert.Equal(t, policy.RoleAdmin, svc.EffectiveRole(updated))
}
