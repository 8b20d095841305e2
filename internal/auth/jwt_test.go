package auth_test

import (
	"testing"
	"time"

	"github.com/banklite/backoffice-gin/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTokenManager_IssueAndValidate 测试签发与验证 Token
func TestTokenManager_IssueAndValidate(t *testing.T) {
	manager := auth.NewTokenManager("test-secret-key", "backoffice-gin", time.Hour)

	token, err := manager.Issue("user-001", "alice", []string{"teller", "manager"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-001", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, []string{"teller", "manager"}, claims.Roles)
	assert.Equal(t, "backoffice-gin", claims.Issuer)
}

// TestTokenManager_ValidateWrongSecret 测试密钥不匹配的 Token 被拒绝
func TestTokenManager_ValidateWrongSecret(t *testing.T) {
	issuer := auth.NewTokenManager("secret-a", "backoffice-gin", time.Hour)
	validator := auth.NewTokenManager("secret-b", "backoffice-gin", time.Hour)

	token, err := issuer.Issue("user-001", "alice", nil)
	require.NoError(t, err)

	_, err = validator.Validate(token)
	assert.Error(t, err)
}

// TestTokenManager_ValidateExpired 测试过期 Token 被拒绝
func TestTokenManager_ValidateExpired(t *testing.T) {
	manager := auth.NewTokenManager("test-secret-key", "backoffice-gin", time.Nanosecond)

	token, err := manager.Issue("user-001", "alice", nil)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = manager.Validate(token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

// TestTokenManager_ValidateGarbage 测试非法字符串被拒绝
func TestTokenManager_ValidateGarbage(t *testing.T) {
	manager := auth.NewTokenManager("test-secret-key", "backoffice-gin", time.Hour)

	_, err := manager.Validate("not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
