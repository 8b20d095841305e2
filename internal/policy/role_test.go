package policy_test

import (
	"testing"

	"github.com/banklite/backoffice-gin/internal/policy"
	"github.com/stretchr/testify/assert"
)

// TestResolveEffectiveRole 有效角色按固定优先级解析
func TestResolveEffectiveRole(t *testing.T) {
	cases := []struct {
		name   string
		labels []string
		want   policy.Role
	}{
		{"空集合默认为客户", []string{}, policy.RoleCustomer},
		{"nil 默认为客户", nil, policy.RoleCustomer},
		{"无法识别的标签默认为客户", []string{"auditor", "guest"}, policy.RoleCustomer},
		{"单一角色", []string{"teller"}, policy.RoleTeller},
		{"最高优先级胜出", []string{"Teller", "Admin"}, policy.RoleAdmin},
		{"顺序无关", []string{"admin", "teller"}, policy.RoleAdmin},
		{"经理高于柜员", []string{"teller", "manager", "customer"}, policy.RoleManager},
		{"大小写不敏感", []string{"MANAGER"}, policy.RoleManager},
		{"带空白字符", []string{"  admin  "}, policy.RoleAdmin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, policy.ResolveEffectiveRole(tc.labels))
		})
	}
}

// TestParseRole 单标签解析
func TestParseRole(t *testing.T) {
	assert.Equal(t, policy.RoleAdmin, policy.ParseRole("Admin"))
	assert.Equal(t, policy.RoleManager, policy.ParseRole("manager"))
	assert.Equal(t, policy.RoleTeller, policy.ParseRole("TELLER"))
	assert.Equal(t, policy.RoleCustomer, policy.ParseRole("customer"))
	assert.Equal(t, policy.RoleCustomer, policy.ParseRole("unknown"))
	assert.Equal(t, policy.RoleCustomer, policy.ParseRole(""))
}
