package policy_test

import (
	"testing"

	"github.com/banklite/backoffice-gin/internal/policy"
	"github.com/stretchr/testify/assert"
)

// TestCanViewTicket 工单可见性
func TestCanViewTicket(t *testing.T) {
	// 仅管理员可见全部工单
	assert.True(t, policy.CanViewTicket(policy.RoleAdmin, "user-1", "user-2"))

	// 其余角色只可见自己的工单,柜员和经理也不例外
	for _, role := range []policy.Role{policy.RoleCustomer, policy.RoleTeller, policy.RoleManager} {
		assert.True(t, policy.CanViewTicket(role, "user-1", "user-1"))
		assert.False(t, policy.CanViewTicket(role, "user-1", "user-2"))
	}
}

// TestCanViewTicket_Filter 按用户归属过滤工单集合
func TestCanViewTicket_Filter(t *testing.T) {
	owners := []string{"1", "2", "1", "2"}

	var visibleToCustomer []string
	for _, owner := range owners {
		if policy.CanViewTicket(policy.RoleCustomer, "1", owner) {
			visibleToCustomer = append(visibleToCustomer, owner)
		}
	}
	assert.Equal(t, []string{"1", "1"}, visibleToCustomer)

	var visibleToAdmin []string
	for _, owner := range owners {
		if policy.CanViewTicket(policy.RoleAdmin, "99", owner) {
			visibleToAdmin = append(visibleToAdmin, owner)
		}
	}
	assert.Equal(t, owners, visibleToAdmin)
}

// TestCanEditTicketStatus 仅管理员可修改工单状态
func TestCanEditTicketStatus(t *testing.T) {
	assert.True(t, policy.CanEditTicketStatus(policy.RoleAdmin))
	assert.False(t, policy.CanEditTicketStatus(policy.RoleManager))
	assert.False(t, policy.CanEditTicketStatus(policy.RoleTeller))
	assert.False(t, policy.CanEditTicketStatus(policy.RoleCustomer))
}

// TestValidTicketStatus 工单状态枚举
func TestValidTicketStatus(t *testing.T) {
	assert.True(t, policy.ValidTicketStatus(policy.TicketStatusPending))
	assert.True(t, policy.ValidTicketStatus(policy.TicketStatusInProgress))
	assert.True(t, policy.ValidTicketStatus(policy.TicketStatusResolved))
	assert.False(t, policy.ValidTicketStatus(policy.TicketStatus("archived")))
}
