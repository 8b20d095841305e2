package policy

import "strings"

// AccountState 账户生命周期状态
type AccountState string

const (
	AccountStateActive    AccountState = "active"
	AccountStateFrozen    AccountState = "frozen"
	AccountStateSuspended AccountState = "suspended"
	AccountStateClosed    AccountState = "closed"
)

// GroupAccountPrefix 集团账户编号前缀
// 仅编号带此前缀的顶级账户允许创建子账户
const GroupAccountPrefix = "GRP-"

// AccountBehavior 账户状态行为表条目
type AccountBehavior struct {
	CanEditStatus    bool
	CanAddSubAccount bool
	EditableStatuses []AccountState
}

// accountStateTable 账户状态行为表（数据,非行为）
var accountStateTable = map[AccountState]AccountBehavior{
	AccountStateActive: {
		CanEditStatus:    true,
		CanAddSubAccount: true,
		EditableStatuses: []AccountState{AccountStateFrozen, AccountStateSuspended, AccountStateClosed},
	},
	AccountStateFrozen: {
		CanEditStatus:    true,
		CanAddSubAccount: false,
		EditableStatuses: []AccountState{AccountStateActive, AccountStateSuspended, AccountStateClosed},
	},
	AccountStateSuspended: {
		CanEditStatus:    false,
		CanAddSubAccount: false,
	},
	AccountStateClosed: {
		CanEditStatus:    false,
		CanAddSubAccount: false,
	},
}

// BehaviorFor 查询账户状态对应的行为
// 未知状态视为数据损坏,拒绝一切操作（fail closed）
func BehaviorFor(state AccountState) AccountBehavior {
	if behavior, ok := accountStateTable[state]; ok {
		return behavior
	}
	return AccountBehavior{}
}

// CanEditAccountStatus 判断给定角色能否编辑给定状态账户的状态
// 状态表允许编辑,且角色为经理或管理员时才放行
func CanEditAccountStatus(state AccountState, role Role) bool {
	if !BehaviorFor(state).CanEditStatus {
		return false
	}
	return role == RoleManager || role == RoleAdmin
}

// EditableStatuses 返回状态编辑器中可选择的目标状态集合
// 角色无编辑权限时返回空集
func EditableStatuses(state AccountState, role Role) []AccountState {
	if !CanEditAccountStatus(state, role) {
		return nil
	}
	return BehaviorFor(state).EditableStatuses
}

// CanAddSubAccount 判断能否在给定账户下创建子账户
// 条件: 状态表允许、角色为经理或管理员、账户为顶级账户且编号带集团前缀
func CanAddSubAccount(state AccountState, role Role, accountNumber string, topLevel bool) bool {
	if !BehaviorFor(state).CanAddSubAccount {
		return false
	}
	if role != RoleManager && role != RoleAdmin {
		return false
	}
	if !topLevel {
		return false
	}
	return strings.HasPrefix(accountNumber, GroupAccountPrefix)
}
