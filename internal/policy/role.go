package policy

import "strings"

// Role 用户角色（封闭枚举）
type Role string

const (
	RoleCustomer Role = "customer"
	RoleTeller   Role = "teller"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// rolePrecedence 角色优先级列表,从高到低
// ResolveEffectiveRole 按此顺序扫描,返回第一个命中的角色
var rolePrecedence = []Role{RoleAdmin, RoleManager, RoleTeller, RoleCustomer}

// Valid 判断角色是否为已知角色
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleTeller, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// ParseRole 解析角色标签,忽略大小写
// 无法识别的标签返回 RoleCustomer
func ParseRole(label string) Role {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "admin":
		return RoleAdmin
	case "manager":
		return RoleManager
	case "teller":
		return RoleTeller
	default:
		return RoleCustomer
	}
}

// ResolveEffectiveRole 从用户持有的角色标签集合中解析有效角色
// 按固定优先级 admin > manager > teller > customer 取最高者;
// 输入为空或全部无法识别时,默认返回 RoleCustomer
func ResolveEffectiveRole(labels []string) Role {
	if len(labels) == 0 {
		return RoleCustomer
	}

	held := make(map[Role]bool, len(labels))
	for _, label := range labels {
		normalized := strings.ToLower(strings.TrimSpace(label))
		switch normalized {
		case "admin":
			held[RoleAdmin] = true
		case "manager":
			held[RoleManager] = true
		case "teller":
			held[RoleTeller] = true
		case "customer":
			held[RoleCustomer] = true
		}
	}

	for _, role := range rolePrecedence {
		if held[role] {
			return role
		}
	}

	return RoleCustomer
}
