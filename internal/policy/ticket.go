package policy

// TicketStatus 工单状态
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "pending"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
)

// ValidTicketStatus 判断是否为已知工单状态
func ValidTicketStatus(status TicketStatus) bool {
	switch status {
	case TicketStatusPending, TicketStatusInProgress, TicketStatusResolved:
		return true
	}
	return false
}

// CanViewTicket 判断请求者能否看到某个工单
// 仅管理员可见全部工单,其余角色（含柜员/经理）只可见自己的工单
func CanViewTicket(role Role, requesterID, ownerID string) bool {
	if role == RoleAdmin {
		return true
	}
	return requesterID == ownerID
}

// CanEditTicketStatus 判断角色能否修改工单状态
// 仅管理员可修改;状态流转顺序本身不在此层约束
func CanEditTicketStatus(role Role) bool {
	return role == RoleAdmin
}
