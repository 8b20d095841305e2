package policy

// 审批金额分层边界（上界均为闭区间: 恰好等于边界值的金额落在下层）
const (
	SmallTierMax  = 1000.0
	MediumTierMax = 10000.0
	LargeTierMax  = 50000.0
)

// Tier 审批金额分层
type Tier string

const (
	TierSmall     Tier = "small"
	TierMedium    Tier = "medium"
	TierLarge     Tier = "large"
	TierVeryLarge Tier = "very_large"
)

// ApprovalContext 审批上下文,每次审批检查时构建,用后即弃
type ApprovalContext struct {
	Amount float64
	Role   Role
}

// ApprovalResult 审批决策结果
// RequiredRole 为空表示该层不要求特定角色
type ApprovalResult struct {
	CanApprove   bool   `json:"can_approve"`
	RequiredRole Role   `json:"required_role,omitempty"`
	Reason       string `json:"reason,omitempty"`
	Tier         Tier   `json:"tier,omitempty"`
}

// tierRule 单条审批规则: 金额区间判定 + 角色决策
// 规则表按金额区间升序排列,自上而下求值,首个命中者即产生结果
type tierRule struct {
	tier    Tier
	matches func(amount float64) bool
	decide  func(role Role) ApprovalResult
}

// ApprovalPolicy 交易审批策略
// 在进程启动时构建一次,之后只读,可被任意多个调用方并发使用
type ApprovalPolicy struct {
	rules []tierRule
}

// NewApprovalPolicy 构建审批策略
// 四个金额层对 [0, +inf) 构成不相交的完整覆盖,
// 最后一层使用显式谓词 amount > 50000 而非依赖排列顺序的兜底
func NewApprovalPolicy() *ApprovalPolicy {
	return &ApprovalPolicy{
		rules: []tierRule{
			{
				tier:    TierSmall,
				matches: func(amount float64) bool { return amount <= SmallTierMax },
				decide: func(Role) ApprovalResult {
					// 小额交易任意角色均可审批
					return ApprovalResult{CanApprove: true, Tier: TierSmall}
				},
			},
			{
				tier:    TierMedium,
				matches: func(amount float64) bool { return amount > SmallTierMax && amount <= MediumTierMax },
				decide: func(role Role) ApprovalResult {
					if role == RoleManager || role == RoleAdmin {
						return ApprovalResult{CanApprove: true, RequiredRole: RoleManager, Tier: TierMedium}
					}
					return ApprovalResult{CanApprove: false, RequiredRole: RoleManager, Tier: TierMedium}
				},
			},
			{
				tier:    TierLarge,
				matches: func(amount float64) bool { return amount > MediumTierMax && amount <= LargeTierMax },
				decide: func(role Role) ApprovalResult {
					if role == RoleAdmin {
						return ApprovalResult{CanApprove: true, RequiredRole: RoleAdmin, Tier: TierLarge}
					}
					return ApprovalResult{CanApprove: false, RequiredRole: RoleAdmin, Tier: TierLarge}
				},
			},
			{
				tier:    TierVeryLarge,
				matches: func(amount float64) bool { return amount > LargeTierMax },
				decide: func(Role) ApprovalResult {
					// 超大额交易不经此通道审批,需要提交董事审批
					return ApprovalResult{
						CanApprove:   false,
						RequiredRole: RoleAdmin,
						Reason:       "Director approval required",
						Tier:         TierVeryLarge,
					}
				},
			},
		},
	}
}

// Evaluate 求值审批决策
// 结果只取决于 (amount, role),无副作用,幂等
func (p *ApprovalPolicy) Evaluate(ctx ApprovalContext) ApprovalResult {
	for _, rule := range p.rules {
		if rule.matches(ctx.Amount) {
			return rule.decide(ctx.Role)
		}
	}

	// 按区间定义不可能走到这里,保守返回拒绝
	return ApprovalResult{CanApprove: false}
}

// TierOf 返回金额所属的审批层
func (p *ApprovalPolicy) TierOf(amount float64) Tier {
	for _, rule := range p.rules {
		if rule.matches(amount) {
			return rule.tier
		}
	}
	return TierVeryLarge
}
