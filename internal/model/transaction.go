package model

import (
	"errors"
	"time"
)

// 交易状态
const (
	TransactionStatusPending   = "pending"
	TransactionStatusApproved  = "approved"
	TransactionStatusRejected  = "rejected"
	TransactionStatusCompleted = "completed"
)

// 交易类型
const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeTransfer   = "transfer"
)

// TransactionModel 交易数据模型
type TransactionModel struct {
	ID             string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	AccountID      string     `gorm:"type:varchar(64);not null;index" json:"account_id"`
	Type           string     `gorm:"type:varchar(32);not null" json:"type"`
	Amount         float64    `gorm:"type:decimal(20,2);not null" json:"amount"`
	Currency       string     `gorm:"type:varchar(8);not null;default:'USD'" json:"currency"`
	Status         string     `gorm:"type:varchar(32);not null;index" json:"status"`
	Description    string     `gorm:"type:text" json:"description"`
	CreatedBy      string     `gorm:"type:varchar(64);index" json:"created_by"`
	DecidedBy      string     `gorm:"type:varchar(64);index" json:"decided_by,omitempty"`
	DecidedAt      *time.Time `gorm:"index" json:"decided_at,omitempty"`
	DecisionReason string     `gorm:"type:text" json:"decision_reason,omitempty"`
	CreatedAt      time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null;index" json:"updated_at"`
}

// TableName 指定表名
func (TransactionModel) TableName() string {
	return "transactions"
}

// Validate 验证交易模型
func (tm *TransactionModel) Validate() error {
	if tm.ID == "" {
		return errors.New("transaction ID is required")
	}
	if tm.AccountID == "" {
		return errors.New("account ID is required")
	}
	if tm.Amount < 0 {
		return errors.New("transaction amount must be non-negative")
	}
	if tm.Status == "" {
		return errors.New("transaction status is required")
	}
	return nil
}

// IsPending 判断交易是否处于待审批状态
// 审批决策仅对 pending 状态的交易有意义
func (tm *TransactionModel) IsPending() bool {
	return tm.Status == TransactionStatusPending
}
