package model

import (
	"errors"
	"time"
)

// AccountModel 账户数据模型
// ParentID 为空表示顶级账户,子账户通过 ParentID 指向上级
type AccountModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Number    string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"number"`
	OwnerID   string    `gorm:"type:varchar(64);not null;index" json:"owner_id"`
	ParentID  *string   `gorm:"type:varchar(64);index" json:"parent_id,omitempty"`
	Status    string    `gorm:"type:varchar(32);not null;index" json:"status"`
	Balance   float64   `gorm:"type:decimal(20,2);not null;default:0" json:"balance"`
	Currency  string    `gorm:"type:varchar(8);not null;default:'USD'" json:"currency"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName 指定表名
func (AccountModel) TableName() string {
	return "accounts"
}

// Validate 验证账户模型
func (am *AccountModel) Validate() error {
	if am.ID == "" {
		return errors.New("account ID is required")
	}
	if am.Number == "" {
		return errors.New("account number is required")
	}
	if am.OwnerID == "" {
		return errors.New("owner ID is required")
	}
	if am.Status == "" {
		return errors.New("account status is required")
	}
	return nil
}

// IsTopLevel 判断是否为顶级账户
func (am *AccountModel) IsTopLevel() bool {
	return am.ParentID == nil || *am.ParentID == ""
}
