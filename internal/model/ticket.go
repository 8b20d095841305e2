package model

import (
	"errors"
	"time"
)

// TicketModel 客服工单数据模型
type TicketModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	OwnerID   string    `gorm:"type:varchar(64);not null;index" json:"owner_id"`
	Subject   string    `gorm:"type:varchar(255);not null" json:"subject"`
	Content   string    `gorm:"type:text" json:"content"`
	Status    string    `gorm:"type:varchar(32);not null;index" json:"status"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName 指定表名
func (TicketModel) TableName() string {
	return "tickets"
}

// Validate 验证工单模型
func (tm *TicketModel) Validate() error {
	if tm.ID == "" {
		return errors.New("ticket ID is required")
	}
	if tm.OwnerID == "" {
		return errors.New("owner ID is required")
	}
	if tm.Subject == "" {
		return errors.New("ticket subject is required")
	}
	if tm.Status == "" {
		return errors.New("ticket status is required")
	}
	return nil
}
