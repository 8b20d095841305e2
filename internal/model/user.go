package model

import (
	"errors"
	"strings"
	"time"
)

// UserModel 用户数据模型
// Roles 以逗号分隔存储用户持有的全部角色标签,
// 有效角色在读取时由 policy.ResolveEffectiveRole 派生,不落库
type UserModel struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Username     string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"type:varchar(255);index" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Roles        string    `gorm:"type:varchar(255)" json:"roles"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// Validate 验证用户模型
func (um *UserModel) Validate() error {
	if um.ID == "" {
		return errors.New("user ID is required")
	}
	if um.Username == "" {
		return errors.New("username is required")
	}
	if um.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}

// RoleLabels 返回用户持有的角色标签列表
func (um *UserModel) RoleLabels() []string {
	if um.Roles == "" {
		return nil
	}
	parts := strings.Split(um.Roles, ",")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			labels = append(labels, trimmed)
		}
	}
	return labels
}

// SetRoleLabels 设置用户角色标签列表
func (um *UserModel) SetRoleLabels(labels []string) {
	cleaned := make([]string, 0, len(labels))
	for _, label := range labels {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	um.Roles = strings.Join(cleaned, ",")
}
