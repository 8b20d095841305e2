package repository

import (
	"github.com/banklite/backoffice-gin/internal/model"
	"gorm.io/gorm"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	Save(user *model.UserModel) error
	FindByID(id string) (*model.UserModel, error)
	FindByUsername(username string) (*model.UserModel, error)
	FindByFilter(filter *UserFilter) ([]*model.UserModel, int64, error)
}

// UserFilter 用户查询过滤器
type UserFilter struct {
	Username *string
	Active   *bool
	Page     int
	PageSize int
}

// userRepository 用户仓储实现
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Save 保存用户
func (r *userRepository) Save(user *model.UserModel) error {
	return r.db.Save(user).Error
}

// FindByID 根据 ID 查找用户
func (r *userRepository) FindByID(id string) (*model.UserModel, error) {
	var user model.UserModel
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername 根据用户名查找用户
func (r *userRepository) FindByUsername(username string) (*model.UserModel, error) {
	var user model.UserModel
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByFilter 根据过滤器分页查找用户
func (r *userRepository) FindByFilter(filter *UserFilter) ([]*model.UserModel, int64, error) {
	query := r.db.Model(&model.UserModel{})

	if filter != nil {
		if filter.Username != nil {
			query = query.Where("username LIKE ?", "%"+*filter.Username+"%")
		}
		if filter.Active != nil {
			query = query.Where("active = ?", *filter.Active)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter != nil && filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var users []*model.UserModel
	err := query.Order("created_at DESC").Find(&users).Error
	return users, total, err
}
