package repository

import (
	"github.com/banklite/backoffice-gin/internal/model"
	"gorm.io/gorm"
)

// AccountRepository 账户仓储接口
type AccountRepository interface {
	Save(account *model.AccountModel) error
	FindByID(id string) (*model.AccountModel, error)
	FindByNumber(number string) (*model.AccountModel, error)
	FindByFilter(filter *AccountFilter) ([]*model.AccountModel, int64, error)
	FindSubAccounts(parentID string) ([]*model.AccountModel, error)
	CountByStatus() (map[string]int64, error)
}

// AccountFilter 账户查询过滤器
type AccountFilter struct {
	Status   *string
	OwnerID  *string
	TopLevel bool // 仅顶级账户
	Page     int
	PageSize int
}

// accountRepository 账户仓储实现
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository 创建账户仓储
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Save 保存账户
func (r *accountRepository) Save(account *model.AccountModel) error {
	return r.db.Save(account).Error
}

// FindByID 根据 ID 查找账户
func (r *accountRepository) FindByID(id string) (*model.AccountModel, error) {
	var account model.AccountModel
	if err := r.db.Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByNumber 根据账户编号查找账户
func (r *accountRepository) FindByNumber(number string) (*model.AccountModel, error) {
	var account model.AccountModel
	if err := r.db.Where("number = ?", number).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByFilter 根据过滤器分页查找账户
func (r *accountRepository) FindByFilter(filter *AccountFilter) ([]*model.AccountModel, int64, error) {
	query := r.db.Model(&model.AccountModel{})

	if filter != nil {
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.OwnerID != nil {
			query = query.Where("owner_id = ?", *filter.OwnerID)
		}
		if filter.TopLevel {
			query = query.Where("parent_id IS NULL OR parent_id = ''")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter != nil && filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var accounts []*model.AccountModel
	err := query.Order("created_at DESC").Find(&accounts).Error
	return accounts, total, err
}

// FindSubAccounts 查找某账户下的全部子账户
func (r *accountRepository) FindSubAccounts(parentID string) ([]*model.AccountModel, error) {
	var accounts []*model.AccountModel
	err := r.db.Where("parent_id = ?", parentID).Order("created_at DESC").Find(&accounts).Error
	return accounts, err
}

// CountByStatus 按状态统计账户数量
func (r *accountRepository) CountByStatus() (map[string]int64, error) {
	var results []struct {
		Status string
		Count  int64
	}

	err := r.db.Model(&model.AccountModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(results))
	for _, r := range results {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
