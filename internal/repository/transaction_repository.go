package repository

import (
	"github.com/banklite/backoffice-gin/internal/model"
	"gorm.io/gorm"
)

// TransactionRepository 交易仓储接口
type TransactionRepository interface {
	Save(tx *model.TransactionModel) error
	FindByID(id string) (*model.TransactionModel, error)
	FindByFilter(filter *TransactionFilter) ([]*model.TransactionModel, int64, error)
	CountByStatus() (map[string]int64, error)
}

// TransactionFilter 交易查询过滤器
type TransactionFilter struct {
	Status    *string
	AccountID *string
	CreatedBy *string
	MinAmount *float64
	MaxAmount *float64
	StartTime *string
	EndTime   *string
	Page      int
	PageSize  int
}

// transactionRepository 交易仓储实现
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository 创建交易仓储
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Save 保存交易
func (r *transactionRepository) Save(tx *model.TransactionModel) error {
	return r.db.Save(tx).Error
}

// FindByID 根据 ID 查找交易
func (r *transactionRepository) FindByID(id string) (*model.TransactionModel, error) {
	var tx model.TransactionModel
	if err := r.db.Where("id = ?", id).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

// FindByFilter 根据过滤器分页查找交易,返回记录与总数
func (r *transactionRepository) FindByFilter(filter *TransactionFilter) ([]*model.TransactionModel, int64, error) {
	query := r.db.Model(&model.TransactionModel{})

	if filter != nil {
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.AccountID != nil {
			query = query.Where("account_id = ?", *filter.AccountID)
		}
		if filter.CreatedBy != nil {
			query = query.Where("created_by = ?", *filter.CreatedBy)
		}
		if filter.MinAmount != nil {
			query = query.Where("amount >= ?", *filter.MinAmount)
		}
		if filter.MaxAmount != nil {
			query = query.Where("amount <= ?", *filter.MaxAmount)
		}
		if filter.StartTime != nil {
			query = query.Where("created_at >= ?", *filter.StartTime)
		}
		if filter.EndTime != nil {
			query = query.Where("created_at <= ?", *filter.EndTime)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter != nil && filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var txs []*model.TransactionModel
	err := query.Order("created_at DESC").Find(&txs).Error
	return txs, total, err
}

// CountByStatus 按状态统计交易数量
func (r *transactionRepository) CountByStatus() (map[string]int64, error) {
	var results []struct {
		Status string
		Count  int64
	}

	err := r.db.Model(&model.TransactionModel{}).
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
