package repository

import (
	"github.com/banklite/backoffice-gin/internal/model"
	"gorm.io/gorm"
)

// TicketRepository 工单仓储接口
type TicketRepository interface {
	Save(ticket *model.TicketModel) error
	FindByID(id string) (*model.TicketModel, error)
	FindByFilter(filter *TicketFilter) ([]*model.TicketModel, int64, error)
	CountByStatus() (map[string]int64, error)
}

// TicketFilter 工单查询过滤器
type TicketFilter struct {
	Status   *string
	OwnerID  *string
	Page     int
	PageSize int
}

// ticketRepository 工单仓储实现
type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository 创建工单仓储
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

// Save 保存工单
func (r *ticketRepository) Save(ticket *model.TicketModel) error {
	return r.db.Save(ticket).Error
}

// FindByID 根据 ID 查找工单
func (r *ticketRepository) FindByID(id string) (*model.TicketModel, error) {
	var ticket model.TicketModel
	if err := r.db.Where("id = ?", id).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// FindByFilter 根据过滤器分页查找工单
func (r *ticketRepository) FindByFilter(filter *TicketFilter) ([]*model.TicketModel, int64, error) {
	query := r.db.Model(&model.TicketModel{})

	if filter != nil {
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.OwnerID != nil {
			query = query.Where("owner_id = ?", *filter.OwnerID)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter != nil && filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var tickets []*model.TicketModel
	err := query.Order("created_at DESC").Find(&tickets).Error
	return tickets, total, err
}

// CountByStatus 按状态统计工单数量
func (r *ticketRepository) CountByStatus() (map[string]int64, error) {
	var results []struct {
		Status string
		Count  int64
	}

	err := r.db.Model(&model.TicketModel{}).
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
