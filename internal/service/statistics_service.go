package service

import (
	"fmt"

	"github.com/banklite/backoffice-gin/internal/model"
	"gorm.io/gorm"
)

// StatisticsService 统计服务接口
type StatisticsService interface {
	GetTransactionStatistics() (*TransactionStatistics, error)
	GetTransactionStatisticsByTime() ([]*TransactionStatisticsByTime, error)
	GetAccountStatistics() ([]*AccountStatisticsByState, error)
	GetTicketStatistics() ([]*TicketStatisticsByStatus, error)
}

// TransactionStatistics 交易统计
type TransactionStatistics struct {
	Total         int64            `json:"total"`
	CountByStatus map[string]int64 `json:"count_by_status"`
	TotalAmount   float64          `json:"total_amount"`
	PendingAmount float64          `json:"pending_amount"`
	ApprovalRate  float64          `json:"approval_rate"`
}

// TransactionStatisticsByTime 按日统计交易
type TransactionStatisticsByTime struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// AccountStatisticsByState 按状态统计账户
type AccountStatisticsByState struct {
	State string `json:"state"`
	Count int64  `json:"count"`
}

// TicketStatisticsByStatus 按状态统计工单
type TicketStatisticsByStatus struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// statisticsService 统计服务实现
type statisticsService struct {
	db *gorm.DB
}

// NewStatisticsService 创建统计服务
func NewStatisticsService(db *gorm.DB) StatisticsService {
	return &statisticsService{db: db}
}

// GetTransactionStatistics 交易汇总统计
// 审批率 = 已审批 / (已审批 + 已驳回),无决策记录时为 0
func (s *statisticsService) GetTransactionStatistics() (*TransactionStatistics, error) {
	var results []struct {
		Status string
		Count  int64
		Sum    float64
	}

	err := s.db.Model(&model.TransactionModel{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(amount), 0) as sum").
		Group("status").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction statistics: %w", err)
	}

	stats := &TransactionStatistics{CountByStatus: make(map[string]int64, len(results))}
	for _, r := range results {
		stats.CountByStatus[r.Status] = r.Count
		stats.Total += r.Count
		stats.TotalAmount += r.Sum
		if r.Status == model.TransactionStatusPending {
			stats.PendingAmount = r.Sum
		}
	}

	approved := stats.CountByStatus[model.TransactionStatusApproved]
	rejected := stats.CountByStatus[model.TransactionStatusRejected]
	if decided := approved + rejected; decided > 0 {
		stats.ApprovalRate = float64(approved) / float64(decided)
	}

	return stats, nil
}

// GetTransactionStatisticsByTime 按日统计交易数量
func (s *statisticsService) GetTransactionStatisticsByTime() ([]*TransactionStatisticsByTime, error) {
	var results []struct {
		Date  string
		Count int64
	}

	err := s.db.Model(&model.TransactionModel{}).
		Select("DATE(created_at) as date, COUNT(*) as count").
		Group("DATE(created_at)").
		Order("date DESC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction statistics by time: %w", err)
	}

	stats := make([]*TransactionStatisticsByTime, 0, len(results))
	for _, r := range results {
		stats = append(stats, &TransactionStatisticsByTime{Date: r.Date, Count: r.Count})
	}
	return stats, nil
}

// GetAccountStatistics 按生命周期状态统计账户
func (s *statisticsService) GetAccountStatistics() ([]*AccountStatisticsByState, error) {
	var results []struct {
		Status string
		Count  int64
	}

	err := s.db.Model(&model.AccountModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get account statistics: %w", err)
	}

	stats := make([]*AccountStatisticsByState, 0, len(results))
	for _, r := range results {
		stats = append(stats, &AccountStatisticsByState{State: r.Status, Count: r.Count})
	}
	return stats, nil
}

// GetTicketStatistics 按状态统计工单
func (s *statisticsService) GetTicketStatistics() ([]*TicketStatisticsByStatus, error) {
	var results []struct {
		Status string
		Count  int64
	}

	err := s.db.Model(&model.TicketModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket statistics: %w", err)
	}

	stats := make([]*TicketStatisticsByStatus, 0, len(results))
	for _, r := range results {
		stats = append(stats, &TicketStatisticsByStatus{Status: r.Status, Count: r.Count})
	}
	return stats, nil
}
