package api

import (
	"net/http"

	"github.com/banklite/backoffice-gin/internal/service"
	"github.com/gin-gonic/gin"
)

// StatisticsController 统计控制器
type StatisticsController struct {
	statisticsService service.StatisticsService
}

// NewStatisticsController 创建统计控制器
func NewStatisticsController(statisticsService service.StatisticsService) *StatisticsController {
	return &StatisticsController{
		statisticsService: statisticsService,
	}
}

// Transactions 交易汇总统计
func (c *StatisticsController) Transactions(ctx *gin.Context) {
	stats, err := c.statisticsService.GetTransactionStatistics()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to get transaction statistics", err.Error())
		return
	}

	Success(ctx, stats)
}

// TransactionsByTime 按日统计交易
func (c *StatisticsController) TransactionsByTime(ctx *gin.Context) {
	stats, err := c.statisticsService.GetTransactionStatisticsByTime()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to get transaction statistics by time", err.Error())
		return
	}

	Success(ctx, stats)
}

// Accounts 按状态统计账户
func (c *StatisticsController) Accounts(ctx *gin.Context) {
	stats, err := c.statisticsService.GetAccountStatistics()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to get account statistics", err.Error())
		return
	}

	Success(ctx, stats)
}

// Tickets 按状态统计工单
func (c *StatisticsController) Tickets(ctx *gin.Context) {
	stats, err := c.statisticsService.GetTicketStatistics()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to get ticket statistics", err.Error())
		return
	}

	Success(ctx, stats)
}
