package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/banklite/backoffice-gin/internal/repository"
	"github.com/banklite/backoffice-gin/internal/service"
	"github.com/banklite/backoffice-gin/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionController 交易控制器
type TransactionController struct {
	transactionService service.TransactionService
	auditLogService    service.AuditLogService
}

// NewTransactionController 创建交易控制器
func NewTransactionController(transactionService service.TransactionService, auditLogService service.AuditLogService) *TransactionController {
	return &TransactionController{
		transactionService: transactionService,
		auditLogService:    auditLogService,
	}
}

// validateTransactionID 验证交易 ID 并返回错误响应（如果无效）
func (c *TransactionController) validateTransactionID(ctx *gin.Context, id string) bool {
	if err := utils.ValidateResourceID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid transaction ID", err.Error())
		return false
	}
	return true
}

// Create 创建交易
func (c *TransactionController) Create(ctx *gin.Context) {
	var req service.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	tx, err := c.transactionService.Create(ctx.Request.Context(), &req, actorFromContext(ctx))
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	Success(ctx, tx)
}

// Get 获取交易详情
func (c *TransactionController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateTransactionID(ctx, id) {
		return
	}

	tx, err := c.transactionService.Get(id)
	if err != nil {
		Error(ctx, http.StatusNotFound, "transaction not found", err.Error())
		return
	}

	Success(ctx, tx)
}

// List 分页查询交易
func (c *TransactionController) List(ctx *gin.Context) {
	filter := &repository.TransactionFilter{
		Page:     parseIntQuery(ctx, "page", 1),
		PageSize: parseIntQuery(ctx, "page_size", 20),
	}

	if status := ctx.Query("status"); status != "" {
		filter.Status = &status
	}
	if accountID := ctx.Query("account_id"); accountID != "" {
		filter.AccountID = &accountID
	}
	if createdBy := ctx.Query("created_by"); createdBy != "" {
		filter.CreatedBy = &createdBy
	}
	if minAmount := ctx.Query("min_amount"); minAmount != "" {
		if v, err := strconv.ParseFloat(minAmount, 64); err == nil {
			filter.MinAmount = &v
		}
	}
	if maxAmount := ctx.Query("max_amount"); maxAmount != "" {
		if v, err := strconv.ParseFloat(maxAmount, 64); err == nil {
			filter.MaxAmount = &v
		}
	}
	if startTime := ctx.Query("start_time"); startTime != "" {
		filter.StartTime = &startTime
	}
	if endTime := ctx.Query("end_time"); endTime != "" {
		filter.EndTime = &endTime
	}

	txs, total, err := c.transactionService.List(filter)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	Paginated(ctx, txs, NewPagination(filter.Page, filter.PageSize, total))
}

// Check 预检审批决策
// 返回当前用户对给定金额的审批能力,供前端决定是否展示审批按钮
func (c *TransactionController) Check(ctx *gin.Context) {
	amountStr := ctx.Query("amount")
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid amount", "amount must be a number")
		return
	}

	result := c.transactionService.CheckApproval(amount, roleFromContext(ctx))
	Success(ctx, result)
}

// Approve 审批同意交易
func (c *TransactionController) Approve(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateTransactionID(ctx, id) {
		return
	}

	// 审批意见可选,空请求体视为无意见
	var req struct {
		Comment string `json:"comment"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	tx, err := c.transactionService.Approve(ctx.Request.Context(), id, actorFromContext(ctx), req.Comment)
	if err != nil {
		c.handleDecisionError(ctx, err, "approve")
		return
	}

	Success(ctx, tx)
}

// Reject 审批驳回交易
func (c *TransactionController) Reject(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateTransactionID(ctx, id) {
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	tx, err := c.transactionService.Reject(ctx.Request.Context(), id, actorFromContext(ctx), req.Reason)
	if err != nil {
		c.handleDecisionError(ctx, err, "reject")
		return
	}

	Success(ctx, tx)
}

// Audit 查询交易的审计轨迹
func (c *TransactionController) Audit(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateTransactionID(ctx, id) {
		return
	}

	if _, err := c.transactionService.Get(id); err != nil {
		Error(ctx, http.StatusNotFound, "transaction not found", err.Error())
		return
	}

	logs, err := c.auditLogService.GetByResource("transaction", id)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to get audit trail", err.Error())
		return
	}

	Success(ctx, logs)
}

// handleDecisionError 审批决策错误到 HTTP 状态码的映射
func (c *TransactionController) handleDecisionError(ctx *gin.Context, err error, operation string) {
	var denied *service.ApprovalDeniedError
	switch {
	case errors.As(err, &denied):
		Error(ctx, http.StatusForbidden, denied.Error(), "")
	case errors.Is(err, service.ErrTransactionNotPending):
		Error(ctx, http.StatusConflict, "transaction is not pending", err.Error())
	case errors.Is(err, service.ErrReasonRequired):
		Error(ctx, http.StatusBadRequest, "rejection reason is required", err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		Error(ctx, http.StatusNotFound, "transaction not found", err.Error())
	default:
		Error(ctx, http.StatusInternalServerError, "failed to "+operation+" transaction", err.Error())
	}
}

// parseIntQuery 解析整数查询参数,非法值回退到默认值
func parseIntQuery(ctx *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(ctx.Query(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
