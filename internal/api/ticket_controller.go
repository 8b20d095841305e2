package api

import (
	"errors"
	"net/http"

	"github.com/banklite/backoffice-gin/internal/policy"
	"github.com/banklite/backoffice-gin/internal/repository"
	"github.com/banklite/backoffice-gin/internal/service"
	"github.com/banklite/backoffice-gin/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TicketController 工单控制器
type TicketController struct {
	ticketService service.TicketService
}

// NewTicketController 创建工单控制器
func NewTicketController(ticketService service.TicketService) *TicketController {
	return &TicketController{
		ticketService: ticketService,
	}
}

// Create 创建工单
func (c *TicketController) Create(ctx *gin.Context) {
	var req service.CreateTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	// 主题清理并限长,正文仅转义危险字符
	subject, err := utils.TrimAndValidate(req.Subject, 255)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid subject", err.Error())
		return
	}
	req.Subject = subject
	req.Content = utils.SanitizeString(req.Content)

	ticket, err := c.ticketService.Create(ctx.Request.Context(), &req, actorFromContext(ctx))
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to create ticket", err.Error())
		return
	}

	Success(ctx, ticket)
}

// Get 获取工单详情,受可见性策略约束
func (c *TicketController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidateResourceID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid ticket ID", err.Error())
		return
	}

	ticket, err := c.ticketService.Get(id, actorFromContext(ctx))
	if err != nil {
		c.handleTicketError(ctx, err, "get ticket")
		return
	}

	Success(ctx, ticket)
}

// List 分页查询工单
// 非管理员只能查到自己的工单
func (c *TicketController) List(ctx *gin.Context) {
	filter := &repository.TicketFilter{
		Page:     parseIntQuery(ctx, "page", 1),
		PageSize: parseIntQuery(ctx, "page_size", 20),
	}

	if status := ctx.Query("status"); status != "" {
		filter.Status = &status
	}
	if ownerID := ctx.Query("owner_id"); ownerID != "" {
		filter.OwnerID = &ownerID
	}

	tickets, total, err := c.ticketService.List(filter, actorFromContext(ctx))
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list tickets", err.Error())
		return
	}

	Paginated(ctx, tickets, NewPagination(filter.Page, filter.PageSize, total))
}

// UpdateStatus 修改工单状态,仅管理员可操作
func (c *TicketController) UpdateStatus(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidateResourceID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid ticket ID", err.Error())
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	ticket, err := c.ticketService.UpdateStatus(ctx.Request.Context(), id, policy.TicketStatus(req.Status), actorFromContext(ctx))
	if err != nil {
		c.handleTicketError(ctx, err, "update ticket status")
		return
	}

	Success(ctx, ticket)
}

// handleTicketError 工单操作错误到 HTTP 状态码的映射
func (c *TicketController) handleTicketError(ctx *gin.Context, err error, operation string) {
	switch {
	case errors.Is(err, service.ErrTicketNotVisible):
		Error(ctx, http.StatusForbidden, "ticket is not visible", err.Error())
	case errors.Is(err, service.ErrTicketEditDenied):
		Error(ctx, http.StatusForbidden, "ticket status edit is not permitted", err.Error())
	case errors.Is(err, service.ErrInvalidTicketStatus):
		Error(ctx, http.StatusBadRequest, "invalid ticket status", err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		Error(ctx, http.StatusNotFound, "ticket not found", err.Error())
	default:
		Error(ctx, http.StatusInternalServerError, "failed to "+operation, err.Error())
	}
}
