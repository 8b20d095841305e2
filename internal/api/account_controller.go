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

// AccountController 账户控制器
type AccountController struct {
	accountService service.AccountService
}

// NewAccountController 创建账户控制器
func NewAccountController(accountService service.AccountService) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// validateAccountID 验证账户 ID 并返回错误响应（如果无效）
func (c *AccountController) validateAccountID(ctx *gin.Context, id string) bool {
	if err := utils.ValidateResourceID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid account ID", err.Error())
		return false
	}
	return true
}

// Create 创建顶级账户
func (c *AccountController) Create(ctx *gin.Context) {
	var req service.CreateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := utils.ValidateAccountNumber(req.Number); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid account number", err.Error())
		return
	}

	account, err := c.accountService.Create(ctx.Request.Context(), &req, actorFromContext(ctx))
	if err != nil {
		c.handleAccountError(ctx, err, "create account")
		return
	}

	Success(ctx, account)
}

// Get 获取账户详情
func (c *AccountController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateAccountID(ctx, id) {
		return
	}

	account, err := c.accountService.Get(id)
	if err != nil {
		Error(ctx, http.StatusNotFound, "account not found", err.Error())
		return
	}

	Success(ctx, account)
}

// List 分页查询账户
func (c *AccountController) List(ctx *gin.Context) {
	filter := &repository.AccountFilter{
		Page:     parseIntQuery(ctx, "page", 1),
		PageSize: parseIntQuery(ctx, "page_size", 20),
		TopLevel: ctx.Query("top_level") == "true",
	}

	if status := ctx.Query("status"); status != "" {
		filter.Status = &status
	}
	if ownerID := ctx.Query("owner_id"); ownerID != "" {
		filter.OwnerID = &ownerID
	}

	accounts, total, err := c.accountService.List(filter)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	Paginated(ctx, accounts, NewPagination(filter.Page, filter.PageSize, total))
}

// Behavior 查询账户在当前角色下的可操作行为
// 供表格渲染方决定是否展示状态编辑器和子账户按钮
func (c *AccountController) Behavior(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateAccountID(ctx, id) {
		return
	}

	view, err := c.accountService.Behavior(id, roleFromContext(ctx))
	if err != nil {
		Error(ctx, http.StatusNotFound, "account not found", err.Error())
		return
	}

	Success(ctx, view)
}

// UpdateStatus 编辑账户状态
func (c *AccountController) UpdateStatus(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateAccountID(ctx, id) {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	account, err := c.accountService.UpdateStatus(ctx.Request.Context(), id, policy.AccountState(req.Status), actorFromContext(ctx))
	if err != nil {
		c.handleAccountError(ctx, err, "update account status")
		return
	}

	Success(ctx, account)
}

// CreateSubAccount 在集团账户下创建子账户
func (c *AccountController) CreateSubAccount(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateAccountID(ctx, id) {
		return
	}

	var req service.CreateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := utils.ValidateAccountNumber(req.Number); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid account number", err.Error())
		return
	}

	sub, err := c.accountService.CreateSubAccount(ctx.Request.Context(), id, &req, actorFromContext(ctx))
	if err != nil {
		c.handleAccountError(ctx, err, "create sub-account")
		return
	}

	Success(ctx, sub)
}

// ListSubAccounts 查询某账户下的全部子账户
func (c *AccountController) ListSubAccounts(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateAccountID(ctx, id) {
		return
	}

	subs, err := c.accountService.ListSubAccounts(id)
	if err != nil {
		c.handleAccountError(ctx, err, "list sub-accounts")
		return
	}

	Success(ctx, subs)
}

// handleAccountError 账户操作错误到 HTTP 状态码的映射
func (c *AccountController) handleAccountError(ctx *gin.Context, err error, operation string) {
	switch {
	case errors.Is(err, service.ErrStatusEditDenied):
		Error(ctx, http.StatusForbidden, "account status edit is not permitted", err.Error())
	case errors.Is(err, service.ErrSubAccountDenied):
		Error(ctx, http.StatusForbidden, "sub-account creation is not permitted", err.Error())
	case errors.Is(err, service.ErrStatusNotEditable):
		Error(ctx, http.StatusBadRequest, "target status is not editable", err.Error())
	case errors.Is(err, service.ErrAccountNumberTaken):
		Error(ctx, http.StatusConflict, "account number already exists", err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		Error(ctx, http.StatusNotFound, "account not found", err.Error())
	default:
		Error(ctx, http.StatusInternalServerError, "failed to "+operation, err.Error())
	}
}
