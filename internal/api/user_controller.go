package api

import (
	"errors"
	"net/http"

	"github.com/banklite/backoffice-gin/internal/auth"
	"github.com/banklite/backoffice-gin/internal/repository"
	"github.com/banklite/backoffice-gin/internal/service"
	"github.com/banklite/backoffice-gin/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserController 用户控制器
type UserController struct {
	userService     service.UserService
	auditLogService service.AuditLogService
	tokenManager    *auth.TokenManager
}

// NewUserController 创建用户控制器
func NewUserController(userService service.UserService, auditLogService service.AuditLogService, tokenManager *auth.TokenManager) *UserController {
	return &UserController{
		userService:     userService,
		auditLogService: auditLogService,
		tokenManager:    tokenManager,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 用户登录
// 验证通过后签发 JWT,同时返回有效角色供前端渲染
func (c *UserController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	user, err := c.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		Error(ctx, http.StatusUnauthorized, "invalid username or password", "")
		return
	}

	token, err := c.tokenManager.Issue(user.ID, user.Username, user.RoleLabels())
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	Success(ctx, gin.H{
		"token":          token,
		"user":           user,
		"effective_role": c.userService.EffectiveRole(user),
	})
}

// Create 创建用户
func (c *UserController) Create(ctx *gin.Context) {
	var req service.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	user, err := c.userService.Create(ctx.Request.Context(), &req, actorFromContext(ctx))
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to create user", err.Error())
		return
	}

	Success(ctx, user)
}

// Get 获取用户详情,附带派生的有效角色
func (c *UserController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidateResourceID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid user ID", err.Error())
		return
	}

	user, err := c.userService.Get(id)
	if err != nil {
		Error(ctx, http.StatusNotFound, "user not found", err.Error())
		return
	}

	Success(ctx, gin.H{
		"user":           user,
		"effective_role": c.userService.EffectiveRole(user),
	})
}

// List 分页查询用户
func (c *UserController) List(ctx *gin.Context) {
	filter := &repository.UserFilter{
		Page:     parseIntQuery(ctx, "page", 1),
		PageSize: parseIntQuery(ctx, "page_size", 20),
	}

	if username := ctx.Query("username"); username != "" {
		filter.Username = &username
	}
	if active := ctx.Query("active"); active != "" {
		v := active == "true"
		filter.Active = &v
	}

	users, total, err := c.userService.List(filter)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list users", err.Error())
		return
	}

	Paginated(ctx, users, NewPagination(filter.Page, filter.PageSize, total))
}

// Audit 查询某用户的最近操作记录
func (c *UserController) Audit(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidateResourceID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid user ID", err.Error())
		return
	}

	if _, err := c.userService.Get(id); err != nil {
		Error(ctx, http.StatusNotFound, "user not found", err.Error())
		return
	}

	logs, err := c.auditLogService.GetByUser(id, parseIntQuery(ctx, "limit", 50))
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to get user audit trail", err.Error())
		return
	}

	Success(ctx, logs)
}

// UpdateRoles 更新用户角色标签集合
func (c *UserController) UpdateRoles(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidateResourceID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid user ID", err.Error())
		return
	}

	var req struct {
		Roles []string `json:"roles"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	user, err := c.userService.UpdateRoles(ctx.Request.Context(), id, req.Roles, actorFromContext(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Error(ctx, http.StatusNotFound, "user not found", err.Error())
			return
		}
		Error(ctx, http.StatusInternalServerError, "failed to update user roles", err.Error())
		return
	}

	Success(ctx, user)
}
