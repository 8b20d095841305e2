package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// gin context 中保存声明信息的键
const (
	ContextUserIDKey   = "auth_user_id"
	ContextUsernameKey = "auth_username"
	ContextRolesKey    = "auth_roles"
)

// Middleware JWT 认证中间件
// 从 Authorization: Bearer <token> 提取并验证 Token,
// 将用户 ID 和角色标签写入 gin context 供后续处理器使用
func Middleware(manager *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "invalid authorization header format",
			})
			return
		}

		claims, err := manager.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "invalid token",
				"detail":  err.Error(),
			})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Set(ContextRolesKey, claims.Roles)
		c.Next()
	}
}

// UserID 从 gin context 读取当前用户 ID
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}

// Roles 从 gin context 读取当前用户的角色标签
func Roles(c *gin.Context) []string {
	if v, ok := c.Get(ContextRolesKey); ok {
		if roles, ok := v.([]string); ok {
			return roles
		}
	}
	return nil
}
