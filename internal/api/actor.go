package api

import (
	"github.com/banklite/backoffice-gin/internal/auth"
	"github.com/banklite/backoffice-gin/internal/policy"
	"github.com/banklite/backoffice-gin/internal/service"
	"github.com/gin-gonic/gin"
)

// actorFromContext 从 gin context 构造操作者上下文
// 认证中间件已将用户 ID 和角色标签写入 context
func actorFromContext(c *gin.Context) *service.Actor {
	return &service.Actor{
		UserID:     auth.UserID(c),
		RoleLabels: auth.Roles(c),
		RequestID:  RequestID(c),
		IP:         c.ClientIP(),
	}
}

// roleFromContext 解析当前请求者的有效角色
func roleFromContext(c *gin.Context) policy.Role {
	return policy.ResolveEffectiveRole(auth.Roles(c))
}
