package websocket

import (
	"net/http"

	"github.com/banklite/backoffice-gin/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorillaWS "github.com/gorilla/websocket"
)

var upgrader = gorillaWS.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// 生产环境应检查 Origin
		return true
	},
}

// TransactionFeedHandler 交易事件推送处理器
// 仪表盘通过 ws 订阅交易状态变化;token 通过 query 参数传递
func TransactionFeedHandler(hub *Hub, manager *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从 query 参数获取 token
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		// 2. 验证 token
		claims, err := manager.Validate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 3. 升级连接
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
			return
		}

		// 4. 创建并注册客户端
		client := NewClient(uuid.New().String(), claims.UserID, hub, conn)
		hub.Register <- client

		// 5. 启动读写循环
		go client.ReadPump()
		go client.WritePump()
	}
}
