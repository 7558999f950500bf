package controllers

import (
	"lighttower-monitor-service/config"
	"lighttower-monitor-service/services"
	"lighttower-monitor-service/services/container"

	"github.com/gin-gonic/gin"
)

// HandleWebSocketFunc 返回WebSocket连接的Gin处理函数。
// 连接升级后由推送服务接管，断开前该请求一直保持。
func HandleWebSocketFunc(container *container.ServiceContainer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		wsService := container.GetService("ws").(services.InterfaceWebSocketService)
		if err := wsService.HandleConnection(ctx.Writer, ctx.Request); err != nil {
			config.Error("WebSocket接続エラー: %v", err)
		}
	}
}
