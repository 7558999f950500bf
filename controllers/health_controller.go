package controllers

import (
	"net/http"
	"time"

	"lighttower-monitor-service/services"
	"lighttower-monitor-service/services/container"

	"github.com/gin-gonic/gin"
)

// HealthCheckController 健康检查控制器
type HealthCheckController struct{}

// NewHealthCheckController 创建健康检查控制器实例
func NewHealthCheckController() *HealthCheckController {
	return &HealthCheckController{}
}

// HandleHealthFunc 返回健康检查的Gin处理函数
// @Summary 健康检查
// @Description 返回服务状态、MQTT连接状态与WebSocket客户端数
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func HandleHealthFunc(container *container.ServiceContainer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		mqttService := container.GetService("mqtt").(services.InterfaceMQTTService)
		wsService := container.GetService("ws").(services.InterfaceWebSocketService)

		ctx.JSON(http.StatusOK, gin.H{
			"status":            "ok",
			"mqtt_connected":    mqttService.IsConnected(),
			"websocket_clients": wsService.ClientCount(),
			"timestamp":         time.Now().UTC().Format(time.RFC3339Nano),
		})
	}
}
