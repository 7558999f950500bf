package controllers

import (
	"net/http"

	"lighttower-monitor-service/services"
	"lighttower-monitor-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceGatewayController 定义网关指令控制器接口
type InterfaceGatewayController interface {
	SendCommand()
}

// GatewayController 处理网关指令相关的请求
type GatewayController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewGatewayController 创建一个新的网关指令控制器
func NewGatewayController(ctx *gin.Context, container *container.ServiceContainer) *GatewayController {
	return &GatewayController{
		Ctx:       ctx,
		Container: container,
	}
}

// GatewayCommandRequest 网关指令请求
type GatewayCommandRequest struct {
	Funct string `json:"funct" binding:"required" example:"heartbeat"` // heartbeat, status
}

// HandleGatewayFunc 返回一个处理网关指令请求的Gin处理函数
func HandleGatewayFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewGatewayController(ctx, container)

		switch method {
		case "sendCommand":
			controller.SendCommand()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// SendCommand 向网关发送指令
// @Summary 向网关发送指令
// @Description heartbeat: 发送心跳并在10秒内等待pong应答；status: 请求网关上报全设备状态（fire-and-forget）
// @Tags gateway
// @Accept json
// @Produce json
// @Param request body GatewayCommandRequest true "指令参数"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /gateway/command [post]
func (c *GatewayController) SendCommand() {
	var req GatewayCommandRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数: " + err.Error(),
			"data":    nil,
		})
		return
	}

	mqttService := c.Container.GetService("mqtt").(services.InterfaceMQTTService)

	switch req.Funct {
	case services.FunctHeartbeat:
		alive, err := mqttService.SendHeartbeat()
		if err != nil {
			c.Ctx.JSON(http.StatusInternalServerError, gin.H{
				"code":    500,
				"message": "ハートビート送信失敗: " + err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusOK, gin.H{
			"code":    0,
			"message": "成功",
			"data":    gin.H{"funct": req.Funct, "gateway_alive": alive},
		})
	case services.FunctStatus:
		if err := mqttService.RequestStatus(); err != nil {
			c.Ctx.JSON(http.StatusInternalServerError, gin.H{
				"code":    500,
				"message": "コマンド送信失敗: " + err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusOK, gin.H{
			"code":    0,
			"message": "成功",
			"data":    gin.H{"funct": req.Funct},
		})
	default:
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "未対応のfunct: " + req.Funct,
			"data":    nil,
		})
	}
}
