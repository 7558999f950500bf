package controllers

import (
	"net/http"
	"strconv"

	"lighttower-monitor-service/services"
	"lighttower-monitor-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceDeviceController 定义设备状态控制器接口
type InterfaceDeviceController interface {
	GetDevices()
	GetDeviceHistory()
	GetDeviceDataLogs()
}

// DeviceController 处理设备当前状态与履历相关的请求
type DeviceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDeviceController 创建一个新的设备状态控制器
func NewDeviceController(ctx *gin.Context, container *container.ServiceContainer) *DeviceController {
	return &DeviceController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleDeviceFunc 返回一个处理设备状态请求的Gin处理函数
func HandleDeviceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDeviceController(ctx, container)

		switch method {
		case "getDevices":
			controller.GetDevices()
		case "getDeviceHistory":
			controller.GetDeviceHistory()
		case "getDeviceDataLogs":
			controller.GetDeviceDataLogs()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. GetDevices 获取全设备当前状态
// @Summary 获取全设备当前状态
// @Description 获取全部设备的当前状态快照（合并登记信息），按显示顺序排序
// @Tags device
// @Accept json
// @Produce json
// @Success 200 {array} services.DeviceView
// @Failure 500 {object} ErrorResponse
// @Router /devices [get]
func (c *DeviceController) GetDevices() {
	statusService := c.Container.GetService("status").(services.InterfaceStatusService)

	devices, err := statusService.GetDevices()
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取设备列表失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    devices,
	})
}

// 2. GetDeviceHistory 获取设备履历
// @Summary 获取设备履历
// @Description 获取指定设备直近N小时的状态变化履历，按时间降序
// @Tags device
// @Accept json
// @Produce json
// @Param device_addr path int true "数值设备ID"
// @Param hours query int false "取得小时数" default(24)
// @Success 200 {array} models.DeviceHistory
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /devices/{device_addr}/history [get]
func (c *DeviceController) GetDeviceHistory() {
	deviceID, err := strconv.Atoi(c.Ctx.Param("device_addr"))
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的设备ID",
			"data":    nil,
		})
		return
	}
	hours, _ := strconv.Atoi(c.Ctx.DefaultQuery("hours", "24"))

	statusService := c.Container.GetService("status").(services.InterfaceStatusService)
	history, err := statusService.GetDeviceHistory(deviceID, hours)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取设备履历失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    history,
	})
}

// 3. GetDeviceDataLogs 获取设备数据接收日志
// @Summary 获取设备数据接收日志
// @Description 获取指定设备最新N条数据接收日志，按时间降序、当地时间表示
// @Tags device
// @Accept json
// @Produce json
// @Param device_addr path string true "设备地址（12位十六进制）"
// @Param limit query int false "取得条数" default(100)
// @Success 200 {object} services.DataLogs
// @Failure 500 {object} ErrorResponse
// @Router /devices/{device_addr}/data-logs [get]
func (c *DeviceController) GetDeviceDataLogs() {
	addr := c.Ctx.Param("device_addr")
	limit, _ := strconv.Atoi(c.Ctx.DefaultQuery("limit", "100"))

	statusService := c.Container.GetService("status").(services.InterfaceStatusService)
	logs, err := statusService.GetDeviceDataLogs(addr, limit)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取数据日志失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    logs,
	})
}
