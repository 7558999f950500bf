package controllers

import (
	"net/http"

	"lighttower-monitor-service/services"
	"lighttower-monitor-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceRegistryController 定义设备登记控制器接口
type InterfaceRegistryController interface {
	GetDeviceConfig()
	RegisterDevice()
	UpdateDevice()
	DeleteDevice()
}

// RegistryController 处理设备登记相关的请求
type RegistryController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRegistryController 创建一个新的设备登记控制器
func NewRegistryController(ctx *gin.Context, container *container.ServiceContainer) *RegistryController {
	return &RegistryController{
		Ctx:       ctx,
		Container: container,
	}
}

// DeviceRegistrationRequest 设备登记请求
type DeviceRegistrationRequest struct {
	DeviceAddr  string `json:"device_addr" binding:"required" example:"ECDA3BBE61E8"`
	Name        string `json:"name" binding:"required" example:"設備8号機"`
	Location    string `json:"location" example:"製造ライン D"`
	Description string `json:"description" example:"予備機"`
	Index       int    `json:"index" example:"7"`
}

// DeviceUpdateRequest 设备登记更新请求
type DeviceUpdateRequest struct {
	Name        string `json:"name" binding:"required" example:"設備8号機"`
	Location    string `json:"location" example:"製造ライン D"`
	Description string `json:"description" example:"予備機"`
	Index       int    `json:"index" example:"7"`
}

// HandleRegistryFunc 返回一个处理设备登记请求的Gin处理函数
func HandleRegistryFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRegistryController(ctx, container)

		switch method {
		case "getDeviceConfig":
			controller.GetDeviceConfig()
		case "registerDevice":
			controller.RegisterDevice()
		case "updateDevice":
			controller.UpdateDevice()
		case "deleteDevice":
			controller.DeleteDevice()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// 1. GetDeviceConfig 获取设备登记一览
// @Summary 获取设备登记一览
// @Description 获取全部登记设备（含停用），按显示顺序排序，设备管理画面用
// @Tags registry
// @Accept json
// @Produce json
// @Success 200 {array} models.DeviceRegistration
// @Failure 500 {object} ErrorResponse
// @Router /devices/config [get]
func (c *RegistryController) GetDeviceConfig() {
	registryService := c.Container.GetService("registry").(services.InterfaceRegistryService)

	regs, err := registryService.GetRegistrations()
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取设备登记一览失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    regs,
	})
}

// 2. RegisterDevice 登记新设备
// @Summary 登记新设备
// @Description 登记新设备并初始化状态表。地址要求12位十六进制，重复登记返回409
// @Tags registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DeviceRegistrationRequest true "设备登记参数"
// @Success 200 {object} models.DeviceRegistration
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /devices/register [post]
func (c *RegistryController) RegisterDevice() {
	var req DeviceRegistrationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数: " + err.Error(),
			"data":    nil,
		})
		return
	}

	registryService := c.Container.GetService("registry").(services.InterfaceRegistryService)
	reg, err := registryService.RegisterDevice(req.DeviceAddr, req.Name, req.Location, req.Description, req.Index)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "デバイス " + reg.Name + " を登録しました",
		"data":    reg,
	})
}

// 3. UpdateDevice 更新设备登记信息
// @Summary 更新设备登记信息
// @Description 更新指定地址设备的名称、位置、说明与显示顺序
// @Tags registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param device_addr path string true "设备地址（12位十六进制）"
// @Param request body DeviceUpdateRequest true "设备更新参数"
// @Success 200 {object} models.DeviceRegistration
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /devices/{device_addr} [put]
func (c *RegistryController) UpdateDevice() {
	addr := c.Ctx.Param("device_addr")

	var req DeviceUpdateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数: " + err.Error(),
			"data":    nil,
		})
		return
	}

	registryService := c.Container.GetService("registry").(services.InterfaceRegistryService)
	reg, err := registryService.UpdateDevice(addr, req.Name, req.Location, req.Description, req.Index)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "デバイス " + reg.Name + " を更新しました",
		"data":    reg,
	})
}

// 4. DeleteDevice 停用设备（逻辑删除）
// @Summary 停用设备
// @Description 逻辑删除指定地址的设备，状态表同时置为非活动。履历数据保留。
// @Tags registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param device_addr path string true "设备地址（12位十六进制）"
// @Success 200 {object} models.DeviceRegistration
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /devices/{device_addr} [delete]
func (c *RegistryController) DeleteDevice() {
	addr := c.Ctx.Param("device_addr")

	registryService := c.Container.GetService("registry").(services.InterfaceRegistryService)
	reg, err := registryService.DisableDevice(addr)
	if err != nil {
		respondServiceError(c.Ctx, err)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "デバイス " + reg.Name + " を削除しました",
		"data":    reg,
	})
}
