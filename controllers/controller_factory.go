package controllers

import (
	"errors"
	"net/http"

	"lighttower-monitor-service/services"
	"lighttower-monitor-service/services/container"

	"github.com/gin-gonic/gin"
)

// BaseController 是所有控制器的基础接口
type BaseController interface {
	// 获取服务容器
	GetContainer() *container.ServiceContainer
	// 获取Gin上下文
	GetContext() *gin.Context
}

// BaseControllerImpl 是控制器的基础实现
type BaseControllerImpl struct {
	Container *container.ServiceContainer
	Context   *gin.Context
}

// GetContainer 实现 BaseController 接口
func (c *BaseControllerImpl) GetContainer() *container.ServiceContainer {
	return c.Container
}

// GetContext 实现 BaseController 接口
func (c *BaseControllerImpl) GetContext() *gin.Context {
	return c.Context
}

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Code    int         `json:"code" example:"400"`
	Message string      `json:"message" example:"日期格式不正确（YYYY-MM-DD）"`
	Data    interface{} `json:"data"`
}

// respondServiceError 将服务层错误映射为HTTP状态码并输出统一格式的响应
func respondServiceError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidAddr),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidDateRange):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrDeviceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrDeviceExists):
		status = http.StatusConflict
	}

	ctx.JSON(status, gin.H{
		"code":    status,
		"message": err.Error(),
		"data":    nil,
	})
}
