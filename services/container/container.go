package container

import (
	"sync"

	"lighttower-monitor-service/config"
	"lighttower-monitor-service/services"

	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService
	adminService services.InterfaceAdminService

	// 业务服务
	registryService  services.InterfaceRegistryService
	statusService    services.InterfaceStatusService
	statsService     services.InterfaceStatsService
	wsService        services.InterfaceWebSocketService
	telemetryService services.InterfaceTelemetryService
	mqttService      services.InterfaceMQTTService
	schedulerService services.InterfaceSchedulerService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}
	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 基础服务
	c.jwtService = services.NewJWTService(c.config)
	c.redisService = services.NewRedisService(c.config)
	c.adminService = services.NewAdminService(c.db, c.config)

	// 业务服务
	c.registryService = services.NewRegistryService(c.db, c.config)
	c.statusService = services.NewStatusService(c.db, c.config, c.registryService)
	c.statsService = services.NewStatsService(c.db, c.config)
	c.wsService = services.NewWebSocketService(c.config)

	// 采集管道与MQTT接入
	c.telemetryService = services.NewTelemetryService(c.db, c.config, c.registryService, c.wsService)
	c.mqttService = services.NewMQTTService(c.config, c.telemetryService)

	// 定时任务
	c.schedulerService = services.NewSchedulerService(c.config, c.telemetryService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "admin":
		return c.adminService
	case "registry":
		return c.registryService
	case "status":
		return c.statusService
	case "stats":
		return c.statsService
	case "ws":
		return c.wsService
	case "telemetry":
		return c.telemetryService
	case "mqtt":
		return c.mqttService
	case "scheduler":
		return c.schedulerService
	default:
		return nil
	}
}
