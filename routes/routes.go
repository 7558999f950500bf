package routes

import (
	"time"

	"lighttower-monitor-service/config"
	"lighttower-monitor-service/controllers"
	_ "lighttower-monitor-service/docs"
	"lighttower-monitor-service/middleware"
	"lighttower-monitor-service/services"
	"lighttower-monitor-service/services/container"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由与服务容器
func SetupRouter(db *gorm.DB, cfg *config.Config) (*gin.Engine, *container.ServiceContainer) {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)
	middleware.InitCacheMiddleware(serviceContainer.GetService("redis").(services.InterfaceRedisService))
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r, serviceContainer
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// WebSocket实时推送
	r.GET("/ws", controllers.HandleWebSocketFunc(container))

	// API 路由根路径
	api := r.Group("/api")
	registerPublicRoutes(api, container)
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查
	api.GET("/health", controllers.HandleHealthFunc(container))

	// 认证路由
	api.POST("/auth/login", controllers.HandleJWTFunc(container, "login"))

	// 设备状态路由
	api.GET("/devices", controllers.HandleDeviceFunc(container, "getDevices"))
	api.GET("/devices/config", controllers.HandleRegistryFunc(container, "getDeviceConfig"))
	api.GET("/devices/:device_addr/history", controllers.HandleDeviceFunc(container, "getDeviceHistory"))
	api.GET("/devices/:device_addr/data-logs", controllers.HandleDeviceFunc(container, "getDeviceDataLogs"))

	// 设备稼働率集計路由
	api.GET("/devices/:device_addr/timeline", controllers.HandleStatsFunc(container, "getDeviceTimeline"))
	api.GET("/devices/:device_addr/operation-rate", controllers.HandleStatsFunc(container, "getOperationRate"))
	api.GET("/devices/:device_addr/current-operation-rate", controllers.HandleStatsFunc(container, "getCurrentOperationRate"))
	api.GET("/devices/:device_addr/hourly-operation-rate", controllers.HandleStatsFunc(container, "getDeviceHourlyRate"))

	// 全体集計路由（短TTLキャッシュ付き、DB負荷軽減）
	overall := api.Group("/overall")
	overall.Use(middleware.Cache(30 * time.Second))
	overall.GET("/current-status", controllers.HandleStatsFunc(container, "getOverallCurrentStatus"))
	overall.GET("/hourly-status", controllers.HandleStatsFunc(container, "getOverallHourlyStatus"))
	overall.GET("/daily-operation-rate", controllers.HandleStatsFunc(container, "getOverallDailyRate"))
	overall.GET("/daily-green-apples", controllers.HandleStatsFunc(container, "getDailyGreenApples"))
	overall.GET("/hourly-green-apples", controllers.HandleStatsFunc(container, "getHourlyGreenApples"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 设备登记的变更接口需要管理员权限
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateAdmin())

	auth.POST("/devices/register", controllers.HandleRegistryFunc(container, "registerDevice"))
	auth.PUT("/devices/:device_addr", controllers.HandleRegistryFunc(container, "updateDevice"))
	auth.DELETE("/devices/:device_addr", controllers.HandleRegistryFunc(container, "deleteDevice"))

	// 网关指令
	auth.POST("/gateway/command", controllers.HandleGatewayFunc(container, "sendCommand"))
}
