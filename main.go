// @title           LightTower Monitor Service API
// @version         1.0
// @description     シグナルタワー（三色灯）稼働監視システム - MQTT収集・稼働率集計・リアルタイム配信
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"fmt"
	"os"
	"runtime"

	"lighttower-monitor-service/config"
	"lighttower-monitor-service/models"
	"lighttower-monitor-service/routes"
	"lighttower-monitor-service/services"
	"lighttower-monitor-service/services/container"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// 设置最大处理器数量，提高并发性能
	runtime.GOMAXPROCS(runtime.NumCPU())

	// 初始化日志配置
	if err := config.SetupLogger(); err != nil {
		fmt.Printf("初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}

	// 加载.env文件
	if err := godotenv.Load(); err != nil {
		config.Warning("无法加载.env文件: %v", err)
		// 即使加载失败也继续执行，可能环境变量已经通过其他方式设置
	} else {
		config.Info("成功加载.env文件")
	}

	// 获取配置
	cfg := config.GetConfig()

	// 初始化数据库
	db, err := initDB(cfg)
	if err != nil {
		config.Error("数据库连接失败: %v", err)
		os.Exit(1)
	}

	if err := autoMigrate(db); err != nil {
		config.Error("自动迁移失败: %v", err)
		os.Exit(1)
	}
	config.Info("データベースを初期化しました")

	// 初始化路由与服务容器
	r, serviceContainer := routes.SetupRouter(db, cfg)

	// 预置设备与默认管理员
	registryService := serviceContainer.GetService("registry").(services.InterfaceRegistryService)
	if err := registryService.SeedDevices(); err != nil {
		config.Error("デバイス初期化エラー: %v", err)
		os.Exit(1)
	}
	adminService := serviceContainer.GetService("admin").(services.InterfaceAdminService)
	if err := adminService.EnsureDefaultAdmin(); err != nil {
		config.Error("管理者アカウント初期化エラー: %v", err)
		os.Exit(1)
	}

	// 启动MQTT接入与定时任务
	startBackgroundServices(serviceContainer)

	// 启动服务器 - 监听所有接口(0.0.0.0)
	config.Info("服务器启动在: http://0.0.0.0:%s", cfg.ServerPort)
	if err := r.Run("0.0.0.0:" + cfg.ServerPort); err != nil {
		config.Error("启动服务器失败: %v", err)
		os.Exit(1)
	}
}

// initDB 初始化数据库连接
func initDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// autoMigrate 自动迁移所有模型（只添加新列和新表）
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.DeviceRegistration{},
		&models.DeviceStatus{},
		&models.DeviceHistory{},
	)
}

// startBackgroundServices 启动MQTT接入与每日重置任务。
// MQTT连接失败只告警，HTTP接口照常提供（历史数据仍可查询）。
func startBackgroundServices(c *container.ServiceContainer) {
	mqttService := c.GetService("mqtt").(services.InterfaceMQTTService)
	if err := mqttService.Connect(); err != nil {
		config.Error("MQTT服务连接失败: %v", err)
	} else {
		config.Info("MQTTクライアントを起動しました")
	}

	schedulerService := c.GetService("scheduler").(services.InterfaceSchedulerService)
	if err := schedulerService.Start(); err != nil {
		config.Error("スケジューラー起動失敗: %v", err)
	}
}
