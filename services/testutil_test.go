package services

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"lighttower-monitor-service/config"
	"lighttower-monitor-service/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 创建内存SQLite数据库并迁移全部模型
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	// 内存数据库只允许单连接，否则每个连接各自为空库
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Admin{},
		&models.DeviceRegistration{},
		&models.DeviceStatus{},
		&models.DeviceHistory{},
	); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}
	return db
}

// testConfig 测试用配置
func testConfig() *config.Config {
	return &config.Config{
		DefaultGatewayID:     "JP0000000001",
		JWTSecretKey:         "test-secret-key",
		DefaultAdminPassword: "admin123",
	}
}

// fakeWSService 记录推送事件的WebSocket服务替身
type fakeWSService struct {
	mu     sync.Mutex
	events []DeviceUpdateEvent
}

func (f *fakeWSService) HandleConnection(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (f *fakeWSService) Broadcast(event DeviceUpdateEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeWSService) ClientCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func (f *fakeWSService) Events() []DeviceUpdateEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]DeviceUpdateEvent, len(f.events))
	copy(out, f.events)
	return out
}

// seedRegistration 登记一台启用中的测试设备
func seedRegistration(t *testing.T, db *gorm.DB, addr, name string, index int) {
	t.Helper()
	reg := models.DeviceRegistration{
		DeviceAddr: addr,
		Name:       name,
		Location:   "テストライン",
		SortIndex:  index,
		IsEnabled:  true,
	}
	if err := db.Create(&reg).Error; err != nil {
		t.Fatalf("登记测试设备失败: %v", err)
	}
}

// seedHistory 写入一条履历记录
func seedHistory(t *testing.T, db *gorm.DB, addr string, red, yellow, green bool, ts time.Time) {
	t.Helper()
	code := models.StatusCodeIdle
	text := models.StatusTextIdle
	switch {
	case green:
		code, text = models.StatusCodeRunning, "Running"
	case yellow:
		code, text = models.StatusCodeYellow, models.StatusTextStop
	case red:
		code, text = models.StatusCodeRed, models.StatusTextStop
	}
	h := models.DeviceHistory{
		DeviceID:   1,
		DeviceAddr: addr,
		Battery:    90,
		Red:        red,
		Yellow:     yellow,
		Green:      green,
		StatusCode: code,
		StatusText: text,
		Timestamp:  ts,
	}
	if err := db.Create(&h).Error; err != nil {
		t.Fatalf("写入测试履历失败: %v", err)
	}
}

func countHistory(t *testing.T, db *gorm.DB, addr string) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.DeviceHistory{}).Where("device_addr = ?", addr).Count(&count).Error; err != nil {
		t.Fatalf("统计履历失败: %v", err)
	}
	return count
}
