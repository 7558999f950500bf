package services

import (
	"sync"
	"time"

	"lighttower-monitor-service/config"
	"lighttower-monitor-service/models"
	"lighttower-monitor-service/utils"

	"gorm.io/gorm"
)

// TelemetryMessage 解析后的单条设备遥测数据（时间戳为UTC）
type TelemetryMessage struct {
	DeviceID   int
	DeviceAddr string
	GatewayID  string
	Battery    float64
	Red        bool
	Yellow     bool
	Green      bool
	StatusCode string
	StatusText string
	Timestamp  time.Time
}

// InterfaceTelemetryService 定义遥测采集管道接口
type InterfaceTelemetryService interface {
	HandleTelemetry(msg TelemetryMessage) error
	ResetAllToIdle(now time.Time) (int, error)
}

// TelemetryService 遥测采集管道：按设备地址串行处理，单事务落库后推送WebSocket
type TelemetryService struct {
	DB       *gorm.DB
	Config   *config.Config
	Registry InterfaceRegistryService
	WS       InterfaceWebSocketService

	// 设备地址 -> *sync.Mutex，首次收到该地址的数据时惰性创建
	deviceLocks sync.Map

	// 可注入的时钟，测试用
	now func() time.Time
}

// NewTelemetryService 创建遥测采集服务
func NewTelemetryService(db *gorm.DB, cfg *config.Config, registry InterfaceRegistryService, ws InterfaceWebSocketService) InterfaceTelemetryService {
	return &TelemetryService{
		DB:       db,
		Config:   cfg,
		Registry: registry,
		WS:       ws,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// lockFor 返回指定设备地址的互斥锁
func (s *TelemetryService) lockFor(addr string) *sync.Mutex {
	v, _ := s.deviceLocks.LoadOrStore(addr, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// HandleTelemetry 处理一条遥测数据。同一设备的处理串行执行，
// 落库（6:00补录 + 状态更新 + 履历追加）在单个事务内完成，
// 事务失败整体回滚且不重试；成功后向WebSocket客户端推送。
func (s *TelemetryService) HandleTelemetry(msg TelemetryMessage) error {
	lock := s.lockFor(msg.DeviceAddr)
	lock.Lock()
	defer lock.Unlock()

	now := s.now()
	changed := false

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.ensureBoundaryRecord(tx, msg, now); err != nil {
			return err
		}

		var err error
		changed, err = s.upsertStatus(tx, msg, now)
		if err != nil {
			return err
		}

		if changed {
			if err := s.appendHistory(tx, msg, now); err != nil {
				return err
			}
		} else {
			config.Info("[変更なし] デバイス %s (%s) - 履歴には記録しません", msg.DeviceAddr, msg.StatusText)
		}
		return nil
	})
	if err != nil {
		config.Error("メッセージ処理エラー: デバイス %s: %v", msg.DeviceAddr, err)
		return err
	}

	s.broadcastUpdate(msg, now)
	return nil
}

// ensureBoundaryRecord 当日6:00整点的休止记录不存在时补录一条
// （电量100、全灯灭、时间戳精确为6:00整点UTC）。已存在时跳过，保证重放幂等。
func (s *TelemetryService) ensureBoundaryRecord(tx *gorm.DB, msg TelemetryMessage, now time.Time) error {
	boundary := utils.BusinessDayStart(utils.BusinessDate(now))

	var count int64
	if err := tx.Model(&models.DeviceHistory{}).
		Where("device_addr = ? AND timestamp = ?", msg.DeviceAddr, boundary).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	reset := models.DeviceHistory{
		DeviceID:   msg.DeviceID,
		DeviceAddr: msg.DeviceAddr,
		Battery:    100,
		StatusCode: models.StatusCodeIdle,
		StatusText: models.StatusTextIdle,
		Timestamp:  boundary,
	}
	if err := tx.Create(&reset).Error; err != nil {
		return err
	}
	config.Info("[6:00リセット追加] デバイス %s: その日の最初の信号受信時に6:00の休止状態を記録", msg.DeviceAddr)
	return nil
}

// upsertStatus 更新或创建设备当前状态，返回三色灯状态是否发生变化（新设备视为变化）
func (s *TelemetryService) upsertStatus(tx *gorm.DB, msg TelemetryMessage, now time.Time) (bool, error) {
	var status models.DeviceStatus
	err := tx.Where("device_addr = ?", msg.DeviceAddr).First(&status).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return false, err
		}
		status = models.DeviceStatus{
			DeviceID:   msg.DeviceID,
			DeviceAddr: msg.DeviceAddr,
			GatewayID:  msg.GatewayID,
			Battery:    msg.Battery,
			Red:        msg.Red,
			Yellow:     msg.Yellow,
			Green:      msg.Green,
			StatusCode: msg.StatusCode,
			StatusText: msg.StatusText,
			LastUpdate: now,
			IsActive:   true,
		}
		if err := tx.Create(&status).Error; err != nil {
			return false, err
		}
		return true, nil
	}

	changed := status.Red != msg.Red || status.Yellow != msg.Yellow || status.Green != msg.Green
	if changed {
		config.Info("デバイス %s: ライト状態変更 (R:%v->%v, Y:%v->%v, G:%v->%v)",
			msg.DeviceAddr, status.Red, msg.Red, status.Yellow, msg.Yellow, status.Green, msg.Green)
	}

	status.DeviceID = msg.DeviceID
	status.GatewayID = msg.GatewayID
	status.Battery = msg.Battery
	status.Red = msg.Red
	status.Yellow = msg.Yellow
	status.Green = msg.Green
	status.StatusCode = msg.StatusCode
	status.StatusText = msg.StatusText
	status.LastUpdate = now
	status.IsActive = true
	if err := tx.Save(&status).Error; err != nil {
		return false, err
	}
	return changed, nil
}

// appendHistory 追加履历记录。直近1秒内已有相同三色灯状态的记录时跳过（重放去重）。
func (s *TelemetryService) appendHistory(tx *gorm.DB, msg TelemetryMessage, now time.Time) error {
	oneSecondAgo := now.Add(-time.Second)

	var count int64
	if err := tx.Model(&models.DeviceHistory{}).
		Where("device_addr = ? AND timestamp > ? AND red = ? AND yellow = ? AND green = ?",
			msg.DeviceAddr, oneSecondAgo, msg.Red, msg.Yellow, msg.Green).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		config.Warning("[重複スキップ] デバイス %s: 1秒以内に同じ状態が記録済み", msg.DeviceAddr)
		return nil
	}

	history := models.DeviceHistory{
		DeviceID:   msg.DeviceID,
		DeviceAddr: msg.DeviceAddr,
		Battery:    msg.Battery,
		Red:        msg.Red,
		Yellow:     msg.Yellow,
		Green:      msg.Green,
		StatusCode: msg.StatusCode,
		StatusText: msg.StatusText,
		Timestamp:  now,
	}
	if err := tx.Create(&history).Error; err != nil {
		return err
	}
	config.Info("[履歴追加] デバイス %s (%s) R:%v Y:%v G:%v", msg.DeviceAddr, msg.StatusText, msg.Red, msg.Yellow, msg.Green)
	return nil
}

// broadcastUpdate 向WebSocket客户端推送合并了登记信息的设备快照
func (s *TelemetryService) broadcastUpdate(msg TelemetryMessage, now time.Time) {
	info := s.Registry.GetDeviceInfo(msg.DeviceAddr)
	s.WS.Broadcast(DeviceUpdateEvent{
		Type:       "device_update",
		DeviceID:   msg.DeviceID,
		DeviceAddr: msg.DeviceAddr,
		DeviceName: info.Name,
		Location:   info.Location,
		Battery:    msg.Battery,
		Red:        msg.Red,
		Yellow:     msg.Yellow,
		Green:      msg.Green,
		StatusCode: msg.StatusCode,
		StatusText: msg.StatusText,
		IsActive:   true,
		Timestamp:  now.Format(time.RFC3339Nano),
	})
}

// ResetAllToIdle 每日6:00将所有亮灯设备强制置为休止状态。
// 已经休止的设备不做任何改动；每台设备独立事务，单台失败不影响其他设备。
// 返回实际重置的设备台数。
func (s *TelemetryService) ResetAllToIdle(now time.Time) (int, error) {
	boundary := utils.BusinessDayStart(utils.BusinessDate(now))

	var devices []models.DeviceStatus
	if err := s.DB.Find(&devices).Error; err != nil {
		return 0, err
	}

	resetCount := 0
	for i := range devices {
		device := &devices[i]
		info := s.Registry.GetDeviceInfo(device.DeviceAddr)

		if !device.Red && !device.Yellow && !device.Green {
			config.Info("  - %s (%s): すでに Not Working (変更なし)", info.Name, device.DeviceAddr)
			continue
		}

		lock := s.lockFor(device.DeviceAddr)
		lock.Lock()
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			oldStatus := device.StatusText
			device.StatusCode = models.StatusCodeIdle
			device.StatusText = models.StatusTextIdle
			device.Red = false
			device.Yellow = false
			device.Green = false
			device.LastUpdate = now
			// is_activeと電池残量はそのまま維持
			if err := tx.Save(device).Error; err != nil {
				return err
			}

			// 重複防止: 6:00前後1分以内に休止記録が既にあればスキップ
			var count int64
			if err := tx.Model(&models.DeviceHistory{}).
				Where("device_addr = ? AND timestamp >= ? AND timestamp < ? AND status_code = ? AND red = ? AND yellow = ? AND green = ?",
					device.DeviceAddr, boundary.Add(-time.Minute), boundary.Add(time.Minute),
					models.StatusCodeIdle, false, false, false).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				config.Info("  - %s (%s): 6:00リセットデータ既存（スキップ）", info.Name, device.DeviceAddr)
				return nil
			}

			history := models.DeviceHistory{
				DeviceID:   device.DeviceID,
				DeviceAddr: device.DeviceAddr,
				Battery:    device.Battery,
				StatusCode: models.StatusCodeIdle,
				StatusText: models.StatusTextIdle,
				Timestamp:  now,
			}
			if err := tx.Create(&history).Error; err != nil {
				return err
			}
			config.Info("  - %s (%s): %s → Not Working (履歴記録)", info.Name, device.DeviceAddr, oldStatus)
			return nil
		})
		lock.Unlock()

		if err != nil {
			config.Error("デバイス休止処理エラー: %s: %v", device.DeviceAddr, err)
			continue
		}
		resetCount++

		s.WS.Broadcast(DeviceUpdateEvent{
			Type:       "device_update",
			DeviceID:   device.DeviceID,
			DeviceAddr: device.DeviceAddr,
			DeviceName: info.Name,
			Location:   info.Location,
			Battery:    device.Battery,
			StatusCode: models.StatusCodeIdle,
			StatusText: models.StatusTextIdle,
			IsActive:   device.IsActive,
			Timestamp:  now.Format(time.RFC3339Nano),
		})
	}
	return resetCount, nil
}
