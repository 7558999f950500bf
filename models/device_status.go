package models

import (
	"time"
)

// DeviceStatus 表示单台设备的当前状态快照，每个设备地址一行。
// 仅由采集管道与每日重置任务写入，聚合查询只读。
type DeviceStatus struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DeviceID   int       `gorm:"uniqueIndex" json:"device_id"`
	DeviceAddr string    `gorm:"type:varchar(12);uniqueIndex" json:"device_addr"`
	GatewayID  string    `gorm:"type:varchar(20)" json:"gateway_id"`
	Battery    float64   `json:"battery"`
	Red        bool      `gorm:"default:false" json:"red"`
	Yellow     bool      `gorm:"default:false" json:"yellow"`
	Green      bool      `gorm:"default:false" json:"green"`
	StatusCode string    `gorm:"type:varchar(2)" json:"status_code"`
	StatusText string    `gorm:"type:varchar(20)" json:"status_text"`
	LastUpdate time.Time `json:"last_update"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
}

// LightState 返回当前快照对应的运行状态
func (s *DeviceStatus) LightState() LightState {
	return LightStateOf(s.Red, s.Yellow, s.Green)
}
