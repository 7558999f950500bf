package models

import (
	"time"
)

// DeviceHistory 表示设备状态变化的历史记录，按时间戳（UTC）追加写入，写入后不可变。
// 聚合引擎以此为唯一事实来源重建任意时间窗口内的设备行为。
type DeviceHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DeviceID   int       `gorm:"index" json:"device_id"`
	DeviceAddr string    `gorm:"type:varchar(12);index" json:"device_addr"`
	Battery    float64   `json:"battery"`
	Red        bool      `gorm:"default:false" json:"red"`
	Yellow     bool      `gorm:"default:false" json:"yellow"`
	Green      bool      `gorm:"default:false" json:"green"`
	StatusCode string    `gorm:"type:varchar(2)" json:"status_code"`
	StatusText string    `gorm:"type:varchar(20)" json:"status_text"`
	Timestamp  time.Time `gorm:"index" json:"timestamp"`
}

// LightState 返回该记录对应的运行状态
func (h *DeviceHistory) LightState() LightState {
	return LightStateOf(h.Red, h.Yellow, h.Green)
}
