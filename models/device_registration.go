package models

import (
	"time"
)

// DeviceRegistration 表示设备登记信息（显示名称、位置、排序等）。
// 删除为逻辑删除：仅清除 IsEnabled，不物理删除，历史数据仍可引用。
type DeviceRegistration struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DeviceAddr  string    `gorm:"type:varchar(12);uniqueIndex;not null" json:"device_addr"`
	Name        string    `gorm:"type:varchar(50);not null" json:"name"`
	Location    string    `gorm:"type:varchar(100);default:''" json:"location"`
	Description string    `gorm:"type:varchar(200);default:''" json:"description"`
	SortIndex   int       `gorm:"column:sort_index;default:999" json:"index"`
	IsEnabled   bool      `gorm:"default:true" json:"is_enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
