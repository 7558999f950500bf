package services

import (
	"sort"
	"time"

	"lighttower-monitor-service/config"
	"lighttower-monitor-service/models"
	"lighttower-monitor-service/utils"

	"gorm.io/gorm"
)

// DeviceView 设备当前状态与登记信息合并后的视图
type DeviceView struct {
	DeviceID    int     `json:"device_id"`
	DeviceAddr  string  `json:"device_addr"`
	DeviceName  string  `json:"device_name"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Index       int     `json:"index"`
	GatewayID   string  `json:"gateway_id"`
	Battery     float64 `json:"battery"`
	Red         bool    `json:"red"`
	Yellow      bool    `json:"yellow"`
	Green       bool    `json:"green"`
	StatusCode  string  `json:"status_code"`
	StatusText  string  `json:"status_text"`
	LastUpdate  string  `json:"last_update"`
	IsActive    bool    `json:"is_active"`
}

// DataLogEntry 数据接收日志的1条记录（时间为当地时间）
type DataLogEntry struct {
	Timestamp  string  `json:"timestamp"`
	StatusCode string  `json:"status_code"`
	StatusText string  `json:"status_text"`
	Battery    float64 `json:"battery"`
	Red        bool    `json:"red"`
	Yellow     bool    `json:"yellow"`
	Green      bool    `json:"green"`
	DeviceID   int     `json:"device_id"`
}

// DataLogs 数据接收日志
type DataLogs struct {
	DeviceAddr string         `json:"device_addr"`
	TotalLogs  int            `json:"total_logs"`
	Logs       []DataLogEntry `json:"logs"`
}

// InterfaceStatusService 定义设备状态读取服务接口
type InterfaceStatusService interface {
	GetDevices() ([]DeviceView, error)
	GetDeviceHistory(deviceID int, hours int) ([]models.DeviceHistory, error)
	GetDeviceDataLogs(addr string, limit int) (*DataLogs, error)
}

// StatusService 设备状态读取服务
type StatusService struct {
	DB       *gorm.DB
	Config   *config.Config
	Registry InterfaceRegistryService

	// 可注入的时钟，测试用
	now func() time.Time
}

// NewStatusService 创建设备状态读取服务
func NewStatusService(db *gorm.DB, cfg *config.Config, registry InterfaceRegistryService) InterfaceStatusService {
	return &StatusService{
		DB:       db,
		Config:   cfg,
		Registry: registry,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// 1 GetDevices 取得全设备当前状态（合并登记信息），按显示顺序排序
func (s *StatusService) GetDevices() ([]DeviceView, error) {
	var devices []models.DeviceStatus
	if err := s.DB.Find(&devices).Error; err != nil {
		return nil, err
	}

	result := make([]DeviceView, 0, len(devices))
	for i := range devices {
		d := &devices[i]
		info := s.Registry.GetDeviceInfo(d.DeviceAddr)
		result = append(result, DeviceView{
			DeviceID:    d.DeviceID,
			DeviceAddr:  d.DeviceAddr,
			DeviceName:  info.Name,
			Location:    info.Location,
			Description: info.Description,
			Index:       info.Index,
			GatewayID:   d.GatewayID,
			Battery:     d.Battery,
			Red:         d.Red,
			Yellow:      d.Yellow,
			Green:       d.Green,
			StatusCode:  d.StatusCode,
			StatusText:  d.StatusText,
			LastUpdate:  d.LastUpdate.Format(time.RFC3339Nano),
			IsActive:    d.IsActive,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Index < result[j].Index
	})
	return result, nil
}

// 2 GetDeviceHistory 取得设备直近hours小时的履历，按时间降序
func (s *StatusService) GetDeviceHistory(deviceID int, hours int) ([]models.DeviceHistory, error) {
	if hours <= 0 {
		hours = 24
	}
	since := s.now().Add(-time.Duration(hours) * time.Hour)

	var history []models.DeviceHistory
	err := s.DB.Where("device_id = ? AND timestamp >= ?", deviceID, since).
		Order("timestamp desc").Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

// 3 GetDeviceDataLogs 取得设备最新limit条数据接收日志，按时间降序、当地时间表示
func (s *StatusService) GetDeviceDataLogs(addr string, limit int) (*DataLogs, error) {
	addr = utils.NormalizeDeviceAddr(addr)
	if limit <= 0 {
		limit = 100
	}

	var logs []models.DeviceHistory
	err := s.DB.Where("device_addr = ?", addr).
		Order("timestamp desc").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, err
	}

	result := &DataLogs{
		DeviceAddr: addr,
		TotalLogs:  len(logs),
		Logs:       make([]DataLogEntry, 0, len(logs)),
	}
	for i := range logs {
		l := &logs[i]
		result.Logs = append(result.Logs, DataLogEntry{
			Timestamp:  utils.FormatLocalDateTime(l.Timestamp),
			StatusCode: l.StatusCode,
			StatusText: l.StatusText,
			Battery:    l.Battery,
			Red:        l.Red,
			Yellow:     l.Yellow,
			Green:      l.Green,
			DeviceID:   l.DeviceID,
		})
	}
	return result, nil
}
