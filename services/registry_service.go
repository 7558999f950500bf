package services

import (
	"errors"
	"time"

	"lighttower-monitor-service/config"
	"lighttower-monitor-service/models"
	"lighttower-monitor-service/utils"

	"gorm.io/gorm"
)

// DeviceInfo 设备登记的显示信息（未登记设备返回兜底信息）
type DeviceInfo struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Index       int    `json:"index"`
}

// InterfaceRegistryService 定义设备登记服务接口
type InterfaceRegistryService interface {
	GetRegistrations() ([]models.DeviceRegistration, error)
	GetEnabledAddrs() ([]string, error)
	GetDeviceInfo(addr string) DeviceInfo
	RegisterDevice(addr, name, location, description string, index int) (*models.DeviceRegistration, error)
	UpdateDevice(addr, name, location, description string, index int) (*models.DeviceRegistration, error)
	DisableDevice(addr string) (*models.DeviceRegistration, error)
	SeedDevices() error
}

// RegistryService 提供设备登记相关的服务
type RegistryService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewRegistryService 创建一个新的设备登记服务
func NewRegistryService(db *gorm.DB, cfg *config.Config) InterfaceRegistryService {
	return &RegistryService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetRegistrations 获取全部登记设备（含停用），按显示顺序排序
func (s *RegistryService) GetRegistrations() ([]models.DeviceRegistration, error) {
	var regs []models.DeviceRegistration
	if err := s.DB.Order("sort_index").Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

// 2 GetEnabledAddrs 获取启用中的设备地址列表，按显示顺序排序
func (s *RegistryService) GetEnabledAddrs() ([]string, error) {
	var addrs []string
	if err := s.DB.Model(&models.DeviceRegistration{}).
		Where("is_enabled = ?", true).
		Order("sort_index").
		Pluck("device_addr", &addrs).Error; err != nil {
		return nil, err
	}
	return addrs, nil
}

// 3 GetDeviceInfo 获取单台设备的显示信息，未登记时返回兜底信息
func (s *RegistryService) GetDeviceInfo(addr string) DeviceInfo {
	var reg models.DeviceRegistration
	err := s.DB.Where("device_addr = ? AND is_enabled = ?", addr, true).First(&reg).Error
	if err != nil {
		// 未登记设备：以地址本身为名称
		return DeviceInfo{
			Name:        addr,
			Location:    "不明",
			Description: "未登録デバイス",
			Index:       999,
		}
	}
	return DeviceInfo{
		Name:        reg.Name,
		Location:    reg.Location,
		Description: reg.Description,
		Index:       reg.SortIndex,
	}
}

// 4 RegisterDevice 登记新设备，同时初始化状态表（离线状态）
func (s *RegistryService) RegisterDevice(addr, name, location, description string, index int) (*models.DeviceRegistration, error) {
	if !utils.ValidateDeviceAddr(addr) {
		return nil, ErrInvalidAddr
	}
	addr = utils.NormalizeDeviceAddr(addr)

	var count int64
	if err := s.DB.Model(&models.DeviceRegistration{}).Where("device_addr = ?", addr).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDeviceExists
	}

	reg := &models.DeviceRegistration{
		DeviceAddr:  addr,
		Name:        name,
		Location:    location,
		Description: description,
		SortIndex:   index,
		IsEnabled:   true,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reg).Error; err != nil {
			return err
		}
		// 状态表没有该地址时一并初始化
		var statusCount int64
		if err := tx.Model(&models.DeviceStatus{}).Where("device_addr = ?", addr).Count(&statusCount).Error; err != nil {
			return err
		}
		if statusCount == 0 {
			status := models.DeviceStatus{
				DeviceID:   utils.DeviceIDFromAddr(addr),
				DeviceAddr: addr,
				GatewayID:  s.Config.DefaultGatewayID,
				Battery:    0,
				StatusCode: models.StatusCodeIdle,
				StatusText: models.StatusTextIdle,
				LastUpdate: time.Now().UTC(),
				IsActive:   false,
			}
			if err := tx.Create(&status).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	config.Info("新设备登记: %s (%s)", name, addr)
	return reg, nil
}

// 5 UpdateDevice 更新登记信息
func (s *RegistryService) UpdateDevice(addr, name, location, description string, index int) (*models.DeviceRegistration, error) {
	addr = utils.NormalizeDeviceAddr(addr)

	var reg models.DeviceRegistration
	if err := s.DB.Where("device_addr = ?", addr).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}

	reg.Name = name
	reg.Location = location
	reg.Description = description
	reg.SortIndex = index
	if err := s.DB.Save(&reg).Error; err != nil {
		return nil, err
	}

	config.Info("设备登记更新: %s (%s)", name, addr)
	return &reg, nil
}

// 6 DisableDevice 停用设备（逻辑删除），状态表同时置为非活动
func (s *RegistryService) DisableDevice(addr string) (*models.DeviceRegistration, error) {
	addr = utils.NormalizeDeviceAddr(addr)

	var reg models.DeviceRegistration
	if err := s.DB.Where("device_addr = ?", addr).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		reg.IsEnabled = false
		if err := tx.Save(&reg).Error; err != nil {
			return err
		}
		return tx.Model(&models.DeviceStatus{}).
			Where("device_addr = ?", addr).
			Update("is_active", false).Error
	})
	if err != nil {
		return nil, err
	}

	config.Info("设备停用: %s (%s)", reg.Name, addr)
	return &reg, nil
}

// 7 SeedDevices 初次启动时写入预置设备清单并初始化状态表
func (s *RegistryService) SeedDevices() error {
	for addr, seed := range config.RegisteredDevices {
		var count int64
		if err := s.DB.Model(&models.DeviceRegistration{}).Where("device_addr = ?", addr).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			reg := models.DeviceRegistration{
				DeviceAddr:  addr,
				Name:        seed.Name,
				Location:    seed.Location,
				Description: seed.Description,
				SortIndex:   seed.Index,
				IsEnabled:   true,
			}
			if err := s.DB.Create(&reg).Error; err != nil {
				return err
			}
			config.Info("预置设备登记: %s (%s)", seed.Name, addr)
		}

		var statusCount int64
		if err := s.DB.Model(&models.DeviceStatus{}).Where("device_addr = ?", addr).Count(&statusCount).Error; err != nil {
			return err
		}
		if statusCount == 0 {
			status := models.DeviceStatus{
				DeviceID:   utils.DeviceIDFromAddr(addr),
				DeviceAddr: addr,
				GatewayID:  s.Config.DefaultGatewayID,
				Battery:    0,
				StatusCode: models.StatusCodeIdle,
				StatusText: models.StatusTextIdle,
				LastUpdate: time.Now().UTC(),
				IsActive:   false,
			}
			if err := s.DB.Create(&status).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
