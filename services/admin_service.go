package services

import (
	"errors"

	"lighttower-monitor-service/config"
	"lighttower-monitor-service/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials 用户名或密码错误
var ErrInvalidCredentials = errors.New("用户名或密码错误")

// InterfaceAdminService 定义管理员服务接口
type InterfaceAdminService interface {
	Login(username, password string) (*models.Admin, error)
	EnsureDefaultAdmin() error
}

// AdminService 管理员服务
type AdminService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAdminService 创建管理员服务
func NewAdminService(db *gorm.DB, cfg *config.Config) InterfaceAdminService {
	return &AdminService{
		DB:     db,
		Config: cfg,
	}
}

// Login 校验用户名密码，成功时返回管理员信息
func (s *AdminService) Login(username, password string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &admin, nil
}

// EnsureDefaultAdmin 首次启动时创建默认管理员账号
func (s *AdminService) EnsureDefaultAdmin() error {
	var count int64
	if err := s.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.Config.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Username: "admin",
		Password: string(hashed),
	}
	if err := s.DB.Create(&admin).Error; err != nil {
		return err
	}
	config.Info("デフォルト管理者アカウントを作成しました: admin")
	return nil
}
