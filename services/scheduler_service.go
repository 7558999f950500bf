package services

import (
	"time"

	"lighttower-monitor-service/config"
	"lighttower-monitor-service/utils"

	"github.com/robfig/cron/v3"
)

// InterfaceSchedulerService 定义定时任务服务接口
type InterfaceSchedulerService interface {
	Start() error
	Stop()
}

// SchedulerService 定时任务服务。毎日6:00（営業時区）に全設備を休止状態にリセットする。
type SchedulerService struct {
	Config    *config.Config
	Telemetry InterfaceTelemetryService
	cron      *cron.Cron
}

// NewSchedulerService 创建定时任务服务
func NewSchedulerService(cfg *config.Config, telemetry InterfaceTelemetryService) InterfaceSchedulerService {
	return &SchedulerService{
		Config:    cfg,
		Telemetry: telemetry,
		cron:      cron.New(cron.WithLocation(utils.Location())),
	}
}

// Start 注册并启动每日6:00的重置任务
func (s *SchedulerService) Start() error {
	_, err := s.cron.AddFunc("0 6 * * *", s.runDailyReset)
	if err != nil {
		return err
	}
	s.cron.Start()
	config.Info("スケジューラーを起動しました - 毎日6:00に全デバイスを休止状態にリセット")
	return nil
}

// runDailyReset 执行每日重置
func (s *SchedulerService) runDailyReset() {
	now := time.Now().UTC()
	config.Info("=== 6:00 デバイス休止処理開始 (%s) ===", utils.FormatLocalDateTime(now))

	count, err := s.Telemetry.ResetAllToIdle(now)
	if err != nil {
		config.Error("デバイス休止処理エラー: %v", err)
		return
	}
	config.Info("=== 休止処理完了: %d台のデバイスをリセットしました ===", count)
}

// Stop 停止定时任务
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	config.Info("スケジューラーを停止しました")
}
