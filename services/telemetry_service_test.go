package services

import (
	"testing"
	"time"

	"lighttower-monitor-service/models"
)

func newTestTelemetryService(t *testing.T) (*TelemetryService, *fakeWSService, *time.Time) {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig()
	ws := &fakeWSService{}

	current := testNow
	svc := &TelemetryService{
		DB:       db,
		Config:   cfg,
		Registry: NewRegistryService(db, cfg),
		WS:       ws,
		now:      func() time.Time { return current },
	}
	return svc, ws, &current
}

func telemetryMsg(code string) TelemetryMessage {
	red, yellow, green := models.LightsFromStatusCode(code)
	text := "Running"
	switch code {
	case models.StatusCodeIdle:
		text = models.StatusTextIdle
	case models.StatusCodeYellow, models.StatusCodeRed:
		text = models.StatusTextStop
	}
	return TelemetryMessage{
		DeviceID:   0x61E8,
		DeviceAddr: testAddr,
		GatewayID:  "JP0000000001",
		Battery:    85,
		Red:        red,
		Yellow:     yellow,
		Green:      green,
		StatusCode: code,
		StatusText: text,
	}
}

// 当日最初の信号受信時に6:00ちょうどの休止記録を補完する
func TestHandleTelemetryFirstSignal(t *testing.T) {
	svc, ws, _ := newTestTelemetryService(t)

	if err := svc.HandleTelemetry(telemetryMsg(models.StatusCodeRunning)); err != nil {
		t.Fatalf("HandleTelemetry: %v", err)
	}

	// 6:00の補完記録 + 受信記録の2件
	if got := countHistory(t, svc.DB, testAddr); got != 2 {
		t.Errorf("履歴件数 = %d, want 2", got)
	}

	var boundaryCount int64
	svc.DB.Model(&models.DeviceHistory{}).
		Where("device_addr = ? AND timestamp = ?", testAddr, testDayStart).
		Count(&boundaryCount)
	if boundaryCount != 1 {
		t.Errorf("6:00記録件数 = %d, want 1", boundaryCount)
	}

	var status models.DeviceStatus
	if err := svc.DB.Where("device_addr = ?", testAddr).First(&status).Error; err != nil {
		t.Fatalf("状態行が作成されていない: %v", err)
	}
	if !status.Green || status.Red || status.Yellow || !status.IsActive {
		t.Errorf("status = %+v", status)
	}

	events := ws.Events()
	if len(events) != 1 {
		t.Fatalf("推送件数 = %d, want 1", len(events))
	}
	if events[0].Type != "device_update" || !events[0].Green {
		t.Errorf("event = %+v", events[0])
	}
}

// 同じ状態の再送は履歴に記録しない（6:00記録も二重に作らない）
func TestHandleTelemetryReplayIdempotent(t *testing.T) {
	svc, ws, _ := newTestTelemetryService(t)
	msg := telemetryMsg(models.StatusCodeRunning)

	for i := 0; i < 3; i++ {
		if err := svc.HandleTelemetry(msg); err != nil {
			t.Fatalf("HandleTelemetry: %v", err)
		}
	}

	if got := countHistory(t, svc.DB, testAddr); got != 2 {
		t.Errorf("履歴件数 = %d, want 2", got)
	}
	// 推送は毎回行う（フロントの最新表示維持のため）
	if len(ws.Events()) != 3 {
		t.Errorf("推送件数 = %d, want 3", len(ws.Events()))
	}
}

// 状態変化は履歴に追記されるが、1秒以内の同状態への揺り戻しは重複として捨てる
func TestHandleTelemetryFlappingDedup(t *testing.T) {
	svc, _, _ := newTestTelemetryService(t)

	if err := svc.HandleTelemetry(telemetryMsg(models.StatusCodeRunning)); err != nil {
		t.Fatalf("HandleTelemetry: %v", err)
	}
	if err := svc.HandleTelemetry(telemetryMsg(models.StatusCodeRed)); err != nil {
		t.Fatalf("HandleTelemetry: %v", err)
	}
	// 6:00補完 + 緑 + 赤
	if got := countHistory(t, svc.DB, testAddr); got != 3 {
		t.Errorf("履歴件数 = %d, want 3", got)
	}

	// 1秒以内に緑へ戻る: 状態変化ではあるが直近1秒に同じ緑の記録があるため捨てる
	if err := svc.HandleTelemetry(telemetryMsg(models.StatusCodeRunning)); err != nil {
		t.Fatalf("HandleTelemetry: %v", err)
	}
	if got := countHistory(t, svc.DB, testAddr); got != 3 {
		t.Errorf("履歴件数 = %d, want 3", got)
	}
}

func TestResetAllToIdle(t *testing.T) {
	svc, ws, current := newTestTelemetryService(t)

	if err := svc.HandleTelemetry(telemetryMsg(models.StatusCodeRunning)); err != nil {
		t.Fatalf("HandleTelemetry: %v", err)
	}
	beforeEvents := len(ws.Events())
	beforeHistory := countHistory(t, svc.DB, testAddr)

	// 翌営業日の6:00に日次リセット
	nextBoundary := testDayStart.Add(24 * time.Hour)
	*current = nextBoundary

	count, err := svc.ResetAllToIdle(nextBoundary)
	if err != nil {
		t.Fatalf("ResetAllToIdle: %v", err)
	}
	if count != 1 {
		t.Errorf("リセット台数 = %d, want 1", count)
	}

	var status models.DeviceStatus
	if err := svc.DB.Where("device_addr = ?", testAddr).First(&status).Error; err != nil {
		t.Fatalf("状態行の取得に失敗: %v", err)
	}
	if status.Red || status.Yellow || status.Green {
		t.Errorf("リセット後もライトが点灯している: %+v", status)
	}
	if status.StatusCode != models.StatusCodeIdle || status.StatusText != models.StatusTextIdle {
		t.Errorf("status = %+v", status)
	}
	// 電池残量は維持される
	if status.Battery != 85 {
		t.Errorf("Battery = %.0f, want 85", status.Battery)
	}

	if got := countHistory(t, svc.DB, testAddr); got != beforeHistory+1 {
		t.Errorf("履歴件数 = %d, want %d", got, beforeHistory+1)
	}
	if len(ws.Events()) != beforeEvents+1 {
		t.Errorf("推送件数 = %d, want %d", len(ws.Events()), beforeEvents+1)
	}

	// すでに休止中の設備には一切触れない
	count, err = svc.ResetAllToIdle(nextBoundary.Add(time.Minute))
	if err != nil {
		t.Fatalf("ResetAllToIdle: %v", err)
	}
	if count != 0 {
		t.Errorf("2回目のリセット台数 = %d, want 0", count)
	}
	if got := countHistory(t, svc.DB, testAddr); got != beforeHistory+1 {
		t.Errorf("履歴件数 = %d, want %d", got, beforeHistory+1)
	}
}

// 6:00前後1分以内に休止記録が既にあれば履歴は追記しない（状態だけ更新）
func TestResetAllToIdleSkipsDuplicateHistory(t *testing.T) {
	svc, _, current := newTestTelemetryService(t)

	if err := svc.HandleTelemetry(telemetryMsg(models.StatusCodeRunning)); err != nil {
		t.Fatalf("HandleTelemetry: %v", err)
	}

	nextBoundary := testDayStart.Add(24 * time.Hour)
	seedHistory(t, svc.DB, testAddr, false, false, false, nextBoundary)
	beforeHistory := countHistory(t, svc.DB, testAddr)

	*current = nextBoundary.Add(30 * time.Second)
	count, err := svc.ResetAllToIdle(nextBoundary.Add(30 * time.Second))
	if err != nil {
		t.Fatalf("ResetAllToIdle: %v", err)
	}
	if count != 1 {
		t.Errorf("リセット台数 = %d, want 1", count)
	}

	if got := countHistory(t, svc.DB, testAddr); got != beforeHistory {
		t.Errorf("履歴件数 = %d, want %d（重複追記なし）", got, beforeHistory)
	}

	var status models.DeviceStatus
	if err := svc.DB.Where("device_addr = ?", testAddr).First(&status).Error; err != nil {
		t.Fatalf("状態行の取得に失敗: %v", err)
	}
	if status.Green {
		t.Errorf("状態は休止に更新されるべき: %+v", status)
	}
}
