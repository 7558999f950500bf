package services

import (
	"testing"
	"time"

	"lighttower-monitor-service/models"
)

func newTestStatusService(t *testing.T) *StatusService {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig()
	return &StatusService{
		DB:       db,
		Config:   cfg,
		Registry: NewRegistryService(db, cfg),
		now:      func() time.Time { return testNow },
	}
}

// 登記情報をマージし、表示順で返す
func TestGetDevices(t *testing.T) {
	s := newTestStatusService(t)
	seedRegistration(t, s.DB, testAddr, "設備1号機", 1)

	statuses := []models.DeviceStatus{
		{DeviceID: 2, DeviceAddr: "AABBCCDDEEFF", Green: true, StatusCode: "01", StatusText: "Running", LastUpdate: testNow, IsActive: true},
		{DeviceID: 1, DeviceAddr: testAddr, Yellow: true, StatusCode: "02", StatusText: "Stop", LastUpdate: testNow, IsActive: true},
	}
	for i := range statuses {
		if err := s.DB.Create(&statuses[i]).Error; err != nil {
			t.Fatalf("状態行の作成に失敗: %v", err)
		}
	}

	devices, err := s.GetDevices()
	if err != nil {
		t.Fatalf("GetDevices: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("設備数 = %d, want 2", len(devices))
	}

	// 登記済み（index 1）が未登記（index 999）より先
	if devices[0].DeviceAddr != testAddr || devices[0].DeviceName != "設備1号機" {
		t.Errorf("devices[0] = %+v", devices[0])
	}
	if devices[1].DeviceName != "AABBCCDDEEFF" || devices[1].Index != 999 {
		t.Errorf("未登記設備は兜底情報のはず: %+v", devices[1])
	}
}

func TestGetDeviceHistoryWindow(t *testing.T) {
	s := newTestStatusService(t)
	seedHistory(t, s.DB, testAddr, false, false, true, testNow.Add(-30*time.Hour)) // 24時間窓の外
	seedHistory(t, s.DB, testAddr, false, false, true, testNow.Add(-2*time.Hour))
	seedHistory(t, s.DB, testAddr, false, true, false, testNow.Add(-time.Hour))

	history, err := s.GetDeviceHistory(1, 24)
	if err != nil {
		t.Fatalf("GetDeviceHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("履歴件数 = %d, want 2", len(history))
	}
	// 降順
	if !history[0].Timestamp.After(history[1].Timestamp) {
		t.Errorf("履歴は時間降順であるべき")
	}
}

func TestGetDeviceDataLogs(t *testing.T) {
	s := newTestStatusService(t)
	for i := 0; i < 5; i++ {
		seedHistory(t, s.DB, testAddr, false, false, true, testNow.Add(-time.Duration(i)*time.Minute))
	}

	logs, err := s.GetDeviceDataLogs("ecda3bbe61e8", 3)
	if err != nil {
		t.Fatalf("GetDeviceDataLogs: %v", err)
	}
	if logs.DeviceAddr != testAddr {
		t.Errorf("DeviceAddr = %s", logs.DeviceAddr)
	}
	if logs.TotalLogs != 3 || len(logs.Logs) != 3 {
		t.Errorf("件数 = %d/%d, want 3", logs.TotalLogs, len(logs.Logs))
	}
	// 最新が先頭、当地時間表記
	if logs.Logs[0].Timestamp != "2025-06-11 10:00:00" {
		t.Errorf("Timestamp = %s", logs.Logs[0].Timestamp)
	}
}
