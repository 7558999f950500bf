package services

import (
	"errors"
	"testing"
	"time"

	"lighttower-monitor-service/models"
)

const testAddr = "ECDA3BBE61E8"

// テスト基準時刻: 2025-06-11 10:00 JST（営業日2025-06-11、開始から4時間後）
var (
	testDayStart = time.Date(2025, 6, 10, 21, 0, 0, 0, time.UTC) // 2025-06-11 06:00 JST
	testNow      = testDayStart.Add(4 * time.Hour)
)

func newTestStatsService(t *testing.T) *StatsService {
	t.Helper()
	return &StatsService{
		DB:     newTestDB(t),
		Config: testConfig(),
		now:    func() time.Time { return testNow },
	}
}

func TestGreenAppleScore(t *testing.T) {
	cases := []struct {
		percent float64
		want    int
	}{
		{100, 5}, {50, 5}, {49.9, 3}, {40, 3}, {39.9, 2}, {35, 2},
		{34.9, 1}, {30.1, 1}, {30, 0}, {0, 0},
	}
	for _, c := range cases {
		if got := greenAppleScore(c.percent); got != c.want {
			t.Errorf("greenAppleScore(%.1f) = %d, want %d", c.percent, got, c.want)
		}
	}
}

// 各状態の滞留時間の合計は経過済みの窓長と常に一致する
func TestApportionDurationsPartition(t *testing.T) {
	start := testDayStart
	end := start.Add(6 * time.Hour)
	records := []models.DeviceHistory{
		{DeviceAddr: testAddr, Green: true, Timestamp: start.Add(time.Hour)},
		{DeviceAddr: testAddr, Yellow: true, Timestamp: start.Add(3 * time.Hour)},
	}

	m, future := apportionDurations(records, nil, start, end, testNow)

	// 窓頭のギャップは最初の記録の状態（緑）で埋める
	if m.Running != 180 {
		t.Errorf("Running = %.1f, want 180", m.Running)
	}
	if m.StopYellow != 60 {
		t.Errorf("StopYellow = %.1f, want 60", m.StopYellow)
	}
	if m.StopRed != 0 || m.Idle != 0 {
		t.Errorf("StopRed/Idle 应为0, got %.1f/%.1f", m.StopRed, m.Idle)
	}
	if m.total() != 240 {
		t.Errorf("合計 = %.1f, 应等于经过的窗口长度240", m.total())
	}
	if future != 120 {
		t.Errorf("future = %.1f, want 120", future)
	}
}

// carryInがあるときは窓頭をcarry-inの状態で埋める
func TestApportionDurationsCarryIn(t *testing.T) {
	start := testDayStart
	end := start.Add(2 * time.Hour)
	carry := &models.DeviceHistory{DeviceAddr: testAddr, Red: true, Timestamp: start.Add(-time.Hour)}
	records := []models.DeviceHistory{
		{DeviceAddr: testAddr, Green: true, Timestamp: start.Add(time.Hour)},
	}

	m, _ := apportionDurations(records, carry, start, end, testNow)
	if m.StopRed != 60 {
		t.Errorf("StopRed = %.1f, want 60", m.StopRed)
	}
	if m.Running != 60 {
		t.Errorf("Running = %.1f, want 60", m.Running)
	}
}

// 記録が1件もない窓は全時間を休止として扱う
func TestApportionDurationsNoRecords(t *testing.T) {
	start := testDayStart
	end := start.Add(2 * time.Hour)

	m, future := apportionDurations(nil, nil, start, end, testNow)
	if m.Idle != 120 {
		t.Errorf("Idle = %.1f, want 120", m.Idle)
	}
	if future != 0 {
		t.Errorf("future = %.1f, want 0", future)
	}
}

// まだ始まっていない窓は滞留時間ゼロ、全時間がfuture
func TestApportionDurationsAllFuture(t *testing.T) {
	start := testNow.Add(time.Hour)
	end := start.Add(2 * time.Hour)

	m, future := apportionDurations(nil, nil, start, end, testNow)
	if m.total() != 0 {
		t.Errorf("合計 = %.1f, want 0", m.total())
	}
	if future != 120 {
		t.Errorf("future = %.1f, want 120", future)
	}
}

func TestBuildSegments(t *testing.T) {
	start := testDayStart
	end := start.Add(2 * time.Hour)
	records := []models.DeviceHistory{
		{DeviceAddr: testAddr, Green: true, Timestamp: start},
		{DeviceAddr: testAddr, Green: true, Timestamp: start.Add(30 * time.Minute)}, // 同状態はマージ
		{DeviceAddr: testAddr, Yellow: true, Timestamp: start.Add(time.Hour)},
	}
	now := start.Add(90 * time.Minute)

	segments := buildSegments(records, start, end, now)
	if len(segments) != 3 {
		t.Fatalf("セグメント数 = %d, want 3", len(segments))
	}

	if segments[0].Status != "running" || segments[0].Color != "green" || segments[0].DurationMinutes != 60 {
		t.Errorf("segment[0] = %+v", segments[0])
	}
	if segments[1].Status != "stop_yellow" || segments[1].DurationMinutes != 30 {
		t.Errorf("segment[1] = %+v", segments[1])
	}
	if segments[2].Status != "future" || segments[2].Color != "white" || segments[2].DurationMinutes != 30 {
		t.Errorf("segment[2] = %+v", segments[2])
	}
}

func TestBuildSegmentsNoRecords(t *testing.T) {
	start := testDayStart
	end := start.Add(time.Hour)

	segments := buildSegments(nil, start, end, testNow)
	if len(segments) != 1 {
		t.Fatalf("セグメント数 = %d, want 1", len(segments))
	}
	if segments[0].Status != "none" || segments[0].Color != "gray" || segments[0].DurationMinutes != 60 {
		t.Errorf("segment[0] = %+v", segments[0])
	}
}

// 全体が未来の窓は白1本のみ（夜勤がまだ始まっていない日中の照会）
func TestBuildSegmentsAllFuture(t *testing.T) {
	start := testNow.Add(time.Hour)
	end := start.Add(2 * time.Hour)

	segments := buildSegments(nil, start, end, testNow)
	if len(segments) != 1 {
		t.Fatalf("セグメント数 = %d, want 1", len(segments))
	}
	if segments[0].Status != "future" || segments[0].DurationMinutes != 120 {
		t.Errorf("segment[0] = %+v", segments[0])
	}
}

func TestGetCurrentOperationRate(t *testing.T) {
	s := newTestStatsService(t)
	seedHistory(t, s.DB, testAddr, false, false, false, testDayStart)
	seedHistory(t, s.DB, testAddr, false, false, true, testDayStart.Add(time.Hour))
	seedHistory(t, s.DB, testAddr, false, true, false, testDayStart.Add(3*time.Hour))

	result, err := s.GetCurrentOperationRate(testAddr)
	if err != nil {
		t.Fatalf("GetCurrentOperationRate: %v", err)
	}

	if result.OperationMinutes != 120 {
		t.Errorf("OperationMinutes = %d, want 120", result.OperationMinutes)
	}
	if result.StopYellowMinutes != 60 {
		t.Errorf("StopYellowMinutes = %d, want 60", result.StopYellowMinutes)
	}
	if result.NoneMinutes != 60 {
		t.Errorf("NoneMinutes = %d, want 60", result.NoneMinutes)
	}
	if result.TotalMinutes != 240 {
		t.Errorf("TotalMinutes = %d, want 240", result.TotalMinutes)
	}
	if result.OperationRate != 50.0 {
		t.Errorf("OperationRate = %.1f, want 50.0", result.OperationRate)
	}
	if result.StartTime != "2025-06-11 06:00:00" {
		t.Errorf("StartTime = %s", result.StartTime)
	}
	if result.EndTime != "2025-06-11 10:00:00" {
		t.Errorf("EndTime = %s", result.EndTime)
	}
}

func TestGetOperationRateInvalidDates(t *testing.T) {
	s := newTestStatsService(t)

	if _, err := s.GetOperationRate(testAddr, "bad", "2025-06-11"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("err = %v, want ErrInvalidDate", err)
	}
	if _, err := s.GetOperationRate(testAddr, "2025-06-12", "2025-06-11"); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("err = %v, want ErrInvalidDateRange", err)
	}
}

// 時間枠に記録がなくても直前の状態が引き継がれる
func TestGetDeviceHourlyRateCarryForward(t *testing.T) {
	s := newTestStatsService(t)
	seedHistory(t, s.DB, testAddr, false, false, false, testDayStart)
	seedHistory(t, s.DB, testAddr, false, false, true, testDayStart.Add(time.Hour))
	// 8時台は記録なし（緑のまま継続）
	seedHistory(t, s.DB, testAddr, false, true, false, testDayStart.Add(3*time.Hour))

	entries, err := s.GetDeviceHourlyRate(testAddr, "2025-06-11")
	if err != nil {
		t.Fatalf("GetDeviceHourlyRate: %v", err)
	}

	// 開始済みの枠のみ: 06,07,08,09,10時台
	if len(entries) != 5 {
		t.Fatalf("枠数 = %d, want 5", len(entries))
	}
	if entries[0].Hour != "06:00" {
		t.Errorf("Hour = %s, want 06:00", entries[0].Hour)
	}
	if entries[0].Idle != 100 {
		t.Errorf("06時台 Idle = %.1f, want 100", entries[0].Idle)
	}
	if entries[1].Running != 100 {
		t.Errorf("07時台 Running = %.1f, want 100", entries[1].Running)
	}
	if entries[2].Running != 100 {
		t.Errorf("08時台（記録なし）Running = %.1f, want 100", entries[2].Running)
	}
	if entries[3].StopYellow != 100 {
		t.Errorf("09時台 StopYellow = %.1f, want 100", entries[3].StopYellow)
	}
	// 10時台は開始直後で経過時間ゼロ
	if entries[4].Running != 0 || entries[4].Idle != 0 {
		t.Errorf("10時台 = %+v", entries[4])
	}
}

// 履歴が一度もない設備の枠は休止扱い
func TestGetDeviceHourlyRateNoHistory(t *testing.T) {
	s := newTestStatsService(t)

	entries, err := s.GetDeviceHourlyRate(testAddr, "2025-06-11")
	if err != nil {
		t.Fatalf("GetDeviceHourlyRate: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("枠数 = %d, want 5", len(entries))
	}
	if entries[0].Idle != 100 {
		t.Errorf("Idle = %.1f, want 100", entries[0].Idle)
	}
}

func TestGetDeviceTimeline(t *testing.T) {
	s := newTestStatsService(t)
	seedHistory(t, s.DB, testAddr, false, false, false, testDayStart)
	seedHistory(t, s.DB, testAddr, false, false, true, testDayStart.Add(time.Hour))
	seedHistory(t, s.DB, testAddr, false, true, false, testDayStart.Add(3*time.Hour))

	timeline, err := s.GetDeviceTimeline(testAddr, "2025-06-11")
	if err != nil {
		t.Fatalf("GetDeviceTimeline: %v", err)
	}

	if timeline.Date != "2025-06-11" {
		t.Errorf("Date = %s", timeline.Date)
	}
	if timeline.DayShift.Start != "2025-06-11T06:00:00" || timeline.DayShift.End != "2025-06-11T18:00:00" {
		t.Errorf("日勤窓 = %s - %s", timeline.DayShift.Start, timeline.DayShift.End)
	}

	// 休止60分 + 運転120分 + 黄停止60分 + future
	segs := timeline.DayShift.Segments
	if len(segs) != 4 {
		t.Fatalf("日勤セグメント数 = %d, want 4", len(segs))
	}
	if segs[0].Status != "none" || segs[1].Status != "running" || segs[2].Status != "stop_yellow" || segs[3].Status != "future" {
		t.Errorf("セグメント順序が不正: %+v", segs)
	}

	// 夜勤はまだ始まっていないので白1本
	if len(timeline.NightShift.Segments) != 1 || timeline.NightShift.Segments[0].Status != "future" {
		t.Errorf("夜勤セグメント = %+v", timeline.NightShift.Segments)
	}
}

func TestGetOverallHourlyStatus(t *testing.T) {
	s := newTestStatsService(t)
	seedRegistration(t, s.DB, testAddr, "設備1号機", 1)
	seedHistory(t, s.DB, testAddr, false, false, false, testDayStart)
	seedHistory(t, s.DB, testAddr, false, false, true, testDayStart.Add(time.Hour))
	seedHistory(t, s.DB, testAddr, false, true, false, testDayStart.Add(3*time.Hour))

	report, err := s.GetOverallHourlyStatus("2025-06-11")
	if err != nil {
		t.Fatalf("GetOverallHourlyStatus: %v", err)
	}

	if report.Date != "2025-06-11" || report.TotalDevices != 1 {
		t.Errorf("report = %+v", report)
	}
	if len(report.Data) != 5 {
		t.Fatalf("枠数 = %d, want 5", len(report.Data))
	}
	// 07時台と08時台が100%運転（各5個）、それ以外は0個
	if report.Data[1].GreenApples != 5 || report.Data[2].GreenApples != 5 {
		t.Errorf("07/08時台 GreenApples = %d/%d, want 5/5", report.Data[1].GreenApples, report.Data[2].GreenApples)
	}
	if report.TotalGreenApples != 10 {
		t.Errorf("TotalGreenApples = %d, want 10", report.TotalGreenApples)
	}
}

// 当日データのない設備は全体集計の対象外
func TestGetOverallCurrentStatusSkipsSilentDevices(t *testing.T) {
	s := newTestStatsService(t)
	seedRegistration(t, s.DB, testAddr, "設備1号機", 1)
	seedRegistration(t, s.DB, "ECDA3BBE61E9", "設備2号機", 2)
	seedHistory(t, s.DB, testAddr, false, false, true, testDayStart)

	result, err := s.GetOverallCurrentStatus()
	if err != nil {
		t.Fatalf("GetOverallCurrentStatus: %v", err)
	}

	if result.TotalDevices != 2 {
		t.Errorf("TotalDevices = %d, want 2", result.TotalDevices)
	}
	// 2号機は無記録なので1号機の4時間分のみ
	if result.TotalHours != 4.0 {
		t.Errorf("TotalHours = %.1f, want 4.0", result.TotalHours)
	}
	if result.Running != 100 {
		t.Errorf("Running = %.1f, want 100", result.Running)
	}
}

func TestResolveDateList(t *testing.T) {
	s := newTestStatsService(t)

	// 明示範囲は両端を含む
	dates, err := s.resolveDateList(0, 0, 0, "2025-06-09", "2025-06-11", testNow)
	if err != nil {
		t.Fatalf("resolveDateList: %v", err)
	}
	if len(dates) != 3 {
		t.Errorf("明示範囲: %d日, want 3日", len(dates))
	}

	// 年月指定は月の全日
	dates, err = s.resolveDateList(0, 2025, 6, "", "", testNow)
	if err != nil {
		t.Fatalf("resolveDateList: %v", err)
	}
	if len(dates) != 30 {
		t.Errorf("2025年6月: %d日, want 30日", len(dates))
	}

	// 指定なしは直近7日
	dates, err = s.resolveDateList(0, 0, 0, "", "", testNow)
	if err != nil {
		t.Fatalf("resolveDateList: %v", err)
	}
	if len(dates) != 7 {
		t.Errorf("デフォルト: %d日, want 7日", len(dates))
	}
	if !dates[6].After(dates[0]) {
		t.Errorf("日付は昇順であるべき")
	}

	// 範囲逆転はエラー
	if _, err := s.resolveDateList(0, 0, 0, "2025-06-12", "2025-06-11", testNow); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("err = %v, want ErrInvalidDateRange", err)
	}
}
