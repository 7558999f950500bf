package services

import (
	"fmt"
	"math"
	"time"

	"lighttower-monitor-service/config"
	"lighttower-monitor-service/models"
	"lighttower-monitor-service/utils"

	"gorm.io/gorm"
)

// 集計結果の構造体定義
type (
	// TimelineSegment タイムライン上の1区間（同一状態の連続区間をマージ済み）
	TimelineSegment struct {
		Status          string `json:"status"`
		Color           string `json:"color"`
		Start           string `json:"start"`
		End             string `json:"end"`
		DurationMinutes int    `json:"duration_minutes"`
	}

	// ShiftTimeline 日勤/夜勤シフト1本分のタイムライン
	ShiftTimeline struct {
		Start    string            `json:"start"`
		End      string            `json:"end"`
		Segments []TimelineSegment `json:"segments"`
	}

	// DeviceTimeline デバイス1台の稼働タイムライン
	DeviceTimeline struct {
		DeviceAddr string        `json:"device_addr"`
		Date       string        `json:"date"`
		DayShift   ShiftTimeline `json:"day_shift"`
		NightShift ShiftTimeline `json:"night_shift"`
	}

	// OperationRate 稼働率の集計結果（緑ライトのみ稼働としてカウント）
	OperationRate struct {
		DeviceAddr        string  `json:"device_addr"`
		StartDate         string  `json:"start_date,omitempty"`
		EndDate           string  `json:"end_date,omitempty"`
		StartTime         string  `json:"start_time,omitempty"`
		EndTime           string  `json:"end_time,omitempty"`
		OperationRate     float64 `json:"operation_rate"`
		OperationMinutes  int     `json:"operation_minutes"`
		StopYellowMinutes int     `json:"stop_yellow_minutes"`
		StopRedMinutes    int     `json:"stop_red_minutes"`
		NoneMinutes       int     `json:"none_minutes"`
		TotalMinutes      int     `json:"total_minutes"`
	}

	// FleetCurrentStatus 全デバイスの当日ステータス時間割合（円グラフ用）
	FleetCurrentStatus struct {
		Running      float64 `json:"running"`
		StopYellow   float64 `json:"stop_yellow"`
		StopRed      float64 `json:"stop_red"`
		Idle         float64 `json:"idle"`
		TotalDevices int     `json:"total_devices"`
		TotalHours   float64 `json:"total_hours"`
	}

	// HourlyStatusEntry 1時間枠の全体ステータス割合（積上げ棒グラフ用）
	HourlyStatusEntry struct {
		Hour        string  `json:"hour"`
		Running     float64 `json:"running"`
		StopYellow  float64 `json:"stop_yellow"`
		StopRed     float64 `json:"stop_red"`
		Idle        float64 `json:"idle"`
		GreenApples int     `json:"green_apples"`
	}

	// HourlyStatusReport 営業日1日分の時間帯別レポート
	HourlyStatusReport struct {
		Date             string              `json:"date"`
		TotalDevices     int                 `json:"total_devices"`
		TotalGreenApples int                 `json:"total_green_apples"`
		Data             []HourlyStatusEntry `json:"data"`
	}

	// DailyRateEntry 1日分の全体稼働率（折れ線グラフ用）
	DailyRateEntry struct {
		Date string  `json:"date"`
		Rate float64 `json:"rate"`
	}

	// DailyRateReport 日別稼働率レポート
	DailyRateReport struct {
		TotalDevices int              `json:"total_devices"`
		Data         []DailyRateEntry `json:"data"`
	}

	// DailyApplesEntry 1日分のGreenApple獲得数（棒グラフ用）
	DailyApplesEntry struct {
		Date     string `json:"date"`
		FullDate string `json:"full_date"`
		Apples   int    `json:"apples"`
	}

	// HourlyApplesEntry 1時間枠のGreenApple獲得数
	HourlyApplesEntry struct {
		Hour           string  `json:"hour"`
		RunningPercent float64 `json:"running_percent"`
		Apples         int     `json:"apples"`
	}

	// DeviceHourlyRateEntry デバイス1台の1時間枠の稼働割合
	DeviceHourlyRateEntry struct {
		Hour       string  `json:"hour"`
		Running    float64 `json:"running"`
		StopYellow float64 `json:"stop_yellow"`
		StopRed    float64 `json:"stop_red"`
		Idle       float64 `json:"idle"`
	}
)

// InterfaceStatsService 定义稼働率集計服务接口。全部为只读查询，
// 以DeviceHistory为唯一事实来源重建任意时间窗口内的设备行为。
type InterfaceStatsService interface {
	GetDeviceTimeline(addr, date string) (*DeviceTimeline, error)
	GetOperationRate(addr, startDate, endDate string) (*OperationRate, error)
	GetCurrentOperationRate(addr string) (*OperationRate, error)
	GetOverallCurrentStatus() (*FleetCurrentStatus, error)
	GetOverallHourlyStatus(date string) (*HourlyStatusReport, error)
	GetOverallDailyRate(days, year, month int, startDate, endDate string) (*DailyRateReport, error)
	GetDailyGreenApples(year, month int, startDate, endDate string) ([]DailyApplesEntry, error)
	GetHourlyGreenApples(date string) ([]HourlyApplesEntry, error)
	GetDeviceHourlyRate(addr, date string) ([]DeviceHourlyRateEntry, error)
}

// StatsService 稼働率集計服务
type StatsService struct {
	DB     *gorm.DB
	Config *config.Config

	// 可注入的时钟，测试用
	now func() time.Time
}

// NewStatsService 创建稼働率集計服务
func NewStatsService(db *gorm.DB, cfg *config.Config) InterfaceStatsService {
	return &StatsService{
		DB:     db,
		Config: cfg,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// stateMinutes 各状態の滞留時間（分）
type stateMinutes struct {
	Running    float64
	StopYellow float64
	StopRed    float64
	Idle       float64
}

func (m *stateMinutes) add(red, yellow, green bool, minutes float64) {
	switch {
	case green:
		m.Running += minutes
	case yellow:
		m.StopYellow += minutes
	case red:
		m.StopRed += minutes
	default:
		m.Idle += minutes
	}
}

func (m *stateMinutes) total() float64 {
	return m.Running + m.StopYellow + m.StopRed + m.Idle
}

// greenAppleScore 時間枠の稼働率からGreenApple獲得数を算出
func greenAppleScore(runningPercent float64) int {
	switch {
	case runningPercent >= 50:
		return 5
	case runningPercent >= 40:
		return 3
	case runningPercent >= 35:
		return 2
	case runningPercent > 30:
		return 1
	default:
		return 0
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// apportionDurations 窗口 [start, end) 内各状态的滞留时间（分）。
// 窗口终点截断到now，未到来的部分单独作为future返回。
// 窗口起点的状态：有carryIn用carryIn，否则用窗口内第一条记录的状态回填；
// 完全没有记录时整个窗口计为休止。各状态时间之和恒等于已经过的窗口长度。
func apportionDurations(records []models.DeviceHistory, carryIn *models.DeviceHistory, start, end, now time.Time) (stateMinutes, float64) {
	actualEnd := end
	if now.Before(actualEnd) {
		actualEnd = now
	}
	if actualEnd.Before(start) {
		actualEnd = start
	}
	future := end.Sub(actualEnd).Minutes()

	var m stateMinutes
	if len(records) == 0 && carryIn == nil {
		m.Idle = actualEnd.Sub(start).Minutes()
		return m, future
	}

	var red, yellow, green bool
	if carryIn != nil {
		red, yellow, green = carryIn.Red, carryIn.Yellow, carryIn.Green
	} else {
		red, yellow, green = records[0].Red, records[0].Yellow, records[0].Green
	}

	t := start
	for i := range records {
		rec := &records[i]
		m.add(red, yellow, green, math.Max(0, rec.Timestamp.Sub(t).Minutes()))
		t = rec.Timestamp
		red, yellow, green = rec.Red, rec.Yellow, rec.Green
	}
	m.add(red, yellow, green, math.Max(0, actualEnd.Sub(t).Minutes()))
	return m, future
}

// historyInWindow 取得窗口 [start, end) 内的履历，按时间升序
func (s *StatsService) historyInWindow(addr string, start, end time.Time) ([]models.DeviceHistory, error) {
	var records []models.DeviceHistory
	err := s.DB.Where("device_addr = ? AND timestamp >= ? AND timestamp < ?", addr, start, end).
		Order("timestamp").Find(&records).Error
	return records, err
}

// latestBefore 取得指定时刻之前最后一条履历，没有时返回nil
func (s *StatsService) latestBefore(addr string, t time.Time) (*models.DeviceHistory, error) {
	var rec models.DeviceHistory
	err := s.DB.Where("device_addr = ? AND timestamp < ?", addr, t).
		Order("timestamp desc").First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// enabledAddrs 取得启用中的设备地址列表
func (s *StatsService) enabledAddrs() ([]string, error) {
	var addrs []string
	err := s.DB.Model(&models.DeviceRegistration{}).
		Where("is_enabled = ?", true).
		Order("sort_index").
		Pluck("device_addr", &addrs).Error
	return addrs, err
}

// 1 GetDeviceTimeline 取得设备的稼働タイムライン（日勤6:00-18:00 / 夜勤18:00-翌6:00）
func (s *StatsService) GetDeviceTimeline(addr, date string) (*DeviceTimeline, error) {
	addr = utils.NormalizeDeviceAddr(addr)
	now := s.now()

	targetDate, err := s.resolveDate(date, now)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := utils.DayShiftRange(targetDate)
	nightStart, nightEnd := utils.NightShiftRange(targetDate)

	dayHistory, err := s.historyInWindow(addr, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	nightHistory, err := s.historyInWindow(addr, nightStart, nightEnd)
	if err != nil {
		return nil, err
	}

	return &DeviceTimeline{
		DeviceAddr: addr,
		Date:       targetDate.Format("2006-01-02"),
		DayShift: ShiftTimeline{
			Start:    utils.FormatLocal(dayStart),
			End:      utils.FormatLocal(dayEnd),
			Segments: buildSegments(dayHistory, dayStart, dayEnd, now),
		},
		NightShift: ShiftTimeline{
			Start:    utils.FormatLocal(nightStart),
			End:      utils.FormatLocal(nightEnd),
			Segments: buildSegments(nightHistory, nightStart, nightEnd, now),
		},
	}, nil
}

// buildSegments 将履历折叠为状态连续区间。终点截断到现在时刻，
// 未到来的部分追加一个白色のfutureセグメント。
func buildSegments(records []models.DeviceHistory, start, end, now time.Time) []TimelineSegment {
	actualEnd := end
	if now.Before(actualEnd) {
		actualEnd = now
	}

	// 窗口整体还没开始
	if !actualEnd.After(start) {
		return []TimelineSegment{{
			Status:          "future",
			Color:           "white",
			Start:           utils.FormatLocal(start),
			End:             utils.FormatLocal(end),
			DurationMinutes: int(end.Sub(start).Minutes()),
		}}
	}

	var segments []TimelineSegment
	appendSegment := func(state models.LightState, segStart, segEnd time.Time) {
		segments = append(segments, TimelineSegment{
			Status:          string(state),
			Color:           state.Color(),
			Start:           utils.FormatLocal(segStart),
			End:             utils.FormatLocal(segEnd),
			DurationMinutes: int(segEnd.Sub(segStart).Minutes()),
		})
	}

	if len(records) == 0 {
		appendSegment(models.LightNone, start, actualEnd)
	} else {
		current := records[0].LightState()
		segStart := start
		for i := 1; i < len(records); i++ {
			state := records[i].LightState()
			if state != current {
				appendSegment(current, segStart, records[i].Timestamp)
				segStart = records[i].Timestamp
				current = state
			}
		}
		appendSegment(current, segStart, actualEnd)
	}

	if actualEnd.Before(end) {
		segments = append(segments, TimelineSegment{
			Status:          "future",
			Color:           "white",
			Start:           utils.FormatLocal(actualEnd),
			End:             utils.FormatLocal(end),
			DurationMinutes: int(end.Sub(actualEnd).Minutes()),
		})
	}
	return segments
}

// 2 GetOperationRate 期间指定（日历日0:00～翌0:00）的稼働率
func (s *StatsService) GetOperationRate(addr, startDate, endDate string) (*OperationRate, error) {
	addr = utils.NormalizeDeviceAddr(addr)

	startDt, err := utils.ParseDate(startDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	endDt, err := utils.ParseDate(endDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if startDt.After(endDt) {
		return nil, ErrInvalidDateRange
	}

	start, end := utils.CalendarDayRange(startDt, endDt)
	records, err := s.historyInWindow(addr, start, end)
	if err != nil {
		return nil, err
	}

	result := s.buildOperationRate(addr, records, start, end)
	result.StartDate = startDate
	result.EndDate = endDate
	return result, nil
}

// 3 GetCurrentOperationRate 当日6:00から現在までの稼働率
func (s *StatsService) GetCurrentOperationRate(addr string) (*OperationRate, error) {
	addr = utils.NormalizeDeviceAddr(addr)
	now := s.now()

	start := utils.BusinessDayStart(utils.BusinessDate(now))
	records, err := s.historyInWindow(addr, start, now)
	if err != nil {
		return nil, err
	}

	result := s.buildOperationRate(addr, records, start, now)
	result.StartTime = utils.FormatLocalDateTime(start)
	result.EndTime = utils.FormatLocalDateTime(now)
	return result, nil
}

// buildOperationRate 按状态分摊窗口时间并计算稼働率（緑ライトのみ稼働）
func (s *StatsService) buildOperationRate(addr string, records []models.DeviceHistory, start, end time.Time) *OperationRate {
	m, _ := apportionDurations(records, nil, start, end, s.now())
	total := m.total()

	rate := 0.0
	if total > 0 {
		rate = round1(m.Running / total * 100)
	}
	return &OperationRate{
		DeviceAddr:        addr,
		OperationRate:     rate,
		OperationMinutes:  int(m.Running),
		StopYellowMinutes: int(m.StopYellow),
		StopRedMinutes:    int(m.StopRed),
		NoneMinutes:       int(m.Idle),
		TotalMinutes:      int(total),
	}
}

// 4 GetOverallCurrentStatus 全設備の当日（6:00～現在）ステータス時間割合
func (s *StatsService) GetOverallCurrentStatus() (*FleetCurrentStatus, error) {
	addrs, err := s.enabledAddrs()
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return &FleetCurrentStatus{}, nil
	}

	now := s.now()
	start := utils.BusinessDayStart(utils.BusinessDate(now))

	var sum stateMinutes
	for _, addr := range addrs {
		records, err := s.historyInWindow(addr, start, now)
		if err != nil {
			return nil, err
		}
		// 当日データのない設備は集計対象外
		if len(records) == 0 {
			continue
		}
		m, _ := apportionDurations(records, nil, start, now, now)
		sum.Running += m.Running
		sum.StopYellow += m.StopYellow
		sum.StopRed += m.StopRed
		sum.Idle += m.Idle
	}

	total := sum.total()
	result := &FleetCurrentStatus{
		TotalDevices: len(addrs),
		TotalHours:   round1(total / 60),
	}
	if total > 0 {
		result.Running = round1(sum.Running / total * 100)
		result.StopYellow = round1(sum.StopYellow / total * 100)
		result.StopRed = round1(sum.StopRed / total * 100)
		result.Idle = round1(sum.Idle / total * 100)
	}
	return result, nil
}

// deviceHourlyMinutes 设备1台、1营业日（24枠）的各时间枠状态滞留时间。
// 営業日開始前の直近履历只取一次作为carry-in，之后在时间枠之间正向推进，
// 与逐枠查询直前状态的结果一致。已到来的时间枠（枠开始≤now）才会被计算。
func (s *StatsService) deviceHourlyMinutes(addr string, dayStart, now time.Time) ([]stateMinutes, error) {
	bucketCount := 0
	for h := 0; h < 24; h++ {
		if dayStart.Add(time.Duration(h) * time.Hour).After(now) {
			break
		}
		bucketCount++
	}
	if bucketCount == 0 {
		return nil, nil
	}

	records, err := s.historyInWindow(addr, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	carry, err := s.latestBefore(addr, dayStart)
	if err != nil {
		return nil, err
	}

	hasLast := carry != nil
	var lastRed, lastYellow, lastGreen bool
	if hasLast {
		lastRed, lastYellow, lastGreen = carry.Red, carry.Yellow, carry.Green
	}

	result := make([]stateMinutes, bucketCount)
	idx := 0
	for b := 0; b < bucketCount; b++ {
		bucketStart := dayStart.Add(time.Duration(b) * time.Hour)
		bucketEnd := bucketStart.Add(time.Hour)
		periodEnd := bucketEnd
		if now.Before(periodEnd) {
			periodEnd = now
		}

		from := idx
		for idx < len(records) && records[idx].Timestamp.Before(bucketEnd) {
			idx++
		}
		bucket := records[from:idx]

		// 過去に一度も記録がない枠は休止扱い
		if !hasLast && len(bucket) == 0 {
			result[b].Idle += math.Max(0, periodEnd.Sub(bucketStart).Minutes())
			continue
		}

		red, yellow, green := lastRed, lastYellow, lastGreen
		if !hasLast {
			red, yellow, green = bucket[0].Red, bucket[0].Yellow, bucket[0].Green
		}

		t := bucketStart
		for i := range bucket {
			rec := &bucket[i]
			result[b].add(red, yellow, green, math.Max(0, rec.Timestamp.Sub(t).Minutes()))
			t = rec.Timestamp
			red, yellow, green = rec.Red, rec.Yellow, rec.Green
		}
		result[b].add(red, yellow, green, math.Max(0, periodEnd.Sub(t).Minutes()))

		hasLast = true
		lastRed, lastYellow, lastGreen = red, yellow, green
	}
	return result, nil
}

// fleetHourlyMinutes 全設備合算の時間枠別状態滞留時間
func (s *StatsService) fleetHourlyMinutes(addrs []string, dayStart, now time.Time) ([]stateMinutes, error) {
	var sum []stateMinutes
	for _, addr := range addrs {
		buckets, err := s.deviceHourlyMinutes(addr, dayStart, now)
		if err != nil {
			return nil, err
		}
		if sum == nil {
			sum = make([]stateMinutes, len(buckets))
		}
		for i := range buckets {
			sum[i].Running += buckets[i].Running
			sum[i].StopYellow += buckets[i].StopYellow
			sum[i].StopRed += buckets[i].StopRed
			sum[i].Idle += buckets[i].Idle
		}
	}
	return sum, nil
}

// 5 GetOverallHourlyStatus 1時間ごとの全体ステータス割合＋GreenApple獲得数
func (s *StatsService) GetOverallHourlyStatus(date string) (*HourlyStatusReport, error) {
	now := s.now()
	targetDate, err := s.resolveDate(date, now)
	if err != nil {
		return nil, err
	}

	addrs, err := s.enabledAddrs()
	if err != nil {
		return nil, err
	}

	report := &HourlyStatusReport{
		Date:         targetDate.Format("2006-01-02"),
		TotalDevices: len(addrs),
		Data:         []HourlyStatusEntry{},
	}
	if len(addrs) == 0 {
		return report, nil
	}

	dayStart := utils.BusinessDayStart(targetDate)
	buckets, err := s.fleetHourlyMinutes(addrs, dayStart, now)
	if err != nil {
		return nil, err
	}

	for b, m := range buckets {
		entry := HourlyStatusEntry{
			Hour: formatBucketHour(dayStart, b, "15:04"),
		}
		if total := m.total(); total > 0 {
			entry.Running = round1(m.Running / total * 100)
			entry.StopYellow = round1(m.StopYellow / total * 100)
			entry.StopRed = round1(m.StopRed / total * 100)
			entry.Idle = round1(m.Idle / total * 100)
		}
		entry.GreenApples = greenAppleScore(entry.Running)
		report.TotalGreenApples += entry.GreenApples
		report.Data = append(report.Data, entry)
	}
	return report, nil
}

// 6 GetOverallDailyRate 日ごとの全体稼働率（折れ線グラフ用）
func (s *StatsService) GetOverallDailyRate(days, year, month int, startDate, endDate string) (*DailyRateReport, error) {
	addrs, err := s.enabledAddrs()
	if err != nil {
		return nil, err
	}

	now := s.now()
	dates, err := s.resolveDateList(days, year, month, startDate, endDate, now)
	if err != nil {
		return nil, err
	}

	report := &DailyRateReport{
		TotalDevices: len(addrs),
		Data:         []DailyRateEntry{},
	}
	if len(addrs) == 0 {
		return report, nil
	}

	for _, date := range dates {
		dayStart, dayEnd := utils.BusinessDayRange(date)

		var totalRunning, totalCounted float64
		for _, addr := range addrs {
			records, err := s.historyInWindow(addr, dayStart, dayEnd)
			if err != nil {
				return nil, err
			}
			if len(records) == 0 {
				continue
			}
			m, _ := apportionDurations(records, nil, dayStart, dayEnd, now)
			totalRunning += m.Running
			totalCounted += m.total()
		}

		rate := 0.0
		if totalCounted > 0 {
			rate = round1(totalRunning / totalCounted * 100)
		}
		report.Data = append(report.Data, DailyRateEntry{
			Date: date.Format("01/02"),
			Rate: rate,
		})
	}
	return report, nil
}

// 7 GetDailyGreenApples 日ごとのGreenApple獲得数（棒グラフ用）
func (s *StatsService) GetDailyGreenApples(year, month int, startDate, endDate string) ([]DailyApplesEntry, error) {
	addrs, err := s.enabledAddrs()
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return []DailyApplesEntry{}, nil
	}

	now := s.now()
	// 年月未指定かつ範囲未指定のときは今月
	if startDate == "" && endDate == "" {
		local := now.In(utils.Location())
		if year == 0 {
			year = local.Year()
		}
		if month == 0 {
			month = int(local.Month())
		}
	}

	dates, err := s.resolveDateList(0, year, month, startDate, endDate, now)
	if err != nil {
		return nil, err
	}

	result := []DailyApplesEntry{}
	for _, date := range dates {
		dayStart := utils.BusinessDayStart(date)
		buckets, err := s.fleetHourlyMinutes(addrs, dayStart, now)
		if err != nil {
			return nil, err
		}

		apples := 0
		for _, m := range buckets {
			running := 0.0
			if total := m.total(); total > 0 {
				running = round1(m.Running / total * 100)
			}
			apples += greenAppleScore(running)
		}

		result = append(result, DailyApplesEntry{
			Date:     date.Format("01/02"),
			FullDate: date.Format("2006-01-02"),
			Apples:   apples,
		})
	}
	return result, nil
}

// 8 GetHourlyGreenApples 特定日の時間帯別GreenApple獲得数
func (s *StatsService) GetHourlyGreenApples(date string) ([]HourlyApplesEntry, error) {
	targetDate, err := utils.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	addrs, err := s.enabledAddrs()
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return []HourlyApplesEntry{}, nil
	}

	now := s.now()
	dayStart := utils.BusinessDayStart(targetDate)
	buckets, err := s.fleetHourlyMinutes(addrs, dayStart, now)
	if err != nil {
		return nil, err
	}

	result := []HourlyApplesEntry{}
	for b, m := range buckets {
		running := 0.0
		if total := m.total(); total > 0 {
			running = round1(m.Running / total * 100)
		}
		result = append(result, HourlyApplesEntry{
			Hour:           formatBucketHour(dayStart, b, ""),
			RunningPercent: running,
			Apples:         greenAppleScore(running),
		})
	}
	return result, nil
}

// 9 GetDeviceHourlyRate 設備1台の時間帯別稼働割合（積上げ棒グラフ用）
func (s *StatsService) GetDeviceHourlyRate(addr, date string) ([]DeviceHourlyRateEntry, error) {
	addr = utils.NormalizeDeviceAddr(addr)

	targetDate, err := utils.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	now := s.now()
	dayStart := utils.BusinessDayStart(targetDate)
	buckets, err := s.deviceHourlyMinutes(addr, dayStart, now)
	if err != nil {
		return nil, err
	}

	result := []DeviceHourlyRateEntry{}
	for b, m := range buckets {
		entry := DeviceHourlyRateEntry{
			Hour: formatBucketHour(dayStart, b, ""),
		}
		if total := m.total(); total > 0 {
			entry.Running = round1(m.Running / total * 100)
			entry.StopYellow = round1(m.StopYellow / total * 100)
			entry.StopRed = round1(m.StopRed / total * 100)
			entry.Idle = round1(m.Idle / total * 100)
		}
		result = append(result, entry)
	}
	return result, nil
}

// formatBucketHour 时间枠标签。layout为空时输出 "HH:00" 固定形式。
func formatBucketHour(dayStart time.Time, bucket int, layout string) string {
	t := dayStart.Add(time.Duration(bucket) * time.Hour).In(utils.Location())
	if layout == "" {
		return fmt.Sprintf("%02d:00", t.Hour())
	}
	return t.Format(layout)
}

// resolveDate 解析YYYY-MM-DD日期，空串时返回当前营业日
func (s *StatsService) resolveDate(date string, now time.Time) (time.Time, error) {
	if date == "" {
		return utils.BusinessDate(now), nil
	}
	parsed, err := utils.ParseDate(date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

// resolveDateList 决定日别集計的对象日期列表。
// 优先级：明示范围 > 年月指定 > 直近days日（默认7日）。
func (s *StatsService) resolveDateList(days, year, month int, startDate, endDate string, now time.Time) ([]time.Time, error) {
	if startDate != "" && endDate != "" {
		startDt, err := utils.ParseDate(startDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		endDt, err := utils.ParseDate(endDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		if startDt.After(endDt) {
			return nil, ErrInvalidDateRange
		}
		var dates []time.Time
		for d := startDt; !d.After(endDt); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
		return dates, nil
	}

	if year > 0 && month > 0 {
		first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, utils.Location())
		daysInMonth := first.AddDate(0, 1, -1).Day()
		dates := make([]time.Time, 0, daysInMonth)
		for day := 1; day <= daysInMonth; day++ {
			dates = append(dates, time.Date(year, time.Month(month), day, 0, 0, 0, 0, utils.Location()))
		}
		return dates, nil
	}

	if days <= 0 {
		days = 7
	}
	local := now.In(utils.Location())
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, utils.Location())
	dates := make([]time.Time, 0, days)
	for i := days - 1; i >= 0; i-- {
		dates = append(dates, today.AddDate(0, 0, -i))
	}
	return dates, nil
}
