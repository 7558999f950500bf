package utils

import (
	"os"
	"sync"
	"time"
)

// BoundaryHour 营业日切换时刻（当地时间整点）。每天6:00为一个营业日的起点。
const BoundaryHour = 6

var (
	location     *time.Location
	locationOnce sync.Once
)

// Location 返回营业时区（默认 Asia/Tokyo，可通过 BUSINESS_TIMEZONE 覆盖）
func Location() *time.Location {
	locationOnce.Do(func() {
		name := os.Getenv("BUSINESS_TIMEZONE")
		if name == "" {
			name = "Asia/Tokyo"
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			// 容器内可能没有tzdata，退化为固定+9偏移
			loc = time.FixedZone("JST", 9*60*60)
		}
		location = loc
	})
	return location
}

// BusinessDate 返回时刻 t 所属营业日的日期（当地6:00之前归前一日）
func BusinessDate(t time.Time) time.Time {
	lt := t.In(Location())
	if lt.Hour() < BoundaryHour {
		lt = lt.AddDate(0, 0, -1)
	}
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, Location())
}

// BusinessDayStart 返回指定日期营业日的起点（当地6:00），以UTC表示
func BusinessDayStart(date time.Time) time.Time {
	d := date.In(Location())
	return time.Date(d.Year(), d.Month(), d.Day(), BoundaryHour, 0, 0, 0, Location()).UTC()
}

// BusinessDayRange 返回指定日期营业日窗口 [当地6:00, 次日6:00)，以UTC表示
func BusinessDayRange(date time.Time) (time.Time, time.Time) {
	start := BusinessDayStart(date)
	return start, start.Add(24 * time.Hour)
}

// DayShiftRange 返回日勤窗口 [6:00, 18:00)，以UTC表示
func DayShiftRange(date time.Time) (time.Time, time.Time) {
	start := BusinessDayStart(date)
	return start, start.Add(12 * time.Hour)
}

// NightShiftRange 返回夜勤窗口 [18:00, 次日6:00)，以UTC表示
func NightShiftRange(date time.Time) (time.Time, time.Time) {
	start := BusinessDayStart(date).Add(12 * time.Hour)
	return start, start.Add(12 * time.Hour)
}

// CalendarDayRange 返回日历日窗口 [当地0:00, 次日0:00)，以UTC表示。
// 期间指定的稼働率按日历日计算，与营业日窗口不同。
func CalendarDayRange(start, end time.Time) (time.Time, time.Time) {
	s := start.In(Location())
	e := end.In(Location())
	from := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, Location())
	to := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, Location()).AddDate(0, 0, 1)
	return from.UTC(), to.UTC()
}

// ParseDate 按 YYYY-MM-DD 解析营业时区内的日期
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, Location())
}

// FormatLocal 以当地时间输出 ISO 格式（不带偏移，与前端约定一致）
func FormatLocal(t time.Time) string {
	return t.In(Location()).Format("2006-01-02T15:04:05")
}

// FormatLocalDateTime 以当地时间输出 YYYY-MM-DD HH:MM:SS
func FormatLocalDateTime(t time.Time) string {
	return t.In(Location()).Format("2006-01-02 15:04:05")
}
