package utils

import (
	"testing"
	"time"
)

// 2025-06-11 05:00 JST（6:00前）は前日の営業日に属する
func TestBusinessDateBeforeBoundary(t *testing.T) {
	utc := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC) // 2025-06-11 05:00 JST
	got := BusinessDate(utc)
	if got.Format("2006-01-02") != "2025-06-10" {
		t.Errorf("营业日应为2025-06-10, got %s", got.Format("2006-01-02"))
	}
}

// 2025-06-11 06:00 JSTちょうどから新しい営業日になる
func TestBusinessDateAtBoundary(t *testing.T) {
	utc := time.Date(2025, 6, 10, 21, 0, 0, 0, time.UTC) // 2025-06-11 06:00 JST
	got := BusinessDate(utc)
	if got.Format("2006-01-02") != "2025-06-11" {
		t.Errorf("营业日应为2025-06-11, got %s", got.Format("2006-01-02"))
	}
}

func TestBusinessDayRange(t *testing.T) {
	date := time.Date(2025, 6, 11, 0, 0, 0, 0, Location())
	start, end := BusinessDayRange(date)

	wantStart := time.Date(2025, 6, 10, 21, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("起点应为 %v, got %v", wantStart, start)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("窗口长度应为24小时, got %v", end.Sub(start))
	}
}

// 日勤[6:00,18:00)と夜勤[18:00,翌6:00)で営業日を二分する
func TestShiftRangesPartitionBusinessDay(t *testing.T) {
	date := time.Date(2025, 6, 11, 0, 0, 0, 0, Location())
	dayStart, dayEnd := DayShiftRange(date)
	nightStart, nightEnd := NightShiftRange(date)

	bizStart, bizEnd := BusinessDayRange(date)
	if !dayStart.Equal(bizStart) {
		t.Errorf("日勤起点应等于营业日起点")
	}
	if !dayEnd.Equal(nightStart) {
		t.Errorf("日勤终点应等于夜勤起点")
	}
	if !nightEnd.Equal(bizEnd) {
		t.Errorf("夜勤终点应等于营业日终点")
	}
	if dayEnd.Sub(dayStart) != 12*time.Hour || nightEnd.Sub(nightStart) != 12*time.Hour {
		t.Errorf("日勤夜勤各应为12小时")
	}
}

// 期間指定の稼働率は暦日0:00起点（営業日6:00起点とは別物）
func TestCalendarDayRange(t *testing.T) {
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, Location())
	end := time.Date(2025, 6, 12, 0, 0, 0, 0, Location())
	from, to := CalendarDayRange(start, end)

	wantFrom := time.Date(2025, 6, 9, 15, 0, 0, 0, time.UTC) // 2025-06-10 00:00 JST
	if !from.Equal(wantFrom) {
		t.Errorf("起点应为 %v, got %v", wantFrom, from)
	}
	if to.Sub(from) != 72*time.Hour {
		t.Errorf("3日間の窗口长度应为72小时, got %v", to.Sub(from))
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-11")
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.June || d.Day() != 11 {
		t.Errorf("解析结果不正确: %v", d)
	}

	if _, err := ParseDate("2025/06/11"); err == nil {
		t.Errorf("非法格式应返回错误")
	}
	if _, err := ParseDate(""); err == nil {
		t.Errorf("空字符串应返回错误")
	}
}

func TestFormatLocal(t *testing.T) {
	utc := time.Date(2025, 6, 10, 21, 0, 0, 0, time.UTC)
	if got := FormatLocal(utc); got != "2025-06-11T06:00:00" {
		t.Errorf("FormatLocal = %s, want 2025-06-11T06:00:00", got)
	}
	if got := FormatLocalDateTime(utc); got != "2025-06-11 06:00:00" {
		t.Errorf("FormatLocalDateTime = %s, want 2025-06-11 06:00:00", got)
	}
}
