package service

import (
	"testing"
	"time"

	"gorm.io/datatypes"
)

func tp(h, m, s int) *datatypes.Time {
	v := datatypes.NewTime(h, m, s, 0)
	return &v
}

func TestWorkHours(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   *datatypes.Time
		out  *datatypes.Time
		want float64
	}{
		{"白班", tp(9, 0, 0), tp(17, 30, 0), 8.5},
		{"跨夜", tp(22, 0, 0), tp(6, 0, 0), 8.0},
		{"同一时刻", tp(9, 0, 0), tp(9, 0, 0), 0},
		{"十八秒舍入到 0.01", tp(9, 0, 0), tp(9, 0, 18), 0.01},
		{"十七秒舍入到 0", tp(9, 0, 0), tp(9, 0, 17), 0},
		{"三分之一小时", tp(9, 0, 0), tp(9, 20, 0), 0.33},
		{"跨夜一分钟", tp(23, 59, 0), tp(0, 0, 0), 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorkHours(day, tt.in, tt.out)
			if got == nil {
				t.Fatal("期望返回工时，实际=nil")
			}
			if *got != tt.want {
				t.Errorf("期望 %v，实际=%v", tt.want, *got)
			}
			if *got < 0 {
				t.Errorf("工时不应为负: %v", *got)
			}
		})
	}
}

func TestWorkHours_MissingTime(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	if got := WorkHours(day, tp(9, 0, 0), nil); got != nil {
		t.Errorf("缺少签退时间应返回 nil，实际=%v", *got)
	}
	if got := WorkHours(day, nil, tp(17, 0, 0)); got != nil {
		t.Errorf("缺少签到时间应返回 nil，实际=%v", *got)
	}
}

func TestParseClock(t *testing.T) {
	got, err := parseClock("in_time", "09:15")
	if err != nil || got.String() != "09:15:00" {
		t.Fatalf("HH:MM 应可解析: %v %v", got, err)
	}
	got, err = parseClock("in_time", "17:30:45")
	if err != nil || got.String() != "17:30:45" {
		t.Fatalf("HH:MM:SS 应可解析: %v %v", got, err)
	}
	if got, err := parseClock("in_time", ""); got != nil || err != nil {
		t.Errorf("空串应返回 nil, nil")
	}

	_, err = parseClock("out_time", "25:00")
	if err == nil || err.Error() != "Invalid out_time format. Use HH:MM:SS or HH:MM" {
		t.Errorf("期望时间格式错误，实际=%v", err)
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-02-29")
	if err != nil || d.Day() != 29 {
		t.Fatalf("闰日应可解析: %v", err)
	}
	if _, err := parseDate("2024/02/29"); err == nil || err.Error() != "Invalid date format. Use YYYY-MM-DD" {
		t.Errorf("期望日期格式错误，实际=%v", err)
	}
}
