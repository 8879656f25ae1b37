package service

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/SaiseetharamModugumudi/HRMS-project/internal/model"
)

var clockLayouts = []string{"15:04:05", "15:04"}

// parseDate 解析 YYYY-MM-DD，返回 UTC 零点
func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, validationErrorf(msgInvalidDate)
	}
	return d, nil
}

// parseOptionalDate 空串返回 nil
func parseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseClock 解析 HH:MM:SS 或 HH:MM；空串返回 nil
func parseClock(field, s string) (*datatypes.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			v := datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0)
			return &v, nil
		}
	}
	return nil, validationErrorf(msgInvalidTime, field)
}

// dateOf 取 t 在其所在时区的日历日期，返回 UTC 零点
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// formatClock 格式化签到/签退时间，nil 保持 nil
func formatClock(t *datatypes.Time) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
