package service

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var secondsPerHour = decimal.NewFromInt(3600)

// WorkHours 计算签到到签退的工作时长（小时，两位小数）
// 任一时间缺失返回 nil；签退早于签到视为次日签退
func WorkHours(date time.Time, in, out *datatypes.Time) *float64 {
	if in == nil || out == nil {
		return nil
	}

	day := dateOf(date)
	start := day.Add(time.Duration(*in))
	end := day.Add(time.Duration(*out))
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}

	// 纳秒精度按十进制精确舍入，避免浮点误差
	secs := decimal.New(int64(end.Sub(start)), -9)
	hours, _ := secs.DivRound(secondsPerHour, 2).Float64()
	return &hours
}
