package service

import (
	"errors"
	"fmt"
)

// ── 通用业务错误 ──
// 错误文案直接作为接口 {error} 响应体返回

var (
	// ErrValidation 所有字段校验错误的哨兵，handler 以 errors.Is 匹配
	ErrValidation = errors.New("validation failed")

	ErrEmployeeNotFound = errors.New("Employee not found")
	ErrEmailExists      = errors.New("An employee with this email already exists.")
	ErrAttendanceExists = errors.New("Attendance for this employee on this date already exists.")
)

// 校验提示文案
const (
	msgInvalidDate   = "Invalid date format. Use YYYY-MM-DD"
	msgInvalidTime   = "Invalid %s format. Use HH:MM:SS or HH:MM"
	msgInvalidStatus = "Invalid status. Choose from: Present, Absent, Half Day, Leave"
	msgMissingField  = "Missing required field: %s"
	msgPhoneDigits   = "Phone number must contain at least 10 digits."
)

// ValidationError 请求字段校验失败
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is 使 errors.Is(err, ErrValidation) 成立
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// MissingFieldError 缺少必填字段
func MissingFieldError(field string) error {
	return validationErrorf(msgMissingField, field)
}
