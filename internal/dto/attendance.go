package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ── 考勤模块 DTO ──

// EmployeeRef 员工引用：数字主键或工号，JSON 中可为字符串或数字
type EmployeeRef string

// UnmarshalJSON 同时接受 "12"、12 与 "EMP000012"
func (r *EmployeeRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = EmployeeRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("employee_id must be a string or number")
	}
	*r = EmployeeRef(n.String())
	return nil
}

// MarkAttendanceRequest 标记考勤请求（POST /api/attendance/ 与 HTML 表单共用）
// 未提供的可选字段在更新已有记录时保持原值
type MarkAttendanceRequest struct {
	EmployeeID EmployeeRef `json:"employee_id" form:"employee_id" binding:"required"`
	Date       string      `json:"date"        form:"date"`     // YYYY-MM-DD，缺省为当天
	InTime     string      `json:"in_time"     form:"in_time"`  // HH:MM:SS 或 HH:MM
	OutTime    string      `json:"out_time"    form:"out_time"` // HH:MM:SS 或 HH:MM
	Status     *string     `json:"status"      form:"status"`   // 缺省 Present
	Notes      string      `json:"notes"       form:"notes"`
}

// AttendanceListRequest 考勤列表查询参数
type AttendanceListRequest struct {
	EmployeeID string `form:"employee_id"`
	Date       string `form:"date"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
}

// AttendanceResponse 考勤记录响应
type AttendanceResponse struct {
	ID           uint     `json:"id"`
	EmployeeID   string   `json:"employee_id"` // 工号
	EmployeeName string   `json:"employee_name"`
	Date         string   `json:"date"`
	InTime       *string  `json:"in_time"`
	OutTime      *string  `json:"out_time"`
	Status       string   `json:"status"`
	WorkHours    *float64 `json:"work_hours"`
	Notes        *string  `json:"notes"`
}

// AttendanceListResponse GET /api/attendance/
type AttendanceListResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
}

// MarkAttendanceResponse POST /api/attendance/
type MarkAttendanceResponse struct {
	Message    string             `json:"message"`
	Attendance AttendanceResponse `json:"attendance"`
}

// MarkAttendanceResult 业务层返回：记录 + 是否新建
type MarkAttendanceResult struct {
	Attendance AttendanceResponse
	Created    bool
}
