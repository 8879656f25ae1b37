package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/SaiseetharamModugumudi/HRMS-project/internal/dto"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/model"
)

// ReportCache 报表缓存（由 pkg/redis.Client 实现，为 nil 时不缓存）
type ReportCache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) error
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// AttendanceBroadcaster 考勤变更实时推送（由 live.Hub 实现）
type AttendanceBroadcaster interface {
	Broadcast(event string, payload interface{})
}

// 推送事件类型
const (
	EventAttendanceCreated = "attendance:created"
	EventAttendanceUpdated = "attendance:updated"
)

const reportSummaryCacheKey = "report:summary"

// invalidateReportCache 员工变更后清除报表缓存，失败仅告警
func invalidateReportCache(ctx context.Context, cache ReportCache, logger *zap.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Delete(ctx, reportSummaryCacheKey); err != nil {
		logger.Warn("清除报表缓存失败", zap.Error(err))
	}
}

// ── model -> dto ──

func toEmployeeResponse(e *model.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:            e.ID,
		EmployeeID:    e.EmployeeCode,
		Name:          e.Name,
		Email:         e.Email,
		Phone:         e.Phone,
		Address:       e.Address,
		Designation:   e.Designation,
		Department:    e.Department,
		DateOfJoining: e.DateOfJoining.Format(model.DateLayout),
		CreatedAt:     e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toEmployeeResponses(list []model.Employee) []dto.EmployeeResponse {
	result := make([]dto.EmployeeResponse, 0, len(list))
	for i := range list {
		result = append(result, toEmployeeResponse(&list[i]))
	}
	return result
}

func toAttendanceResponse(a *model.Attendance) dto.AttendanceResponse {
	resp := dto.AttendanceResponse{
		ID:        a.ID,
		Date:      a.Date.Format(model.DateLayout),
		InTime:    formatClock(a.InTime),
		OutTime:   formatClock(a.OutTime),
		Status:    a.Status,
		WorkHours: WorkHours(a.Date, a.InTime, a.OutTime),
		Notes:     a.Notes,
	}
	if a.Employee != nil {
		resp.EmployeeID = a.Employee.EmployeeCode
		resp.EmployeeName = a.Employee.Name
	}
	return resp
}

func toAttendanceResponses(list []model.Attendance) []dto.AttendanceResponse {
	result := make([]dto.AttendanceResponse, 0, len(list))
	for i := range list {
		result = append(result, toAttendanceResponse(&list[i]))
	}
	return result
}
