package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/SaiseetharamModugumudi/HRMS-project/internal/dto"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/service"
	"github.com/SaiseetharamModugumudi/HRMS-project/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAttendance 导出考勤
// GET /api/attendance/export/?employee_id=&date=&start_date=&end_date=
func (h *ExportHandler) ExportAttendance(c *gin.Context) {
	var req dto.AttendanceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	buf, filename, err := h.exportSvc.ExportAttendance(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	writeAttachment(c, buf, filename)
}

// ExportEmployees 导出员工
// GET /api/employees/export/?department=&search=
func (h *ExportHandler) ExportEmployees(c *gin.Context) {
	var req dto.EmployeeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	buf, filename, err := h.exportSvc.ExportEmployees(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	writeAttachment(c, buf, filename)
}

// writeAttachment 设置下载响应头
func writeAttachment(c *gin.Context, buf *bytes.Buffer, filename string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrValidation):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
