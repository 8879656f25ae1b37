package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SaiseetharamModugumudi/HRMS-project/internal/service"
	"github.com/SaiseetharamModugumudi/HRMS-project/pkg/response"
)

// ReportHandler 报表 JSON 接口
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Summary 部门/职位分布
// GET /api/reports/summary/
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportSvc.Summary(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, summary)
}
