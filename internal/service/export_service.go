package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/SaiseetharamModugumudi/HRMS-project/internal/dto"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("Failed to generate spreadsheet")

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportAttendance 按列表筛选条件导出考勤（含工作时长）
	ExportAttendance(ctx context.Context, req *dto.AttendanceListRequest) (*bytes.Buffer, string, error)
	// ExportEmployees 按列表筛选条件导出员工
	ExportEmployees(ctx context.Context, req *dto.EmployeeListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	employees  EmployeeService
	attendance AttendanceService
	now        func() time.Time
	logger     *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(employees EmployeeService, attendance AttendanceService, logger *zap.Logger) ExportService {
	return &exportService{
		employees:  employees,
		attendance: attendance,
		now:        time.Now,
		logger:     logger,
	}
}

// sheetSpec 单个工作表：表头 + 列宽 + 数据行
type sheetSpec struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]interface{}
}

// ═══════════════════════════════════════════════════════════
// ExportAttendance
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportAttendance(ctx context.Context, req *dto.AttendanceListRequest) (*bytes.Buffer, string, error) {
	records, err := s.attendance.List(ctx, req)
	if err != nil {
		return nil, "", err
	}

	spec := sheetSpec{
		name:    "Attendance",
		headers: []string{"Employee ID", "Employee Name", "Date", "Check In", "Check Out", "Status", "Work Hours", "Notes"},
		widths:  []float64{14, 22, 12, 10, 10, 10, 11, 30},
	}
	for _, r := range records {
		spec.rows = append(spec.rows, []interface{}{
			r.EmployeeID, r.EmployeeName, r.Date,
			deref(r.InTime), deref(r.OutTime), r.Status,
			workHoursCell(r.WorkHours), deref(r.Notes),
		})
	}

	buf, err := s.render(spec)
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("attendance_%s.xlsx", s.now().Format("20060102")), nil
}

// ═══════════════════════════════════════════════════════════
// ExportEmployees
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportEmployees(ctx context.Context, req *dto.EmployeeListRequest) (*bytes.Buffer, string, error) {
	employees, err := s.employees.List(ctx, req)
	if err != nil {
		return nil, "", err
	}

	spec := sheetSpec{
		name:    "Employees",
		headers: []string{"Employee ID", "Name", "Email", "Phone", "Address", "Designation", "Department", "Date of Joining"},
		widths:  []float64{14, 22, 28, 15, 30, 20, 12, 15},
	}
	for _, e := range employees {
		spec.rows = append(spec.rows, []interface{}{
			e.EmployeeID, e.Name, e.Email, e.Phone, e.Address, e.Designation, e.Department, e.DateOfJoining,
		})
	}

	buf, err := s.render(spec)
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("employees_%s.xlsx", s.now().Format("20060102")), nil
}

// render 生成单工作表 Excel
func (s *exportService) render(spec sheetSpec) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(spec.name)
	if err != nil {
		s.logger.Error("创建工作表失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	for i, w := range spec.widths {
		col := colName(i)
		f.SetColWidth(spec.name, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	for i, h := range spec.headers {
		f.SetCellValue(spec.name, cell(colName(i), 1), h)
	}
	f.SetCellStyle(spec.name, "A1", cell(colName(len(spec.headers)-1), 1), headerStyle)

	// 数据行
	for r, values := range spec.rows {
		for c, v := range values {
			f.SetCellValue(spec.name, cell(colName(c), r+2), v)
		}
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return buf, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func workHoursCell(h *float64) interface{} {
	if h == nil {
		return "-"
	}
	return *h
}
