package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SaiseetharamModugumudi/HRMS-project/internal/dto"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/model"
	pkgerrors "github.com/SaiseetharamModugumudi/HRMS-project/pkg/errors"
)

// ────────────────────── ParseImportFile ──────────────────────

const maxImportRows = 1000

var (
	ErrImportNoData      = errors.New("Spreadsheet has no data rows (the first row is the header)")
	ErrImportTooManyRows = fmt.Errorf("Spreadsheet exceeds the limit of %d rows", maxImportRows)
	ErrImportBadHeader   = errors.New("Spreadsheet header is missing required columns")
)

// importColumns 导入表必需列（内部键）
var importColumns = []string{
	"name", "email", "phone", "address", "designation", "department", "date_of_joining",
}

// importHeaderAliases 表头别名 -> 内部键，支持中英文表头
var importHeaderAliases = map[string]string{
	"name": "name", "姓名": "name",
	"email": "email", "邮箱": "email",
	"phone": "phone", "电话": "phone",
	"address": "address", "地址": "address",
	"designation": "designation", "职位": "designation",
	"department": "department", "部门": "department",
	"date_of_joining": "date_of_joining", "date of joining": "date_of_joining", "入职日期": "date_of_joining",
}

// 表格中常见的日期显示格式
var importDateLayouts = []string{model.DateLayout, "2006/1/2", "01-02-06", "1/2/06", "1/2/2006"}

// ImportEmployeeRow 导入表中的一行
type ImportEmployeeRow struct {
	Row           int
	Name          string
	Email         string
	Phone         string
	Address       string
	Designation   string
	Department    string
	DateOfJoining string
}

// ParseImportFile 解析导入 Excel 文件，返回解析后的行数据
func ParseImportFile(reader io.Reader) ([]ImportEmployeeRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("Unable to read spreadsheet: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("Unable to read worksheet: %w", err)
	}

	if len(excelRows) < 2 {
		return nil, ErrImportNoData
	}

	// 解析表头（支持灵活列序）
	colIndex := parseHeaderIndex(excelRows[0])
	for _, key := range importColumns {
		if colIndex[key] < 0 {
			return nil, ErrImportBadHeader
		}
	}

	cellAt := func(row []string, key string) string {
		if idx := colIndex[key]; idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	var rows []ImportEmployeeRow
	for i := 1; i < len(excelRows); i++ {
		row := excelRows[i]
		item := ImportEmployeeRow{
			Row:           i + 1,
			Name:          cellAt(row, "name"),
			Email:         cellAt(row, "email"),
			Phone:         cellAt(row, "phone"),
			Address:       cellAt(row, "address"),
			Designation:   cellAt(row, "designation"),
			Department:    cellAt(row, "department"),
			DateOfJoining: cellAt(row, "date_of_joining"),
		}

		// 跳过全空行
		if item.Name == "" && item.Email == "" && item.Phone == "" && item.Address == "" &&
			item.Designation == "" && item.Department == "" && item.DateOfJoining == "" {
			continue
		}

		rows = append(rows, item)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if len(rows) > maxImportRows {
		return nil, ErrImportTooManyRows
	}

	return rows, nil
}

// parseHeaderIndex 解析 Excel 表头，返回内部键 -> 列索引映射
func parseHeaderIndex(header []string) map[string]int {
	idx := make(map[string]int, len(importColumns))
	for _, key := range importColumns {
		idx[key] = -1
	}
	for i, h := range header {
		lower := strings.ToLower(strings.TrimSpace(h))
		if key, ok := importHeaderAliases[lower]; ok && idx[key] < 0 {
			idx[key] = i
		}
	}
	return idx
}

// normalizeImportDate 将表格日期统一为 YYYY-MM-DD
func normalizeImportDate(s string) string {
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(model.DateLayout)
		}
	}
	return s
}

// ────────────────────── Import ──────────────────────

func (s *employeeService) Import(ctx context.Context, rows []ImportEmployeeRow) (*dto.ImportEmployeeResponse, error) {
	resp := &dto.ImportEmployeeResponse{Total: len(rows)}
	seenEmails := make(map[string]int, len(rows))

	fail := func(row int, reason string) {
		resp.Failed++
		resp.Errors = append(resp.Errors, dto.ImportEmployeeError{Row: row, Reason: reason})
	}

	for _, row := range rows {
		req := &dto.CreateEmployeeRequest{
			Name:          row.Name,
			Email:         row.Email,
			Phone:         row.Phone,
			Address:       row.Address,
			Designation:   row.Designation,
			Department:    row.Department,
			DateOfJoining: normalizeImportDate(row.DateOfJoining),
		}

		emp, err := s.buildEmployee(req)
		if err != nil {
			fail(row.Row, err.Error())
			continue
		}

		// 文件内邮箱去重
		key := strings.ToLower(emp.Email)
		if first, dup := seenEmails[key]; dup {
			fail(row.Row, fmt.Sprintf("Email duplicates row %d", first))
			continue
		}
		seenEmails[key] = row.Row

		if _, err := s.repo.Employee.GetByEmail(ctx, emp.Email); err == nil {
			fail(row.Row, ErrEmailExists.Error())
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询员工失败", zap.Error(err))
			return nil, err
		}

		if err := s.repo.Employee.CreateWithCode(ctx, emp, NextEmployeeCode); err != nil {
			if pkgerrors.IsUniqueViolation(err) {
				fail(row.Row, ErrEmailExists.Error())
				continue
			}
			s.logger.Error("导入员工失败", zap.Int("row", row.Row), zap.Error(err))
			return nil, err
		}

		resp.Success++
		resp.Created = append(resp.Created, toEmployeeResponse(emp))
	}

	if resp.Success > 0 {
		invalidateReportCache(ctx, s.cache, s.logger)
	}

	s.logger.Info("批量导入员工完成",
		zap.Int("total", resp.Total),
		zap.Int("success", resp.Success),
		zap.Int("failed", resp.Failed),
	)

	return resp, nil
}
