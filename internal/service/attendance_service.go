package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SaiseetharamModugumudi/HRMS-project/internal/dto"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/model"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/repository"
	pkgerrors "github.com/SaiseetharamModugumudi/HRMS-project/pkg/errors"
)

// AttendanceService 考勤业务接口
type AttendanceService interface {
	// Mark 按 (员工, 日期) 查找或创建考勤；未提供的时间与备注保留原值
	Mark(ctx context.Context, req *dto.MarkAttendanceRequest) (*dto.MarkAttendanceResult, error)
	// Create 仅新建；(员工, 日期) 已存在返回 ErrAttendanceExists
	Create(ctx context.Context, req *dto.MarkAttendanceRequest) (*dto.AttendanceResponse, error)
	List(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	events AttendanceBroadcaster
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
// loc 决定缺省日期“今天”的时区
func NewAttendanceService(repo *repository.Repository, events AttendanceBroadcaster, loc *time.Location, logger *zap.Logger) AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &attendanceService{
		repo:   repo,
		events: events,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// markInput 解析后的考勤请求
type markInput struct {
	employee *model.Employee
	date     time.Time
	inTime   *datatypes.Time
	outTime  *datatypes.Time
	status   string // 为空表示显式传入空串
	notes    string
}

func (s *attendanceService) parseMarkRequest(ctx context.Context, req *dto.MarkAttendanceRequest) (*markInput, error) {
	ref := strings.TrimSpace(string(req.EmployeeID))
	if ref == "" {
		return nil, MissingFieldError("employee_id")
	}

	emp, err := resolveEmployee(ctx, s.repo.Employee, ref)
	if err != nil {
		if !errors.Is(err, ErrEmployeeNotFound) {
			s.logger.Error("查询员工失败", zap.String("ref", ref), zap.Error(err))
		}
		return nil, err
	}

	in := &markInput{employee: emp, notes: req.Notes}

	if strings.TrimSpace(req.Date) == "" {
		in.date = dateOf(s.now().In(s.loc))
	} else if in.date, err = parseDate(req.Date); err != nil {
		return nil, err
	}

	if in.inTime, err = parseClock("in_time", req.InTime); err != nil {
		return nil, err
	}
	if in.outTime, err = parseClock("out_time", req.OutTime); err != nil {
		return nil, err
	}

	// 未传 status 取默认值 Present
	in.status = model.AttendanceStatusPresent
	if req.Status != nil {
		in.status = strings.TrimSpace(*req.Status)
		if in.status != "" && !model.IsValidAttendanceStatus(in.status) {
			return nil, validationErrorf(msgInvalidStatus)
		}
	}

	return in, nil
}

// newRecord 以请求字段构造新考勤
func (in *markInput) newRecord() *model.Attendance {
	status := in.status
	if status == "" {
		status = model.AttendanceStatusPresent
	}
	notes := in.notes
	return &model.Attendance{
		EmployeeID: in.employee.ID,
		Date:       in.date,
		InTime:     in.inTime,
		OutTime:    in.outTime,
		Status:     status,
		Notes:      &notes,
		Employee:   in.employee,
	}
}

// applyTo 部分更新：仅覆盖提供了值的字段
func (in *markInput) applyTo(a *model.Attendance) {
	if in.inTime != nil {
		a.InTime = in.inTime
	}
	if in.outTime != nil {
		a.OutTime = in.outTime
	}
	if in.status != "" {
		a.Status = in.status
	}
	if in.notes != "" {
		notes := in.notes
		a.Notes = &notes
	}
	a.Employee = in.employee
}

// ────────────────────── Mark ──────────────────────

func (s *attendanceService) Mark(ctx context.Context, req *dto.MarkAttendanceRequest) (*dto.MarkAttendanceResult, error) {
	in, err := s.parseMarkRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Attendance.GetByEmployeeAndDate(ctx, in.employee.ID, in.date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询考勤失败", zap.Uint("employee_id", in.employee.ID), zap.Error(err))
		return nil, err
	}

	var (
		record  *model.Attendance
		created bool
	)
	if existing == nil {
		record = in.newRecord()
		created = true
		err = s.repo.Attendance.Create(ctx, record)
	} else {
		record = existing
		in.applyTo(record)
		err = s.repo.Attendance.Update(ctx, record)
	}
	if err != nil {
		// 并发插入导致的唯一约束冲突直接返回，不重试
		if pkgerrors.IsUniqueViolation(err) {
			s.logger.Warn("考勤唯一约束冲突", zap.Uint("employee_id", in.employee.ID), zap.Error(err))
			return nil, err
		}
		s.logger.Error("保存考勤失败", zap.Uint("employee_id", in.employee.ID), zap.Error(err))
		return nil, err
	}

	resp := toAttendanceResponse(record)
	s.publish(created, resp)

	return &dto.MarkAttendanceResult{Attendance: resp, Created: created}, nil
}

// ────────────────────── Create ──────────────────────

func (s *attendanceService) Create(ctx context.Context, req *dto.MarkAttendanceRequest) (*dto.AttendanceResponse, error) {
	in, err := s.parseMarkRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	_, err = s.repo.Attendance.GetByEmployeeAndDate(ctx, in.employee.ID, in.date)
	if err == nil {
		return nil, ErrAttendanceExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询考勤失败", zap.Uint("employee_id", in.employee.ID), zap.Error(err))
		return nil, err
	}

	record := in.newRecord()
	if err := s.repo.Attendance.Create(ctx, record); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrAttendanceExists
		}
		s.logger.Error("创建考勤失败", zap.Uint("employee_id", in.employee.ID), zap.Error(err))
		return nil, err
	}

	resp := toAttendanceResponse(record)
	s.publish(true, resp)
	return &resp, nil
}

func (s *attendanceService) publish(created bool, payload dto.AttendanceResponse) {
	if s.events == nil {
		return
	}
	event := EventAttendanceUpdated
	if created {
		event = EventAttendanceCreated
	}
	s.events.Broadcast(event, payload)
}

// ────────────────────── List ──────────────────────

func (s *attendanceService) List(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, error) {
	filters, err := s.listFilters(ctx, req)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.Attendance.List(ctx, filters)
	if err != nil {
		s.logger.Error("列出考勤失败", zap.Error(err))
		return nil, err
	}
	return toAttendanceResponses(records), nil
}

// listFilters 解析列表筛选参数；员工不存在返回 ErrEmployeeNotFound
func (s *attendanceService) listFilters(ctx context.Context, req *dto.AttendanceListRequest) (*repository.AttendanceListFilters, error) {
	filters := &repository.AttendanceListFilters{}
	if req == nil {
		return filters, nil
	}

	if ref := strings.TrimSpace(req.EmployeeID); ref != "" {
		emp, err := resolveEmployee(ctx, s.repo.Employee, ref)
		if err != nil {
			if !errors.Is(err, ErrEmployeeNotFound) {
				s.logger.Error("查询员工失败", zap.String("ref", ref), zap.Error(err))
			}
			return nil, err
		}
		filters.EmployeeID = &emp.ID
	}

	var err error
	if filters.Date, err = parseOptionalDate(req.Date); err != nil {
		return nil, err
	}
	if filters.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
		return nil, err
	}
	if filters.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
		return nil, err
	}
	return filters, nil
}
