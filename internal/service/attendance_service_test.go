package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SaiseetharamModugumudi/HRMS-project/internal/dto"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/model"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/repository"
	pkgerrors "github.com/SaiseetharamModugumudi/HRMS-project/pkg/errors"
)

// ── 测试辅助 ──

type attendanceFixture struct {
	svc      AttendanceService
	empRepo  *mockEmployeeRepo
	attRepo  *mockAttendanceRepo
	events   *mockBroadcaster
	employee *model.Employee
}

func setupTestAttendanceService() *attendanceFixture {
	empRepo := newMockEmployeeRepo()
	attRepo := newMockAttendanceRepo(empRepo)
	repo := &repository.Repository{Employee: empRepo, Attendance: attRepo}
	events := &mockBroadcaster{}

	svc := NewAttendanceService(repo, events, time.UTC, zap.NewNop())
	// 固定“今天”
	svc.(*attendanceService).now = func() time.Time {
		return time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC)
	}

	emp := newTestEmployee("Alice", "alice@example.com", model.DepartmentIT)
	emp.EmployeeCode = "EMP000001"
	empRepo.seed(emp)

	return &attendanceFixture{svc: svc, empRepo: empRepo, attRepo: attRepo, events: events, employee: emp}
}

func strPtr(s string) *string { return &s }

// ── Mark 测试 ──

func TestAttendanceService_Mark_CreateThenUpdate(t *testing.T) {
	f := setupTestAttendanceService()
	ctx := context.Background()

	created, err := f.svc.Mark(ctx, &dto.MarkAttendanceRequest{
		EmployeeID: "EMP000001",
		Date:       "2024-03-01",
		InTime:     "09:00",
		OutTime:    "17:30",
	})
	if err != nil {
		t.Fatalf("Mark 应成功: %v", err)
	}
	if !created.Created {
		t.Error("首次标记应为新建")
	}
	if created.Attendance.Status != model.AttendanceStatusPresent {
		t.Errorf("默认状态应为 Present，实际=%s", created.Attendance.Status)
	}
	if created.Attendance.WorkHours == nil || *created.Attendance.WorkHours != 8.5 {
		t.Errorf("期望工时 8.5，实际=%v", created.Attendance.WorkHours)
	}
	if created.Attendance.EmployeeID != "EMP000001" || created.Attendance.EmployeeName != "Alice" {
		t.Errorf("响应应携带员工工号与姓名: %+v", created.Attendance)
	}

	// 仅更新签退时间，签到时间保持不变
	updated, err := f.svc.Mark(ctx, &dto.MarkAttendanceRequest{
		EmployeeID: "1",
		Date:       "2024-03-01",
		OutTime:    "18:00:00",
	})
	if err != nil {
		t.Fatalf("Mark 更新应成功: %v", err)
	}
	if updated.Created {
		t.Error("同一员工同一天应为更新")
	}
	if updated.Attendance.ID != created.Attendance.ID {
		t.Errorf("应更新同一条记录，实际 ID=%d/%d", updated.Attendance.ID, created.Attendance.ID)
	}
	if updated.Attendance.InTime == nil || *updated.Attendance.InTime != "09:00:00" {
		t.Errorf("签到时间应保留，实际=%v", updated.Attendance.InTime)
	}
	if *updated.Attendance.OutTime != "18:00:00" {
		t.Errorf("签退时间应更新，实际=%s", *updated.Attendance.OutTime)
	}
	if *updated.Attendance.WorkHours != 9 {
		t.Errorf("期望工时 9，实际=%v", *updated.Attendance.WorkHours)
	}
	if len(f.attRepo.records) != 1 {
		t.Errorf("应只有 1 条考勤，实际=%d", len(f.attRepo.records))
	}
}

func TestAttendanceService_Mark_StatusSemantics(t *testing.T) {
	f := setupTestAttendanceService()
	ctx := context.Background()

	if _, err := f.svc.Mark(ctx, &dto.MarkAttendanceRequest{
		EmployeeID: "1", Date: "2024-03-01", Status: strPtr(model.AttendanceStatusLeave), Notes: "sick",
	}); err != nil {
		t.Fatalf("Mark 应成功: %v", err)
	}

	// 显式空串保留原状态，空备注不覆盖
	kept, err := f.svc.Mark(ctx, &dto.MarkAttendanceRequest{EmployeeID: "1", Date: "2024-03-01", Status: strPtr("")})
	if err != nil {
		t.Fatalf("Mark 应成功: %v", err)
	}
	if kept.Attendance.Status != model.AttendanceStatusLeave {
		t.Errorf("空状态应保留 Leave，实际=%s", kept.Attendance.Status)
	}
	if kept.Attendance.Notes == nil || *kept.Attendance.Notes != "sick" {
		t.Errorf("空备注不应覆盖，实际=%v", kept.Attendance.Notes)
	}

	// 未传 status 取默认值 Present 并覆盖
	reset, err := f.svc.Mark(ctx, &dto.MarkAttendanceRequest{EmployeeID: "1", Date: "2024-03-01"})
	if err != nil {
		t.Fatalf("Mark 应成功: %v", err)
	}
	if reset.Attendance.Status != model.AttendanceStatusPresent {
		t.Errorf("缺省状态应覆盖为 Present，实际=%s", reset.Attendance.Status)
	}
}

func TestAttendanceService_Mark_DefaultsToToday(t *testing.T) {
	f := setupTestAttendanceService()
	svc := f.svc.(*attendanceService)
	svc.loc = time.FixedZone("UTC+5", 5*3600)

	got, err := f.svc.Mark(context.Background(), &dto.MarkAttendanceRequest{EmployeeID: "1"})
	if err != nil {
		t.Fatalf("Mark 应成功: %v", err)
	}
	// 23:30 UTC 在 UTC+5 已是次日
	if got.Attendance.Date != "2024-03-16" {
		t.Errorf("期望业务时区下的当天 2024-03-16，实际=%s", got.Attendance.Date)
	}
}

func TestAttendanceService_Mark_Errors(t *testing.T) {
	f := setupTestAttendanceService()

	tests := []struct {
		name    string
		req     *dto.MarkAttendanceRequest
		wantErr error
		wantMsg string
	}{
		{"缺少员工", &dto.MarkAttendanceRequest{}, ErrValidation, "Missing required field: employee_id"},
		{"员工不存在", &dto.MarkAttendanceRequest{EmployeeID: "EMP000404"}, ErrEmployeeNotFound, "Employee not found"},
		{"日期格式错误", &dto.MarkAttendanceRequest{EmployeeID: "1", Date: "03/01/2024"}, ErrValidation, "Invalid date format. Use YYYY-MM-DD"},
		{"签到格式错误", &dto.MarkAttendanceRequest{EmployeeID: "1", InTime: "9am"}, ErrValidation, "Invalid in_time format. Use HH:MM:SS or HH:MM"},
		{"状态非法", &dto.MarkAttendanceRequest{EmployeeID: "1", Status: strPtr("Remote")}, ErrValidation, msgInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Mark(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("期望 %v，实际: %v", tt.wantErr, err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("期望 %q，实际 %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestAttendanceService_Mark_ConcurrentInsertSurfaces(t *testing.T) {
	f := setupTestAttendanceService()
	f.attRepo.createErr = gorm.ErrDuplicatedKey

	_, err := f.svc.Mark(context.Background(), &dto.MarkAttendanceRequest{EmployeeID: "1", Date: "2024-03-01"})
	if !pkgerrors.IsUniqueViolation(err) {
		t.Fatalf("期望唯一约束冲突透传，实际: %v", err)
	}
	if len(f.events.events) != 0 {
		t.Error("失败时不应推送事件")
	}
}

func TestAttendanceService_Mark_Broadcasts(t *testing.T) {
	f := setupTestAttendanceService()
	ctx := context.Background()

	_, _ = f.svc.Mark(ctx, &dto.MarkAttendanceRequest{EmployeeID: "1", Date: "2024-03-01"})
	_, _ = f.svc.Mark(ctx, &dto.MarkAttendanceRequest{EmployeeID: "1", Date: "2024-03-01", Notes: "late"})

	if len(f.events.events) != 2 {
		t.Fatalf("期望 2 个事件，实际=%d", len(f.events.events))
	}
	if f.events.events[0].Event != EventAttendanceCreated || f.events.events[1].Event != EventAttendanceUpdated {
		t.Errorf("事件类型不符: %+v", f.events.events)
	}
	payload, ok := f.events.events[1].Payload.(dto.AttendanceResponse)
	if !ok || payload.Notes == nil || *payload.Notes != "late" {
		t.Errorf("事件载荷不符: %+v", f.events.events[1].Payload)
	}
}

// ── Create 测试 ──

func TestAttendanceService_Create_RejectsExisting(t *testing.T) {
	f := setupTestAttendanceService()
	ctx := context.Background()
	req := &dto.MarkAttendanceRequest{EmployeeID: "1", Date: "2024-03-01", Status: strPtr(model.AttendanceStatusAbsent)}

	got, err := f.svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if got.Status != model.AttendanceStatusAbsent || got.Notes == nil || *got.Notes != "" {
		t.Errorf("新建记录字段不符: %+v", got)
	}

	if _, err := f.svc.Create(ctx, req); !errors.Is(err, ErrAttendanceExists) {
		t.Errorf("期望 ErrAttendanceExists，实际: %v", err)
	}
}

// ── List 测试 ──

func TestAttendanceService_List_Filters(t *testing.T) {
	f := setupTestAttendanceService()
	ctx := context.Background()
	bob := newTestEmployee("Bob", "bob@example.com", model.DepartmentHR)
	bob.EmployeeCode = "EMP000002"
	f.empRepo.seed(bob)

	for _, d := range []string{"2024-03-01", "2024-03-02", "2024-03-03"} {
		if _, err := f.svc.Mark(ctx, &dto.MarkAttendanceRequest{EmployeeID: "1", Date: d}); err != nil {
			t.Fatalf("Mark 失败: %v", err)
		}
	}
	_, _ = f.svc.Mark(ctx, &dto.MarkAttendanceRequest{EmployeeID: "EMP000002", Date: "2024-03-02"})

	rng, err := f.svc.List(ctx, &dto.AttendanceListRequest{EmployeeID: "EMP000001", StartDate: "2024-03-02", EndDate: "2024-03-03"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(rng) != 2 || rng[0].Date != "2024-03-03" || rng[1].Date != "2024-03-02" {
		t.Errorf("闭区间应含两端并按日期倒序: %+v", rng)
	}

	day, _ := f.svc.List(ctx, &dto.AttendanceListRequest{Date: "2024-03-02"})
	if len(day) != 2 {
		t.Errorf("当日期望 2 条，实际=%d", len(day))
	}

	if _, err := f.svc.List(ctx, &dto.AttendanceListRequest{StartDate: "yesterday"}); !errors.Is(err, ErrValidation) {
		t.Errorf("非法日期期望校验错误，实际: %v", err)
	}
	if _, err := f.svc.List(ctx, &dto.AttendanceListRequest{EmployeeID: "EMP000404"}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("未知员工期望 ErrEmployeeNotFound，实际: %v", err)
	}
}
