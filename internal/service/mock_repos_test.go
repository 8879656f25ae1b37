package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/SaiseetharamModugumudi/HRMS-project/internal/model"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/repository"
	"github.com/SaiseetharamModugumudi/HRMS-project/pkg/redis"
)

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[uint]*model.Employee
	nextID    uint
	failList  error
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[uint]*model.Employee), nextID: 1}
}

// seed 直接写入一条记录（可指定工号）
func (m *mockEmployeeRepo) seed(e *model.Employee) *model.Employee {
	e.ID = m.nextID
	m.nextID++
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(e.ID) * time.Hour)
	}
	m.employees[e.ID] = e
	return e
}

func (m *mockEmployeeRepo) CreateWithCode(_ context.Context, emp *model.Employee, next func(last string) string) error {
	for _, e := range m.employees {
		if strings.EqualFold(e.Email, emp.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	if emp.EmployeeCode == "" {
		last := ""
		var maxID uint
		for id, e := range m.employees {
			if id > maxID {
				maxID, last = id, e.EmployeeCode
			}
		}
		emp.EmployeeCode = next(last)
	}
	m.seed(emp)
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id uint) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByCode(_ context.Context, code string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.EmployeeCode == code {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByEmail(_ context.Context, email string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context, filters *repository.EmployeeListFilters) ([]model.Employee, error) {
	if m.failList != nil {
		return nil, m.failList
	}
	var result []model.Employee
	for _, e := range m.employees {
		if filters != nil && filters.Department != "" && e.Department != filters.Department {
			continue
		}
		if filters != nil && filters.Search != "" {
			q := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(e.Name), q) &&
				!strings.Contains(strings.ToLower(e.Email), q) &&
				!strings.Contains(strings.ToLower(e.EmployeeCode), q) {
				continue
			}
		}
		result = append(result, *e)
	}

	byName := filters != nil && strings.HasPrefix(filters.OrderBy, "name")
	sort.Slice(result, func(i, j int) bool {
		if byName {
			return result[i].Name < result[j].Name
		}
		return result[i].ID > result[j].ID
	})
	if filters != nil && filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockEmployeeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.employees)), nil
}

func (m *mockEmployeeRepo) CountByDepartment(_ context.Context) ([]repository.GroupCount, error) {
	return m.countBy(func(e *model.Employee) string { return e.Department }), nil
}

func (m *mockEmployeeRepo) CountByDesignation(_ context.Context) ([]repository.GroupCount, error) {
	return m.countBy(func(e *model.Employee) string { return e.Designation }), nil
}

func (m *mockEmployeeRepo) countBy(key func(*model.Employee) string) []repository.GroupCount {
	counts := make(map[string]int64)
	for _, e := range m.employees {
		counts[key(e)]++
	}
	var rows []repository.GroupCount
	for label, c := range counts {
		rows = append(rows, repository.GroupCount{Label: label, Count: c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records   map[uint]*model.Attendance
	employees *mockEmployeeRepo
	nextID    uint
	// createErr 非空时 Create 直接返回该错误（模拟并发插入冲突）
	createErr error
}

func newMockAttendanceRepo(employees *mockEmployeeRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[uint]*model.Attendance), employees: employees, nextID: 1}
}

func (m *mockAttendanceRepo) Create(_ context.Context, a *model.Attendance) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, r := range m.records {
		if r.EmployeeID == a.EmployeeID && r.Date.Equal(a.Date) {
			return gorm.ErrDuplicatedKey
		}
	}
	a.ID = m.nextID
	m.nextID++
	cp := *a
	m.records[a.ID] = &cp
	return nil
}

func (m *mockAttendanceRepo) Update(_ context.Context, a *model.Attendance) error {
	if _, ok := m.records[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *a
	m.records[a.ID] = &cp
	return nil
}

func (m *mockAttendanceRepo) withEmployee(r *model.Attendance) *model.Attendance {
	cp := *r
	if e, ok := m.employees.employees[r.EmployeeID]; ok {
		cp.Employee = e
	}
	return &cp
}

func (m *mockAttendanceRepo) GetByID(_ context.Context, id uint) (*model.Attendance, error) {
	if r, ok := m.records[id]; ok {
		return m.withEmployee(r), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID uint, date time.Time) (*model.Attendance, error) {
	for _, r := range m.records {
		if r.EmployeeID == employeeID && r.Date.Equal(date) {
			return m.withEmployee(r), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) List(_ context.Context, filters *repository.AttendanceListFilters) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, r := range m.records {
		if filters != nil {
			if filters.EmployeeID != nil && r.EmployeeID != *filters.EmployeeID {
				continue
			}
			if filters.Date != nil && !r.Date.Equal(*filters.Date) {
				continue
			}
			if filters.StartDate != nil && r.Date.Before(*filters.StartDate) {
				continue
			}
			if filters.EndDate != nil && r.Date.After(*filters.EndDate) {
				continue
			}
		}
		result = append(result, *m.withEmployee(r))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})
	if filters != nil && filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

// ── Mock ReportCache ──

type mockCache struct {
	data    map[string][]byte
	getErr  error
	deleted []string
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) GetJSON(_ context.Context, key string, dst interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return redis.ErrCacheMiss
	}
	return json.Unmarshal(raw, dst)
}

func (m *mockCache) SetJSON(_ context.Context, key string, v interface{}, _ time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *mockCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
		m.deleted = append(m.deleted, k)
	}
	return nil
}

// ── Mock AttendanceBroadcaster ──

type broadcastEvent struct {
	Event   string
	Payload interface{}
}

type mockBroadcaster struct {
	mu     sync.Mutex
	events []broadcastEvent
}

func (m *mockBroadcaster) Broadcast(event string, payload interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, broadcastEvent{Event: event, Payload: payload})
}

// ── 测试辅助 ──

var errMockStore = errors.New("store unavailable")

func newTestEmployee(name, email, dept string) *model.Employee {
	return &model.Employee{
		Name:          name,
		Email:         email,
		Phone:         "9876543210",
		Address:       "1 Main St",
		Designation:   model.DesignationDeveloper,
		Department:    dept,
		DateOfJoining: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}
