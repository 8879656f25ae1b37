package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SaiseetharamModugumudi/HRMS-project/internal/model"
)

// AttendanceListFilters 考勤列表筛选条件（日期区间为闭区间）
type AttendanceListFilters struct {
	EmployeeID *uint
	Date       *time.Time
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
}

// AttendanceRepository 考勤数据访问接口
type AttendanceRepository interface {
	// Create 直接插入；(employee_id, date) 重复时返回唯一约束错误
	Create(ctx context.Context, a *model.Attendance) error
	Update(ctx context.Context, a *model.Attendance) error
	GetByID(ctx context.Context, id uint) (*model.Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) (*model.Attendance, error)
	List(ctx context.Context, filters *AttendanceListFilters) ([]model.Attendance, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, a *model.Attendance) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *attendanceRepo) Update(ctx context.Context, a *model.Attendance) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(a).Error
}

func (r *attendanceRepo) GetByID(ctx context.Context, id uint) (*model.Attendance, error) {
	var a model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) (*model.Attendance, error) {
	var a model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("employee_id = ? AND date = ?", employeeID, date.Format(model.DateLayout)).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attendanceRepo) List(ctx context.Context, filters *AttendanceListFilters) ([]model.Attendance, error) {
	var records []model.Attendance

	db := r.db.WithContext(ctx).Model(&model.Attendance{}).Preload("Employee")
	if filters != nil {
		if filters.EmployeeID != nil {
			db = db.Where("employee_id = ?", *filters.EmployeeID)
		}
		if filters.Date != nil {
			db = db.Where("date = ?", filters.Date.Format(model.DateLayout))
		}
		if filters.StartDate != nil {
			db = db.Where("date >= ?", filters.StartDate.Format(model.DateLayout))
		}
		if filters.EndDate != nil {
			db = db.Where("date <= ?", filters.EndDate.Format(model.DateLayout))
		}
		if filters.Limit > 0 {
			db = db.Limit(filters.Limit)
		}
	}

	err := db.Order("date DESC, in_time DESC, id DESC").Find(&records).Error
	return records, err
}
