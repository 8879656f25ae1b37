package model

import "time"

// 职位枚举
const (
	DesignationManager            = "Manager"
	DesignationDeveloper          = "Developer"
	DesignationDesigner           = "Designer"
	DesignationHR                 = "HR"
	DesignationAccountant         = "Accountant"
	DesignationSalesExecutive     = "Sales Executive"
	DesignationMarketingExecutive = "Marketing Executive"
	DesignationOther              = "Other"
)

// 部门枚举
const (
	DepartmentIT         = "IT"
	DepartmentHR         = "HR"
	DepartmentFinance    = "Finance"
	DepartmentSales      = "Sales"
	DepartmentMarketing  = "Marketing"
	DepartmentOperations = "Operations"
	DepartmentOther      = "Other"
)

// Designations 职位可选值（表单下拉顺序）
var Designations = []string{
	DesignationManager, DesignationDeveloper, DesignationDesigner, DesignationHR,
	DesignationAccountant, DesignationSalesExecutive, DesignationMarketingExecutive, DesignationOther,
}

// Departments 部门可选值（表单下拉顺序）
var Departments = []string{
	DepartmentIT, DepartmentHR, DepartmentFinance, DepartmentSales,
	DepartmentMarketing, DepartmentOperations, DepartmentOther,
}

// Employee 员工表 — 对应 employees
type Employee struct {
	ID            uint      `gorm:"primaryKey"                        json:"id"`
	EmployeeCode  string    `gorm:"type:varchar(20);not null;unique"  json:"employee_id"` // EMP000001，创建后不可变
	Name          string    `gorm:"type:varchar(100);not null"        json:"name"`
	Email         string    `gorm:"type:varchar(254);not null;unique" json:"email"`
	Phone         string    `gorm:"type:varchar(15);not null"         json:"phone"`
	Address       string    `gorm:"type:text;not null"                json:"address"`
	Designation   string    `gorm:"type:varchar(50);not null"         json:"designation"`
	Department    string    `gorm:"type:varchar(50);not null"         json:"department"`
	DateOfJoining time.Time `gorm:"type:date;not null"                json:"date_of_joining"`
	BaseModel

	// 关联
	Attendances []Attendance `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"attendances,omitempty"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// String 列表/下拉展示用
func (e Employee) String() string {
	return e.Name + " (" + e.EmployeeCode + ")"
}

// IsValidDesignation 校验职位枚举
func IsValidDesignation(v string) bool { return contains(Designations, v) }

// IsValidDepartment 校验部门枚举
func IsValidDepartment(v string) bool { return contains(Departments, v) }

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
