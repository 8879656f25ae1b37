package dto

// ── HTML 页面视图模型 ──

// HomePage 首页
type HomePage struct {
	Employees      []EmployeeResponse
	TotalEmployees int64
}

// EmployeeListPage 员工列表页
type EmployeeListPage struct {
	Employees          []EmployeeResponse
	Departments        []string
	SelectedDepartment string
	SearchQuery        string
}

// EmployeeDetailPage 员工详情页（最近 50 条考勤 + 状态统计）
type EmployeeDetailPage struct {
	Employee     EmployeeResponse
	Attendances  []AttendanceResponse
	TotalPresent int
	TotalAbsent  int
	TotalLeave   int
	TotalHalfDay int
}
