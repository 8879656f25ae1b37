package dto

// ── 员工模块 DTO ──

// CreateEmployeeRequest 创建员工请求（JSON 接口与 HTML 表单共用）
type CreateEmployeeRequest struct {
	Name          string `json:"name"            form:"name"            binding:"required,max=100"`
	Email         string `json:"email"           form:"email"           binding:"required,email,max=254"`
	Phone         string `json:"phone"           form:"phone"           binding:"required,max=15"`
	Address       string `json:"address"         form:"address"         binding:"required"`
	Designation   string `json:"designation"     form:"designation"     binding:"required,designation"`
	Department    string `json:"department"      form:"department"      binding:"required,department"`
	DateOfJoining string `json:"date_of_joining" form:"date_of_joining" binding:"required"` // YYYY-MM-DD
}

// EmployeeListRequest 员工列表查询参数
type EmployeeListRequest struct {
	Department string `form:"department"`
	Search     string `form:"search"`
}

// EmployeeResponse 员工信息响应
type EmployeeResponse struct {
	ID            uint   `json:"id"`
	EmployeeID    string `json:"employee_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Designation   string `json:"designation"`
	Department    string `json:"department"`
	DateOfJoining string `json:"date_of_joining"`
	CreatedAt     string `json:"created_at"`
}

// EmployeeListResponse GET /api/employees/
type EmployeeListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

// CreateEmployeeResponse POST /api/employees/
type CreateEmployeeResponse struct {
	Message  string           `json:"message"`
	Employee EmployeeResponse `json:"employee"`
}

// EmployeeDetailResponse GET /api/employees/:id/
type EmployeeDetailResponse struct {
	Employee    EmployeeResponse     `json:"employee"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ── 批量导入 ──

// ImportEmployeeResponse 批量导入员工响应
type ImportEmployeeResponse struct {
	Total   int                   `json:"total"`
	Success int                   `json:"success"`
	Failed  int                   `json:"failed"`
	Created []EmployeeResponse    `json:"created,omitempty"`
	Errors  []ImportEmployeeError `json:"errors,omitempty"`
}

// ImportEmployeeError 导入错误详情
type ImportEmployeeError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
