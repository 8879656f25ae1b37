package dto

// GroupCount 分组计数
type GroupCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// ReportSummary 报表汇总（部门/职位分布）
type ReportSummary struct {
	DepartmentStats   []GroupCount `json:"department_stats"`
	DesignationStats  []GroupCount `json:"designation_stats"`
	TotalEmployees    int64        `json:"total_employees"`
	TotalDepartments  int          `json:"total_departments"`
	TotalDesignations int          `json:"total_designations"`
}

// Labels 图表横轴
func (s *ReportSummary) Labels(stats []GroupCount) []string {
	out := make([]string, 0, len(stats))
	for _, g := range stats {
		out = append(out, g.Label)
	}
	return out
}

// Counts 图表纵轴
func (s *ReportSummary) Counts(stats []GroupCount) []int64 {
	out := make([]int64, 0, len(stats))
	for _, g := range stats {
		out = append(out, g.Count)
	}
	return out
}
