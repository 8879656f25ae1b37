package web

import (
	"embed"
	"html/template"
	"strconv"
	"strings"
)

//go:embed templates/*.html
var templatesFS embed.FS

// funcs 模板辅助函数
var funcs = template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"hours": func(h *float64) string {
		if h == nil {
			return "-"
		}
		// 8.50 -> 8.5, 8.00 -> 8
		return strings.TrimSuffix(strings.TrimRight(strconv.FormatFloat(*h, 'f', 2, 64), "0"), ".")
	},
	"selected": func(a, b string) template.HTMLAttr {
		if a == b {
			return "selected"
		}
		return ""
	},
	"statusClass": func(status string) string {
		switch status {
		case "Present":
			return "success"
		case "Absent":
			return "danger"
		case "Half Day":
			return "warning"
		default:
			return "secondary"
		}
	},
}

// Templates 解析内嵌的全部页面模板
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
}
