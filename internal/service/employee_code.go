package service

import (
	"fmt"
	"strconv"
)

const employeeCodePrefix = "EMP"

// NextEmployeeCode 由最近分配的工号推导下一个工号
// 去掉三位前缀后按整数解析并加一；为空或无法解析时从 EMP000001 重新开始
func NextEmployeeCode(last string) string {
	n := 0
	if len(last) > len(employeeCodePrefix) {
		if v, err := strconv.Atoi(last[len(employeeCodePrefix):]); err == nil && v >= 0 {
			n = v
		}
	}
	return fmt.Sprintf("%s%06d", employeeCodePrefix, n+1)
}
