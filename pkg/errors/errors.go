package errors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation PostgreSQL unique_violation 错误码
const pgUniqueViolation = "23505"

// ErrDuplicateKey 唯一约束冲突：记录已存在（邮箱、工号、员工+日期考勤）
var ErrDuplicateKey = errors.New("违反唯一约束，记录已存在")

// IsUniqueViolation 判断写库错误是否为唯一约束冲突
// 同时识别 gorm TranslateError 转换后的错误与驱动原始 PgError
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrDuplicateKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}
