package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// productSearchColumns 商品关键词检索列
var productSearchColumns = []string{"name", "description", "brand"}

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

func isPostgresDialect(dialect string) bool {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return true
	default:
		return false
	}
}

// likeOperatorByDialect postgres 使用 ILIKE；sqlite 的 LIKE 对 ASCII 本身不区分大小写
func likeOperatorByDialect(dialect string) string {
	if isPostgresDialect(dialect) {
		return "ILIKE"
	}
	return "LIKE"
}

// buildLikeConditionByDialect 构建多列 OR 的模糊匹配条件，并返回参数数量。
func buildLikeConditionByDialect(dialect string, columns []string) (string, int) {
	parts := make([]string, 0, len(columns))
	operator := likeOperatorByDialect(dialect)
	for _, column := range columns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", trimmed, operator))
	}
	if len(parts) == 0 {
		return "", 0
	}
	return "(" + strings.Join(parts, " OR ") + ")", len(parts)
}

// buildLikeCondition 按连接方言构建模糊匹配条件
func buildLikeCondition(db *gorm.DB, columns []string) (string, int) {
	return buildLikeConditionByDialect(dbDialectName(db), columns)
}

// fullTextConditionByDialect 构建 postgres 全文检索表达式，其他方言返回空串。
// 结果占用一个参数（检索词）。
func fullTextConditionByDialect(dialect string, columns []string) string {
	if !isPostgresDialect(dialect) || len(columns) == 0 {
		return ""
	}
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		parts = append(parts, fmt.Sprintf("coalesce(%s, '')", column))
	}
	document := strings.Join(parts, " || ' ' || ")
	return fmt.Sprintf("to_tsvector('simple', %s) @@ plainto_tsquery('simple', ?)", document)
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}

// containsPattern 生成子串匹配模式
func containsPattern(keyword string) string {
	return "%" + strings.TrimSpace(keyword) + "%"
}
