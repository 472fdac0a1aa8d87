package shared

import (
	"strconv"
	"strings"

	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 鉴权中间件写入 gin.Context 的键
const (
	CtxUserID    = "user_id"
	CtxUserEmail = "user_email"
	CtxAdminID   = "admin_id"
	CtxUsername  = "username"
	CtxIsSuper   = "admin_is_super"
)

// ContextID 读取中间件写入的账号 ID，缺失或为 0 时按未登录返回 401
func ContextID(c *gin.Context, key string) (uint, bool) {
	if id, ok := c.Value(key).(uint); ok && id > 0 {
		return id, true
	}
	RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
	return 0, false
}

// ParseUintParam 路径 ID 必须是正整数，否则直接 400
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || value == 0 {
		RespondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return 0, false
	}
	return uint(value), true
}
