package admin

import (
	"strings"
	"time"

	handlershared "github.com/storefront-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.ContextID(c, handlershared.CtxAdminID)
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParseUintParam(c, name)
}

func currentUsername(c *gin.Context) string {
	return c.GetString(handlershared.CtxUsername)
}

func currentIsSuper(c *gin.Context) bool {
	return c.GetBool(handlershared.CtxIsSuper)
}

// parseTimeNullable 解析 RFC3339 时间，空串返回 nil
func parseTimeNullable(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
