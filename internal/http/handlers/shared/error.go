package shared

import (
	"errors"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/i18n"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应
// 5xx 记录完整原始错误，4xx 仅在带原始错误时记 warn。
func RespondError(c *gin.Context, code int, key string, err error) {
	appErr := response.NewAppError(code, key, err)
	logAppError(c, appErr)
	response.Error(c, appErr.Code, i18n.T(i18n.ResolveLocale(c), appErr.Key))
}

// RespondErrorWithMsg 返回已本地化的自定义消息
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	logAppError(c, response.NewAppError(code, msg, err))
	response.Error(c, code, msg)
}

func logAppError(c *gin.Context, appErr *response.AppError) {
	if appErr.Err == nil {
		return
	}
	if appErr.Upstream() {
		RequestLog(c).Errorw("handler_error", "code", appErr.Code, "key", appErr.Key, "error", appErr.Err)
		return
	}
	RequestLog(c).Warnw("handler_rejected", "code", appErr.Code, "key", appErr.Key, "error", appErr.Err)
}

// RespondPasswordPolicyError 按未满足的密码规则返回本地化提示。
func RespondPasswordPolicyError(c *gin.Context, err error) {
	var perr *service.PasswordRuleError
	if !errors.As(err, &perr) {
		RespondError(c, response.CodeBadRequest, "error.password_weak", nil)
		return
	}
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, perr.MessageKey())
	if perr.Rule == service.PasswordRuleMinLength {
		msg = i18n.Sprintf(locale, perr.MessageKey(), perr.MinLength)
	}
	RespondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
}
