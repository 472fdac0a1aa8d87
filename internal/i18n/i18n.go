package i18n

import (
	"fmt"
	"strings"

	"github.com/storefront-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleZH = constants.LocaleZhCN
	LocaleTW = constants.LocaleZhTW
	LocaleEN = constants.LocaleEnUS

	DefaultLocale = LocaleZH
)

const localeHeader = "X-Locale"

var catalogs = map[string]map[string]string{
	LocaleZH: zhCNMessages,
	LocaleTW: zhTWMessages,
	LocaleEN: enUSMessages,
}

// ResolveLocale 解析请求语言：X-Locale > lang 查询参数 > Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if locale := NormalizeLocale(c.GetHeader(localeHeader)); locale != "" {
		return locale
	}
	if locale := NormalizeLocale(c.Query("lang")); locale != "" {
		return locale
	}
	for _, part := range strings.Split(c.GetHeader("Accept-Language"), ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale := NormalizeLocale(tag); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// NormalizeLocale 归一化语言标签，无法识别时返回空串
func NormalizeLocale(raw string) string {
	tag := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), "_", "-"))
	if tag == "" {
		return ""
	}
	switch {
	case tag == "zh-tw" || tag == "zh-hk" || tag == "zh-mo" || strings.HasPrefix(tag, "zh-hant"):
		return LocaleTW
	case tag == "zh" || strings.HasPrefix(tag, "zh-"):
		return LocaleZH
	case tag == "en" || strings.HasPrefix(tag, "en-"):
		return LocaleEN
	}
	return ""
}

// T 翻译消息 key，当前语言缺失时回落到默认语言，仍缺失则原样返回 key
func T(locale, key string) string {
	if messages, ok := catalogs[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化消息
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
