package admin

import (
	"errors"

	"github.com/storefront-next/internal/authz"
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// errorRule 业务错误到响应码与文案 key 的映射
type errorRule struct {
	target error
	code   int
	key    string
}

func respondMapped(c *gin.Context, err error, rules []errorRule, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, response.CodeInternal, fallbackKey, err)
}

var productErrorRules = []errorRule{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrProductSlugExists, code: response.CodeConflict, key: "error.product_slug_exists"},
	{target: service.ErrProductPriceInvalid, code: response.CodeBadRequest, key: "error.product_price_invalid"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
}

var categoryErrorRules = []errorRule{
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
	{target: service.ErrCategorySlugExists, code: response.CodeConflict, key: "error.category_slug_exists"},
	{target: service.ErrCategoryInUse, code: response.CodeConflict, key: "error.category_in_use"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
}

var dealErrorRules = []errorRule{
	{target: service.ErrDealNotFound, code: response.CodeNotFound, key: "error.deal_not_found"},
	{target: service.ErrDealSlugExists, code: response.CodeConflict, key: "error.deal_slug_exists"},
	{target: service.ErrDealInvalidType, code: response.CodeBadRequest, key: "error.deal_invalid_type"},
	{target: service.ErrDealInvalidValue, code: response.CodeBadRequest, key: "error.deal_invalid_value"},
	{target: service.ErrDealInvalidRange, code: response.CodeBadRequest, key: "error.deal_invalid_range"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
}

var postErrorRules = []errorRule{
	{target: service.ErrPostNotFound, code: response.CodeNotFound, key: "error.post_not_found"},
	{target: service.ErrPostSlugExists, code: response.CodeConflict, key: "error.post_slug_exists"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
}

var orderErrorRules = []errorRule{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, key: "error.order_status_invalid"},
}

var userErrorRules = []errorRule{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.user_status_invalid"},
}

var uploadErrorRules = []errorRule{
	{target: service.ErrUploadTooLarge, code: response.CodeBadRequest, key: "error.upload_too_large"},
	{target: service.ErrUploadTypeInvalid, code: response.CodeBadRequest, key: "error.upload_type_invalid"},
	{target: service.ErrUploadImageTooLarge, code: response.CodeBadRequest, key: "error.upload_image_too_large"},
	{target: service.ErrUploadNotConfigured, code: response.CodeBadRequest, key: "error.upload_not_configured"},
}

var authzErrorRules = []errorRule{
	{target: authz.ErrRoleRequired, code: response.CodeBadRequest, key: "error.authz_role_invalid"},
	{target: authz.ErrActionRequired, code: response.CodeBadRequest, key: "error.authz_action_invalid"},
}
