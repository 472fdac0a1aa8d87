package public

import (
	"errors"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var captchaErrorRules = []mappedHandlerError{
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, key: "error.captcha_required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
}

var registerErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrEmailExists, code: response.CodeConflict, key: "error.email_exists"},
}

var loginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.invalid_credentials"},
	{target: service.ErrUserDisabled, code: response.CodeUnauthorized, key: "error.user_disabled"},
}

var profileErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrEmailExists, code: response.CodeConflict, key: "error.email_exists"},
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest, key: "error.password_old_invalid"},
}

var productStockErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, key: "error.product_not_available"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, key: "error.insufficient_stock"},
}

var cartErrorRules = concatMappedHandlerErrors(productStockErrorRules, []mappedHandlerError{
	{target: service.ErrCartInvalidQuantity, code: response.CodeBadRequest, key: "error.cart_invalid_quantity"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
})

var orderCreateErrorRules = concatMappedHandlerErrors(productStockErrorRules, []mappedHandlerError{
	{target: service.ErrShippingAddressRequired, code: response.CodeBadRequest, key: "error.shipping_address_required"},
	{target: service.ErrInvalidOrderItem, code: response.CodeBadRequest, key: "error.order_item_invalid"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrCartItemNotFound, code: response.CodeBadRequest, key: "error.cart_item_not_found"},
})

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, key: "error.order_status_invalid"},
	{target: service.ErrPaymentNotConfigured, code: response.CodeBadRequest, key: "error.payment_not_configured"},
	{target: service.ErrPaymentGatewayFailed, code: response.CodeInternal, key: "error.payment_gateway_failed"},
}

var webhookErrorRules = []mappedHandlerError{
	{target: service.ErrPaymentSignatureInvalid, code: response.CodeBadRequest, key: "error.payment_signature_invalid"},
	{target: service.ErrPaymentNotConfigured, code: response.CodeBadRequest, key: "error.payment_not_configured"},
	{target: service.ErrPaymentSessionNotMatched, code: response.CodeNotFound, key: "error.payment_session_not_matched"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, key: "error.order_status_invalid"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrInvalidRating, code: response.CodeBadRequest, key: "error.rating_invalid"},
	{target: service.ErrReviewExists, code: response.CodeConflict, key: "error.review_exists"},
}

var commentErrorRules = []mappedHandlerError{
	{target: service.ErrPostNotFound, code: response.CodeNotFound, key: "error.post_not_found"},
	{target: service.ErrCommentEmpty, code: response.CodeBadRequest, key: "error.comment_empty"},
}
