package service

import (
	"errors"

	"github.com/storefront-next/internal/cart"
)

// 通用错误
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
)

// 认证相关错误
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailExists        = errors.New("email already registered")
	ErrUserDisabled       = errors.New("user disabled")
	ErrInvalidToken       = errors.New("invalid token")
)

// 验证码相关错误
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)

// 商品与分类相关错误
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotAvailable = errors.New("product not available")
	ErrProductSlugExists   = errors.New("product slug already exists")
	ErrProductPriceInvalid = errors.New("product price invalid")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategorySlugExists  = errors.New("category slug already exists")
	ErrCategoryInUse       = errors.New("category still has products")
)

// 优惠活动相关错误
var (
	ErrDealNotFound     = errors.New("deal not found")
	ErrDealSlugExists   = errors.New("deal slug already exists")
	ErrDealInvalidType  = errors.New("invalid deal discount type")
	ErrDealInvalidValue = errors.New("invalid deal discount value")
	ErrDealInvalidRange = errors.New("deal ends before it starts")
)

// 购物车相关错误，与 cart 包共享同一实例以便 errors.Is 判断
var (
	ErrCartInvalidQuantity = cart.ErrInvalidQuantity
	ErrInsufficientStock   = cart.ErrInsufficientStock
	ErrCartItemNotFound    = cart.ErrLineNotFound
	ErrCartEmpty           = errors.New("cart is empty")
)

// 评价与收藏相关错误
var (
	ErrReviewExists  = errors.New("product already reviewed")
	ErrInvalidRating = errors.New("rating out of range")
)

// 订单与支付相关错误
var (
	ErrOrderNotFound            = errors.New("order not found")
	ErrOrderStatusInvalid       = errors.New("order status invalid")
	ErrInvalidOrderItem         = errors.New("invalid order item")
	ErrShippingAddressRequired  = errors.New("shipping address required")
	ErrPaymentNotConfigured     = errors.New("payment provider not configured")
	ErrPaymentSignatureInvalid  = errors.New("payment signature invalid")
	ErrPaymentGatewayFailed     = errors.New("payment gateway request failed")
	ErrPaymentSessionNotMatched = errors.New("payment session does not match any order")
)

// 文章相关错误
var (
	ErrPostNotFound   = errors.New("post not found")
	ErrPostSlugExists = errors.New("post slug already exists")
	ErrCommentEmpty   = errors.New("comment body required")
)

// 上传相关错误
var (
	ErrUploadTooLarge      = errors.New("upload exceeds size limit")
	ErrUploadTypeInvalid   = errors.New("upload type not allowed")
	ErrUploadImageTooLarge = errors.New("image dimensions exceed limit")
	ErrUploadNotConfigured = errors.New("remote upload not configured")
)

// 仪表盘相关错误
var (
	ErrDashboardRangeInvalid = errors.New("dashboard range invalid")
)
