package constants

// 订单状态常量
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusDelivered      = "delivered"
	OrderStatusCanceled       = "canceled"
)

// 订单来源常量
const (
	OrderSourceCart   = "cart"
	OrderSourceDirect = "direct"
)

// 支付方式常量
const (
	PaymentMethodStripe = "stripe"
)

// 优惠活动折扣类型常量
const (
	DealDiscountPercentage = "percentage"
	DealDiscountFixed      = "fixed"
)

// 商品排序常量
const (
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortRatingDesc = "rating_desc"
	SortNewest     = "newest"
	SortPopular    = "popular"
)

// 目录查询默认值
const (
	CatalogDefaultPage  = 1
	CatalogDefaultLimit = 12
	CatalogMaxLimit     = 100
)

// 评价评分范围
const (
	ReviewRatingMin = 1
	ReviewRatingMax = 5
)

// 文章状态常量
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 验证码场景常量
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)

// 异步任务常量
const (
	QueueDefault            = "default"
	QueueCritical           = "critical"
	TaskOrderTimeoutCancel  = "order:timeout_cancel"
	TaskDealCacheInvalidate = "deal:cache_invalidate"
)

// 语言常量
const (
	LocaleZhCN = "zh-CN"
	LocaleZhTW = "zh-TW"
	LocaleEnUS = "en-US"
)

// SupportedLocales 支持的语言列表
var SupportedLocales = []string{LocaleZhCN, LocaleZhTW, LocaleEnUS}
