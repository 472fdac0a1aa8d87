package i18n

var zhCNMessages = map[string]string{
	// 通用
	"error.bad_request":            "请求参数错误",
	"error.unauthorized":           "未登录或登录已失效",
	"error.forbidden":              "没有权限执行该操作",
	"error.not_found":              "资源不存在",
	"error.internal":               "服务器内部错误",
	"error.jwt_secret_missing":     "服务端未配置 JWT 密钥",
	"error.auth_header_missing":    "缺少 Authorization 请求头",
	"error.auth_header_invalid":    "Authorization 格式错误",
	"error.token_invalid":          "登录凭证无效",
	"error.token_revoked":          "登录凭证已失效，请重新登录",
	"error.rate_limit_unavailable": "限流服务暂不可用",
	"error.rate_limited":           "请求过于频繁，请 %d 秒后再试",
	"error.login_too_many":         "登录尝试次数过多，请 %d 秒后再试",
	"error.id_invalid":             "ID 参数无效",

	// 认证
	"error.invalid_credentials":      "账号或密码错误",
	"error.email_invalid":            "邮箱格式错误",
	"error.email_exists":             "该邮箱已注册",
	"error.password_old_invalid":     "原密码错误",
	"error.password_weak":            "密码强度不足",
	"error.password_min_length":      "密码长度至少 %d 位",
	"error.password_require_upper":   "密码需包含大写字母",
	"error.password_require_lower":   "密码需包含小写字母",
	"error.password_require_number":  "密码需包含数字",
	"error.password_require_special": "密码需包含特殊字符",
	"error.user_disabled":            "账号已被禁用",
	"error.user_not_found":           "用户不存在",
	"error.user_status_invalid":      "用户状态无效",
	"error.user_fetch_failed":        "获取用户信息失败",
	"error.user_update_failed":       "更新用户信息失败",
	"error.login_failed":             "登录失败",
	"error.register_failed":          "注册失败",
	"error.password_change_failed":   "修改密码失败",
	"error.admin_not_found":          "管理员不存在",

	// 验证码
	"error.captcha_required":        "请输入验证码",
	"error.captcha_invalid":         "验证码错误或已过期",
	"error.captcha_config_invalid":  "验证码配置错误",
	"error.captcha_generate_failed": "生成验证码失败",

	// 商品与分类
	"error.product_not_found":      "商品不存在",
	"error.product_not_available":  "商品已下架",
	"error.product_slug_exists":    "商品 slug 已存在",
	"error.product_price_invalid":  "商品价格无效",
	"error.product_fetch_failed":   "获取商品失败",
	"error.product_save_failed":    "保存商品失败",
	"error.product_delete_failed":  "删除商品失败",
	"error.product_export_failed":  "导出商品失败",
	"error.category_not_found":     "分类不存在",
	"error.category_slug_exists":   "分类 slug 已存在",
	"error.category_in_use":        "分类下仍有商品，无法删除",
	"error.category_fetch_failed":  "获取分类失败",
	"error.category_save_failed":   "保存分类失败",
	"error.category_delete_failed": "删除分类失败",

	// 优惠活动
	"error.deal_not_found":     "活动不存在",
	"error.deal_slug_exists":   "活动 slug 已存在",
	"error.deal_invalid_type":  "折扣类型无效",
	"error.deal_invalid_value": "折扣值无效",
	"error.deal_invalid_range": "活动结束时间不能早于开始时间",
	"error.deal_fetch_failed":  "获取活动失败",
	"error.deal_save_failed":   "保存活动失败",
	"error.deal_delete_failed": "删除活动失败",

	// 购物车、评价、收藏
	"error.cart_invalid_quantity":  "商品数量无效",
	"error.insufficient_stock":     "库存不足",
	"error.cart_item_not_found":    "购物车商品不存在",
	"error.cart_empty":             "购物车为空",
	"error.cart_fetch_failed":      "获取购物车失败",
	"error.cart_update_failed":     "更新购物车失败",
	"error.review_exists":          "您已评价过该商品",
	"error.rating_invalid":         "评分需在 1 到 5 之间",
	"error.review_create_failed":   "提交评价失败",
	"error.wishlist_fetch_failed":  "获取收藏失败",
	"error.wishlist_update_failed": "更新收藏失败",

	// 订单与支付
	"error.order_not_found":             "订单不存在",
	"error.order_status_invalid":        "订单状态不允许该操作",
	"error.order_item_invalid":          "订单商品无效",
	"error.shipping_address_required":   "请填写完整的收货地址",
	"error.order_create_failed":         "创建订单失败",
	"error.order_fetch_failed":          "获取订单失败",
	"error.order_update_failed":         "更新订单失败",
	"error.payment_not_configured":      "支付渠道未配置",
	"error.payment_signature_invalid":   "支付回调签名无效",
	"error.payment_gateway_failed":      "支付网关请求失败",
	"error.payment_session_not_matched": "支付会话与订单不匹配",
	"error.payment_create_failed":       "创建支付失败",
	"error.payment_callback_failed":     "处理支付回调失败",

	// 文章
	"error.post_not_found":        "文章不存在",
	"error.post_slug_exists":      "文章 slug 已存在",
	"error.comment_empty":         "评论内容不能为空",
	"error.comment_create_failed": "发表评论失败",
	"error.post_fetch_failed":     "获取文章失败",
	"error.post_save_failed":      "保存文章失败",
	"error.post_delete_failed":    "删除文章失败",

	// 上传
	"error.upload_file_missing":    "请选择要上传的文件",
	"error.upload_too_large":       "文件大小超出限制",
	"error.upload_type_invalid":    "不支持的文件类型",
	"error.upload_image_too_large": "图片尺寸超出限制",
	"error.upload_not_configured":  "未配置云端上传",
	"error.upload_failed":          "上传失败",

	// 仪表盘与权限
	"error.dashboard_range_invalid": "统计时间范围无效",
	"error.dashboard_fetch_failed":  "获取统计数据失败",
	"error.authz_role_invalid":      "角色名称无效",
	"error.authz_action_invalid":    "权限动作无效",
	"error.authz_failed":            "权限操作失败",
}
