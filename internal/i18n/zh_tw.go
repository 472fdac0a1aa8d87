package i18n

var zhTWMessages = map[string]string{
	// 通用
	"error.bad_request":            "請求參數錯誤",
	"error.unauthorized":           "未登入或登入已失效",
	"error.forbidden":              "沒有權限執行該操作",
	"error.not_found":              "資源不存在",
	"error.internal":               "伺服器內部錯誤",
	"error.jwt_secret_missing":     "伺服端未設定 JWT 金鑰",
	"error.auth_header_missing":    "缺少 Authorization 請求標頭",
	"error.auth_header_invalid":    "Authorization 格式錯誤",
	"error.token_invalid":          "登入憑證無效",
	"error.token_revoked":          "登入憑證已失效，請重新登入",
	"error.rate_limit_unavailable": "限流服務暫不可用",
	"error.rate_limited":           "請求過於頻繁，請 %d 秒後再試",
	"error.login_too_many":         "登入嘗試次數過多，請 %d 秒後再試",
	"error.id_invalid":             "ID 參數無效",

	// 認證
	"error.invalid_credentials":      "帳號或密碼錯誤",
	"error.email_invalid":            "電子郵件格式錯誤",
	"error.email_exists":             "該電子郵件已註冊",
	"error.password_old_invalid":     "原密碼錯誤",
	"error.password_weak":            "密碼強度不足",
	"error.password_min_length":      "密碼長度至少 %d 位",
	"error.password_require_upper":   "密碼需包含大寫字母",
	"error.password_require_lower":   "密碼需包含小寫字母",
	"error.password_require_number":  "密碼需包含數字",
	"error.password_require_special": "密碼需包含特殊字元",
	"error.user_disabled":            "帳號已被停用",
	"error.user_not_found":           "使用者不存在",
	"error.user_status_invalid":      "使用者狀態無效",
	"error.user_fetch_failed":        "取得使用者資訊失敗",
	"error.user_update_failed":       "更新使用者資訊失敗",
	"error.login_failed":             "登入失敗",
	"error.register_failed":          "註冊失敗",
	"error.password_change_failed":   "修改密碼失敗",
	"error.admin_not_found":          "管理員不存在",

	// 驗證碼
	"error.captcha_required":        "請輸入驗證碼",
	"error.captcha_invalid":         "驗證碼錯誤或已過期",
	"error.captcha_config_invalid":  "驗證碼設定錯誤",
	"error.captcha_generate_failed": "產生驗證碼失敗",

	// 商品與分類
	"error.product_not_found":      "商品不存在",
	"error.product_not_available":  "商品已下架",
	"error.product_slug_exists":    "商品 slug 已存在",
	"error.product_price_invalid":  "商品價格無效",
	"error.product_fetch_failed":   "取得商品失敗",
	"error.product_save_failed":    "儲存商品失敗",
	"error.product_delete_failed":  "刪除商品失敗",
	"error.product_export_failed":  "匯出商品失敗",
	"error.category_not_found":     "分類不存在",
	"error.category_slug_exists":   "分類 slug 已存在",
	"error.category_in_use":        "分類下仍有商品，無法刪除",
	"error.category_fetch_failed":  "取得分類失敗",
	"error.category_save_failed":   "儲存分類失敗",
	"error.category_delete_failed": "刪除分類失敗",

	// 優惠活動
	"error.deal_not_found":     "活動不存在",
	"error.deal_slug_exists":   "活動 slug 已存在",
	"error.deal_invalid_type":  "折扣類型無效",
	"error.deal_invalid_value": "折扣值無效",
	"error.deal_invalid_range": "活動結束時間不能早於開始時間",
	"error.deal_fetch_failed":  "取得活動失敗",
	"error.deal_save_failed":   "儲存活動失敗",
	"error.deal_delete_failed": "刪除活動失敗",

	// 購物車、評價、收藏
	"error.cart_invalid_quantity":  "商品數量無效",
	"error.insufficient_stock":     "庫存不足",
	"error.cart_item_not_found":    "購物車商品不存在",
	"error.cart_empty":             "購物車為空",
	"error.cart_fetch_failed":      "取得購物車失敗",
	"error.cart_update_failed":     "更新購物車失敗",
	"error.review_exists":          "您已評價過該商品",
	"error.rating_invalid":         "評分需在 1 到 5 之間",
	"error.review_create_failed":   "提交評價失敗",
	"error.wishlist_fetch_failed":  "取得收藏失敗",
	"error.wishlist_update_failed": "更新收藏失敗",

	// 訂單與支付
	"error.order_not_found":             "訂單不存在",
	"error.order_status_invalid":        "訂單狀態不允許該操作",
	"error.order_item_invalid":          "訂單商品無效",
	"error.shipping_address_required":   "請填寫完整的收貨地址",
	"error.order_create_failed":         "建立訂單失敗",
	"error.order_fetch_failed":          "取得訂單失敗",
	"error.order_update_failed":         "更新訂單失敗",
	"error.payment_not_configured":      "支付渠道未設定",
	"error.payment_signature_invalid":   "支付回呼簽章無效",
	"error.payment_gateway_failed":      "支付閘道請求失敗",
	"error.payment_session_not_matched": "支付工作階段與訂單不符",
	"error.payment_create_failed":       "建立支付失敗",
	"error.payment_callback_failed":     "處理支付回呼失敗",

	// 文章
	"error.post_not_found":        "文章不存在",
	"error.post_slug_exists":      "文章 slug 已存在",
	"error.comment_empty":         "留言內容不能為空",
	"error.comment_create_failed": "發表留言失敗",
	"error.post_fetch_failed":     "取得文章失敗",
	"error.post_save_failed":      "儲存文章失敗",
	"error.post_delete_failed":    "刪除文章失敗",

	// 上傳
	"error.upload_file_missing":    "請選擇要上傳的檔案",
	"error.upload_too_large":       "檔案大小超出限制",
	"error.upload_type_invalid":    "不支援的檔案類型",
	"error.upload_image_too_large": "圖片尺寸超出限制",
	"error.upload_not_configured":  "未設定雲端上傳",
	"error.upload_failed":          "上傳失敗",

	// 儀表板與權限
	"error.dashboard_range_invalid": "統計時間範圍無效",
	"error.dashboard_fetch_failed":  "取得統計資料失敗",
	"error.authz_role_invalid":      "角色名稱無效",
	"error.authz_action_invalid":    "權限動作無效",
	"error.authz_failed":            "權限操作失敗",
}
