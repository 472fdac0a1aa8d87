package i18n

var enUSMessages = map[string]string{
	// common
	"error.bad_request":            "Invalid request parameters",
	"error.unauthorized":           "Not signed in or session expired",
	"error.forbidden":              "You do not have permission to perform this action",
	"error.not_found":              "Resource not found",
	"error.internal":               "Internal server error",
	"error.jwt_secret_missing":     "JWT secret is not configured",
	"error.auth_header_missing":    "Missing Authorization header",
	"error.auth_header_invalid":    "Malformed Authorization header",
	"error.token_invalid":          "Invalid token",
	"error.token_revoked":          "Token has been revoked, please sign in again",
	"error.rate_limit_unavailable": "Rate limiter is unavailable",
	"error.rate_limited":           "Too many requests, retry in %d seconds",
	"error.login_too_many":         "Too many login attempts, retry in %d seconds",
	"error.id_invalid":             "Invalid id parameter",

	// auth
	"error.invalid_credentials":      "Invalid email or password",
	"error.email_invalid":            "Invalid email address",
	"error.email_exists":             "Email is already registered",
	"error.password_old_invalid":     "Current password is incorrect",
	"error.password_weak":            "Password is too weak",
	"error.password_min_length":      "Password must be at least %d characters",
	"error.password_require_upper":   "Password must contain an uppercase letter",
	"error.password_require_lower":   "Password must contain a lowercase letter",
	"error.password_require_number":  "Password must contain a number",
	"error.password_require_special": "Password must contain a special character",
	"error.user_disabled":            "Account is disabled",
	"error.user_not_found":           "User not found",
	"error.user_status_invalid":      "Invalid user status",
	"error.user_fetch_failed":        "Failed to load user",
	"error.user_update_failed":       "Failed to update user",
	"error.login_failed":             "Login failed",
	"error.register_failed":          "Registration failed",
	"error.password_change_failed":   "Failed to change password",
	"error.admin_not_found":          "Admin not found",

	// captcha
	"error.captcha_required":        "Captcha is required",
	"error.captcha_invalid":         "Captcha is wrong or expired",
	"error.captcha_config_invalid":  "Captcha is misconfigured",
	"error.captcha_generate_failed": "Failed to generate captcha",

	// products and categories
	"error.product_not_found":      "Product not found",
	"error.product_not_available":  "Product is not available",
	"error.product_slug_exists":    "Product slug already exists",
	"error.product_price_invalid":  "Invalid product price",
	"error.product_fetch_failed":   "Failed to load products",
	"error.product_save_failed":    "Failed to save product",
	"error.product_delete_failed":  "Failed to delete product",
	"error.product_export_failed":  "Failed to export products",
	"error.category_not_found":     "Category not found",
	"error.category_slug_exists":   "Category slug already exists",
	"error.category_in_use":        "Category still has products",
	"error.category_fetch_failed":  "Failed to load categories",
	"error.category_save_failed":   "Failed to save category",
	"error.category_delete_failed": "Failed to delete category",

	// deals
	"error.deal_not_found":     "Deal not found",
	"error.deal_slug_exists":   "Deal slug already exists",
	"error.deal_invalid_type":  "Invalid discount type",
	"error.deal_invalid_value": "Invalid discount value",
	"error.deal_invalid_range": "Deal cannot end before it starts",
	"error.deal_fetch_failed":  "Failed to load deals",
	"error.deal_save_failed":   "Failed to save deal",
	"error.deal_delete_failed": "Failed to delete deal",

	// cart, reviews, wishlist
	"error.cart_invalid_quantity":  "Invalid quantity",
	"error.insufficient_stock":     "Not enough stock",
	"error.cart_item_not_found":    "Cart item not found",
	"error.cart_empty":             "Cart is empty",
	"error.cart_fetch_failed":      "Failed to load cart",
	"error.cart_update_failed":     "Failed to update cart",
	"error.review_exists":          "You have already reviewed this product",
	"error.rating_invalid":         "Rating must be between 1 and 5",
	"error.review_create_failed":   "Failed to submit review",
	"error.wishlist_fetch_failed":  "Failed to load wishlist",
	"error.wishlist_update_failed": "Failed to update wishlist",

	// orders and payments
	"error.order_not_found":             "Order not found",
	"error.order_status_invalid":        "Order status does not allow this action",
	"error.order_item_invalid":          "Invalid order item",
	"error.shipping_address_required":   "A complete shipping address is required",
	"error.order_create_failed":         "Failed to create order",
	"error.order_fetch_failed":          "Failed to load orders",
	"error.order_update_failed":         "Failed to update order",
	"error.payment_not_configured":      "Payment provider is not configured",
	"error.payment_signature_invalid":   "Invalid payment signature",
	"error.payment_gateway_failed":      "Payment gateway request failed",
	"error.payment_session_not_matched": "Payment session does not match any order",
	"error.payment_create_failed":       "Failed to create payment",
	"error.payment_callback_failed":     "Failed to process payment callback",

	// posts
	"error.post_not_found":        "Post not found",
	"error.post_slug_exists":      "Post slug already exists",
	"error.comment_empty":         "Comment cannot be empty",
	"error.comment_create_failed": "Failed to post comment",
	"error.post_fetch_failed":     "Failed to load posts",
	"error.post_save_failed":      "Failed to save post",
	"error.post_delete_failed":    "Failed to delete post",

	// uploads
	"error.upload_file_missing":    "No file provided",
	"error.upload_too_large":       "File exceeds the size limit",
	"error.upload_type_invalid":    "File type is not allowed",
	"error.upload_image_too_large": "Image dimensions exceed the limit",
	"error.upload_not_configured":  "Remote upload is not configured",
	"error.upload_failed":          "Upload failed",

	// dashboard and authz
	"error.dashboard_range_invalid": "Invalid dashboard time range",
	"error.dashboard_fetch_failed":  "Failed to load dashboard data",
	"error.authz_role_invalid":      "Invalid role name",
	"error.authz_action_invalid":    "Invalid permission action",
	"error.authz_failed":            "Permission update failed",
}
