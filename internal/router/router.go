package router

import (
	"net/http"
	"sort"
	"strings"

	"github.com/storefront-next/internal/authz"
	"github.com/storefront-next/internal/config"
	adminhandlers "github.com/storefront-next/internal/http/handlers/admin"
	publichandlers "github.com/storefront-next/internal/http/handlers/public"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisClient := c.Cache.Client()
	limit := cfg.Security.LoginRateLimit
	loginRule := RateLimitRule{
		Prefix:        c.Cache.Key("rate:login"),
		WindowSeconds: limit.WindowSeconds,
		MaxRequests:   limit.MaxAttempts,
		BlockSeconds:  limit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
	adminLoginRule := loginRule
	adminLoginRule.Prefix = c.Cache.Key("rate:admin_login")

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(CORSMiddleware(cfg.CORS))

	// 本地上传的图片
	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/top", publicHandler.GetTopProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/deals", publicHandler.GetDeals)
			public.GET("/deals/featured", publicHandler.GetFeaturedDeals)
			public.GET("/deals/flash-sales", publicHandler.GetFlashSaleDeals)
			public.GET("/deals/:slug", publicHandler.GetDealBySlug)
			public.GET("/posts", publicHandler.GetPosts)
			public.GET("/posts/:slug", publicHandler.GetPostBySlug)
		}

		// 用户认证
		auth := apiV1.Group("/auth")
		{
			loginLimit := RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email"))
			auth.POST("/register", loginLimit, publicHandler.UserRegister)
			auth.POST("/login", loginLimit, publicHandler.UserLogin)
		}

		// 支付回调（验签，无需鉴权）
		apiV1.POST("/payments/stripe/webhook", publicHandler.StripeWebhook)

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserAuthService))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me", publicHandler.UpdateCurrentUser)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart", publicHandler.AddCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.PUT("/cart/:itemId", publicHandler.UpdateCartItem)
			user.DELETE("/cart/:itemId", publicHandler.RemoveCartItem)

			user.GET("/wishlist", publicHandler.GetWishlist)
			user.POST("/wishlist/:productId", publicHandler.ToggleWishlist)

			user.POST("/products/:id/reviews", publicHandler.CreateReview)
			user.POST("/posts/:slug/comments", publicHandler.CreatePostComment)

			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/orders/:id/checkout", publicHandler.CreateCheckout)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			authorized := admin.Group("")
			authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AuthService), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.GetAdminMe)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 仪表盘
				authorized.GET("/dashboard/overview", adminHandler.GetDashboardOverview)
				authorized.GET("/dashboard/trends", adminHandler.GetDashboardTrends)
				authorized.GET("/dashboard/rankings", adminHandler.GetDashboardRankings)

				// 商品管理
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.GET("/products/export", adminHandler.ExportProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.PUT("/products/:id/stock", adminHandler.UpdateProductStock)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				// 分类管理
				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

				// 活动管理
				authorized.GET("/deals", adminHandler.GetAdminDeals)
				authorized.GET("/deals/:id", adminHandler.GetAdminDeal)
				authorized.POST("/deals", adminHandler.CreateDeal)
				authorized.PUT("/deals/:id", adminHandler.UpdateDeal)
				authorized.DELETE("/deals/:id", adminHandler.DeleteDeal)

				// 文章管理
				authorized.GET("/posts", adminHandler.GetAdminPosts)
				authorized.GET("/posts/:id", adminHandler.GetAdminPost)
				authorized.POST("/posts", adminHandler.CreatePost)
				authorized.PUT("/posts/:id", adminHandler.UpdatePost)
				authorized.DELETE("/posts/:id", adminHandler.DeletePost)

				// 订单管理
				authorized.GET("/orders", adminHandler.AdminListOrders)
				authorized.GET("/orders/:id", adminHandler.AdminGetOrder)
				authorized.PUT("/orders/:id/deliver", adminHandler.AdminDeliverOrder)

				// 用户管理
				authorized.GET("/users", adminHandler.GetAdminUsers)
				authorized.PUT("/users/:id/status", adminHandler.UpdateAdminUserStatus)

				// 文件上传
				authorized.POST("/upload", adminHandler.UploadFile)
				authorized.GET("/upload/signature", adminHandler.GetUploadSignature)

				// 权限管理
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
			}
		}
	}

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildAdminPermissionCatalog 从已注册路由生成可授权的权限清单
func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, route := range routes {
		method := strings.ToUpper(strings.TrimSpace(route.Method))
		if method == "" || method == http.MethodOptions || method == http.MethodHead {
			continue
		}
		if !strings.HasPrefix(route.Path, "/api/v1/admin/") || route.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(route.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module != items[j].Module {
			return items[i].Module < items[j].Module
		}
		if items[i].Object != items[j].Object {
			return items[i].Object < items[j].Object
		}
		return items[i].Method < items[j].Method
	})
	return items
}

// deriveAdminPermissionModule /admin/products/:id → products
func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 || segments[0] != "admin" {
		return segments[0]
	}
	return segments[1]
}
