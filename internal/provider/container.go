package provider

import (
	"context"
	"time"

	"github.com/storefront-next/internal/authz"
	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/payment/stripe"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	Cache       *cache.Store
	QueueClient *queue.Client

	// Repositories
	AdminRepo     repository.AdminRepository
	UserRepo      repository.UserRepository
	CategoryRepo  repository.CategoryRepository
	ProductRepo   repository.ProductRepository
	ReviewRepo    repository.ReviewRepository
	DealRepo      repository.DealRepository
	CartRepo      repository.CartRepository
	WishlistRepo  repository.WishlistRepository
	OrderRepo     repository.OrderRepository
	PostRepo      repository.PostRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	UserAuthService  *service.UserAuthService
	CaptchaService   *service.CaptchaService
	UploadService    *service.UploadService
	ProductService   *service.ProductService
	CategoryService  *service.CategoryService
	ReviewService    *service.ReviewService
	WishlistService  *service.WishlistService
	DealService      *service.DealService
	CartService      *service.CartService
	OrderService     *service.OrderService
	PaymentService   *service.PaymentService
	PostService      *service.PostService
	DashboardService *service.DashboardService
	ExportService    *service.ExportService
}

// NewContainer 基于全局数据库连接初始化容器
func NewContainer(cfg *config.Config) *Container {
	store := cache.New(&cfg.Redis)
	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := store.Ping(ctx)
		cancel()
		if err != nil {
			// Redis 不可用时降级为无缓存运行
			logger.Warnw("provider_redis_unavailable", "error", err)
			_ = store.Close()
			store = nil
		}
	}

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient = nil
	}

	return Build(cfg, models.DB, store, queueClient)
}

// Build 使用显式依赖组装容器，store 与 queueClient 可为 nil
func Build(cfg *config.Config, db *gorm.DB, store *cache.Store, queueClient *queue.Client) *Container {
	c := &Container{
		Config:      cfg,
		DB:          db,
		Cache:       store,
		QueueClient: queueClient,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := c.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.DealRepo = repository.NewDealRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	cfg := c.Config

	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService

	c.AuthService = service.NewAuthService(cfg, c.AdminRepo, c.Cache)
	c.UserAuthService = service.NewUserAuthService(cfg, c.UserRepo, c.Cache)
	c.CaptchaService = service.NewCaptchaService(cfg.Captcha)
	c.UploadService = service.NewUploadService(cfg)
	c.ProductService = service.NewProductService(c.ProductRepo, cfg.Catalog.TopRatedLimit)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.DealService = service.NewDealService(c.DealRepo, c.ProductRepo, c.Cache, c.QueueClient,
		time.Duration(cfg.Catalog.DealCacheTTLSeconds)*time.Second)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CartRepo, c.DealService, c.QueueClient, cfg.Order)
	c.PaymentService = service.NewPaymentService(c.OrderRepo, c.OrderService, c.checkoutGateway(), cfg.Stripe)
	c.PostService = service.NewPostService(c.PostRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.Cache)
	c.ExportService = service.NewExportService(c.ProductRepo)
}

// checkoutGateway 未配置密钥时返回无类型 nil，避免接口持有空指针
func (c *Container) checkoutGateway() service.CheckoutGateway {
	stripeCfg := c.Config.Stripe
	client := stripe.NewClient(stripe.Config{
		SecretKey:               stripeCfg.SecretKey,
		WebhookSecret:           stripeCfg.WebhookSecret,
		SuccessURL:              stripeCfg.SuccessURL,
		CancelURL:               stripeCfg.CancelURL,
		APIBaseURL:              stripeCfg.APIBaseURL,
		WebhookToleranceSeconds: stripeCfg.ToleranceSecs,
		Timeout:                 time.Duration(stripeCfg.TimeoutSeconds) * time.Second,
	})
	if client == nil {
		logger.Infow("provider_stripe_disabled")
		return nil
	}
	return client
}
