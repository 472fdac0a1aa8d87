package public

import (
	"errors"
	"strings"
	"time"

	"github.com/storefront-next/internal/catalog"
	"github.com/storefront-next/internal/constants"
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig 获取前台全局配置
func (h *Handler) GetConfig(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := h.Cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	data := map[string]interface{}{
		"languages": constants.SupportedLocales,
		"captcha":   h.CaptchaService.PublicSetting(),
	}
	if h.Config != nil {
		data["currency"] = h.Config.Order.Currency
		data["order"] = map[string]interface{}{
			"shipping_fee":            h.Config.Order.ShippingFee,
			"free_shipping_threshold": h.Config.Order.FreeShippingThreshold,
			"tax_rate":                h.Config.Order.TaxRate,
			"payment_expire_minutes":  h.Config.Order.PaymentExpireMinutes,
		}
		data["payment"] = map[string]interface{}{
			"stripe_enabled": strings.TrimSpace(h.Config.Stripe.SecretKey) != "",
		}
	}

	if err := h.Cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL); err != nil {
		requestLog(c).Warnw("public_config_cache_write_failed", "error", err)
	}
	response.Success(c, data)
}

// GetProducts 商品目录查询
// 参数解析宽松：无法识别的数值参数直接忽略。
func (h *Handler) GetProducts(c *gin.Context) {
	query := catalog.ParseQuery(c.Request.URL.Query())
	page, err := h.ProductService.Search(query)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, page)
}

// GetTopProducts 评分最高的商品
func (h *Handler) GetTopProducts(c *gin.Context) {
	products, err := h.ProductService.TopRated()
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, products)
}

// GetProductBySlug 商品详情（含评价）
func (h *Handler) GetProductBySlug(c *gin.Context) {
	product, err := h.ProductService.GetPublicBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, product)
}

// GetCategories 分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetDeals 所有启用中的活动
func (h *Handler) GetDeals(c *gin.Context) {
	deals, err := h.DealService.ListPublic(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.deal_fetch_failed", err)
		return
	}
	response.Success(c, deals)
}

// GetFeaturedDeals 推荐活动（仅进行中）
func (h *Handler) GetFeaturedDeals(c *gin.Context) {
	deals, err := h.DealService.ListFeatured(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.deal_fetch_failed", err)
		return
	}
	response.Success(c, deals)
}

// GetFlashSaleDeals 限时抢购（仅进行中）
func (h *Handler) GetFlashSaleDeals(c *gin.Context) {
	deals, err := h.DealService.ListFlashSales(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.deal_fetch_failed", err)
		return
	}
	response.Success(c, deals)
}

// GetDealBySlug 活动详情
func (h *Handler) GetDealBySlug(c *gin.Context) {
	deal, err := h.DealService.GetPublicBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrDealNotFound) {
			respondError(c, response.CodeNotFound, "error.deal_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.deal_fetch_failed", err)
		return
	}
	response.Success(c, deal)
}

// GetPosts 已发布文章列表
func (h *Handler) GetPosts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	tag := strings.TrimSpace(c.Query("tag"))
	search := strings.TrimSpace(c.Query("search"))

	posts, total, err := h.PostService.ListPublic(tag, search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.post_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, posts, handlershared.BuildPagination(page, pageSize, total))
}

// GetPostBySlug 文章详情（含评论）
func (h *Handler) GetPostBySlug(c *gin.Context) {
	post, err := h.PostService.GetPublicBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, response.CodeNotFound, "error.post_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.post_fetch_failed", err)
		return
	}
	response.Success(c, post)
}
