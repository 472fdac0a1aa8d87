package admin

import (
	"strconv"
	"strings"
	"time"

	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DealRequest 创建/更新限时优惠请求
// discount_type 取 percentage 或 fixed，product_ids 与 categories 至少命中一类商品。
type DealRequest struct {
	Slug          string          `json:"slug" binding:"required"`
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description"`
	Image         string          `json:"image"`
	DiscountType  string          `json:"discount_type" binding:"required"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	StartsAt      time.Time       `json:"starts_at" binding:"required"`
	EndsAt        time.Time       `json:"ends_at" binding:"required"`
	ProductIDs    []uint          `json:"product_ids"`
	Categories    []string        `json:"categories"`
	IsActive      bool            `json:"is_active"`
	IsFeatured    bool            `json:"is_featured"`
	IsFlashSale   bool            `json:"is_flash_sale"`
}

func (r DealRequest) toInput() service.DealInput {
	return service.DealInput{
		Slug:          r.Slug,
		Title:         r.Title,
		Description:   r.Description,
		Image:         r.Image,
		DiscountType:  r.DiscountType,
		DiscountValue: r.DiscountValue,
		StartsAt:      r.StartsAt,
		EndsAt:        r.EndsAt,
		ProductIDs:    r.ProductIDs,
		Categories:    r.Categories,
		IsActive:      r.IsActive,
		IsFeatured:    r.IsFeatured,
		IsFlashSale:   r.IsFlashSale,
	}
}

// GetAdminDeals 活动列表 (Admin)
func (h *Handler) GetAdminDeals(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	onlyActive, _ := strconv.ParseBool(c.DefaultQuery("active", "false"))
	onlyFeatured, _ := strconv.ParseBool(c.DefaultQuery("featured", "false"))
	onlyFlashSale, _ := strconv.ParseBool(c.DefaultQuery("flash_sale", "false"))

	deals, total, err := h.DealService.ListAdmin(repository.DealListFilter{
		Page:           page,
		PageSize:       pageSize,
		OnlyActiveFlag: onlyActive,
		OnlyFeatured:   onlyFeatured,
		OnlyFlashSale:  onlyFlashSale,
		Search:         strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.deal_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, deals, handlershared.BuildPagination(page, pageSize, total))
}

// GetAdminDeal 活动详情 (Admin)
func (h *Handler) GetAdminDeal(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	deal, err := h.DealService.GetAdminByID(id)
	if err != nil {
		respondMapped(c, err, dealErrorRules, "error.deal_fetch_failed")
		return
	}
	response.Success(c, deal)
}

// CreateDeal 创建活动
func (h *Handler) CreateDeal(c *gin.Context) {
	var req DealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	deal, err := h.DealService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondMapped(c, err, dealErrorRules, "error.deal_save_failed")
		return
	}
	response.Success(c, deal)
}

// UpdateDeal 更新活动，成功后活动缓存立即失效
func (h *Handler) UpdateDeal(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req DealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	deal, err := h.DealService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondMapped(c, err, dealErrorRules, "error.deal_save_failed")
		return
	}
	response.Success(c, deal)
}

// DeleteDeal 删除活动
func (h *Handler) DeleteDeal(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.DealService.Delete(c.Request.Context(), id); err != nil {
		respondMapped(c, err, dealErrorRules, "error.deal_delete_failed")
		return
	}
	response.Success(c, nil)
}
