package service

import (
	"context"
	"strings"
	"time"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/deal"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"

	"github.com/shopspring/decimal"
)

// DealService 限时优惠服务
type DealService struct {
	dealRepo    repository.DealRepository
	productRepo repository.ProductRepository
	cache       *cache.Store
	queueClient *queue.Client
	cacheTTL    time.Duration
	now         func() time.Time
}

// NewDealService 创建限时优惠服务
func NewDealService(dealRepo repository.DealRepository, productRepo repository.ProductRepository, store *cache.Store, queueClient *queue.Client, cacheTTL time.Duration) *DealService {
	return &DealService{
		dealRepo:    dealRepo,
		productRepo: productRepo,
		cache:       store,
		queueClient: queueClient,
		cacheTTL:    cacheTTL,
		now:         time.Now,
	}
}

// DealProduct 活动商品及活动价
type DealProduct struct {
	models.Product
	SalePrice models.Money `json:"sale_price"`
}

// DealView 活动响应视图，计算字段在每次读取时生成
type DealView struct {
	models.Deal
	IsCurrentlyActive bool           `json:"is_currently_active"`
	TimeRemaining     deal.Remaining `json:"time_remaining"`
	Products          []DealProduct  `json:"products"`
}

// AppliedDeal 商品命中的最优活动价
type AppliedDeal struct {
	DealID    uint
	SalePrice decimal.Decimal
}

// DealInput 创建/更新活动输入
type DealInput struct {
	Slug          string
	Title         string
	Description   string
	Image         string
	DiscountType  string
	DiscountValue decimal.Decimal
	StartsAt      time.Time
	EndsAt        time.Time
	ProductIDs    []uint
	Categories    []string
	IsActive      bool
	IsFeatured    bool
	IsFlashSale   bool
}

// ListPublic 所有开关打开的活动，附带是否进行中
func (s *DealService) ListPublic(ctx context.Context) ([]DealView, error) {
	rows, err := s.flaggedDeals(ctx, cache.DealListAll, func(models.Deal) bool { return true })
	if err != nil {
		return nil, err
	}
	return s.decorate(rows, false)
}

// ListFeatured 进行中的推荐活动
func (s *DealService) ListFeatured(ctx context.Context) ([]DealView, error) {
	rows, err := s.flaggedDeals(ctx, cache.DealListFeatured, func(d models.Deal) bool { return d.IsFeatured })
	if err != nil {
		return nil, err
	}
	return s.decorate(rows, true)
}

// ListFlashSales 进行中的闪购活动
func (s *DealService) ListFlashSales(ctx context.Context) ([]DealView, error) {
	rows, err := s.flaggedDeals(ctx, cache.DealListFlashSale, func(d models.Deal) bool { return d.IsFlashSale })
	if err != nil {
		return nil, err
	}
	return s.decorate(rows, true)
}

// GetPublicBySlug 获取单个活动
func (s *DealService) GetPublicBySlug(slug string) (*DealView, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrDealNotFound
	}
	row, err := s.dealRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if row == nil || !row.IsActive {
		return nil, ErrDealNotFound
	}
	views, err := s.decorate([]models.Deal{*row}, false)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// BestPrices 计算每个商品在进行中活动下的最低价，未命中的商品不出现在结果中
func (s *DealService) BestPrices(ctx context.Context, products []models.Product) (map[uint]AppliedDeal, error) {
	result := make(map[uint]AppliedDeal)
	if len(products) == 0 {
		return result, nil
	}
	rows, err := s.flaggedDeals(ctx, cache.DealListAll, func(models.Deal) bool { return true })
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range rows {
		d := &rows[i]
		if !deal.IsCurrentlyActive(d.IsActive, d.StartsAt, d.EndsAt, now) {
			continue
		}
		for j := range products {
			p := &products[j]
			if !d.Covers(p) {
				continue
			}
			price := deal.SalePrice(d.DiscountType, d.DiscountValue.Decimal, p.Price.Decimal)
			if best, ok := result[p.ID]; ok && !price.LessThan(best.SalePrice) {
				continue
			}
			result[p.ID] = AppliedDeal{DealID: d.ID, SalePrice: price}
		}
	}
	return result, nil
}

// ListAdmin 后台活动列表
func (s *DealService) ListAdmin(filter repository.DealListFilter) ([]DealView, int64, error) {
	rows, total, err := s.dealRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	views := make([]DealView, 0, len(rows))
	for _, row := range rows {
		views = append(views, DealView{
			Deal:              row,
			IsCurrentlyActive: deal.IsCurrentlyActive(row.IsActive, row.StartsAt, row.EndsAt, now),
			TimeRemaining:     deal.TimeRemaining(row.EndsAt, now),
			Products:          []DealProduct{},
		})
	}
	return views, total, nil
}

// GetAdminByID 后台活动详情
func (s *DealService) GetAdminByID(id uint) (*DealView, error) {
	row, err := s.dealRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrDealNotFound
	}
	views, err := s.decorate([]models.Deal{*row}, false)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Create 创建活动
func (s *DealService) Create(ctx context.Context, input DealInput) (*models.Deal, error) {
	if err := validateDealInput(&input); err != nil {
		return nil, err
	}
	count, err := s.dealRepo.CountBySlug(input.Slug, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDealSlugExists
	}
	row := &models.Deal{}
	applyDealInput(row, input)
	if err := s.dealRepo.Create(row); err != nil {
		return nil, err
	}
	s.InvalidateCache(ctx, row.ID, "created")
	return row, nil
}

// Update 更新活动
func (s *DealService) Update(ctx context.Context, id uint, input DealInput) (*models.Deal, error) {
	if err := validateDealInput(&input); err != nil {
		return nil, err
	}
	row, err := s.dealRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrDealNotFound
	}
	count, err := s.dealRepo.CountBySlug(input.Slug, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDealSlugExists
	}
	applyDealInput(row, input)
	if err := s.dealRepo.Update(row); err != nil {
		return nil, err
	}
	s.InvalidateCache(ctx, row.ID, "updated")
	return row, nil
}

// Delete 删除活动
func (s *DealService) Delete(ctx context.Context, id uint) error {
	row, err := s.dealRepo.GetByID(id)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrDealNotFound
	}
	if err := s.dealRepo.Delete(id); err != nil {
		return err
	}
	s.InvalidateCache(ctx, id, "deleted")
	return nil
}

// InvalidateCache 清理活动缓存，失败时交给异步任务重试
func (s *DealService) InvalidateCache(ctx context.Context, dealID uint, reason string) {
	if !s.cache.Enabled() {
		return
	}
	err := s.cache.InvalidateDeals(ctx)
	if err == nil {
		return
	}
	logger.Warnw("deal_cache_invalidate_failed", "deal_id", dealID, "reason", reason, "error", err)
	if qerr := s.queueClient.EnqueueDealCacheInvalidate(queue.DealCacheInvalidatePayload{
		DealID: dealID,
		Reason: reason,
	}); qerr != nil {
		logger.Errorw("deal_cache_invalidate_enqueue_failed", "deal_id", dealID, "error", qerr)
	}
}

// RefreshCache 供异步任务调用的缓存清理
func (s *DealService) RefreshCache(ctx context.Context) error {
	return s.cache.InvalidateDeals(ctx)
}

// flaggedDeals 读取开关打开的活动原始数据，缓存只保存数据库行
func (s *DealService) flaggedDeals(ctx context.Context, kind string, keep func(models.Deal) bool) ([]models.Deal, error) {
	if cached, hit, err := s.cache.GetDealList(ctx, kind); err != nil {
		logger.Warnw("deal_cache_read_failed", "kind", kind, "error", err)
	} else if hit {
		return cached, nil
	}

	all, err := s.dealRepo.ListFlaggedActive()
	if err != nil {
		return nil, err
	}
	rows := make([]models.Deal, 0, len(all))
	for _, row := range all {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	if err := s.cache.SetDealList(ctx, kind, rows, s.cacheTTL); err != nil {
		logger.Warnw("deal_cache_write_failed", "kind", kind, "error", err)
	}
	return rows, nil
}

// decorate 计算活动状态并挂载商品活动价
func (s *DealService) decorate(rows []models.Deal, onlyRunning bool) ([]DealView, error) {
	now := s.now()
	views := make([]DealView, 0, len(rows))
	for _, row := range rows {
		running := deal.IsCurrentlyActive(row.IsActive, row.StartsAt, row.EndsAt, now)
		if onlyRunning && !running {
			continue
		}
		products, err := s.dealProducts(&row)
		if err != nil {
			return nil, err
		}
		views = append(views, DealView{
			Deal:              row,
			IsCurrentlyActive: running,
			TimeRemaining:     deal.TimeRemaining(row.EndsAt, now),
			Products:          products,
		})
	}
	return views, nil
}

func (s *DealService) dealProducts(row *models.Deal) ([]DealProduct, error) {
	seen := make(map[uint]struct{})
	collected := make([]models.Product, 0)
	if len(row.ProductIDs) > 0 {
		byID, err := s.productRepo.ListByIDs(row.ProductIDs)
		if err != nil {
			return nil, err
		}
		for _, p := range byID {
			if !p.IsActive {
				continue
			}
			seen[p.ID] = struct{}{}
			collected = append(collected, p)
		}
	}
	if len(row.Categories) > 0 {
		byCategory, err := s.productRepo.ListActiveByCategories(row.Categories)
		if err != nil {
			return nil, err
		}
		for _, p := range byCategory {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			collected = append(collected, p)
		}
	}

	products := make([]DealProduct, 0, len(collected))
	for _, p := range collected {
		sale := deal.SalePrice(row.DiscountType, row.DiscountValue.Decimal, p.Price.Decimal)
		products = append(products, DealProduct{Product: p, SalePrice: models.NewMoneyFromDecimal(sale)})
	}
	return products, nil
}

func validateDealInput(input *DealInput) error {
	input.Slug = strings.TrimSpace(input.Slug)
	input.Title = strings.TrimSpace(input.Title)
	input.DiscountType = strings.ToLower(strings.TrimSpace(input.DiscountType))
	if input.Slug == "" || input.Title == "" {
		return ErrInvalidInput
	}
	if !deal.IsValidDiscountType(input.DiscountType) {
		return ErrDealInvalidType
	}
	if input.DiscountValue.IsNegative() {
		return ErrDealInvalidValue
	}
	if input.DiscountType == constants.DealDiscountPercentage && input.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return ErrDealInvalidValue
	}
	if input.StartsAt.IsZero() || input.EndsAt.IsZero() || input.EndsAt.Before(input.StartsAt) {
		return ErrDealInvalidRange
	}
	return nil
}

func applyDealInput(row *models.Deal, input DealInput) {
	row.Slug = input.Slug
	row.Title = input.Title
	row.Description = strings.TrimSpace(input.Description)
	row.Image = strings.TrimSpace(input.Image)
	row.DiscountType = input.DiscountType
	row.DiscountValue = models.NewMoneyFromDecimal(input.DiscountValue)
	row.StartsAt = input.StartsAt
	row.EndsAt = input.EndsAt
	row.ProductIDs = models.UintArray(input.ProductIDs)
	row.Categories = models.StringArray(input.Categories)
	row.IsActive = input.IsActive
	row.IsFeatured = input.IsFeatured
	row.IsFlashSale = input.IsFlashSale
}
