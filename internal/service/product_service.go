package service

import (
	"strings"

	"github.com/storefront-next/internal/catalog"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	defaultTopRatedLimit = 3
	maxTopRatedLimit     = 10
)

// ProductService 商品业务服务
type ProductService struct {
	repo          repository.ProductRepository
	topRatedLimit int
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, topRatedLimit int) *ProductService {
	return &ProductService{repo: repo, topRatedLimit: topRatedLimit}
}

// CatalogPage 目录查询结果
type CatalogPage struct {
	Items []models.Product `json:"products"`
	Page  int              `json:"page"`
	Pages int              `json:"pages"`
	Total int64            `json:"total"`
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	Slug         string
	Name         string
	Description  string
	Brand        string
	Category     string
	Images       []string
	Options      map[string]interface{}
	Price        decimal.Decimal
	CountInStock int
	IsActive     *bool
	IsFeatured   bool
}

// Search 执行目录查询
func (s *ProductService) Search(q catalog.Query) (*CatalogPage, error) {
	filter := catalog.BuildFilter(q)
	items, total, err := s.repo.Search(filter, q.Page, q.Limit)
	if err != nil {
		return nil, err
	}
	logger.Debugw("catalog_search",
		"keyword", filter.Keyword,
		"category", filter.Category,
		"sort", string(filter.Sort),
		"page", q.Page,
		"total", total,
	)
	return &CatalogPage{
		Items: items,
		Page:  q.Page,
		Pages: catalog.TotalPages(total, q.Limit),
		Total: total,
	}, nil
}

// GetPublicBySlug 获取上架商品详情（含评价）
func (s *ProductService) GetPublicBySlug(slug string) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrProductNotFound
	}
	product, err := s.repo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// TopRated 评分最高的商品
func (s *ProductService) TopRated() ([]models.Product, error) {
	limit := s.topRatedLimit
	if limit <= 0 {
		limit = defaultTopRatedLimit
	}
	if limit > maxTopRatedLimit {
		limit = maxTopRatedLimit
	}
	return s.repo.ListTopRated(limit)
}

// ListAdmin 后台商品列表
func (s *ProductService) ListAdmin(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.ListAdmin(filter)
}

// GetAdminByID 后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}
	count, err := s.repo.CountBySlug(input.Slug, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrProductSlugExists
	}

	product := models.Product{IsActive: true}
	applyProductInput(&product, input)
	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	logger.Infow("product_created", "product_id", product.ID, "slug", product.Slug)
	return &product, nil
}

// Update 更新商品，评分与评价数不受后台编辑影响
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	count, err := s.repo.CountBySlug(input.Slug, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrProductSlugExists
	}

	applyProductInput(product, input)
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateStock 后台调整库存
func (s *ProductService) UpdateStock(id uint, count int) (*models.Product, error) {
	if count < 0 {
		return nil, ErrInvalidInput
	}
	affected, err := s.repo.SetStock(id, count)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrProductNotFound
	}
	logger.Infow("product_stock_updated", "product_id", id, "count_in_stock", count)
	return s.GetAdminByID(id)
}

// Delete 删除商品（软删除）
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.repo.Delete(id)
}

func validateProductInput(input *ProductInput) error {
	input.Slug = strings.TrimSpace(input.Slug)
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	if input.Slug == "" || input.Name == "" {
		return ErrInvalidInput
	}
	if input.Price.IsNegative() {
		return ErrProductPriceInvalid
	}
	if input.CountInStock < 0 {
		return ErrInvalidInput
	}
	return nil
}

func applyProductInput(product *models.Product, input ProductInput) {
	product.Slug = input.Slug
	product.Name = input.Name
	product.Description = strings.TrimSpace(input.Description)
	product.Brand = strings.TrimSpace(input.Brand)
	product.Category = input.Category
	product.Images = models.StringArray(input.Images)
	product.Options = models.JSON(input.Options)
	product.Price = models.NewMoneyFromDecimal(input.Price)
	product.CountInStock = input.CountInStock
	product.IsFeatured = input.IsFeatured
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
}
