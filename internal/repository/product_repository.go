package repository

import (
	"strings"

	"github.com/storefront-next/internal/catalog"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	Search(filter catalog.Filter, page, limit int) ([]models.Product, int64, error)
	ListAdmin(filter ProductListFilter) ([]models.Product, int64, error)
	ListAll() ([]models.Product, error)
	ListTopRated(limit int) ([]models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	ListActiveByCategories(categories []string) ([]models.Product, error)
	GetBySlug(slug string, onlyActive bool) (*models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	DecrementStock(productID uint, quantity int) (int64, error)
	IncrementStock(productID uint, quantity int) error
	SetStock(productID uint, count int) (int64, error)
	UpdateRating(productID uint, rating float64, numReviews int) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Search 按目录筛选条件分页查询上架商品
// postgres 上优先使用全文检索，失败时退回子串匹配，关键词不会导致请求失败。
func (r *GormProductRepository) Search(filter catalog.Filter, page, limit int) ([]models.Product, int64, error) {
	dialect := dbDialectName(r.db)
	fullText := filter.HasKeyword() && isPostgresDialect(dialect)

	products, total, err := r.search(filter, page, limit, fullText)
	if err != nil && fullText {
		logger.Warnw("catalog_fulltext_fallback",
			"keyword", filter.Keyword,
			"error", err,
		)
		return r.search(filter, page, limit, false)
	}
	return products, total, err
}

func (r *GormProductRepository) search(filter catalog.Filter, page, limit int, fullText bool) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{}).Scopes(catalogScope(filter, dbDialectName(r.db), fullText))

	var products []models.Product
	total, err := countAndFind(query, page, limit, filter.OrderClauses(), &products)
	if err != nil {
		return nil, 0, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, total, nil
}

// catalogScope 目录查询谓词，计数与取数共用
func catalogScope(filter catalog.Filter, dialect string, fullText bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_active = ?", true)
		if filter.Category != "" {
			db = db.Where("category = ?", filter.Category)
		}
		if filter.PriceMin != nil {
			db = db.Where("price >= ?", *filter.PriceMin)
		}
		if filter.PriceMax != nil {
			db = db.Where("price <= ?", *filter.PriceMax)
		}
		if filter.MinRating != nil {
			db = db.Where("rating >= ?", *filter.MinRating)
		}
		if filter.HasKeyword() {
			like := containsPattern(filter.Keyword)
			condition, argCount := buildLikeConditionByDialect(dialect, productSearchColumns)
			args := repeatLikeArgs(like, argCount)
			if fullText {
				condition = "(" + fullTextConditionByDialect(dialect, productSearchColumns) + " OR " + condition + ")"
				args = append([]interface{}{strings.TrimSpace(filter.Keyword)}, args...)
			}
			db = db.Where(condition, args...)
		}
		return db
	}
}

// ListAdmin 后台商品列表（包含下架商品）
func (r *GormProductRepository) ListAdmin(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"name", "slug", "brand"})
		query = query.Where(condition, repeatLikeArgs(containsPattern(search), argCount)...)
	}
	var products []models.Product
	total, err := countAndFind(query, filter.Page, filter.PageSize, []string{"created_at DESC", "id DESC"}, &products)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListAll 全量商品（用于导出）
func (r *GormProductRepository) ListAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListTopRated 评分最高的上架商品
func (r *GormProductRepository) ListTopRated(limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 3
	}
	var products []models.Product
	if err := r.db.Where("is_active = ?", true).
		Order("rating DESC").Order("num_reviews DESC").Order("id DESC").
		Limit(limit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListByIDs 批量获取上架商品
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ? AND is_active = ?", ids, true).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListActiveByCategories 获取指定分类下的上架商品
func (r *GormProductRepository) ListActiveByCategories(categories []string) ([]models.Product, error) {
	if len(categories) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("category IN ? AND is_active = ?", categories, true).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetBySlug 根据 slug 获取商品（附带评价）
func (r *GormProductRepository) GetBySlug(slug string, onlyActive bool) (*models.Product, error) {
	query := r.db.Preload("Reviews", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}).Where("slug = ?", slug)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	return firstOrNil[models.Product](query)
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	return firstOrNil[models.Product](r.db, id)
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Omit("Reviews").Save(product).Error
}

// Delete 软删除商品
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// CountBySlug 统计 slug 数量，excludeID 为 0 时不排除
func (r *GormProductRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	return countSlug[models.Product](r.db, slug, excludeID)
}

// DecrementStock 条件扣减库存，库存不足时影响行数为 0
func (r *GormProductRepository) DecrementStock(productID uint, quantity int) (int64, error) {
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND count_in_stock >= ?", productID, quantity).
		UpdateColumn("count_in_stock", gorm.Expr("count_in_stock - ?", quantity))
	return result.RowsAffected, result.Error
}

// IncrementStock 回补库存
func (r *GormProductRepository) IncrementStock(productID uint, quantity int) error {
	return r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("count_in_stock", gorm.Expr("count_in_stock + ?", quantity)).Error
}

// SetStock 后台直接设置库存
func (r *GormProductRepository) SetStock(productID uint, count int) (int64, error) {
	result := r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("count_in_stock", count)
	return result.RowsAffected, result.Error
}

// UpdateRating 写入评价聚合值
func (r *GormProductRepository) UpdateRating(productID uint, rating float64, numReviews int) error {
	return r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumns(map[string]interface{}{
			"rating":      rating,
			"num_reviews": numReviews,
		}).Error
}
