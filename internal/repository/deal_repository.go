package repository

import (
	"strings"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// DealRepository 优惠活动数据访问接口
type DealRepository interface {
	List(filter DealListFilter) ([]models.Deal, int64, error)
	ListFlaggedActive() ([]models.Deal, error)
	GetBySlug(slug string) (*models.Deal, error)
	GetByID(id uint) (*models.Deal, error)
	Create(deal *models.Deal) error
	Update(deal *models.Deal) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
}

// GormDealRepository GORM 实现
type GormDealRepository struct {
	db *gorm.DB
}

// NewDealRepository 创建优惠活动仓库
func NewDealRepository(db *gorm.DB) *GormDealRepository {
	return &GormDealRepository{db: db}
}

// List 活动列表，按结束时间升序（即将结束的在前）
func (r *GormDealRepository) List(filter DealListFilter) ([]models.Deal, int64, error) {
	query := r.db.Model(&models.Deal{})
	if filter.OnlyActiveFlag {
		query = query.Where("is_active = ?", true)
	}
	if filter.OnlyFeatured {
		query = query.Where("is_featured = ?", true)
	}
	if filter.OnlyFlashSale {
		query = query.Where("is_flash_sale = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"title", "slug"})
		query = query.Where(condition, repeatLikeArgs(containsPattern(search), argCount)...)
	}
	var deals []models.Deal
	total, err := countAndFind(query, filter.Page, filter.PageSize, []string{"ends_at ASC", "id ASC"}, &deals)
	if err != nil {
		return nil, 0, err
	}
	if deals == nil {
		deals = []models.Deal{}
	}
	return deals, total, nil
}

// ListFlaggedActive 开关打开的全部活动，有效期由调用方按当前时间判断
func (r *GormDealRepository) ListFlaggedActive() ([]models.Deal, error) {
	var deals []models.Deal
	if err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&deals).Error; err != nil {
		return nil, err
	}
	return deals, nil
}

// GetBySlug 根据 slug 获取活动
func (r *GormDealRepository) GetBySlug(slug string) (*models.Deal, error) {
	return firstOrNil[models.Deal](r.db.Where("slug = ?", slug))
}

// GetByID 根据 ID 获取活动
func (r *GormDealRepository) GetByID(id uint) (*models.Deal, error) {
	return firstOrNil[models.Deal](r.db, id)
}

// Create 创建活动
func (r *GormDealRepository) Create(deal *models.Deal) error {
	return r.db.Create(deal).Error
}

// Update 更新活动
func (r *GormDealRepository) Update(deal *models.Deal) error {
	return r.db.Save(deal).Error
}

// Delete 删除活动
func (r *GormDealRepository) Delete(id uint) error {
	return r.db.Delete(&models.Deal{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormDealRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	return countSlug[models.Deal](r.db, slug, excludeID)
}
