package repository

import (
	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// ReviewAggregate 评价聚合结果
type ReviewAggregate struct {
	Count   int64
	Average float64
}

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	Create(review *models.Review) error
	ExistsByProductAndUser(productID, userID uint) (bool, error)
	ListByProduct(productID uint) ([]models.Review, error)
	Aggregate(productID uint) (ReviewAggregate, error)
	WithTx(tx *gorm.DB) ReviewRepository
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReviewRepository) WithTx(tx *gorm.DB) ReviewRepository {
	if tx == nil {
		return r
	}
	return &GormReviewRepository{db: tx}
}

// Create 创建评价
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// ExistsByProductAndUser 用户是否已评价该商品
func (r *GormReviewRepository) ExistsByProductAndUser(productID, userID uint) (bool, error) {
	return exists[models.Review](r.db, "product_id = ? AND user_id = ?", productID, userID)
}

// ListByProduct 商品评价列表
func (r *GormReviewRepository) ListByProduct(productID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("product_id = ?", productID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Aggregate 统计评价条数与平均分
func (r *GormReviewRepository) Aggregate(productID uint) (ReviewAggregate, error) {
	var row struct {
		Count   int64
		Average *float64
	}
	if err := r.db.Model(&models.Review{}).
		Select("COUNT(*) AS count, AVG(rating) AS average").
		Where("product_id = ?", productID).
		Scan(&row).Error; err != nil {
		return ReviewAggregate{}, err
	}
	agg := ReviewAggregate{Count: row.Count}
	if row.Average != nil {
		agg.Average = *row.Average
	}
	return agg, nil
}
