package repository

import (
	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository 收藏夹数据访问接口
type WishlistRepository interface {
	ListByUser(userID uint) ([]models.WishlistItem, error)
	Exists(userID, productID uint) (bool, error)
	Add(userID, productID uint) error
	Remove(userID, productID uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) WishlistRepository
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建收藏夹仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// WithTx 绑定事务
func (r *GormWishlistRepository) WithTx(tx *gorm.DB) WishlistRepository {
	if tx == nil {
		return r
	}
	return &GormWishlistRepository{db: tx}
}

// Transaction 执行事务
func (r *GormWishlistRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// ListByUser 用户收藏列表
func (r *GormWishlistRepository) ListByUser(userID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.db.Preload("Product").Where("user_id = ?", userID).Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Exists 是否已收藏
func (r *GormWishlistRepository) Exists(userID, productID uint) (bool, error) {
	return exists[models.WishlistItem](r.db, "user_id = ? AND product_id = ?", userID, productID)
}

// Add 加入收藏
func (r *GormWishlistRepository) Add(userID, productID uint) error {
	return r.db.Omit("Product").Create(&models.WishlistItem{UserID: userID, ProductID: productID}).Error
}

// Remove 取消收藏
func (r *GormWishlistRepository) Remove(userID, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.WishlistItem{}).Error
}
