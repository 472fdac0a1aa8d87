package repository

import (
	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateLine(item *models.CartItem) error
	DeleteByUserAndID(userID, id uint) (int64, error)
	DeleteByUserAndIDs(userID uint, ids []uint) error
	ClearByUser(userID uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCartRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// ListByUser 获取用户购物车行，按加入顺序排列
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create 新增购物车行
func (r *GormCartRepository) Create(item *models.CartItem) error {
	return r.db.Omit("Product").Create(item).Error
}

// UpdateLine 更新数量与价格快照
func (r *GormCartRepository) UpdateLine(item *models.CartItem) error {
	return r.db.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", item.ID, item.UserID).
		Updates(map[string]interface{}{
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice,
			"updated_at": item.UpdatedAt,
		}).Error
}

// DeleteByUserAndID 删除购物车行
func (r *GormCartRepository) DeleteByUserAndID(userID, id uint) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// DeleteByUserAndIDs 批量删除购物车行
func (r *GormCartRepository) DeleteByUserAndIDs(userID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("user_id = ? AND id IN ?", userID, ids).Delete(&models.CartItem{}).Error
}

// ClearByUser 清空购物车
func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
