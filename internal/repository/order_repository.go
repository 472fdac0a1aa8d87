package repository

import (
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndUser(id, userID uint) (*models.Order, error)
	GetByPaymentSession(sessionID string) (*models.Order, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	SetPaymentSession(id uint, method, sessionID string) error
	MarkPaid(id uint, paidAt time.Time) (int64, error)
	MarkDelivered(id uint, deliveredAt time.Time) (int64, error)
	CancelPending(id uint, canceledAt time.Time) (int64, error)
	ListExpiredPending(now time.Time, limit int) ([]models.Order, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Transaction 执行事务
func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create 创建订单与订单项
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Omit("Items").Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	order.Items = items
	return nil
}

func (r *GormOrderRepository) first(query *gorm.DB) (*models.Order, error) {
	return firstOrNil[models.Order](query.Preload("Items"))
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	return r.first(r.db.Where("id = ?", id))
}

// GetByIDAndUser 获取属于指定用户的订单
func (r *GormOrderRepository) GetByIDAndUser(id, userID uint) (*models.Order, error) {
	return r.first(r.db.Where("id = ? AND user_id = ?", id, userID))
}

// GetByPaymentSession 根据支付会话获取订单
func (r *GormOrderRepository) GetByPaymentSession(sessionID string) (*models.Order, error) {
	return r.first(r.db.Where("payment_session_id = ?", sessionID))
}

// List 订单列表，UserID 为 0 时不限用户（后台）
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if orderNo := strings.TrimSpace(filter.OrderNo); orderNo != "" {
		query = query.Where("order_no LIKE ?", containsPattern(orderNo))
	}
	var orders []models.Order
	total, err := countAndFind(query, filter.Page, filter.PageSize, []string{"id DESC"}, &orders, "Items")
	if err != nil {
		return nil, 0, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, total, nil
}

// SetPaymentSession 记录第三方支付会话
func (r *GormOrderRepository) SetPaymentSession(id uint, method, sessionID string) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"payment_method":     method,
		"payment_session_id": sessionID,
	}).Error
}

// MarkPaid 待支付订单标记为已支付，返回影响行数用于幂等判断
func (r *GormOrderRepository) MarkPaid(id uint, paidAt time.Time) (int64, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, constants.OrderStatusPendingPayment).
		Updates(map[string]interface{}{
			"status":  constants.OrderStatusPaid,
			"is_paid": true,
			"paid_at": paidAt,
		})
	return result.RowsAffected, result.Error
}

// MarkDelivered 已支付订单标记为已发货
func (r *GormOrderRepository) MarkDelivered(id uint, deliveredAt time.Time) (int64, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, constants.OrderStatusPaid).
		Updates(map[string]interface{}{
			"status":       constants.OrderStatusDelivered,
			"is_delivered": true,
			"delivered_at": deliveredAt,
		})
	return result.RowsAffected, result.Error
}

// CancelPending 取消待支付订单
func (r *GormOrderRepository) CancelPending(id uint, canceledAt time.Time) (int64, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, constants.OrderStatusPendingPayment).
		Updates(map[string]interface{}{
			"status":      constants.OrderStatusCanceled,
			"canceled_at": canceledAt,
		})
	return result.RowsAffected, result.Error
}

// ListExpiredPending 已过支付期限仍未支付的订单
func (r *GormOrderRepository) ListExpiredPending(now time.Time, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var orders []models.Order
	if err := r.db.Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", constants.OrderStatusPendingPayment, now).
		Order("id ASC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
