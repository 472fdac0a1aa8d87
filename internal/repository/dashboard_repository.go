package repository

import (
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error)
	GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error)
	GetStockStats(lowStockThreshold int) (DashboardStockStatsRow, error)
	GetTopProducts(startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	OrdersTotal          int64
	PaidOrders           int64
	DeliveredOrders      int64
	PendingPaymentOrders int64
	CanceledOrders       int64
	Revenue              float64
	DiscountGiven        float64
	NewUsers             int64
	NewReviews           int64
	ActiveProducts       int64
	RunningDeals         int64
	Currency             string
}

// DashboardOrderTrendRow 订单趋势统计
type DashboardOrderTrendRow struct {
	Day         string
	OrdersTotal int64
	OrdersPaid  int64
	Revenue     float64
}

// DashboardStockStatsRow 库存统计
type DashboardStockStatsRow struct {
	OutOfStockProducts int64
	LowStockProducts   int64
	UnitsInStock       int64
}

// DashboardProductRankingRow 商品排行原始行
type DashboardProductRankingRow struct {
	ProductID  uint
	Name       string
	PaidOrders int64
	Quantity   int64
	PaidAmount float64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

func paidOrderStatuses() []string {
	return []string{
		constants.OrderStatusPaid,
		constants.OrderStatusDelivered,
	}
}

// GetOverview 订单按创建时间落窗口，销售额按支付时间落窗口
func (r *GormDashboardRepository) GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error) {
	var result DashboardOverviewRow
	paid := paidOrderStatuses()

	var counts struct {
		OrdersTotal          int64
		PaidOrders           int64
		DeliveredOrders      int64
		PendingPaymentOrders int64
		CanceledOrders       int64
	}
	err := r.db.Model(&models.Order{}).
		Select(`COUNT(*) AS orders_total,
			COALESCE(SUM(CASE WHEN status IN ? THEN 1 ELSE 0 END), 0) AS paid_orders,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS delivered_orders,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending_payment_orders,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS canceled_orders`,
			paid, constants.OrderStatusDelivered, constants.OrderStatusPendingPayment, constants.OrderStatusCanceled).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Scan(&counts).Error
	if err != nil {
		return result, err
	}
	result.OrdersTotal = counts.OrdersTotal
	result.PaidOrders = counts.PaidOrders
	result.DeliveredOrders = counts.DeliveredOrders
	result.PendingPaymentOrders = counts.PendingPaymentOrders
	result.CanceledOrders = counts.CanceledOrders

	var sums struct {
		Revenue       float64
		DiscountGiven float64
	}
	err = r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_price), 0) AS revenue, COALESCE(SUM(discount_price), 0) AS discount_given").
		Where("paid_at >= ? AND paid_at < ? AND status IN ?", startAt, endAt, paid).
		Scan(&sums).Error
	if err != nil {
		return result, err
	}
	result.Revenue = sums.Revenue
	result.DiscountGiven = sums.DiscountGiven

	inWindow := "created_at >= ? AND created_at < ?"
	counters := []struct {
		model interface{}
		dest  *int64
		query string
		args  []interface{}
	}{
		{&models.User{}, &result.NewUsers, inWindow, []interface{}{startAt, endAt}},
		{&models.Review{}, &result.NewReviews, inWindow, []interface{}{startAt, endAt}},
		{&models.Product{}, &result.ActiveProducts, "is_active = ?", []interface{}{true}},
		{&models.Deal{}, &result.RunningDeals, "is_active = ? AND starts_at <= ? AND ends_at >= ?", []interface{}{true, endAt, startAt}},
	}
	for _, counter := range counters {
		if err := r.db.Model(counter.model).Where(counter.query, counter.args...).Count(counter.dest).Error; err != nil {
			return result, err
		}
	}

	// 币种取窗口内最新一笔订单，没有订单时留空
	var currencies []string
	err = r.db.Model(&models.Order{}).
		Where(inWindow+" AND currency <> ''", startAt, endAt).
		Order("id DESC").
		Limit(1).
		Pluck("currency", &currencies).Error
	if err != nil {
		return result, err
	}
	if len(currencies) > 0 {
		result.Currency = currencies[0]
	}
	return result, nil
}

// GetOrderTrends 按 startAt 所在时区分天，不依赖数据库的日期函数
func (r *GormDashboardRepository) GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error) {
	var orders []struct {
		CreatedAt  time.Time
		Status     string
		TotalPrice models.Money
	}
	err := r.db.Model(&models.Order{}).
		Select("created_at, status, total_price").
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Order("created_at ASC").
		Scan(&orders).Error
	if err != nil {
		return nil, err
	}

	paid := make(map[string]bool)
	for _, status := range paidOrderStatuses() {
		paid[status] = true
	}
	location := startAt.Location()
	rows := make([]DashboardOrderTrendRow, 0)
	index := make(map[string]int)
	for _, order := range orders {
		day := order.CreatedAt.In(location).Format("2006-01-02")
		i, ok := index[day]
		if !ok {
			i = len(rows)
			index[day] = i
			rows = append(rows, DashboardOrderTrendRow{Day: day})
		}
		rows[i].OrdersTotal++
		if paid[order.Status] {
			rows[i].OrdersPaid++
			rows[i].Revenue += order.TotalPrice.InexactFloat64()
		}
	}
	return rows, nil
}

// GetStockStats 只统计上架商品
func (r *GormDashboardRepository) GetStockStats(lowStockThreshold int) (DashboardStockStatsRow, error) {
	var result DashboardStockStatsRow
	err := r.db.Model(&models.Product{}).
		Select(`COALESCE(SUM(CASE WHEN count_in_stock <= 0 THEN 1 ELSE 0 END), 0) AS out_of_stock_products,
			COALESCE(SUM(CASE WHEN count_in_stock > 0 AND count_in_stock <= ? THEN 1 ELSE 0 END), 0) AS low_stock_products,
			COALESCE(SUM(CASE WHEN count_in_stock > 0 THEN count_in_stock ELSE 0 END), 0) AS units_in_stock`,
			lowStockThreshold).
		Where("is_active = ?", true).
		Scan(&result).Error
	return result, err
}

// GetTopProducts 已支付订单里按成交额排序的商品
func (r *GormDashboardRepository) GetTopProducts(startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]DashboardProductRankingRow, 0, limit)
	err := r.db.Table("order_items AS oi").
		Select(`oi.product_id AS product_id,
			MAX(oi.name) AS name,
			COUNT(DISTINCT oi.order_id) AS paid_orders,
			COALESCE(SUM(oi.quantity), 0) AS quantity,
			COALESCE(SUM(oi.total_price), 0) AS paid_amount`).
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.created_at >= ? AND o.created_at < ? AND o.status IN ?", startAt, endAt, paidOrderStatuses()).
		Group("oi.product_id").
		Order("paid_amount DESC").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
