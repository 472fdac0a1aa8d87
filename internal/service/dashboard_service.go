package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	dashboardCacheTTL         = 45 * time.Second
	dashboardCustomMaxDays    = 90
	dashboardLowStockLevel    = 5
	dashboardTopProductsLimit = 5
)

// dashboardPresetDays 预设区间包含今天在内的天数
var dashboardPresetDays = map[string]int{"today": 1, "7d": 7, "30d": 30}

// DashboardService 后台首页经营数据，结果按窗口短暂缓存
type DashboardService struct {
	repo  repository.DashboardRepository
	cache *cache.Store
	now   func() time.Time
}

func NewDashboardService(repo repository.DashboardRepository, store *cache.Store) *DashboardService {
	return &DashboardService{repo: repo, cache: store, now: time.Now}
}

// DashboardQueryInput range 取 today/7d/30d/custom，custom 时 From/To 必填
type DashboardQueryInput struct {
	Range        string
	From         *time.Time
	To           *time.Time
	Timezone     string
	ForceRefresh bool
}

// DashboardWindow 响应里回显实际统计区间，To 为闭区间最后一秒
type DashboardWindow struct {
	Range    string `json:"range"`
	From     string `json:"from"`
	To       string `json:"to"`
	Timezone string `json:"timezone"`
}

type DashboardOverviewResponse struct {
	DashboardWindow
	Currency string               `json:"currency,omitempty"`
	KPI      DashboardKPI         `json:"kpi"`
	Alerts   []DashboardAlertItem `json:"alerts"`
}

// DashboardKPI 金额与比率以两位小数字符串输出
type DashboardKPI struct {
	OrdersTotal          int64  `json:"orders_total"`
	PaidOrders           int64  `json:"paid_orders"`
	DeliveredOrders      int64  `json:"delivered_orders"`
	PendingPaymentOrders int64  `json:"pending_payment_orders"`
	CanceledOrders       int64  `json:"canceled_orders"`
	Revenue              string `json:"revenue"`
	AverageOrderValue    string `json:"average_order_value"`
	DiscountGiven        string `json:"discount_given"`
	PaymentRate          string `json:"payment_rate"`
	NewUsers             int64  `json:"new_users"`
	NewReviews           int64  `json:"new_reviews"`
	ActiveProducts       int64  `json:"active_products"`
	RunningDeals         int64  `json:"running_deals"`
	OutOfStockProducts   int64  `json:"out_of_stock_products"`
	LowStockProducts     int64  `json:"low_stock_products"`
	UnitsInStock         int64  `json:"units_in_stock"`
}

type DashboardAlertItem struct {
	Type  string `json:"type"`
	Level string `json:"level"`
	Value int64  `json:"value"`
}

type DashboardTrendResponse struct {
	DashboardWindow
	Points []DashboardTrendPoint `json:"points"`
}

// DashboardTrendPoint 没有订单的日期也会补零
type DashboardTrendPoint struct {
	Date        string `json:"date"`
	OrdersTotal int64  `json:"orders_total"`
	OrdersPaid  int64  `json:"orders_paid"`
	Revenue     string `json:"revenue"`
}

type DashboardRankingsResponse struct {
	DashboardWindow
	TopProducts []DashboardProductRanking `json:"top_products"`
}

type DashboardProductRanking struct {
	ProductID  uint   `json:"product_id"`
	Name       string `json:"name"`
	PaidOrders int64  `json:"paid_orders"`
	Quantity   int64  `json:"quantity"`
	PaidAmount string `json:"paid_amount"`
}

type dashboardWindow struct {
	rangeKey string
	startAt  time.Time
	endAt    time.Time // 不含
	timezone string
}

func (w dashboardWindow) public() DashboardWindow {
	return DashboardWindow{
		Range:    w.rangeKey,
		From:     w.startAt.Format(time.RFC3339),
		To:       w.endAt.Add(-time.Second).Format(time.RFC3339),
		Timezone: w.timezone,
	}
}

func (w dashboardWindow) cacheKey(kind string) string {
	return fmt.Sprintf("dashboard:%s:%s:%d:%d:%s", kind, w.rangeKey, w.startAt.Unix(), w.endAt.Unix(), w.timezone)
}

// GetOverview 订单、顾客、库存汇总，并给出库存与待支付告警
func (s *DashboardService) GetOverview(ctx context.Context, input DashboardQueryInput) (*DashboardOverviewResponse, error) {
	return loadDashboard(ctx, s, "overview", input, func(window dashboardWindow) (*DashboardOverviewResponse, error) {
		overview, err := s.repo.GetOverview(window.startAt, window.endAt)
		if err != nil {
			return nil, err
		}
		stock, err := s.repo.GetStockStats(dashboardLowStockLevel)
		if err != nil {
			return nil, err
		}
		return &DashboardOverviewResponse{
			DashboardWindow: window.public(),
			Currency:        strings.ToUpper(strings.TrimSpace(overview.Currency)),
			KPI:             buildDashboardKPI(overview, stock),
			Alerts:          buildDashboardAlerts(overview, stock),
		}, nil
	})
}

// GetTrends 窗口内每天一个点
func (s *DashboardService) GetTrends(ctx context.Context, input DashboardQueryInput) (*DashboardTrendResponse, error) {
	return loadDashboard(ctx, s, "trends", input, func(window dashboardWindow) (*DashboardTrendResponse, error) {
		rows, err := s.repo.GetOrderTrends(window.startAt, window.endAt)
		if err != nil {
			return nil, err
		}
		byDay := make(map[string]repository.DashboardOrderTrendRow, len(rows))
		for _, row := range rows {
			byDay[row.Day] = row
		}
		points := make([]DashboardTrendPoint, 0)
		start := window.startAt
		for day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()); day.Before(window.endAt); day = day.AddDate(0, 0, 1) {
			key := day.Format("2006-01-02")
			row := byDay[key]
			points = append(points, DashboardTrendPoint{
				Date:        key,
				OrdersTotal: row.OrdersTotal,
				OrdersPaid:  row.OrdersPaid,
				Revenue:     formatAmount(row.Revenue),
			})
		}
		return &DashboardTrendResponse{DashboardWindow: window.public(), Points: points}, nil
	})
}

// GetRankings 按已支付金额排序的畅销商品
func (s *DashboardService) GetRankings(ctx context.Context, input DashboardQueryInput) (*DashboardRankingsResponse, error) {
	return loadDashboard(ctx, s, "rankings", input, func(window dashboardWindow) (*DashboardRankingsResponse, error) {
		rows, err := s.repo.GetTopProducts(window.startAt, window.endAt, dashboardTopProductsLimit)
		if err != nil {
			return nil, err
		}
		products := make([]DashboardProductRanking, 0, len(rows))
		for _, row := range rows {
			name := strings.TrimSpace(row.Name)
			if name == "" {
				name = "-"
			}
			products = append(products, DashboardProductRanking{
				ProductID:  row.ProductID,
				Name:       name,
				PaidOrders: row.PaidOrders,
				Quantity:   row.Quantity,
				PaidAmount: formatAmount(row.PaidAmount),
			})
		}
		return &DashboardRankingsResponse{DashboardWindow: window.public(), TopProducts: products}, nil
	})
}

// loadDashboard 解析窗口后先读缓存，未命中再聚合并回写；缓存读写失败只记日志
func loadDashboard[T any](ctx context.Context, s *DashboardService, kind string, input DashboardQueryInput, build func(dashboardWindow) (*T, error)) (*T, error) {
	window, err := resolveDashboardWindow(input, s.now())
	if err != nil {
		return nil, err
	}
	key := window.cacheKey(kind)
	if !input.ForceRefresh {
		cached := new(T)
		hit, err := s.cache.GetJSON(ctx, key, cached)
		if err != nil {
			logger.Warnw("dashboard_cache_read_failed", "key", key, "error", err)
		} else if hit {
			return cached, nil
		}
	}
	result, err := build(window)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, key, result, dashboardCacheTTL); err != nil {
		logger.Warnw("dashboard_cache_write_failed", "key", key, "error", err)
	}
	return result, nil
}

func resolveDashboardWindow(input DashboardQueryInput, now time.Time) (dashboardWindow, error) {
	rangeKey := strings.ToLower(strings.TrimSpace(input.Range))
	if rangeKey == "" {
		rangeKey = "7d"
	}

	// 无法识别的时区按 UTC 统计
	location := time.UTC
	if name := strings.TrimSpace(input.Timezone); name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			location = loc
		}
	}
	window := dashboardWindow{rangeKey: rangeKey, timezone: location.String()}

	if days, ok := dashboardPresetDays[rangeKey]; ok {
		local := now.In(location)
		tomorrow := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location).AddDate(0, 0, 1)
		window.startAt = tomorrow.AddDate(0, 0, -days)
		window.endAt = tomorrow
		return window, nil
	}
	if rangeKey != "custom" || input.From == nil || input.To == nil {
		return dashboardWindow{}, ErrDashboardRangeInvalid
	}
	startAt, endAt := input.From.In(location), input.To.In(location)
	if endAt.Before(startAt) || endAt.Sub(startAt) > dashboardCustomMaxDays*24*time.Hour {
		return dashboardWindow{}, ErrDashboardRangeInvalid
	}
	window.startAt = startAt
	window.endAt = endAt.Add(time.Second)
	return window, nil
}

func buildDashboardKPI(overview repository.DashboardOverviewRow, stock repository.DashboardStockStatsRow) DashboardKPI {
	revenue := decimal.NewFromFloat(overview.Revenue)
	paymentRate, average := decimal.Zero, decimal.Zero
	if overview.OrdersTotal > 0 {
		paymentRate = decimal.NewFromInt(overview.PaidOrders).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(overview.OrdersTotal))
	}
	if overview.PaidOrders > 0 {
		average = revenue.Div(decimal.NewFromInt(overview.PaidOrders))
	}
	return DashboardKPI{
		OrdersTotal:          overview.OrdersTotal,
		PaidOrders:           overview.PaidOrders,
		DeliveredOrders:      overview.DeliveredOrders,
		PendingPaymentOrders: overview.PendingPaymentOrders,
		CanceledOrders:       overview.CanceledOrders,
		Revenue:              revenue.StringFixed(2),
		AverageOrderValue:    average.StringFixed(2),
		DiscountGiven:        formatAmount(overview.DiscountGiven),
		PaymentRate:          paymentRate.StringFixed(2),
		NewUsers:             overview.NewUsers,
		NewReviews:           overview.NewReviews,
		ActiveProducts:       overview.ActiveProducts,
		RunningDeals:         overview.RunningDeals,
		OutOfStockProducts:   stock.OutOfStockProducts,
		LowStockProducts:     stock.LowStockProducts,
		UnitsInStock:         stock.UnitsInStock,
	}
}

func formatAmount(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}

// buildDashboardAlerts 缺货 > 低库存 > 待支付
func buildDashboardAlerts(overview repository.DashboardOverviewRow, stock repository.DashboardStockStatsRow) []DashboardAlertItem {
	alerts := make([]DashboardAlertItem, 0, 3)
	if stock.OutOfStockProducts > 0 {
		alerts = append(alerts, DashboardAlertItem{Type: "out_of_stock_products", Level: "error", Value: stock.OutOfStockProducts})
	}
	if stock.LowStockProducts > 0 {
		alerts = append(alerts, DashboardAlertItem{Type: "low_stock_products", Level: "warning", Value: stock.LowStockProducts})
	}
	if overview.PendingPaymentOrders > 0 {
		alerts = append(alerts, DashboardAlertItem{Type: "pending_payment_orders", Level: "warning", Value: overview.PendingPaymentOrders})
	}
	return alerts
}
