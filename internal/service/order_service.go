package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	dealService *DealService
	queueClient *queue.Client
	cfg         config.OrderConfig
	now         func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, dealService *DealService, queueClient *queue.Client, cfg config.OrderConfig) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		dealService: dealService,
		queueClient: queueClient,
		cfg:         cfg,
		now:         time.Now,
	}
}

// CreateOrderItem 直接下单的商品项
type CreateOrderItem struct {
	ProductID uint              `json:"product_id"`
	Quantity  int               `json:"quantity"`
	Variant   map[string]string `json:"variant"`
}

// CreateOrderInput 创建订单输入
// Items 为空时从购物车下单，CartItemIDs 为空表示整车结算。
type CreateOrderInput struct {
	UserID      uint
	Items       []CreateOrderItem
	CartItemIDs []uint
	Shipping    models.ShippingAddress
}

type orderLine struct {
	productID  uint
	quantity   int
	variant    models.Attributes
	cartItemID uint
}

// Create 创建订单：快照价格、扣减库存、清理已结算的购物车行，全部在一个事务内
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	shipping, err := normalizeShipping(input.Shipping)
	if err != nil {
		return nil, err
	}

	source := constants.OrderSourceDirect
	var lines []orderLine
	if len(input.Items) > 0 {
		lines, err = directOrderLines(input.Items)
	} else {
		source = constants.OrderSourceCart
		lines, err = s.cartOrderLines(input.UserID, input.CartItemIDs)
	}
	if err != nil {
		return nil, err
	}

	productIDs := make([]uint, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.productID)
	}
	products, err := s.productRepo.ListByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uint]models.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}
	applied := map[uint]AppliedDeal{}
	if s.dealService != nil {
		applied, err = s.dealService.BestPrices(ctx, products)
		if err != nil {
			return nil, err
		}
	}

	now := s.now()
	items := make([]models.OrderItem, 0, len(lines))
	itemsPrice := decimal.Zero
	discount := decimal.Zero
	for _, line := range lines {
		product, ok := productMap[line.productID]
		if !ok {
			return nil, ErrProductNotAvailable
		}
		original := product.Price.Decimal
		unit := original
		var dealID *uint
		if hit, ok := applied[product.ID]; ok {
			unit = hit.SalePrice
			id := hit.DealID
			dealID = &id
		}
		qty := decimal.NewFromInt(int64(line.quantity))
		lineTotal := unit.Mul(qty)
		itemsPrice = itemsPrice.Add(lineTotal)
		discount = discount.Add(original.Sub(unit).Mul(qty))
		items = append(items, models.OrderItem{
			ProductID:     product.ID,
			Name:          product.Name,
			Image:         product.PrimaryImage(),
			Variant:       line.variant,
			Quantity:      line.quantity,
			OriginalPrice: models.NewMoneyFromDecimal(original),
			UnitPrice:     models.NewMoneyFromDecimal(unit),
			TotalPrice:    models.NewMoneyFromDecimal(lineTotal),
			DealID:        dealID,
			CreatedAt:     now,
		})
	}

	shippingPrice, taxPrice, totalPrice := s.computeTotals(itemsPrice)
	expiresAt := now.Add(time.Duration(s.expireMinutes()) * time.Minute)
	order := &models.Order{
		OrderNo:       generateOrderNo(now),
		UserID:        input.UserID,
		Status:        constants.OrderStatusPendingPayment,
		Source:        source,
		Currency:      s.currency(),
		Shipping:      shipping,
		ItemsPrice:    models.NewMoneyFromDecimal(itemsPrice),
		ShippingPrice: models.NewMoneyFromDecimal(shippingPrice),
		TaxPrice:      models.NewMoneyFromDecimal(taxPrice),
		DiscountPrice: models.NewMoneyFromDecimal(discount),
		TotalPrice:    models.NewMoneyFromDecimal(totalPrice),
		ExpiresAt:     &expiresAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		for _, line := range lines {
			affected, err := productRepo.DecrementStock(line.productID, line.quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrInsufficientStock
			}
		}
		if err := s.orderRepo.WithTx(tx).Create(order, items); err != nil {
			return err
		}
		if source == constants.OrderSourceCart {
			cartIDs := make([]uint, 0, len(lines))
			for _, line := range lines {
				cartIDs = append(cartIDs, line.cartItemID)
			}
			return s.cartRepo.WithTx(tx).DeleteByUserAndIDs(input.UserID, cartIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"source", source,
		"total", order.TotalPrice.String(),
	)
	if err := s.queueClient.EnqueueOrderTimeoutCancel(queue.OrderTimeoutCancelPayload{OrderID: order.ID}, time.Until(expiresAt)); err != nil {
		logger.Errorw("order_enqueue_timeout_cancel_failed", "order_id", order.ID, "error", err)
	}
	return order, nil
}

// ListByUser 用户订单列表
func (s *OrderService) ListByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrOrderNotFound
	}
	return s.orderRepo.List(filter)
}

// GetByUser 用户订单详情，只能查看自己的订单
func (s *OrderService) GetByUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListForAdmin 后台订单列表
func (s *OrderService) ListForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// GetForAdmin 后台订单详情
func (s *OrderService) GetForAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// MarkDelivered 已支付订单发货
func (s *OrderService) MarkDelivered(orderID uint) (*models.Order, error) {
	order, err := s.GetForAdmin(orderID)
	if err != nil {
		return nil, err
	}
	affected, err := s.orderRepo.MarkDelivered(orderID, s.now())
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderStatusInvalid
	}
	logger.Infow("order_delivered", "order_id", order.ID, "order_no", order.OrderNo)
	return s.GetForAdmin(orderID)
}

// MarkPaid 支付成功回调，重复通知幂等
func (s *OrderService) MarkPaid(orderID uint) (*models.Order, error) {
	order, err := s.GetForAdmin(orderID)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return order, nil
	}
	affected, err := s.orderRepo.MarkPaid(orderID, s.now())
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderStatusInvalid
	}
	logger.Infow("order_paid", "order_id", order.ID, "order_no", order.OrderNo)
	return s.GetForAdmin(orderID)
}

// CancelExpiredOrder 取消已过期的待支付订单并回补库存
// 订单未过期或已不处于待支付状态时原样返回。
func (s *OrderService) CancelExpiredOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	now := s.now()
	if order.Status != constants.OrderStatusPendingPayment || order.ExpiresAt == nil || order.ExpiresAt.After(now) {
		return order, nil
	}

	canceled := false
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		affected, err := s.orderRepo.WithTx(tx).CancelPending(order.ID, now)
		if err != nil {
			return err
		}
		if affected == 0 {
			return nil
		}
		canceled = true
		productRepo := s.productRepo.WithTx(tx)
		for _, item := range order.Items {
			if err := productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if canceled {
		logger.Infow("order_timeout_canceled", "order_id", order.ID, "order_no", order.OrderNo)
	}
	return s.orderRepo.GetByID(order.ID)
}

// CancelExpiredOrders 批量取消过期订单，用于任务丢失时的兜底扫描
func (s *OrderService) CancelExpiredOrders(limit int) (int, error) {
	orders, err := s.orderRepo.ListExpiredPending(s.now(), limit)
	if err != nil {
		return 0, err
	}
	canceled := 0
	for _, order := range orders {
		result, err := s.CancelExpiredOrder(order.ID)
		if err != nil {
			logger.Warnw("order_sweep_cancel_failed", "order_id", order.ID, "error", err)
			continue
		}
		if result != nil && result.Status == constants.OrderStatusCanceled {
			canceled++
		}
	}
	return canceled, nil
}

func (s *OrderService) cartOrderLines(userID uint, cartItemIDs []uint) ([]orderLine, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	wanted := make(map[uint]struct{}, len(cartItemIDs))
	for _, id := range cartItemIDs {
		wanted[id] = struct{}{}
	}
	lines := make([]orderLine, 0, len(items))
	for _, item := range items {
		if len(wanted) > 0 {
			if _, ok := wanted[item.ID]; !ok {
				continue
			}
		}
		lines = append(lines, orderLine{
			productID:  item.ProductID,
			quantity:   item.Quantity,
			variant:    item.Variant,
			cartItemID: item.ID,
		})
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}
	return lines, nil
}

func directOrderLines(items []CreateOrderItem) ([]orderLine, error) {
	lines := make([]orderLine, 0, len(items))
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity < 1 {
			return nil, ErrInvalidOrderItem
		}
		lines = append(lines, orderLine{
			productID: item.ProductID,
			quantity:  item.Quantity,
			variant:   models.Attributes(item.Variant),
		})
	}
	return lines, nil
}

// computeTotals 运费满额包邮，税费按商品金额计算
func (s *OrderService) computeTotals(itemsPrice decimal.Decimal) (shipping, tax, total decimal.Decimal) {
	shipping = decimal.NewFromFloat(s.cfg.ShippingFee)
	threshold := decimal.NewFromFloat(s.cfg.FreeShippingThreshold)
	if itemsPrice.GreaterThan(threshold) || shipping.IsNegative() {
		shipping = decimal.Zero
	}
	tax = itemsPrice.Mul(decimal.NewFromFloat(s.cfg.TaxRate)).Round(2)
	if tax.IsNegative() {
		tax = decimal.Zero
	}
	total = itemsPrice.Add(shipping).Add(tax).Round(2)
	return shipping.Round(2), tax, total
}

func (s *OrderService) expireMinutes() int {
	if s.cfg.PaymentExpireMinutes > 0 {
		return s.cfg.PaymentExpireMinutes
	}
	return 30
}

func (s *OrderService) currency() string {
	currency := strings.ToLower(strings.TrimSpace(s.cfg.Currency))
	if currency == "" {
		return "usd"
	}
	return currency
}

func normalizeShipping(in models.ShippingAddress) (models.ShippingAddress, error) {
	out := models.ShippingAddress{
		FullName:   strings.TrimSpace(in.FullName),
		Address:    strings.TrimSpace(in.Address),
		City:       strings.TrimSpace(in.City),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Country:    strings.TrimSpace(in.Country),
		Phone:      strings.TrimSpace(in.Phone),
	}
	if out.Address == "" || out.City == "" || out.Country == "" {
		return out, ErrShippingAddressRequired
	}
	return out, nil
}

func generateOrderNo(now time.Time) string {
	return fmt.Sprintf("SF%s%s", now.Format("20060102150405"), randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(n.String())
	}
	return b.String()
}
