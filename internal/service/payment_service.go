package service

import (
	"context"
	"errors"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/payment/stripe"
	"github.com/storefront-next/internal/repository"
)

// CheckoutGateway 第三方收银台
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, input stripe.SessionInput) (*stripe.Session, error)
}

// PaymentService 支付服务
type PaymentService struct {
	orderRepo    repository.OrderRepository
	orderService *OrderService
	gateway      CheckoutGateway
	cfg          config.StripeConfig
	now          func() time.Time
}

// NewPaymentService 创建支付服务，gateway 为 nil 表示未配置 Stripe
func NewPaymentService(orderRepo repository.OrderRepository, orderService *OrderService, gateway CheckoutGateway, cfg config.StripeConfig) *PaymentService {
	return &PaymentService{
		orderRepo:    orderRepo,
		orderService: orderService,
		gateway:      gateway,
		cfg:          cfg,
		now:          time.Now,
	}
}

// CheckoutResult 收银台会话
type CheckoutResult struct {
	OrderID   uint   `json:"order_id"`
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CreateCheckout 为待支付订单创建 Stripe Checkout 会话
func (s *PaymentService) CreateCheckout(ctx context.Context, orderID, userID uint) (*CheckoutResult, error) {
	if s.gateway == nil {
		return nil, ErrPaymentNotConfigured
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPendingPayment {
		return nil, ErrOrderStatusInvalid
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, stripe.SessionInput{
		OrderNo:  order.OrderNo,
		OrderID:  order.ID,
		Currency: order.Currency,
		Items:    checkoutLineItems(order),
	})
	if err != nil {
		logger.Errorw("payment_checkout_create_failed", "order_id", order.ID, "error", err)
		return nil, ErrPaymentGatewayFailed
	}
	if err := s.orderRepo.SetPaymentSession(order.ID, constants.PaymentMethodStripe, session.ID); err != nil {
		return nil, err
	}
	logger.Infow("payment_checkout_created", "order_id", order.ID, "session_id", session.ID)
	return &CheckoutResult{OrderID: order.ID, SessionID: session.ID, URL: session.URL}, nil
}

// HandleStripeWebhook 验签后处理事件，只有支付完成事件会修改订单
func (s *PaymentService) HandleStripeWebhook(signature string, body []byte) error {
	event, err := stripe.ParseWebhook(s.cfg.WebhookSecret, s.cfg.ToleranceSecs, signature, body, s.now())
	if err != nil {
		if errors.Is(err, stripe.ErrConfigInvalid) {
			return ErrPaymentNotConfigured
		}
		logger.Warnw("payment_webhook_rejected", "error", err)
		return ErrPaymentSignatureInvalid
	}
	if event.Type != stripe.EventCheckoutCompleted {
		logger.Debugw("payment_webhook_ignored", "event_id", event.ID, "event_type", event.Type)
		return nil
	}
	if event.PaymentStatus != "" && event.PaymentStatus != "paid" {
		logger.Infow("payment_webhook_unpaid", "event_id", event.ID, "payment_status", event.PaymentStatus)
		return nil
	}

	order, err := s.resolveOrder(event)
	if err != nil {
		return err
	}
	if _, err := s.orderService.MarkPaid(order.ID); err != nil {
		logger.Errorw("payment_webhook_mark_paid_failed", "order_id", order.ID, "event_id", event.ID, "error", err)
		return err
	}
	logger.Infow("payment_webhook_paid", "order_id", order.ID, "event_id", event.ID, "amount", event.AmountTotal)
	return nil
}

func (s *PaymentService) resolveOrder(event *stripe.Event) (*models.Order, error) {
	if event.SessionID != "" {
		order, err := s.orderRepo.GetByPaymentSession(event.SessionID)
		if err != nil {
			return nil, err
		}
		if order != nil {
			return order, nil
		}
	}
	if event.OrderID != 0 {
		order, err := s.orderRepo.GetByID(event.OrderID)
		if err != nil {
			return nil, err
		}
		if order != nil && order.OrderNo == event.OrderNo {
			return order, nil
		}
	}
	logger.Warnw("payment_webhook_order_not_matched", "event_id", event.ID, "session_id", event.SessionID, "order_no", event.OrderNo)
	return nil, ErrPaymentSessionNotMatched
}

// checkoutLineItems 商品行加上运费与税费行，合计与订单应付一致
func checkoutLineItems(order *models.Order) []stripe.LineItem {
	items := make([]stripe.LineItem, 0, len(order.Items)+2)
	for _, item := range order.Items {
		items = append(items, stripe.LineItem{
			Name:      item.Name,
			UnitPrice: item.UnitPrice.Decimal,
			Quantity:  item.Quantity,
		})
	}
	if order.ShippingPrice.IsPositive() {
		items = append(items, stripe.LineItem{Name: "Shipping", UnitPrice: order.ShippingPrice.Decimal, Quantity: 1})
	}
	if order.TaxPrice.IsPositive() {
		items = append(items, stripe.LineItem{Name: "Tax", UnitPrice: order.TaxPrice.Decimal, Quantity: 1})
	}
	return items
}
