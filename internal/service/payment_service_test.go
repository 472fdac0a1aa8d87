package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/payment/stripe"
)

type fakeGateway struct {
	input stripe.SessionInput
	err   error
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, input stripe.SessionInput) (*stripe.Session, error) {
	g.input = input
	if g.err != nil {
		return nil, g.err
	}
	return &stripe.Session{ID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}, nil
}

const testWebhookSecret = "whsec_test"

func newPendingOrder(t *testing.T, f *serviceFixture, userID uint) *models.Order {
	t.Helper()
	lamp := seedProduct(t, f.db, fmt.Sprintf("lamp-%d", userID), "home", "20.00", 5)
	order, err := f.orders.Create(context.Background(), CreateOrderInput{
		UserID:   userID,
		Items:    []CreateOrderItem{{ProductID: lamp.ID, Quantity: 2}},
		Shipping: testShipping(),
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func signedWebhook(body string) string {
	ts := time.Now().Unix()
	return "t=" + strconv.FormatInt(ts, 10) + ",v1=" + stripe.ComputeSignature(testWebhookSecret, ts, []byte(body))
}

func TestPaymentCreateCheckoutStoresSession(t *testing.T) {
	f := newServiceFixture(t, time.Now())
	order := newPendingOrder(t, f, 11)
	gateway := &fakeGateway{}
	payments := NewPaymentService(f.orderRepo, f.orders, gateway, config.StripeConfig{})

	result, err := payments.CreateCheckout(context.Background(), order.ID, 11)
	if err != nil {
		t.Fatalf("create checkout failed: %v", err)
	}
	if result.SessionID != "cs_test_1" || result.URL == "" {
		t.Fatalf("unexpected checkout result: %+v", result)
	}
	// 商品行 + 运费 + 税费
	if len(gateway.input.Items) != 3 || gateway.input.OrderNo != order.OrderNo {
		t.Fatalf("unexpected gateway input: %+v", gateway.input)
	}
	stored, _ := f.orderRepo.GetByID(order.ID)
	if stored.PaymentSessionID != "cs_test_1" || stored.PaymentMethod != constants.PaymentMethodStripe {
		t.Fatalf("session not stored: %+v", stored)
	}

	if _, err := payments.CreateCheckout(context.Background(), order.ID, 12); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for other user, got %v", err)
	}
}

func TestPaymentCreateCheckoutErrors(t *testing.T) {
	f := newServiceFixture(t, time.Now())
	order := newPendingOrder(t, f, 11)

	unconfigured := NewPaymentService(f.orderRepo, f.orders, nil, config.StripeConfig{})
	if _, err := unconfigured.CreateCheckout(context.Background(), order.ID, 11); !errors.Is(err, ErrPaymentNotConfigured) {
		t.Fatalf("expected ErrPaymentNotConfigured, got %v", err)
	}
	failing := NewPaymentService(f.orderRepo, f.orders, &fakeGateway{err: stripe.ErrRequestFailed}, config.StripeConfig{})
	if _, err := failing.CreateCheckout(context.Background(), order.ID, 11); !errors.Is(err, ErrPaymentGatewayFailed) {
		t.Fatalf("expected ErrPaymentGatewayFailed, got %v", err)
	}
}

func TestPaymentWebhookMarksOrderPaid(t *testing.T) {
	f := newServiceFixture(t, time.Now())
	order := newPendingOrder(t, f, 11)
	payments := NewPaymentService(f.orderRepo, f.orders, &fakeGateway{}, config.StripeConfig{WebhookSecret: testWebhookSecret, ToleranceSecs: 300})

	body := fmt.Sprintf(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"object":"checkout.session","id":"cs_unknown","payment_status":"paid","currency":"usd","amount_total":5600,"metadata":{"order_no":%q,"order_id":"%d"}}}}`, order.OrderNo, order.ID)
	if err := payments.HandleStripeWebhook(signedWebhook(body), []byte(body)); err != nil {
		t.Fatalf("handle webhook failed: %v", err)
	}
	stored, _ := f.orderRepo.GetByID(order.ID)
	if !stored.IsPaid || stored.Status != constants.OrderStatusPaid {
		t.Fatalf("order should be paid: %+v", stored)
	}
	if err := payments.HandleStripeWebhook(signedWebhook(body), []byte(body)); err != nil {
		t.Fatalf("replayed webhook should be idempotent: %v", err)
	}
}

func TestPaymentWebhookRejectsAndIgnores(t *testing.T) {
	f := newServiceFixture(t, time.Now())
	order := newPendingOrder(t, f, 11)
	payments := NewPaymentService(f.orderRepo, f.orders, &fakeGateway{}, config.StripeConfig{WebhookSecret: testWebhookSecret, ToleranceSecs: 300})

	body := fmt.Sprintf(`{"id":"evt_2","type":"checkout.session.completed","data":{"object":{"object":"checkout.session","id":"cs_x","payment_status":"paid","metadata":{"order_no":%q,"order_id":"%d"}}}}`, order.OrderNo, order.ID)
	if err := payments.HandleStripeWebhook("t=1,v1=deadbeef", []byte(body)); !errors.Is(err, ErrPaymentSignatureInvalid) {
		t.Fatalf("expected ErrPaymentSignatureInvalid, got %v", err)
	}

	other := `{"id":"evt_3","type":"payment_intent.created","data":{"object":{"object":"payment_intent","id":"pi_1"}}}`
	if err := payments.HandleStripeWebhook(signedWebhook(other), []byte(other)); err != nil {
		t.Fatalf("unrelated events should be ignored: %v", err)
	}

	mismatch := fmt.Sprintf(`{"id":"evt_4","type":"checkout.session.completed","data":{"object":{"object":"checkout.session","id":"cs_y","payment_status":"paid","metadata":{"order_no":"SF-OTHER","order_id":"%d"}}}}`, order.ID)
	if err := payments.HandleStripeWebhook(signedWebhook(mismatch), []byte(mismatch)); !errors.Is(err, ErrPaymentSessionNotMatched) {
		t.Fatalf("expected ErrPaymentSessionNotMatched, got %v", err)
	}

	stored, _ := f.orderRepo.GetByID(order.ID)
	if stored.IsPaid {
		t.Fatalf("order must remain unpaid")
	}

	unconfigured := NewPaymentService(f.orderRepo, f.orders, nil, config.StripeConfig{})
	if err := unconfigured.HandleStripeWebhook(signedWebhook(body), []byte(body)); !errors.Is(err, ErrPaymentNotConfigured) {
		t.Fatalf("expected ErrPaymentNotConfigured, got %v", err)
	}
}
