package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
)

func testShipping() models.ShippingAddress {
	return models.ShippingAddress{
		FullName: "Ada Lovelace",
		Address:  "12 Analytical St",
		City:     "London",
		Country:  "GB",
	}
}

func TestOrderCreateFromCartAppliesDealAndTotals(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newServiceFixture(t, now)
	ctx := context.Background()
	jacket := seedProduct(t, f.db, "jacket", "apparel", "100.00", 5)
	mug := seedProduct(t, f.db, "mug", "kitchen", "10.00", 5)
	seedDeal(t, f.db, &models.Deal{
		Slug: "jacket-sale", Title: "Jacket sale",
		DiscountType: constants.DealDiscountPercentage, DiscountValue: models.NewMoneyFromFloat(20),
		StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour),
		ProductIDs: models.UintArray{jacket.ID}, IsActive: true,
	})

	if _, err := f.carts.AddItem(AddCartItemInput{UserID: 3, ProductID: jacket.ID, Quantity: 1}); err != nil {
		t.Fatalf("add jacket failed: %v", err)
	}
	if _, err := f.carts.AddItem(AddCartItemInput{UserID: 3, ProductID: mug.ID, Quantity: 2}); err != nil {
		t.Fatalf("add mug failed: %v", err)
	}

	order, err := f.orders.Create(ctx, CreateOrderInput{UserID: 3, Shipping: testShipping()})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPendingPayment || order.Source != constants.OrderSourceCart {
		t.Fatalf("unexpected order state: %s/%s", order.Status, order.Source)
	}
	// 80 + 2*10 = 100，未超过包邮门槛
	moneyEquals(t, "items", order.ItemsPrice, "100")
	moneyEquals(t, "discount", order.DiscountPrice, "20")
	moneyEquals(t, "shipping", order.ShippingPrice, "10")
	moneyEquals(t, "tax", order.TaxPrice, "15")
	moneyEquals(t, "total", order.TotalPrice, "125")
	if order.ExpiresAt == nil || !order.ExpiresAt.Equal(now.Add(30*time.Minute)) {
		t.Fatalf("unexpected expires_at: %v", order.ExpiresAt)
	}

	stored, err := f.orders.GetByUser(order.ID, 3)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected two items, got %d", len(stored.Items))
	}
	for _, item := range stored.Items {
		if item.ProductID == jacket.ID {
			moneyEquals(t, "jacket unit", item.UnitPrice, "80")
			moneyEquals(t, "jacket original", item.OriginalPrice, "100")
			if item.DealID == nil {
				t.Fatalf("expected deal id on jacket line")
			}
		}
	}

	reloaded, err := f.productRepo.GetByID(mug.ID)
	if err != nil {
		t.Fatalf("reload mug failed: %v", err)
	}
	if reloaded.CountInStock != 3 {
		t.Fatalf("expected stock 3, got %d", reloaded.CountInStock)
	}
	cartView, err := f.carts.Get(3)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cartView.Items) != 0 {
		t.Fatalf("checked out lines should be removed, got %d", len(cartView.Items))
	}
	if _, err := f.orders.GetByUser(order.ID, 4); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("other user must not see order, got %v", err)
	}
}

func TestOrderCreateFreeShippingAboveThreshold(t *testing.T) {
	f := newServiceFixture(t, time.Now())
	lamp := seedProduct(t, f.db, "lamp", "home", "120.00", 5)

	order, err := f.orders.Create(context.Background(), CreateOrderInput{
		UserID:   9,
		Items:    []CreateOrderItem{{ProductID: lamp.ID, Quantity: 1}},
		Shipping: testShipping(),
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Source != constants.OrderSourceDirect {
		t.Fatalf("unexpected source: %s", order.Source)
	}
	moneyEquals(t, "shipping", order.ShippingPrice, "0")
	moneyEquals(t, "tax", order.TaxPrice, "18")
	moneyEquals(t, "total", order.TotalPrice, "138")
}

func TestOrderCreateRollsBackOnInsufficientStock(t *testing.T) {
	f := newServiceFixture(t, time.Now())
	ctx := context.Background()
	lamp := seedProduct(t, f.db, "lamp", "home", "20.00", 5)
	mug := seedProduct(t, f.db, "mug", "kitchen", "10.00", 1)

	_, err := f.orders.Create(ctx, CreateOrderInput{
		UserID: 9,
		Items: []CreateOrderItem{
			{ProductID: lamp.ID, Quantity: 2},
			{ProductID: mug.ID, Quantity: 2},
		},
		Shipping: testShipping(),
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	reloaded, err := f.productRepo.GetByID(lamp.ID)
	if err != nil {
		t.Fatalf("reload lamp failed: %v", err)
	}
	if reloaded.CountInStock != 5 {
		t.Fatalf("stock must be restored by rollback, got %d", reloaded.CountInStock)
	}
	orders, total, err := f.orders.ListForAdmin(repositoryOrderFilter())
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 0 || len(orders) != 0 {
		t.Fatalf("no order should be persisted, got %d", total)
	}
}

func TestOrderCreateValidation(t *testing.T) {
	f := newServiceFixture(t, time.Now())
	ctx := context.Background()
	lamp := seedProduct(t, f.db, "lamp", "home", "20.00", 5)

	if _, err := f.orders.Create(ctx, CreateOrderInput{UserID: 1, Items: []CreateOrderItem{{ProductID: lamp.ID, Quantity: 1}}}); !errors.Is(err, ErrShippingAddressRequired) {
		t.Fatalf("expected ErrShippingAddressRequired, got %v", err)
	}
	if _, err := f.orders.Create(ctx, CreateOrderInput{UserID: 1, Shipping: testShipping()}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
	if _, err := f.orders.Create(ctx, CreateOrderInput{UserID: 1, Items: []CreateOrderItem{{ProductID: lamp.ID}}, Shipping: testShipping()}); !errors.Is(err, ErrInvalidOrderItem) {
		t.Fatalf("expected ErrInvalidOrderItem, got %v", err)
	}
}

func TestOrderPaidThenDelivered(t *testing.T) {
	f := newServiceFixture(t, time.Now())
	lamp := seedProduct(t, f.db, "lamp", "home", "20.00", 5)
	order, err := f.orders.Create(context.Background(), CreateOrderInput{
		UserID:   2,
		Items:    []CreateOrderItem{{ProductID: lamp.ID, Quantity: 1}},
		Shipping: testShipping(),
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := f.orders.MarkDelivered(order.ID); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("unpaid order must not be delivered, got %v", err)
	}
	paid, err := f.orders.MarkPaid(order.ID)
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if !paid.IsPaid || paid.Status != constants.OrderStatusPaid || paid.PaidAt == nil {
		t.Fatalf("unexpected paid state: %+v", paid)
	}
	if _, err := f.orders.MarkPaid(order.ID); err != nil {
		t.Fatalf("repeated paid notification should be idempotent: %v", err)
	}
	delivered, err := f.orders.MarkDelivered(order.ID)
	if err != nil {
		t.Fatalf("mark delivered failed: %v", err)
	}
	if !delivered.IsDelivered || delivered.Status != constants.OrderStatusDelivered {
		t.Fatalf("unexpected delivered state: %+v", delivered)
	}
}

func TestOrderCancelExpiredRestoresStock(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newServiceFixture(t, now)
	lamp := seedProduct(t, f.db, "lamp", "home", "20.00", 5)
	order, err := f.orders.Create(context.Background(), CreateOrderInput{
		UserID:   2,
		Items:    []CreateOrderItem{{ProductID: lamp.ID, Quantity: 3}},
		Shipping: testShipping(),
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	notYet, err := f.orders.CancelExpiredOrder(order.ID)
	if err != nil {
		t.Fatalf("cancel before expiry failed: %v", err)
	}
	if notYet.Status != constants.OrderStatusPendingPayment {
		t.Fatalf("order must stay pending before expiry, got %s", notYet.Status)
	}

	f.orders.now = func() time.Time { return now.Add(31 * time.Minute) }
	canceled, err := f.orders.CancelExpiredOrder(order.ID)
	if err != nil {
		t.Fatalf("cancel expired failed: %v", err)
	}
	if canceled.Status != constants.OrderStatusCanceled || canceled.CanceledAt == nil {
		t.Fatalf("unexpected canceled state: %+v", canceled)
	}
	reloaded, err := f.productRepo.GetByID(lamp.ID)
	if err != nil {
		t.Fatalf("reload lamp failed: %v", err)
	}
	if reloaded.CountInStock != 5 {
		t.Fatalf("stock should be restored, got %d", reloaded.CountInStock)
	}

	again, err := f.orders.CancelExpiredOrder(order.ID)
	if err != nil {
		t.Fatalf("second cancel failed: %v", err)
	}
	if again.Status != constants.OrderStatusCanceled {
		t.Fatalf("unexpected status after second cancel: %s", again.Status)
	}
	reloaded, _ = f.productRepo.GetByID(lamp.ID)
	if reloaded.CountInStock != 5 {
		t.Fatalf("stock must be restored only once, got %d", reloaded.CountInStock)
	}
}
