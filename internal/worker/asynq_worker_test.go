package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/provider"
	"github.com/storefront-next/internal/queue"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupConsumer(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := "file:worker_" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	cfg := &config.Config{
		Order: config.OrderConfig{PaymentExpireMinutes: 30, ShippingFee: 10, FreeShippingThreshold: 100, TaxRate: 0.15, Currency: "usd"},
	}
	return NewConsumer(provider.Build(cfg, db, nil, nil)), db
}

func seedPendingOrder(t *testing.T, db *gorm.DB, orderNo string, product *models.Product, qty int, expiresAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:   orderNo,
		UserID:    1,
		Status:    constants.OrderStatusPendingPayment,
		Source:    constants.OrderSourceDirect,
		Currency:  "usd",
		ExpiresAt: &expiresAt,
		Items: []models.OrderItem{
			{ProductID: product.ID, Name: product.Name, Quantity: qty},
		},
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func seedWorkerProduct(t *testing.T, db *gorm.DB, stock int) *models.Product {
	t.Helper()
	product := &models.Product{Slug: "mug", Name: "Mug", Category: "kitchen", CountInStock: stock, IsActive: true}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func orderTask(t *testing.T, orderID uint) *asynq.Task {
	t.Helper()
	task, err := queue.NewOrderTimeoutCancelTask(queue.OrderTimeoutCancelPayload{OrderID: orderID})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	return task
}

func TestHandleOrderTimeoutCancelRestoresStock(t *testing.T) {
	consumer, db := setupConsumer(t)
	product := seedWorkerProduct(t, db, 5)
	order := seedPendingOrder(t, db, "SO-EXPIRED", product, 2, time.Now().Add(-time.Hour))

	if err := consumer.handleOrderTimeoutCancel(context.Background(), orderTask(t, order.ID)); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}
	// 重复投递不会重复回补库存
	if err := consumer.handleOrderTimeoutCancel(context.Background(), orderTask(t, order.ID)); err != nil {
		t.Fatalf("handle repeated task failed: %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusCanceled || reloaded.CanceledAt == nil {
		t.Fatalf("expected canceled order, got status=%s", reloaded.Status)
	}
	var stock models.Product
	if err := db.First(&stock, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stock.CountInStock != 7 {
		t.Fatalf("expected stock restored to 7, got=%d", stock.CountInStock)
	}
}

func TestHandleOrderTimeoutCancelSkipsUnexpiredAndMissing(t *testing.T) {
	consumer, db := setupConsumer(t)
	product := seedWorkerProduct(t, db, 5)
	order := seedPendingOrder(t, db, "SO-FRESH", product, 1, time.Now().Add(time.Hour))

	if err := consumer.handleOrderTimeoutCancel(context.Background(), orderTask(t, order.ID)); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}
	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusPendingPayment {
		t.Fatalf("unexpired order should stay pending, got=%s", reloaded.Status)
	}

	if err := consumer.handleOrderTimeoutCancel(context.Background(), orderTask(t, 9999)); err != nil {
		t.Fatalf("missing order should be skipped, got=%v", err)
	}

	bad := asynq.NewTask(queue.TaskOrderTimeoutCancel, []byte("{"))
	if err := consumer.handleOrderTimeoutCancel(context.Background(), bad); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("broken payload should skip retry, got=%v", err)
	}
}

func TestSweepExpiredOrders(t *testing.T) {
	consumer, db := setupConsumer(t)
	product := seedWorkerProduct(t, db, 10)
	seedPendingOrder(t, db, "SO-OLD-1", product, 1, time.Now().Add(-2*time.Hour))
	seedPendingOrder(t, db, "SO-OLD-2", product, 3, time.Now().Add(-time.Minute))
	fresh := seedPendingOrder(t, db, "SO-NEW", product, 4, time.Now().Add(time.Hour))

	if n := NewOrderSweeper(consumer.OrderService).sweep(); n != 2 {
		t.Fatalf("expected sweep to cancel 2, got=%d", n)
	}

	var canceled int64
	if err := db.Model(&models.Order{}).Where("status = ?", constants.OrderStatusCanceled).Count(&canceled).Error; err != nil {
		t.Fatalf("count canceled failed: %v", err)
	}
	if canceled != 2 {
		t.Fatalf("expected 2 canceled orders, got=%d", canceled)
	}
	var reloaded models.Order
	if err := db.First(&reloaded, fresh.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusPendingPayment {
		t.Fatalf("fresh order should stay pending")
	}
	var stock models.Product
	if err := db.First(&stock, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stock.CountInStock != 14 {
		t.Fatalf("expected stock 14, got=%d", stock.CountInStock)
	}
}

func TestHandleDealCacheInvalidateWithoutRedis(t *testing.T) {
	consumer, _ := setupConsumer(t)
	body, _ := json.Marshal(queue.DealCacheInvalidatePayload{DealID: 3, Reason: "updated"})
	task := asynq.NewTask(queue.TaskDealCacheInvalidate, body)
	if err := consumer.handleDealCacheInvalidate(context.Background(), task); err != nil {
		t.Fatalf("expected no-op without redis, got=%v", err)
	}
}

type countingCanceler struct{ calls atomic.Int32 }

func (c *countingCanceler) CancelExpiredOrders(int) (int, error) {
	c.calls.Add(1)
	return 0, nil
}

func TestSweeperRunsUntilStopped(t *testing.T) {
	orders := &countingCanceler{}
	sweeper := NewSweeper(orders, 10*time.Millisecond)
	done := make(chan error, 1)
	go func() { done <- sweeper.Start(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	if err := sweeper.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	_ = sweeper.Stop(context.Background())
	if err := <-done; err != nil {
		t.Fatalf("start should return nil, got=%v", err)
	}
	if orders.calls.Load() < 2 {
		t.Fatalf("expected repeated sweeps, got=%d", orders.calls.Load())
	}
}

func TestOrderSweeperWithoutService(t *testing.T) {
	if n := NewOrderSweeper(nil).sweep(); n != 0 {
		t.Fatalf("nil order service should sweep nothing, got=%d", n)
	}
}
