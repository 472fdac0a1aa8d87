package repository

import (
	"testing"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
)

func TestDashboardTrendsBucketInWindowZone(t *testing.T) {
	db := openTestDB(t)
	repo := NewDashboardRepository(db)
	cst := time.FixedZone("CST", 8*3600)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, cst)
	end := start.AddDate(0, 0, 2)

	seeds := []struct {
		no      string
		status  string
		total   float64
		created time.Time
	}{
		{"SO-T-1", constants.OrderStatusPendingPayment, 5, time.Date(2026, 3, 1, 18, 0, 0, 0, cst)},
		{"SO-T-2", constants.OrderStatusDelivered, 2.5, time.Date(2026, 3, 2, 1, 0, 0, 0, cst)},
		{"SO-T-3", constants.OrderStatusPaid, 10, time.Date(2026, 3, 2, 4, 0, 0, 0, cst)},
		{"SO-T-OUT", constants.OrderStatusPaid, 99, time.Date(2026, 3, 3, 0, 0, 0, 0, cst)},
	}
	for _, seed := range seeds {
		order := models.Order{
			OrderNo:    seed.no,
			UserID:     1,
			Status:     seed.status,
			Currency:   "USD",
			TotalPrice: models.NewMoneyFromFloat(seed.total),
			CreatedAt:  seed.created,
		}
		if seed.status != constants.OrderStatusPendingPayment {
			paidAt := seed.created.Add(time.Minute)
			order.PaidAt = &paidAt
		}
		if err := db.Create(&order).Error; err != nil {
			t.Fatalf("seed order %s failed: %v", seed.no, err)
		}
	}

	rows, err := repo.GetOrderTrends(start, end)
	if err != nil {
		t.Fatalf("trends failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 days, got %+v", rows)
	}
	if rows[0].Day != "2026-03-01" || rows[0].OrdersTotal != 1 || rows[0].OrdersPaid != 0 {
		t.Fatalf("unexpected first day: %+v", rows[0])
	}
	if rows[1].Day != "2026-03-02" || rows[1].OrdersTotal != 2 || rows[1].OrdersPaid != 2 || rows[1].Revenue != 12.5 {
		t.Fatalf("unexpected second day: %+v", rows[1])
	}

	overview, err := repo.GetOverview(start, end)
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if overview.OrdersTotal != 3 || overview.PaidOrders != 2 || overview.DeliveredOrders != 1 || overview.PendingPaymentOrders != 1 {
		t.Fatalf("unexpected counts: %+v", overview)
	}
	if overview.Revenue != 12.5 || overview.Currency != "USD" {
		t.Fatalf("unexpected revenue: %+v", overview)
	}
}
