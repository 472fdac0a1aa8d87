package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/storefront-next/internal/repository"
)

func TestResolveDashboardWindowPresets(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	window, err := resolveDashboardWindow(DashboardQueryInput{}, now)
	if err != nil {
		t.Fatalf("resolve default window failed: %v", err)
	}
	if window.rangeKey != "7d" || window.timezone != "UTC" {
		t.Fatalf("unexpected default window: %+v", window)
	}
	if !window.startAt.Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected 7d start: %s", window.startAt)
	}
	if !window.endAt.Equal(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected 7d end: %s", window.endAt)
	}

	today, err := resolveDashboardWindow(DashboardQueryInput{Range: "TODAY"}, now)
	if err != nil {
		t.Fatalf("resolve today failed: %v", err)
	}
	if today.endAt.Sub(today.startAt) != 24*time.Hour {
		t.Fatalf("today window should span one day: %+v", today)
	}

	fallback, err := resolveDashboardWindow(DashboardQueryInput{Range: "30d", Timezone: "Not/AZone"}, now)
	if err != nil {
		t.Fatalf("resolve 30d failed: %v", err)
	}
	if fallback.timezone != "UTC" {
		t.Fatalf("unknown timezone should fall back to UTC, got=%s", fallback.timezone)
	}
}

func TestResolveDashboardWindowCustomValidation(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 5, 23, 59, 59, 0, time.UTC)

	window, err := resolveDashboardWindow(DashboardQueryInput{Range: "custom", From: &from, To: &to}, now)
	if err != nil {
		t.Fatalf("resolve custom failed: %v", err)
	}
	if !window.endAt.Equal(to.Add(time.Second)) {
		t.Fatalf("custom end should be exclusive: %s", window.endAt)
	}

	cases := []DashboardQueryInput{
		{Range: "custom"},
		{Range: "custom", From: &to, To: &from},
		{Range: "year"},
	}
	tooWide := from.AddDate(0, 0, dashboardCustomMaxDays+1)
	cases = append(cases, DashboardQueryInput{Range: "custom", From: &from, To: &tooWide})
	for _, input := range cases {
		if _, err := resolveDashboardWindow(input, now); !errors.Is(err, ErrDashboardRangeInvalid) {
			t.Fatalf("expected ErrDashboardRangeInvalid for %+v, got=%v", input.Range, err)
		}
	}
}

func TestDashboardOverviewStockAlerts(t *testing.T) {
	db := openServiceTestDB(t)
	seedProduct(t, db, "sold-out", "phones", "10.00", 0)
	seedProduct(t, db, "almost-gone", "phones", "10.00", 3)
	seedProduct(t, db, "plenty", "phones", "10.00", 50)
	hidden := seedProduct(t, db, "hidden", "phones", "10.00", 0)
	if err := db.Model(hidden).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	svc := NewDashboardService(repository.NewDashboardRepository(db), nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }

	overview, err := svc.GetOverview(context.Background(), DashboardQueryInput{Range: "30d"})
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	kpi := overview.KPI
	if kpi.ActiveProducts != 3 || kpi.OutOfStockProducts != 1 || kpi.LowStockProducts != 1 || kpi.UnitsInStock != 53 {
		t.Fatalf("unexpected stock kpi: %+v", kpi)
	}
	if kpi.OrdersTotal != 0 || kpi.Revenue != "0.00" || kpi.PaymentRate != "0.00" {
		t.Fatalf("unexpected order kpi: %+v", kpi)
	}
	if len(overview.Alerts) != 2 || overview.Alerts[0].Type != "out_of_stock_products" || overview.Alerts[1].Level != "warning" {
		t.Fatalf("unexpected alerts: %+v", overview.Alerts)
	}
}

func TestDashboardTrendsFillEveryDay(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewDashboardService(repository.NewDashboardRepository(db), nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }

	trends, err := svc.GetTrends(context.Background(), DashboardQueryInput{Range: "7d"})
	if err != nil {
		t.Fatalf("trends failed: %v", err)
	}
	if len(trends.Points) != 7 {
		t.Fatalf("expected 7 points, got=%d", len(trends.Points))
	}
	if trends.Points[0].Date != "2026-03-04" || trends.Points[6].Date != "2026-03-10" {
		t.Fatalf("unexpected trend dates: first=%s last=%s", trends.Points[0].Date, trends.Points[6].Date)
	}
	if trends.Points[3].Revenue != "0.00" {
		t.Fatalf("empty day should report zero revenue: %+v", trends.Points[3])
	}

	rankings, err := svc.GetRankings(context.Background(), DashboardQueryInput{Range: "today"})
	if err != nil {
		t.Fatalf("rankings failed: %v", err)
	}
	if len(rankings.TopProducts) != 0 {
		t.Fatalf("expected no ranking rows, got=%+v", rankings.TopProducts)
	}
}

func TestBuildDashboardKPIRates(t *testing.T) {
	kpi := buildDashboardKPI(repository.DashboardOverviewRow{OrdersTotal: 3, PaidOrders: 2, Revenue: 45.5}, repository.DashboardStockStatsRow{})
	if kpi.PaymentRate != "66.67" || kpi.AverageOrderValue != "22.75" || kpi.Revenue != "45.50" {
		t.Fatalf("unexpected kpi: %+v", kpi)
	}
}
