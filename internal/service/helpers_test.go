package service

import (
	"strings"
	"testing"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openServiceTestDB 每个测试独立的内存库
func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:svc_"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
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
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, slug, category string, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Slug:         slug,
		Name:         strings.ToUpper(slug),
		Category:     category,
		Images:       models.StringArray{"/uploads/product/" + slug + ".png"},
		Price:        models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		CountInStock: stock,
		IsActive:     true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func seedDeal(t *testing.T, db *gorm.DB, row *models.Deal) *models.Deal {
	t.Helper()
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("create deal failed: %v", err)
	}
	return row
}

func defaultOrderConfig() config.OrderConfig {
	return config.OrderConfig{
		PaymentExpireMinutes:  30,
		ShippingFee:           10,
		FreeShippingThreshold: 100,
		TaxRate:               0.15,
		Currency:              "usd",
	}
}

type serviceFixture struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
	dealRepo    repository.DealRepository
	deals       *DealService
	carts       *CartService
	orders      *OrderService
}

func newServiceFixture(t *testing.T, now time.Time) *serviceFixture {
	t.Helper()
	db := openServiceTestDB(t)
	f := &serviceFixture{
		db:          db,
		productRepo: repository.NewProductRepository(db),
		cartRepo:    repository.NewCartRepository(db),
		orderRepo:   repository.NewOrderRepository(db),
		dealRepo:    repository.NewDealRepository(db),
	}
	clock := func() time.Time { return now }
	f.deals = NewDealService(f.dealRepo, f.productRepo, nil, nil, 0)
	f.deals.now = clock
	f.carts = NewCartService(f.cartRepo, f.productRepo)
	f.orders = NewOrderService(f.orderRepo, f.productRepo, f.cartRepo, f.deals, nil, defaultOrderConfig())
	f.orders.now = clock
	return f
}

func moneyEquals(t *testing.T, label string, got models.Money, want string) {
	t.Helper()
	if !got.Decimal.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s: want %s got %s", label, want, got.String())
	}
}

func repositoryOrderFilter() repository.OrderListFilter {
	return repository.OrderListFilter{Page: 1, PageSize: 20}
}
