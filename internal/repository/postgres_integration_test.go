//go:build integration
// +build integration

package repository

import (
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/storefront-next/internal/catalog"
	"github.com/storefront-next/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}
	all := models.AllModels()
	_ = db.Migrator().DropTable(all...)
	if err := db.AutoMigrate(all...); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Migrator().DropTable(all...)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresCatalogSearchFullText(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewProductRepository(db)
	for i, name := range []string{"Wireless Headphones", "Smart Phone", "Desk Lamp"} {
		p := &models.Product{
			Slug:         "pg-" + string(rune('a'+i)),
			Name:         name,
			Price:        models.NewMoneyFromFloat(float64(10 * (i + 1))),
			CountInStock: 1,
			IsActive:     true,
		}
		if err := repo.Create(p); err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}

	for keyword, want := range map[string]int64{"phone": 2, "LAMP": 1, "headph": 1} {
		q := catalog.ParseQuery(url.Values{"keyword": {keyword}})
		items, total, err := repo.Search(catalog.BuildFilter(q), q.Page, q.Limit)
		if err != nil {
			t.Fatalf("search %q failed: %v", keyword, err)
		}
		if total != want || int64(len(items)) != want {
			t.Fatalf("search %q total=%d items=%d want %d", keyword, total, len(items), want)
		}
	}
}
