package main

import (
	"errors"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}
	db := models.DB

	if err := models.InitDefaultAdmin(db, "admin", ""); err != nil {
		stdLog.Printf("Failed to create default admin: %v", err)
	}

	// 分类
	for _, cat := range seedCategories() {
		created, err := createIfMissing(db, &models.Category{}, cat.Slug, &cat)
		logSeed(stdLog.Printf, "category", cat.Slug, created, err)
	}

	// 商品
	productIDs := map[string]uint{}
	for _, product := range seedProducts() {
		created, err := createIfMissing(db, &models.Product{}, product.Slug, &product)
		logSeed(stdLog.Printf, "product", product.Slug, created, err)
		var existing models.Product
		if err := db.Where("slug = ?", product.Slug).First(&existing).Error; err == nil {
			productIDs[product.Slug] = existing.ID
		}
	}

	// 活动
	now := time.Now()
	for _, deal := range seedDeals(now, productIDs) {
		created, err := createIfMissing(db, &models.Deal{}, deal.Slug, &deal)
		logSeed(stdLog.Printf, "deal", deal.Slug, created, err)
	}

	// 文章
	for _, post := range seedPosts(now) {
		created, err := createIfMissing(db, &models.Post{}, post.Slug, &post)
		logSeed(stdLog.Printf, "post", post.Slug, created, err)
	}

	// 演示用户
	var userCount int64
	db.Model(&models.User{}).Where("email = ?", "demo@example.com").Count(&userCount)
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("demo-pass-123"), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("Failed to hash demo password: %v", err)
		}
		user := models.User{Email: "demo@example.com", Name: "Demo Shopper", PasswordHash: string(hash), Status: constants.UserStatusActive}
		if err := db.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create demo user: %v", err)
		} else {
			stdLog.Printf("Created demo user: demo@example.com / demo-pass-123")
		}
	}

	stdLog.Printf("Seed completed")
}

// createIfMissing 按 slug 判断是否已存在，不存在才写入
func createIfMissing(db *gorm.DB, model interface{}, slug string, value interface{}) (bool, error) {
	err := db.Where("slug = ?", slug).First(model).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := db.Create(value).Error; err != nil {
		return false, err
	}
	return true, nil
}

func logSeed(printf func(string, ...interface{}), kind, slug string, created bool, err error) {
	switch {
	case err != nil:
		printf("Failed to create %s %s: %v", kind, slug, err)
	case created:
		printf("Created %s: %s", kind, slug)
	default:
		printf("%s already exists: %s", kind, slug)
	}
}

func seedCategories() []models.Category {
	return []models.Category{
		{Slug: "electronics", Name: "Electronics", Description: "Phones, audio and smart devices", SortOrder: 1},
		{Slug: "accessories", Name: "Accessories", Description: "Chargers, cables and cases", SortOrder: 2},
		{Slug: "lifestyle", Name: "Lifestyle", Description: "Bags and everyday carry", SortOrder: 3},
	}
}

func price(value string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(value))
}

func seedProducts() []models.Product {
	return []models.Product{
		{
			Slug:         "wireless-earphones",
			Name:         "Wireless Bluetooth Earphones",
			Description:  "Active noise cancellation with 24 hours of battery life.",
			Brand:        "Sonica",
			Category:     "electronics",
			Images:       models.StringArray{"https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800"},
			Options:      models.JSON{"color": []string{"black", "white"}},
			Price:        price("99.99"),
			CountInStock: 40,
			IsActive:     true,
			IsFeatured:   true,
		},
		{
			Slug:         "smart-watch",
			Name:         "Smart Watch",
			Description:  "Heart rate monitoring, sport modes and message notifications.",
			Brand:        "Pulse",
			Category:     "electronics",
			Images:       models.StringArray{"https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=800"},
			Options:      models.JSON{"size": []string{"40mm", "44mm"}},
			Price:        price("199.99"),
			CountInStock: 25,
			IsActive:     true,
		},
		{
			Slug:         "power-bank",
			Name:         "Portable Power Bank",
			Description:  "20000mAh with fast charging over USB-C.",
			Brand:        "Voltix",
			Category:     "accessories",
			Images:       models.StringArray{"https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=800"},
			Price:        price("49.99"),
			CountInStock: 80,
			IsActive:     true,
		},
		{
			Slug:         "backpack",
			Name:         "Multi-function Backpack",
			Description:  "Waterproof, anti-theft, with a USB charging port.",
			Brand:        "Trailhead",
			Category:     "lifestyle",
			Images:       models.StringArray{"https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=800"},
			Options:      models.JSON{"color": []string{"grey", "navy"}},
			Price:        price("79.99"),
			CountInStock: 15,
			IsActive:     true,
			IsFeatured:   true,
		},
		{
			Slug:         "usb-c-cable",
			Name:         "Braided USB-C Cable",
			Description:  "Two metre braided cable rated for 100W charging.",
			Brand:        "Voltix",
			Category:     "accessories",
			Price:        price("12.50"),
			CountInStock: 0,
			IsActive:     true,
		},
	}
}

func seedDeals(now time.Time, productIDs map[string]uint) []models.Deal {
	deals := []models.Deal{
		{
			Slug:          "accessory-week",
			Title:         "Accessory Week",
			Description:   "15% off every accessory.",
			DiscountType:  constants.DealDiscountPercentage,
			DiscountValue: price("15"),
			StartsAt:      now.Add(-24 * time.Hour),
			EndsAt:        now.Add(6 * 24 * time.Hour),
			Categories:    models.StringArray{"accessories"},
			IsActive:      true,
			IsFeatured:    true,
		},
		{
			Slug:          "spring-launch",
			Title:         "Spring Launch",
			Description:   "Starts next week.",
			DiscountType:  constants.DealDiscountPercentage,
			DiscountValue: price("10"),
			StartsAt:      now.Add(7 * 24 * time.Hour),
			EndsAt:        now.Add(14 * 24 * time.Hour),
			Categories:    models.StringArray{"lifestyle"},
			IsActive:      true,
		},
	}
	if id, ok := productIDs["smart-watch"]; ok {
		deals = append(deals, models.Deal{
			Slug:          "watch-flash-sale",
			Title:         "Smart Watch Flash Sale",
			Description:   "$30 off for the next six hours.",
			DiscountType:  constants.DealDiscountFixed,
			DiscountValue: price("30"),
			StartsAt:      now.Add(-time.Hour),
			EndsAt:        now.Add(6 * time.Hour),
			ProductIDs:    models.UintArray{id},
			IsActive:      true,
			IsFlashSale:   true,
		})
	}
	return deals
}

func seedPosts(now time.Time) []models.Post {
	published := now.Add(-48 * time.Hour)
	return []models.Post{
		{
			Slug:        "choosing-earphones",
			Title:       "How to choose wireless earphones",
			Summary:     "Battery, codecs and fit explained.",
			Content:     "## Battery\nLook for at least 6 hours per charge.\n\n## Fit\nTry several tip sizes.",
			Author:      "Storefront Team",
			Tags:        models.StringArray{"audio", "guide"},
			Status:      constants.PostStatusPublished,
			PublishedAt: &published,
		},
		{
			Slug:    "holiday-gift-guide",
			Title:   "Holiday gift guide",
			Summary: "Draft, not yet published.",
			Content: "Coming soon.",
			Author:  "Storefront Team",
			Status:  constants.PostStatusDraft,
		},
	}
}
