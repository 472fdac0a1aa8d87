package models

import (
	"time"

	"gorm.io/gorm"
)

// Deal 限时优惠活动
// 是否进行中与剩余时间在读取时实时计算，不落库。
type Deal struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Slug          string         `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	Title         string         `gorm:"type:varchar(300);not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Image         string         `gorm:"type:varchar(500)" json:"image"`
	DiscountType  string         `gorm:"type:varchar(20);not null" json:"discount_type"` // percentage / fixed
	DiscountValue Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_value"`
	StartsAt      time.Time      `gorm:"not null;index" json:"starts_at"`
	EndsAt        time.Time      `gorm:"not null;index" json:"ends_at"`
	ProductIDs    UintArray      `gorm:"type:json" json:"product_ids"`
	Categories    StringArray    `gorm:"type:json" json:"categories"`
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`
	IsFeatured    bool           `gorm:"default:false;index" json:"is_featured"`
	IsFlashSale   bool           `gorm:"default:false;index" json:"is_flash_sale"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Deal) TableName() string {
	return "deals"
}

// Covers 判断活动是否覆盖指定商品
func (d *Deal) Covers(p *Product) bool {
	if d == nil || p == nil {
		return false
	}
	if d.ProductIDs.Contains(p.ID) {
		return true
	}
	for _, c := range d.Categories {
		if c != "" && c == p.Category {
			return true
		}
	}
	return false
}
