package models

import "time"

// Review 商品评价表，每个用户对同一商品仅能评价一次
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_review_product_user" json:"product_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_product_user;index" json:"user_id"`
	Name      string    `gorm:"type:varchar(120)" json:"name"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
