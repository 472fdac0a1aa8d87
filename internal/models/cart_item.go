package models

import "time"

// CartItem 购物车行，(UserID, ProductID, VariantKey) 唯一
type CartItem struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_cart_user_product_variant;index" json:"user_id"`
	ProductID  uint       `gorm:"not null;uniqueIndex:idx_cart_user_product_variant" json:"product_id"`
	VariantKey string     `gorm:"type:varchar(500);not null;default:'';uniqueIndex:idx_cart_user_product_variant" json:"-"`
	Variant    Attributes `gorm:"type:json" json:"variant"`
	Quantity   int        `gorm:"not null" json:"quantity"`
	UnitPrice  Money      `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"` // 加入时价格快照
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
