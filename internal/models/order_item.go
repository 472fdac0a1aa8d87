package models

import "time"

// OrderItem 订单项，名称与单价为下单时快照，与商品后续改价无关
type OrderItem struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	OrderID       uint       `gorm:"index;not null" json:"order_id"`
	ProductID     uint       `gorm:"index;not null" json:"product_id"`
	Name          string     `gorm:"type:varchar(300);not null" json:"name"`
	Image         string     `gorm:"type:varchar(500)" json:"image"`
	Variant       Attributes `gorm:"type:json" json:"variant"`
	Quantity      int        `gorm:"not null" json:"quantity"`
	OriginalPrice Money      `gorm:"type:decimal(20,2);not null;default:0" json:"original_price"`
	UnitPrice     Money      `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	TotalPrice    Money      `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`
	DealID        *uint      `gorm:"index" json:"deal_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
