package models

import "time"

// ShippingAddress 收货地址快照
type ShippingAddress struct {
	FullName   string `gorm:"type:varchar(120)" json:"full_name"`
	Address    string `gorm:"type:varchar(300)" json:"address"`
	City       string `gorm:"type:varchar(120)" json:"city"`
	PostalCode string `gorm:"type:varchar(40)" json:"postal_code"`
	Country    string `gorm:"type:varchar(80)" json:"country"`
	Phone      string `gorm:"type:varchar(40)" json:"phone"`
}

// Order 订单表
// 订单只通过支付、发货、取消三种状态流转修改，从不删除。
type Order struct {
	ID               uint            `gorm:"primarykey" json:"id"`                                           // 主键
	OrderNo          string          `gorm:"type:varchar(40);uniqueIndex;not null" json:"order_no"`          // 订单编号
	UserID           uint            `gorm:"index;not null" json:"user_id"`                                  // 用户ID
	Status           string          `gorm:"type:varchar(30);index;not null" json:"status"`                  // 订单状态
	Source           string          `gorm:"type:varchar(20);not null;default:'cart'" json:"source"`         // 下单来源（cart/direct）
	Currency         string          `gorm:"type:varchar(10);not null" json:"currency"`                      // 币种
	Shipping         ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`      // 收货地址
	PaymentMethod    string          `gorm:"type:varchar(30)" json:"payment_method"`                         // 支付方式
	PaymentSessionID string          `gorm:"type:varchar(200);index" json:"payment_session_id,omitempty"`    // 第三方支付会话
	ItemsPrice       Money           `gorm:"type:decimal(20,2);not null;default:0" json:"items_price"`       // 商品金额
	ShippingPrice    Money           `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_price"`    // 运费
	TaxPrice         Money           `gorm:"type:decimal(20,2);not null;default:0" json:"tax_price"`         // 税费
	DiscountPrice    Money           `gorm:"type:decimal(20,2);not null;default:0" json:"discount_price"`    // 活动优惠金额
	TotalPrice       Money           `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`       // 应付金额
	IsPaid           bool            `gorm:"not null;default:false;index" json:"is_paid"`                    // 是否已支付
	PaidAt           *time.Time      `gorm:"index" json:"paid_at"`                                           // 支付时间
	IsDelivered      bool            `gorm:"not null;default:false;index" json:"is_delivered"`               // 是否已发货
	DeliveredAt      *time.Time      `json:"delivered_at"`                                                   // 发货时间
	CanceledAt       *time.Time      `json:"canceled_at"`                                                    // 取消时间
	ExpiresAt        *time.Time      `gorm:"index" json:"expires_at"`                                        // 支付过期时间
	CreatedAt        time.Time       `gorm:"index" json:"created_at"`                                        // 创建时间
	UpdatedAt        time.Time       `json:"updated_at"`                                                     // 更新时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
