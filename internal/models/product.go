package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
// 不变式：NumReviews 等于评价条数，Rating 为评价评分均值，二者只由评价写入事务维护。
type Product struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                     // 主键
	Slug         string         `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`       // 唯一标识
	Name         string         `gorm:"type:varchar(300);not null;index" json:"name"`             // 名称
	Description  string         `gorm:"type:text" json:"description"`                             // 描述
	Brand        string         `gorm:"type:varchar(120);index" json:"brand"`                     // 品牌
	Category     string         `gorm:"type:varchar(100);index" json:"category"`                  // 分类标签（对应 Category.Slug）
	Images       StringArray    `gorm:"type:json" json:"images"`                                  // 图片数组
	Options      JSON           `gorm:"type:json" json:"options"`                                 // 可选规格，如 {"size":["S","M"]}
	Price        Money          `gorm:"type:decimal(20,2);not null;default:0;index" json:"price"` // 价格
	CountInStock int            `gorm:"not null;default:0" json:"count_in_stock"`                 // 库存
	Rating       float64        `gorm:"not null;default:0;index" json:"rating"`                   // 平均评分
	NumReviews   int            `gorm:"not null;default:0;index" json:"num_reviews"`              // 评价数
	IsActive     bool           `gorm:"default:true;index" json:"is_active"`                      // 是否上架
	IsFeatured   bool           `gorm:"default:false;index" json:"is_featured"`                   // 是否推荐
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间

	Reviews []Review `gorm:"foreignKey:ProductID" json:"reviews,omitempty"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// PrimaryImage 返回首图
func (p *Product) PrimaryImage() string {
	if p == nil || len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
