package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表，购物车、收藏夹与评价都以用户为聚合根
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                     // 主键
	Email        string         `gorm:"type:varchar(200);uniqueIndex;not null" json:"email"`      // 邮箱
	PasswordHash string         `gorm:"not null" json:"-"`                                        // 密码哈希
	Name         string         `gorm:"type:varchar(120);default:''" json:"name"`                 // 昵称
	Status       string         `gorm:"type:varchar(20);default:'active';index" json:"status"`    // 账号状态
	TokenVersion uint64         `gorm:"not null;default:0" json:"-"`                              // Token 版本（用于全量失效）
	LastLoginAt  *time.Time     `json:"last_login_at"`                                            // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
