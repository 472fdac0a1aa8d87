// Package deal 实现限时优惠的价格与时间计算，均为纯函数。
package deal

import (
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SalePrice 计算活动价，结果不小于 0 并保留 2 位小数
// 负的折扣值按 0 处理；未知折扣类型返回原价。
func SalePrice(discountType string, value, price decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		value = decimal.Zero
	}

	var sale decimal.Decimal
	switch strings.ToLower(strings.TrimSpace(discountType)) {
	case constants.DealDiscountPercentage:
		sale = price.Mul(hundred.Sub(value)).Div(hundred)
	case constants.DealDiscountFixed:
		sale = price.Sub(value)
	default:
		sale = price
	}
	if sale.IsNegative() {
		sale = decimal.Zero
	}
	return sale.Round(2)
}

// IsValidDiscountType 校验折扣类型
func IsValidDiscountType(discountType string) bool {
	switch strings.ToLower(strings.TrimSpace(discountType)) {
	case constants.DealDiscountPercentage, constants.DealDiscountFixed:
		return true
	default:
		return false
	}
}

// IsCurrentlyActive 活动开关打开且 now 位于 [start, end] 闭区间内
func IsCurrentlyActive(active bool, start, end, now time.Time) bool {
	return active && !now.Before(start) && !now.After(end)
}

// Remaining 剩余时间拆分
type Remaining struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// TimeRemaining 计算距结束的剩余时间，已结束时各分量均为 0
func TimeRemaining(end, now time.Time) Remaining {
	if now.After(end) {
		return Remaining{}
	}
	ms := end.Sub(now).Milliseconds()

	const (
		second = int64(1000)
		minute = 60 * second
		hour   = 60 * minute
		day    = 24 * hour
	)
	r := Remaining{Days: ms / day}
	ms %= day
	r.Hours = ms / hour
	ms %= hour
	r.Minutes = ms / minute
	ms %= minute
	r.Seconds = ms / second
	return r
}
