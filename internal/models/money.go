package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// moneyScale 店铺只处理两位小数的币种，入库与输出都按此截断
const moneyScale = 2

// Money 价格与订单金额，JSON 输出为定长小数字符串 "12.50"
type Money struct {
	decimal.Decimal
}

func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(moneyScale)}
}

// NewMoneyFromFloat 只给配置项和种子数据用
func NewMoneyFromFloat(amount float64) Money {
	return NewMoneyFromDecimal(decimal.NewFromFloat(amount))
}

// Times 单价乘数量
func (m Money) Times(quantity int) Money {
	return NewMoneyFromDecimal(m.Decimal.Mul(decimal.NewFromInt(int64(quantity))))
}

func (m Money) String() string {
	return m.Decimal.StringFixed(moneyScale)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 后台表单可能传数字也可能传字符串
func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" || len(b) == 0 {
		return nil
	}
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(b); err != nil {
		return err
	}
	*m = NewMoneyFromDecimal(amount)
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.Decimal.StringFixed(moneyScale), nil
}

func (m *Money) Scan(value interface{}) error {
	var amount decimal.Decimal
	if err := amount.Scan(value); err != nil {
		return err
	}
	*m = NewMoneyFromDecimal(amount)
	return nil
}
