// Package cart 负责购物车行的合并与校验。
//
// 这里只处理内存中的行列表，持久化与并发由调用方的事务负责。
// 每次变更都以当前库存与价格为准重新校验。
package cart

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidQuantity 数量小于 1
	ErrInvalidQuantity = errors.New("cart quantity must be at least 1")
	// ErrInsufficientStock 数量超过当前库存
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrLineNotFound 购物车行不存在
	ErrLineNotFound = errors.New("cart line not found")
)

// Variant 规格属性，比较时与字段顺序无关
type Variant map[string]string

// Equal 深度比较，nil 与空 map 视为相等
func (v Variant) Equal(other Variant) bool {
	if len(v) != len(other) {
		return false
	}
	for k, val := range v {
		ov, ok := other[k]
		if !ok || ov != val {
			return false
		}
	}
	return true
}

// Key 规范化编码，键按字典序排列，空规格返回空串
func (v Variant) Key() string {
	if len(v) == 0 {
		return ""
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+v[k])
	}
	return strings.Join(parts, "&")
}

// Line 购物车行
type Line struct {
	ID        uint
	ProductID uint
	Variant   Variant
	Quantity  int
	UnitPrice decimal.Decimal
}

// Matches 判断是否为同一 (商品, 规格) 组合
func (l Line) Matches(productID uint, variant Variant) bool {
	return l.ProductID == productID && l.Variant.Equal(variant)
}

// Incoming 待加入的商品
type Incoming struct {
	ProductID uint
	Quantity  int
	Variant   Variant
}

// Stock 商品当前库存与价格
type Stock struct {
	Available int
	Price     decimal.Decimal
}

// Result 变更结果，Index 指向被修改或新增的行
type Result struct {
	Lines  []Line
	Index  int
	Merged bool
}

// Line 返回被修改的行
func (r Result) Line() Line {
	return r.Lines[r.Index]
}

// Add 将商品合并进购物车
// 已有相同组合时累加数量并刷新价格快照，超出库存则整体拒绝，不做截断。
func Add(lines []Line, in Incoming, stock Stock) (Result, error) {
	if in.Quantity < 1 {
		return Result{}, ErrInvalidQuantity
	}
	next := clone(lines)
	for i := range next {
		if !next[i].Matches(in.ProductID, in.Variant) {
			continue
		}
		qty := next[i].Quantity + in.Quantity
		if qty > stock.Available {
			return Result{}, ErrInsufficientStock
		}
		next[i].Quantity = qty
		next[i].UnitPrice = stock.Price
		return Result{Lines: next, Index: i, Merged: true}, nil
	}

	if in.Quantity > stock.Available {
		return Result{}, ErrInsufficientStock
	}
	next = append(next, Line{
		ProductID: in.ProductID,
		Variant:   cloneVariant(in.Variant),
		Quantity:  in.Quantity,
		UnitPrice: stock.Price,
	})
	return Result{Lines: next, Index: len(next) - 1}, nil
}

// SetQuantity 直接设置某行数量，需满足 1 <= quantity <= 库存
func SetQuantity(lines []Line, lineID uint, quantity int, stock Stock) (Result, error) {
	idx := indexOf(lines, lineID)
	if idx < 0 {
		return Result{}, ErrLineNotFound
	}
	if quantity < 1 {
		return Result{}, ErrInvalidQuantity
	}
	if quantity > stock.Available {
		return Result{}, ErrInsufficientStock
	}
	next := clone(lines)
	next[idx].Quantity = quantity
	next[idx].UnitPrice = stock.Price
	return Result{Lines: next, Index: idx}, nil
}

// Remove 删除指定行
func Remove(lines []Line, lineID uint) ([]Line, error) {
	idx := indexOf(lines, lineID)
	if idx < 0 {
		return nil, ErrLineNotFound
	}
	next := make([]Line, 0, len(lines)-1)
	next = append(next, lines[:idx]...)
	next = append(next, lines[idx+1:]...)
	return next, nil
}

// Find 按行 ID 查找
func Find(lines []Line, lineID uint) (Line, bool) {
	idx := indexOf(lines, lineID)
	if idx < 0 {
		return Line{}, false
	}
	return lines[idx], true
}

func indexOf(lines []Line, lineID uint) int {
	for i := range lines {
		if lines[i].ID == lineID {
			return i
		}
	}
	return -1
}

func clone(lines []Line) []Line {
	next := make([]Line, len(lines), len(lines)+1)
	copy(next, lines)
	return next
}

func cloneVariant(v Variant) Variant {
	if len(v) == 0 {
		return nil
	}
	out := make(Variant, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}
