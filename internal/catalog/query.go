// Package catalog 将商品列表的 HTTP 查询参数解析为类型化的筛选条件。
//
// 解析宽松：无法识别的数值参数直接丢弃，不会返回错误。
package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/storefront-next/internal/constants"
)

// UnboundedPrice 价格区间无上限时使用的上界
const UnboundedPrice = float64(math.MaxInt64)

// SortKey 商品排序方式
type SortKey string

// 支持的排序方式
const (
	SortPriceAsc   SortKey = constants.SortPriceAsc
	SortPriceDesc  SortKey = constants.SortPriceDesc
	SortRatingDesc SortKey = constants.SortRatingDesc
	SortNewest     SortKey = constants.SortNewest
	SortPopular    SortKey = constants.SortPopular
)

// ParseSort 解析排序参数，未知值回落到 newest
func ParseSort(raw string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(raw))) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	case SortRatingDesc:
		return SortRatingDesc
	case SortPopular:
		return SortPopular
	default:
		return SortNewest
	}
}

// Query 归一化后的目录查询参数，指针字段为 nil 表示未提供
type Query struct {
	Keyword  *string
	Category *string
	PriceMin *float64
	PriceMax *float64
	Rating   *float64
	Page     int
	Limit    int
	Sort     SortKey
}

// ParseQuery 解析原始查询参数
func ParseQuery(values url.Values) Query {
	q := Query{
		Page:  constants.CatalogDefaultPage,
		Limit: constants.CatalogDefaultLimit,
		Sort:  ParseSort(values.Get("sort")),
	}

	// keyword 优先于 search
	if kw := optionalString(values.Get("keyword")); kw != nil {
		q.Keyword = kw
	} else {
		q.Keyword = optionalString(values.Get("search"))
	}
	q.Category = optionalString(values.Get("category"))

	if raw := strings.TrimSpace(values.Get("priceRange")); raw != "" {
		q.PriceMin, q.PriceMax = parsePriceRange(raw)
	} else {
		q.PriceMin = parseNumber(values.Get("priceMin"))
		q.PriceMax = parseNumber(values.Get("priceMax"))
	}
	q.Rating = parseNumber(values.Get("rating"))

	if page, ok := parsePositiveInt(values.Get("page")); ok {
		q.Page = page
	}
	if limit, ok := parsePositiveInt(values.Get("limit")); ok {
		q.Limit = limit
	}
	if q.Limit > constants.CatalogMaxLimit {
		q.Limit = constants.CatalogMaxLimit
	}
	return q
}

// Offset 返回分页偏移量
func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// parsePriceRange 解析 "min-max" 或单个数值
// 单个数值表示下限，上限为 UnboundedPrice。
func parsePriceRange(raw string) (*float64, *float64) {
	idx := strings.Index(raw, "-")
	if idx < 0 {
		lower := parseNumber(raw)
		if lower == nil {
			return nil, nil
		}
		upper := UnboundedPrice
		return lower, &upper
	}
	return parseNumber(raw[:idx]), parseNumber(raw[idx+1:])
}

func parseNumber(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// parsePositiveInt 非数值返回 false；小于 1 的数值归一为 1
func parsePositiveInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	if v < 1 {
		v = 1
	}
	return v, true
}

func optionalString(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}
