package catalog

// Filter 声明式商品筛选条件
type Filter struct {
	Keyword   string
	Category  string
	PriceMin  *float64
	PriceMax  *float64
	MinRating *float64
	Sort      SortKey
}

// BuildFilter 由归一化参数构建筛选条件
func BuildFilter(q Query) Filter {
	f := Filter{
		PriceMin:  q.PriceMin,
		PriceMax:  q.PriceMax,
		MinRating: q.Rating,
		Sort:      q.Sort,
	}
	if q.Keyword != nil {
		f.Keyword = *q.Keyword
	}
	if q.Category != nil {
		f.Category = *q.Category
	}
	if f.Sort == "" {
		f.Sort = SortNewest
	}
	return f
}

// HasKeyword 是否包含关键词条件
func (f Filter) HasKeyword() bool {
	return f.Keyword != ""
}

// OrderClauses 返回排序子句，末尾追加 id 保证分页稳定
// 子句均来自固定白名单，不拼接用户输入。
func (f Filter) OrderClauses() []string {
	switch f.Sort {
	case SortPriceAsc:
		return []string{"price ASC", "id ASC"}
	case SortPriceDesc:
		return []string{"price DESC", "id DESC"}
	case SortRatingDesc:
		return []string{"rating DESC", "id DESC"}
	case SortPopular:
		return []string{"num_reviews DESC", "rating DESC", "id DESC"}
	default:
		return []string{"created_at DESC", "id DESC"}
	}
}

// TotalPages 计算总页数，空结果也返回 1
func TotalPages(total int64, limit int) int {
	if limit < 1 {
		limit = 1
	}
	if total <= 0 {
		return 1
	}
	pages := (total + int64(limit) - 1) / int64(limit)
	return int(pages)
}
