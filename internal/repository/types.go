package repository

// ProductListFilter 后台商品列表过滤条件
type ProductListFilter struct {
	Page     int
	PageSize int
	Search   string
	Category string
}

// DealListFilter 优惠活动列表过滤条件
type DealListFilter struct {
	Page           int
	PageSize       int
	OnlyActiveFlag bool
	OnlyFeatured   bool
	OnlyFlashSale  bool
	Search         string
}

// PostListFilter 文章列表过滤条件
type PostListFilter struct {
	Page          int
	PageSize      int
	Search        string
	Tag           string
	OnlyPublished bool
}

// OrderListFilter 订单列表过滤条件
type OrderListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
	OrderNo  string
}

// UserListFilter 用户列表过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Status   string
}
