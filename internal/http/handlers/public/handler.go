package public

import "github.com/storefront-next/internal/provider"

// Handler 店铺前台接口：商品浏览、购物车、订单与支付回调
type Handler struct {
	*provider.Container
}

func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
