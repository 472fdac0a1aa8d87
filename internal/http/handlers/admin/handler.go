package admin

import "github.com/storefront-next/internal/provider"

// Handler 后台 /api/v1/admin 下的接口，登录态与权限由路由中间件校验
type Handler struct {
	*provider.Container
}

func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
