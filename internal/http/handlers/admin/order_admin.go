package admin

import (
	"strings"

	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// AdminOrderListItem 管理端订单列表返回
type AdminOrderListItem struct {
	models.Order
	UserEmail string `json:"user_email,omitempty"`
	UserName  string `json:"user_name,omitempty"`
}

// AdminListOrders 管理端订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	var userID uint
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		if parsed, ok := parseQueryUint(raw); ok {
			userID = parsed
		}
	}

	orders, total, err := h.OrderService.ListForAdmin(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}

	users := map[uint]*models.User{}
	items := make([]AdminOrderListItem, 0, len(orders))
	for _, order := range orders {
		item := AdminOrderListItem{Order: order}
		if user := h.lookupOrderUser(users, order.UserID); user != nil {
			item.UserEmail = user.Email
			item.UserName = user.Name
		}
		items = append(items, item)
	}
	response.SuccessWithPage(c, items, handlershared.BuildPagination(page, pageSize, total))
}

// AdminGetOrder 管理端订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetForAdmin(id)
	if err != nil {
		respondMapped(c, err, orderErrorRules, "error.order_fetch_failed")
		return
	}
	item := AdminOrderListItem{Order: *order}
	if user := h.lookupOrderUser(map[uint]*models.User{}, order.UserID); user != nil {
		item.UserEmail = user.Email
		item.UserName = user.Name
	}
	response.Success(c, item)
}

// AdminDeliverOrder 标记订单已发货，仅已支付订单可操作
func (h *Handler) AdminDeliverOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.MarkDelivered(id)
	if err != nil {
		respondMapped(c, err, orderErrorRules, "error.order_update_failed")
		return
	}
	requestLog(c).Infow("admin_order_delivered", "order_id", order.ID, "operator", currentUsername(c))
	response.Success(c, order)
}

// lookupOrderUser 按用户 ID 查询并缓存在本次请求内
func (h *Handler) lookupOrderUser(seen map[uint]*models.User, userID uint) *models.User {
	if userID == 0 {
		return nil
	}
	if user, ok := seen[userID]; ok {
		return user
	}
	user, err := h.UserRepo.GetByID(userID)
	if err != nil {
		user = nil
	}
	seen[userID] = user
	return user
}
