package public

import (
	"strings"

	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 创建订单请求
// items 为空时从购物车结算，cart_item_ids 为空表示整车结算。
type CreateOrderRequest struct {
	Items           []service.CreateOrderItem `json:"items"`
	CartItemIDs     []uint                    `json:"cart_item_ids"`
	ShippingAddress models.ShippingAddress    `json:"shipping_address"`
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.Create(c.Request.Context(), service.CreateOrderInput{
		UserID:      uid,
		Items:       req.Items,
		CartItemIDs: req.CartItemIDs,
		Shipping:    req.ShippingAddress,
	})
	if err != nil {
		respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "error.order_create_failed")
		return
	}
	response.Success(c, order)
}

// ListOrders 当前用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)

	orders, total, err := h.OrderService.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, orders, handlershared.BuildPagination(page, pageSize, total))
}

// GetOrder 订单详情，仅限下单用户本人
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.GetByUser(orderID, uid)
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, order)
}

// CreateCheckout 为待支付订单创建收银台会话
func (h *Handler) CreateCheckout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	result, err := h.PaymentService.CreateCheckout(c.Request.Context(), orderID, uid)
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.payment_create_failed")
		return
	}
	response.Success(c, result)
}
