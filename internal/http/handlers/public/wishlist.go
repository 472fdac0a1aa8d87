package public

import (
	"errors"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetWishlist 收藏的商品列表
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	products, err := h.WishlistService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.wishlist_fetch_failed", err)
		return
	}
	response.Success(c, products)
}

// ToggleWishlist 收藏/取消收藏
func (h *Handler) ToggleWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "productId")
	if !ok {
		return
	}

	added, err := h.WishlistService.Toggle(uid, productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.wishlist_update_failed", err)
		return
	}
	response.Success(c, gin.H{
		"product_id": productID,
		"added":      added,
	})
}
