package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// UpdateUserStatusRequest 更新用户状态请求
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminUserItem 管理端用户返回
type AdminUserItem struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	LastLoginAt string `json:"last_login_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func toAdminUserItem(user *models.User) AdminUserItem {
	item := AdminUserItem{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Status:    user.Status,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if user.LastLoginAt != nil {
		item.LastLoginAt = user.LastLoginAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return item
}

// GetAdminUsers 获取用户列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	users, total, err := h.UserAuthService.ListUsers(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}

	items := make([]AdminUserItem, 0, len(users))
	for i := range users {
		items = append(items, toAdminUserItem(&users[i]))
	}
	response.SuccessWithPage(c, items, handlershared.BuildPagination(page, pageSize, total))
}

// UpdateAdminUserStatus 启用或禁用用户，禁用后该用户所有 token 立即失效
func (h *Handler) UpdateAdminUserStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAuthService.SetUserStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondMapped(c, err, userErrorRules, "error.user_update_failed")
		return
	}
	requestLog(c).Infow("admin_user_status_updated", "user_id", user.ID, "status", user.Status, "operator", currentUsername(c))
	response.Success(c, toAdminUserItem(user))
}

func parseQueryUint(raw string) (uint, bool) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}
