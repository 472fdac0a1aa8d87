package admin

import (
	"time"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"

	"github.com/gin-gonic/gin"
)

type authzSetAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

type authzAdminView struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	IsSuper     bool       `json:"is_super"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	Roles       []string   `json:"roles"`
}

// ListAuthzAdmins 后台账号及其角色
func (h *Handler) ListAuthzAdmins(c *gin.Context) {
	admins, err := h.AdminRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	views := make([]authzAdminView, 0, len(admins))
	for _, admin := range admins {
		roles, err := h.AuthzService.RolesOf(admin.ID)
		if err != nil {
			respondError(c, response.CodeInternal, "error.authz_failed", err)
			return
		}
		views = append(views, authzAdminView{
			ID:          admin.ID,
			Username:    admin.Username,
			IsSuper:     admin.IsSuper,
			LastLoginAt: admin.LastLoginAt,
			CreatedAt:   admin.CreatedAt,
			Roles:       roles,
		})
	}
	response.Success(c, views)
}

func (h *Handler) GetAuthzAdminRoles(c *gin.Context) {
	admin, ok := h.loadTargetAdmin(c)
	if !ok {
		return
	}
	h.respondAdminRoles(c, admin.ID)
}

// SetAuthzAdminRoles 整体替换角色，超级管理员只能由超级管理员调整
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	admin, ok := h.loadTargetAdmin(c)
	if !ok {
		return
	}
	if admin.IsSuper && !currentIsSuper(c) {
		respondError(c, response.CodeForbidden, "error.forbidden", nil)
		return
	}
	var req authzSetAdminRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.AssignRoles(admin.ID, req.Roles); err != nil {
		respondMapped(c, err, authzErrorRules, "error.authz_failed")
		return
	}
	logger.Infow("admin_authz_admin_roles_updated",
		"operator", currentUsername(c),
		"target_admin_id", admin.ID,
		"target_username", admin.Username,
		"roles", req.Roles,
	)
	h.respondAdminRoles(c, admin.ID)
}

// loadTargetAdmin 解析 :id 并加载账号，失败时已写响应
func (h *Handler) loadTargetAdmin(c *gin.Context) (*models.Admin, bool) {
	adminID, ok := parseUintParam(c, "id")
	if !ok {
		return nil, false
	}
	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return nil, false
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
		return nil, false
	}
	return admin, true
}

func (h *Handler) respondAdminRoles(c *gin.Context, adminID uint) {
	roles, err := h.AuthzService.RolesOf(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_failed", err)
		return
	}
	response.Success(c, roles)
}
