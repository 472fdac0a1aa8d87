package admin

import (
	"net/url"
	"strings"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/logger"

	"github.com/gin-gonic/gin"
)

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

// authzPolicyPayload object 为路由模板，例如 /admin/products/:id
type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// ListAuthzRoles 全部角色，含内置角色
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.Roles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_failed", err)
		return
	}
	response.Success(c, roles)
}

// CreateAuthzRole 新建空角色，返回带 role: 前缀的规范名
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondMapped(c, err, authzErrorRules, "error.authz_failed")
		return
	}
	logger.Infow("admin_authz_role_created", "operator", currentUsername(c), "role", role)
	response.Success(c, gin.H{"role": role})
}

// GetAuthzRolePolicies 角色直接拥有的策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	policies, err := h.AuthzService.RolePolicies(decodeRoleParam(c.Param("role")))
	if err != nil {
		respondMapped(c, err, authzErrorRules, "error.authz_failed")
		return
	}
	response.Success(c, policies)
}

func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	h.changeAuthzPolicy(c, "admin_authz_policy_granted", h.AuthzService.Grant)
}

func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	h.changeAuthzPolicy(c, "admin_authz_policy_revoked", h.AuthzService.Revoke)
}

// changeAuthzPolicy 授权与撤销共用的绑定、审计日志流程
func (h *Handler) changeAuthzPolicy(c *gin.Context, event string, apply func(role, object, action string) error) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := apply(req.Role, req.Object, req.Action); err != nil {
		respondMapped(c, err, authzErrorRules, "error.authz_failed")
		return
	}
	logger.Infow(event,
		"operator", currentUsername(c),
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)
	response.Success(c, nil)
}

// decodeRoleParam 前端会把 role:viewer 转义成 role%3Aviewer
func decodeRoleParam(raw string) string {
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return strings.TrimSpace(raw)
}
