package public

import (
	"errors"
	"time"

	"github.com/storefront-next/internal/constants"
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Name           string                              `json:"name"`
	Email          string                              `json:"email" binding:"required"`
	Password       string                              `json:"password" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.verifyCaptcha(c, constants.CaptchaSceneRegister, req.CaptchaPayload) {
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrWeakPassword) {
			handlershared.RespondPasswordPolicyError(c, err)
			return
		}
		respondWithMappedError(c, err, registerErrorRules, response.CodeInternal, "error.register_failed")
		return
	}
	response.Success(c, userTokenResponse(user, token, expiresAt))
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email          string                              `json:"email" binding:"required"`
	Password       string                              `json:"password" binding:"required"`
	RememberMe     bool                                `json:"remember_me"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.verifyCaptcha(c, constants.CaptchaSceneLogin, req.CaptchaPayload) {
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(c.Request.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "error.login_failed")
		return
	}
	response.Success(c, userTokenResponse(user, token, expiresAt))
}

// GetCurrentUser 获取当前登录用户
func (h *Handler) GetCurrentUser(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(uid)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.user_fetch_failed")
		return
	}
	response.Success(c, userProfileResponse(user))
}

// UpdateProfileRequest 更新资料请求
// new_password 非空时必须同时提供 old_password，成功后旧 token 全部失效。
type UpdateProfileRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	OldPassword string  `json:"old_password"`
	NewPassword string  `json:"new_password"`
}

// UpdateCurrentUser 更新当前用户资料
func (h *Handler) UpdateCurrentUser(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(c.Request.Context(), uid, service.ProfileInput{
		Name:        req.Name,
		Email:       req.Email,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		if errors.Is(err, service.ErrWeakPassword) {
			handlershared.RespondPasswordPolicyError(c, err)
			return
		}
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.user_update_failed")
		return
	}
	response.Success(c, userProfileResponse(user))
}

func (h *Handler) verifyCaptcha(c *gin.Context, scene string, payload handlershared.CaptchaPayloadRequest) bool {
	err := h.CaptchaService.Verify(scene, payload.ToServicePayload())
	if err == nil {
		return true
	}
	if errors.Is(err, service.ErrCaptchaConfigInvalid) {
		respondError(c, response.CodeInternal, "error.captcha_config_invalid", err)
		return false
	}
	respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "error.captcha_invalid")
	return false
}

func userProfileResponse(user *models.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"name":          user.Name,
		"status":        user.Status,
		"last_login_at": user.LastLoginAt,
		"created_at":    user.CreatedAt,
	}
}

func userTokenResponse(user *models.User, token string, expiresAt time.Time) gin.H {
	return gin.H{
		"user":       userProfileResponse(user),
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	}
}
