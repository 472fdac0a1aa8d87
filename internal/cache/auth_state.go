package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/storefront-next/internal/models"
)

// 鉴权快照过期后由中间件回源数据库重建
const authStateCacheTTL = 10 * time.Minute

// UserAuthState 顾客 token 校验所需的最小字段
type UserAuthState struct {
	UserID       uint   `json:"user_id"`
	Status       string `json:"status"`
	TokenVersion uint64 `json:"token_version"`
}

// AdminAuthState 后台 token 校验及 RBAC 旁路所需字段
type AdminAuthState struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	IsSuper      bool   `json:"is_super"`
}

func authStateKey(kind string, id uint) string {
	return "auth:" + kind + ":" + strconv.FormatUint(uint64(id), 10)
}

// BuildUserAuthState 用户为空时返回 nil
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	return &UserAuthState{UserID: user.ID, Status: user.Status, TokenVersion: user.TokenVersion}
}

// BuildAdminAuthState 管理员为空时返回 nil
func BuildAdminAuthState(admin *models.Admin) *AdminAuthState {
	if admin == nil {
		return nil
	}
	return &AdminAuthState{
		AdminID:      admin.ID,
		Username:     admin.Username,
		TokenVersion: admin.TokenVersion,
		IsSuper:      admin.IsSuper,
	}
}

func getAuthState[T any](ctx context.Context, s *Store, kind string, id uint) (*T, bool, error) {
	if id == 0 {
		return nil, false, nil
	}
	state := new(T)
	hit, err := s.GetJSON(ctx, authStateKey(kind, id), state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return state, true, nil
}

func (s *Store) GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	return getAuthState[UserAuthState](ctx, s, "user", userID)
}

func (s *Store) SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return s.SetJSON(ctx, authStateKey("user", state.UserID), state, authStateCacheTTL)
}

func (s *Store) GetAdminAuthState(ctx context.Context, adminID uint) (*AdminAuthState, bool, error) {
	return getAuthState[AdminAuthState](ctx, s, "admin", adminID)
}

func (s *Store) SetAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil || state.AdminID == 0 {
		return nil
	}
	return s.SetJSON(ctx, authStateKey("admin", state.AdminID), state, authStateCacheTTL)
}
