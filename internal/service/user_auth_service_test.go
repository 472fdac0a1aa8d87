package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/repository"
)

func newUserAuthForTest(t *testing.T) *UserAuthService {
	t.Helper()
	db := openServiceTestDB(t)
	cfg := &config.Config{
		UserJWT: config.JWTConfig{SecretKey: "user-secret", ExpireHours: 24, RememberMeExpireHours: 720},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireNumber: true},
		},
	}
	return NewUserAuthService(cfg, repository.NewUserRepository(db), nil)
}

func TestUserRegisterAndLogin(t *testing.T) {
	svc := newUserAuthForTest(t)
	ctx := context.Background()

	user, token, _, err := svc.Register(ctx, RegisterInput{Email: " Ada@Example.com ", Password: "analytical1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "ada@example.com" || user.Name != "ada" {
		t.Fatalf("unexpected user: %+v", user)
	}
	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, _, err := svc.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "analytical1"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if _, _, _, err := svc.Register(ctx, RegisterInput{Email: "bob@example.com", Password: "short"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if _, _, _, err := svc.Register(ctx, RegisterInput{Email: "not-an-email", Password: "analytical1"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	if _, _, _, err := svc.Login(ctx, "ada@example.com", "wrong-pass1", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	_, _, shortExpiry, err := svc.Login(ctx, "ADA@example.com", "analytical1", false)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	_, _, longExpiry, err := svc.Login(ctx, "ada@example.com", "analytical1", true)
	if err != nil {
		t.Fatalf("remember-me login failed: %v", err)
	}
	if longExpiry.Sub(shortExpiry) < 24*time.Hour {
		t.Fatalf("remember-me token should live longer: short=%v long=%v", shortExpiry, longExpiry)
	}
}

func TestUserUpdateProfileBumpsTokenVersion(t *testing.T) {
	svc := newUserAuthForTest(t)
	ctx := context.Background()
	user, _, _, err := svc.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "analytical1", Name: "Ada"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	name := "Countess"
	if _, err := svc.UpdateProfile(ctx, user.ID, ProfileInput{Name: &name, OldPassword: "bad", NewPassword: "engine2024"}); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileInput{Name: &name, OldPassword: "analytical1", NewPassword: "engine2024"})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.Name != "Countess" || updated.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("unexpected profile: name=%s version=%d", updated.Name, updated.TokenVersion)
	}
	if _, _, _, err := svc.Login(ctx, "ada@example.com", "engine2024", false); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestDisabledUserCannotLogin(t *testing.T) {
	svc := newUserAuthForTest(t)
	ctx := context.Background()
	user, _, _, err := svc.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "analytical1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	disabled, err := svc.SetUserStatus(ctx, user.ID, constants.UserStatusDisabled)
	if err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if disabled.TokenVersion == user.TokenVersion {
		t.Fatalf("disabling should revoke existing tokens")
	}
	if _, _, _, err := svc.Login(ctx, "ada@example.com", "analytical1", false); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
	state, err := svc.ResolveAuthState(ctx, user.ID)
	if err != nil {
		t.Fatalf("resolve auth state failed: %v", err)
	}
	if state.Status != constants.UserStatusDisabled {
		t.Fatalf("unexpected state: %+v", state)
	}
}
