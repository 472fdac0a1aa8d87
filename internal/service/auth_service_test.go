package service

import (
	"context"
	"errors"
	"testing"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

func TestAdminLoginAndChangePassword(t *testing.T) {
	db := openServiceTestDB(t)
	hash, err := HashPassword("admin-pass1")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{Username: "root", PasswordHash: hash, IsSuper: true}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	cfg := &config.Config{JWT: config.JWTConfig{SecretKey: "admin-secret", ExpireHours: 2}}
	svc := NewAuthService(cfg, repository.NewAdminRepository(db), nil)
	ctx := context.Background()

	if _, _, _, err := svc.Login(ctx, "root", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	logged, token, _, err := svc.Login(ctx, "root", "admin-pass1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.LastLoginAt == nil {
		t.Fatalf("expected last login time")
	}
	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Username != "root" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if err := svc.ChangePassword(ctx, admin.ID, "wrong", "new-pass2"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if err := svc.ChangePassword(ctx, admin.ID, "admin-pass1", "new-pass2"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	state, err := svc.ResolveAuthState(ctx, admin.ID)
	if err != nil {
		t.Fatalf("resolve state failed: %v", err)
	}
	if state.TokenVersion != claims.TokenVersion+1 || !state.IsSuper {
		t.Fatalf("token version should be bumped: %+v", state)
	}
}

func TestParseJWTRejectsOtherSecret(t *testing.T) {
	admin := &models.Admin{ID: 1, Username: "root"}
	issuer := NewAuthService(&config.Config{JWT: config.JWTConfig{SecretKey: "one"}}, nil, nil)
	token, _, err := issuer.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	verifier := NewAuthService(&config.Config{JWT: config.JWTConfig{SecretKey: "two"}}, nil, nil)
	if _, err := verifier.ParseJWT(token); err == nil {
		t.Fatalf("token signed with another secret must be rejected")
	}
}
