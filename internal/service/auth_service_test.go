package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/coffee-passport/internal/auth"
	"github.com/spec-kit/coffee-passport/internal/config"
	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/repository"
)

func newTestAuthService(t *testing.T) (*AuthService, *domain.Admin) {
	t.Helper()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
		},
	}
	admins := repository.NewMemoryAdminRepository()

	hash, err := auth.HashPassword("hunter2", cfg.Auth.BcryptCost)
	require.NoError(t, err)
	admin := &domain.Admin{Name: "Owner", Email: "owner@example.com", PasswordHash: hash, Active: true}
	require.NoError(t, admins.Create(context.Background(), admin))

	return NewAuthService(cfg, admins), admin
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	admin, token, _, err := svc.Login(context.Background(), "owner@example.com", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.AdminID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, _, _, err := svc.Login(ctx, "owner@example.com", "wrong")
	assert.Error(t, err)

	_, _, _, err = svc.Login(ctx, "nobody@example.com", "hunter2")
	assert.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	svc, admin := newTestAuthService(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, admin.ID, "wrong", "newpass")
	assert.Error(t, err)

	require.NoError(t, svc.ChangePassword(ctx, admin.ID, "hunter2", "newpass"))

	_, _, _, err = svc.Login(ctx, "owner@example.com", "newpass")
	assert.NoError(t, err)
	_, _, _, err = svc.Login(ctx, "owner@example.com", "hunter2")
	assert.Error(t, err)
}
