package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/coffee-passport/internal/auth"
	"github.com/spec-kit/coffee-passport/internal/config"
	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/repository"
)

// AuthService coordinates dashboard admin login and password changes.
type AuthService struct {
	admins     repository.AdminRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, admins repository.AdminRepository) *AuthService {
	return &AuthService{
		admins:     admins,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates an admin and issues a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Admin, string, time.Time, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	if !admin.Active {
		return nil, "", time.Time{}, errors.New("account disabled")
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(admin.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return admin, token, exp, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error {
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(admin.PasswordHash, currentPassword); err != nil {
		return errors.New("current password incorrect")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	admin.PasswordHash = hash
	return s.admins.Update(ctx, admin)
}
