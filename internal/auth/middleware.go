package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/loyalty"
	"github.com/spec-kit/coffee-passport/internal/repository"
	apperrors "github.com/spec-kit/coffee-passport/pkg/util"
)

const adminKey = "auth_admin"

// AdminMiddleware validates bearer tokens and loads the admin account.
type AdminMiddleware struct {
	tokens *TokenManager
	admins repository.AdminRepository
}

// NewAdminMiddleware constructs middleware.
func NewAdminMiddleware(tokens *TokenManager, admins repository.AdminRepository) *AdminMiddleware {
	return &AdminMiddleware{tokens: tokens, admins: admins}
}

// Handle enforces admin authentication for protected routes.
func (m *AdminMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	admin, err := m.admins.GetByID(c.Context(), claims.AdminID)
	if err != nil {
		if errors.Is(err, loyalty.ErrNotFound) {
			return apperrors.NewUnauthorized("admin not found")
		}
		return apperrors.MapError(err)
	}
	if !admin.Active {
		return apperrors.NewForbidden("admin account disabled")
	}

	c.Locals(adminKey, admin)
	return c.Next()
}

// AdminFromContext retrieves the authenticated admin.
func AdminFromContext(c *fiber.Ctx) (*domain.Admin, bool) {
	val := c.Locals(adminKey)
	if val == nil {
		return nil, false
	}
	admin, ok := val.(*domain.Admin)
	return admin, ok
}
