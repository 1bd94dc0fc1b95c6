package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"github.com/armkeys/new-stock-product-control/internal/db"
	"github.com/armkeys/new-stock-product-control/internal/models"
)

// AuthMiddleware handles operator authentication via sessions.
type AuthMiddleware struct {
	db *db.DB
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(database *db.DB) *AuthMiddleware {
	return &AuthMiddleware{db: database}
}

// RequireAuth ensures the user is authenticated, redirecting to /login if not.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return c.Redirect().To("/login")
	}

	userSub := sess.Get("user_sub")
	if userSub == nil {
		return c.Redirect().To("/login")
	}

	user, err := m.db.GetUserBySub(c.Context(), userSub.(string))
	if err != nil {
		sess.Destroy()
		return c.Redirect().To("/login")
	}

	c.Locals("user", user)
	return c.Next()
}

// RequireManager ensures the authenticated user holds the elevated catalog
// permission. Terminal 403, no partial effect.
func (m *AuthMiddleware) RequireManager(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if !user.CanManageCatalog() {
		return fiber.NewError(fiber.StatusForbidden, "you do not have catalog management permissions")
	}
	return c.Next()
}
