package middleware

import (
	"strings"

	"github.com/clouddrop/server/internal/apperr"
	"github.com/clouddrop/server/internal/services"
	"github.com/gofiber/fiber/v2"
)

// NewAuthMiddleware returns the gate protecting every file-catalog
// route. It extracts the bearer token, verifies it, resolves the user
// and attaches identity to the request; any failing step rejects the
// request with no retries.
func NewAuthMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return apperr.New(apperr.Unauthenticated, "Not authorized, no token provided")
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return apperr.New(apperr.Unauthenticated, "Invalid token format")
		}

		user, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}

		c.Locals("user_id", user.ID.Hex())
		c.Locals("email", user.Email)
		return c.Next()
	}
}
