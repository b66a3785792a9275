package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired gates moderation endpoints. Accepts the shared secret in
// X-Admin-Secret or a minted admin JWT as a Bearer token. Any failure is
// unauthorized before the handler touches storage.
func AdminRequired(auth *services.AdminAuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if auth.IsAuthorizedSecret(c.Get("X-Admin-Secret")) {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if auth.IsAuthorizedToken(token) {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
}
