package middleware

import (
	"strings"

	"elena-license-engine/internal/service"
	"elena-license-engine/internal/util"

	"github.com/gofiber/fiber/v2"
)

// Auth validates the Bearer session token issued at activation and
// stores its claims in the request context.
func Auth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing session token",
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid authorization format",
			})
		}

		claims, err := util.ValidateToken(tokenParts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid session token",
			})
		}

		c.Locals("machineID", claims.MachineID)
		c.Locals("master", claims.Master)
		return c.Next()
	}
}

// MasterOnly admits only sessions running under the master key. The
// token's master claim must agree with the engine's live state, so a
// lock or a re-activation under an ordinary key closes the console.
func MasterOnly(engine *service.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		master, ok := c.Locals("master").(bool)
		if !ok || !master || !engine.IsMasterSession() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "master session required",
			})
		}

		return c.Next()
	}
}
