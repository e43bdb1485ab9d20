package auth

import (
	"github.com/gofiber/fiber/v2"
)

// OnlyRoles allows the request through when the authenticated role matches
// one of allowedRoles.
func OnlyRoles(customMessage string, allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing role information",
			})
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		if customMessage == "" {
			customMessage = "Forbidden: you are not authorized to access this resource"
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": customMessage,
		})
	}
}
