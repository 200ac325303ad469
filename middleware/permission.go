package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// AdminOnly allows the request through only when the JWT role claim is
// ADMIN. Must run after JWTMiddleware.
func AdminOnly(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "ADMIN" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  false,
			"message": "You do not have permission to access this resource!",
			"data":    nil,
		})
	}
	return c.Next()
}
