package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gignest/gignest_backend/internal/utils"
)

// JWTFromCookie authenticates requests from the session cookie.
func JWTFromCookie(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies("gn_token")
		if tokenStr == "" {
			return fiber.ErrUnauthorized
		}

		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
