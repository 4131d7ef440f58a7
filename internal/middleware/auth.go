package middleware

import (
	"strings"

	"github.com/collabroomhq/collabroom-backend/internal/httpx"
	"github.com/collabroomhq/collabroom-backend/internal/token"
	"github.com/gofiber/fiber/v2"
)

// AccessTokenCookie carries the access token for browser clients; the
// WebSocket handshake relies on it too, so the socket layer can reuse the
// same verifier without a separate login step.
const AccessTokenCookie = "cr_access"

// AuthRequired verifies the access token from the Authorization header or
// the access cookie and stores the claims in the request context.
func AuthRequired(verifier *token.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var tokenString string
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return httpx.Unauthorized(c, "invalid_authorization", "Invalid authorization format")
			}
			tokenString = parts[1]
		} else {
			tokenString = c.Cookies(AccessTokenCookie)
		}

		if tokenString == "" {
			return httpx.Unauthorized(c, "missing_access_token", "Missing access token")
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			return httpx.Unauthorized(c, "invalid_access_token", "Invalid or expired token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}
