package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/foxxcyber/notes-bridge/internal/config"
	"github.com/foxxcyber/notes-bridge/internal/models"
)

// TokenRequired checks for a valid HS256 bearer token signed with JWT_SECRET.
// When no secret is configured every request passes.
func TokenRequired(cfg *config.Config) fiber.Handler {
	if cfg.JWTSecret == "" {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	secret := []byte(cfg.JWTSecret)

	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "missing authorization header")
		}

		// Check for Bearer prefix
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(c, "invalid authorization format")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			// Validate signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid signing method")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals("token_subject", claims.Subject)

		return c.Next()
	}
}

// GetSubject extracts the token subject from the context
func GetSubject(c *fiber.Ctx) string {
	if sub, ok := c.Locals("token_subject").(string); ok {
		return sub
	}
	return ""
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
		Error: message,
	})
}
