package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Header carries the API key.
const Header = "X-API-Key"

// Config holds configuration for the auth middleware.
type Config struct {
	// ApiKey is the expected key. Empty disables the check.
	ApiKey string
	// Skip lists path prefixes served without a key.
	Skip []string
}

// New returns a middleware rejecting requests without the configured key.
// The key is read from the X-API-Key header or a Bearer token.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}
		for _, prefix := range cfg.Skip {
			if strings.HasPrefix(c.Path(), prefix) {
				return c.Next()
			}
		}

		key := c.Get(Header)
		if key == "" {
			key, _ = strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.ApiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or missing API key"})
		}
		return c.Next()
	}
}
