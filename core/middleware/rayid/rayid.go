package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header carries the ray ID on requests and responses.
	Header = "X-Ray-ID"
	// LocalsKey is where the ray ID is stored on the Fiber context.
	LocalsKey = "ray_id"
)

// New returns a middleware assigning every request a ray ID. An incoming
// X-Ray-ID header is kept so callers can correlate across services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}
