// Package rayid assigns every request a unique ray_id for tracing.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the ray_id.
const HeaderName = "X-Ray-ID"

// New creates the ray_id middleware. An incoming X-Ray-ID is honored so
// upstream proxies can stitch traces together; otherwise a fresh UUID is
// generated. The ID is stored in c.Locals("ray_id") where
// logger.WithRayID picks it up.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
