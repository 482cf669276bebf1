package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with a correlation ID: an incoming header
// value is reused, otherwise a fresh UUID is generated. The ID is echoed in
// the response and stored in locals for log lines.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals("requestId", id)
		c.Set(requestIDHeader, id)
		return c.Next()
	}
}
