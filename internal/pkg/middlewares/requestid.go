package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/portyard/yardboard/internal/pkg/flog"
)

const ContextKeyRequestID = "yardboard:request_id"

// RequestID re-exposes the id injected by the logger chain through ctx.Locals.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := flog.IDFromFiberCtx(c); ok {
			c.Locals(ContextKeyRequestID, id.String())
		}
		return c.Next()
	}
}
