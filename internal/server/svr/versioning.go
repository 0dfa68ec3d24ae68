package svr

import (
	"github.com/gofiber/fiber/v2"
)

type V1 struct {
	fiber.Router
}

type Meta struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App) (*V1, *Meta) {
	v1 := app.Group("/api/v1")
	meta := app.Group("/api/_")

	return &V1{Router: v1}, &Meta{Router: meta}
}

// UploadLimiter rate limits the file upload endpoints.
type UploadLimiter fiber.Handler
