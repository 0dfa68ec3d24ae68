package cachectrl

import (
	"github.com/gofiber/fiber/v2"
)

// Revalidate tags the response with version as a weak ETag. It reports true
// after answering 304 when the client already holds that version.
func Revalidate(ctx *fiber.Ctx, version string) bool {
	if version == "" {
		OptOut(ctx)
		return false
	}
	etag := `W/"` + version + `"`
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderETag, etag)
	if ctx.Get(fiber.HeaderIfNoneMatch) == etag {
		ctx.Status(fiber.StatusNotModified)
		return true
	}
	return false
}

func OptOut(ctx *fiber.Ctx) {
	ctx.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	ctx.Set(fiber.HeaderPragma, "no-cache")
	ctx.Set(fiber.HeaderExpires, "0")
}
