package httpserver

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/redis/go-redis/v9"

	"github.com/portyard/yardboard/internal/app/appconfig"
	"github.com/portyard/yardboard/internal/pkg/fiberstore"
	"github.com/portyard/yardboard/internal/server/svr"
)

func CreateUploadLimiter(conf *appconfig.Config, client *redis.Client) svr.UploadLimiter {
	return svr.UploadLimiter(limiter.New(limiter.Config{
		Max:        conf.UploadRateLimit,
		Expiration: time.Minute,
		Storage:    fiberstore.NewRedis(client, "yardboard:limiter:upload"),
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":    "TOO_MANY_REQUESTS",
				"message": "Too many uploads from this client. Please wait a minute before uploading again.",
			})
		},
	}))
}
