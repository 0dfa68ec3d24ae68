package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/portyard/yardboard/internal/pkg/flog"
)

const RequestIDHeader = "X-Yardboard-Request-ID"

func Logger(app *fiber.App) {
	Chained(
		app,
		injectLogger(),
		flog.RequestIDHandler("request_id", RequestIDHeader),
		flog.RemoteAddrHandler("ip"),
		flog.MethodHandler("method"),
		flog.URLHandler("url"),
		flog.UserAgentHandler("user_agent"),
		requestLogger(),
	)
}

func injectLogger() fiber.Handler {
	return flog.NewHandlerMiddleware(log.With().Logger())
}

func requestLogger() fiber.Handler {
	return flog.AccessHandler(func(ctx *fiber.Ctx, duration time.Duration) {
		flog.FromFiberCtx(ctx).Info().
			Str("component", "httpreq").
			Int("status", ctx.Response().StatusCode()).
			Int("size", len(ctx.Response().Body())).
			Dur("duration", duration).
			Msg("received request")
	})
}
