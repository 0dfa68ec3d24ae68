package httpserver

import (
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/portyard/yardboard/internal/pkg/middlewares"
	"github.com/portyard/yardboard/internal/pkg/yderr"
)

func HandleCustomError(ctx *fiber.Ctx, e *yderr.YardError) error {
	log.Warn().
		Err(e).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Msg(e.Message)

	body := fiber.Map{
		"code":    e.ErrorCode,
		"message": e.Message,
	}

	if e.Extras != nil && len(*e.Extras) > 0 {
		for k, v := range *e.Extras {
			body[k] = v
		}
	}

	return ctx.Status(e.StatusCode).JSON(body)
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var ye *yderr.YardError
	if errors.As(err, &ye) {
		return HandleCustomError(ctx, ye)
	}

	re := *yderr.ErrInternalError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		re.StatusCode = fe.Code
		re.ErrorCode = "UNKNOWN_ERROR"
		re.Message = fe.Message
	}

	log.Error().
		Stack().
		Err(err).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status", re.StatusCode).
		Msg("Internal Server Error")

	if re.StatusCode >= fiber.StatusInternalServerError {
		if hub := fibersentry.GetHubFromContext(ctx); hub != nil {
			hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
			if id, ok := ctx.Locals(middlewares.ContextKeyRequestID).(string); ok {
				hub.Scope().SetTag("request_id", id)
			}
			hub.Scope().SetContext("request", sentry.Context{"path": ctx.Path()})
			hub.CaptureException(err)
		}
	}

	return HandleCustomError(ctx, &re)
}
