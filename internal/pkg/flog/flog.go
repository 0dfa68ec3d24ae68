// Package flog provides a set of fiber.Ctx helpers for zerolog.
package flog

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FromFiberCtx gets the logger in the request's context.
func FromFiberCtx(r *fiber.Ctx) *zerolog.Logger {
	return log.Ctx(r.UserContext())
}

// NewHandlerMiddleware injects l into the request context.
func NewHandlerMiddleware(l zerolog.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// copy so that UpdateContext in later handlers does not race across requests
		scoped := l.With().Logger()
		ctx.SetUserContext(scoped.WithContext(ctx.UserContext()))
		return ctx.Next()
	}
}

// FieldHandler adds the value produced by fn as a string field of the request logger.
func FieldHandler(fieldKey string, fn func(ctx *fiber.Ctx) string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		l := zerolog.Ctx(ctx.UserContext())
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str(fieldKey, fn(ctx))
		})
		return ctx.Next()
	}
}

func URLHandler(fieldKey string) fiber.Handler {
	return FieldHandler(fieldKey, func(ctx *fiber.Ctx) string { return ctx.Path() })
}

func MethodHandler(fieldKey string) fiber.Handler {
	return FieldHandler(fieldKey, func(ctx *fiber.Ctx) string { return ctx.Method() })
}

func RemoteAddrHandler(fieldKey string) fiber.Handler {
	return FieldHandler(fieldKey, func(ctx *fiber.Ctx) string { return ctx.IP() })
}

func UserAgentHandler(fieldKey string) fiber.Handler {
	return FieldHandler(fieldKey, func(ctx *fiber.Ctx) string { return ctx.Get(fiber.HeaderUserAgent) })
}

type idKey struct{}

// IDFromFiberCtx returns the unique id associated to the *fiber.Ctx if any.
func IDFromFiberCtx(r *fiber.Ctx) (id xid.ID, ok bool) {
	if r == nil {
		return
	}
	return IDFromCtx(r.UserContext())
}

// IDFromCtx returns the unique id associated to the context if any.
func IDFromCtx(ctx context.Context) (id xid.ID, ok bool) {
	id, ok = ctx.Value(idKey{}).(xid.ID)
	return
}

// CtxWithID adds the given xid.ID to the context
func CtxWithID(ctx context.Context, id xid.ID) context.Context {
	return context.WithValue(ctx, idKey{}, id)
}

// RequestIDHandler assigns a request id, logs it under fieldKey and echoes it
// in headerName when that is not empty.
func RequestIDHandler(fieldKey, headerName string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, ok := IDFromFiberCtx(ctx)
		if !ok {
			id = xid.New()
			ctx.SetUserContext(CtxWithID(ctx.UserContext(), id))
		}
		if fieldKey != "" {
			FromFiberCtx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str(fieldKey, id.String())
			})
		}
		if headerName != "" {
			ctx.Set(headerName, id.String())
		}
		return ctx.Next()
	}
}

// AccessHandler returns a handler that call f after each request.
func AccessHandler(f func(ctx *fiber.Ctx, duration time.Duration)) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		f(ctx, time.Since(start))
		return err
	}
}
