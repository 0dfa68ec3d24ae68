package httpserver

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/helmet/v2"
	"github.com/rs/zerolog/log"

	"github.com/portyard/yardboard/internal/app/appconfig"
	"github.com/portyard/yardboard/internal/pkg/bininfo"
	"github.com/portyard/yardboard/internal/pkg/middlewares"
	"github.com/portyard/yardboard/internal/pkg/observability"
)

var registerPromOnce sync.Once

func Create(conf *appconfig.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Yardboard",
		ServerHeader: fmt.Sprintf("Yardboard/%s", bininfo.Version),
		// uploads of large workbooks and PDFs take a while over slow links
		ReadTimeout:    time.Minute,
		WriteTimeout:   time.Second * 30,
		ReadBufferSize: 8192,
		BodyLimit:      conf.MaxUploadSize,
		// allow possibility for graceful shutdown, otherwise app#Shutdown() will block forever
		IdleTimeout:  conf.HTTPServerShutdownTimeout,
		ProxyHeader:  fiber.HeaderXForwardedFor,
		ErrorHandler: ErrorHandler,
		Immutable:    true,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	app.Use(favicon.New())
	app.Use(fibersentry.New(fibersentry.Config{
		Repanic: true,
		Timeout: time.Second * 5,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET, POST, PUT, DELETE, OPTIONS",
		AllowHeaders:  "Content-Type, Authorization, X-Requested-With, sentry-trace",
		ExposeHeaders: "Content-Type, " + middlewares.RequestIDHeader,
	}))
	middlewares.Logger(app)
	// the logger chain owns the request id; RequestID copies it into ctx.Locals
	app.Use(middlewares.RequestID())

	app.Use(helmet.New(helmet.Config{
		HSTSMaxAge:       31356000,
		ReferrerPolicy:   "strict-origin-when-cross-origin",
		PermissionPolicy: "interest-cohort=()",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			buf := make([]byte, 4096)
			buf = buf[:runtime.Stack(buf, false)]
			log.Error().Msgf("panic: %v\n%s\n", e, buf)
		},
	}))
	registerPromOnce.Do(func() {
		fiberprom := fiberprometheus.New(observability.ServiceName)
		fiberprom.RegisterAt(app, "/metrics")
		app.Use(fiberprom.Middleware)
	})

	if conf.DevMode {
		log.Info().Msg("Running in DEV mode")
		app.Use(pprof.New())
	}

	return app
}
