package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/portyard/yardboard/internal/app/appconfig"
	"github.com/portyard/yardboard/internal/app/appcontext"
	"github.com/portyard/yardboard/internal/controller"
	"github.com/portyard/yardboard/internal/infra"
	"github.com/portyard/yardboard/internal/pkg/logger"
	"github.com/portyard/yardboard/internal/repo"
	"github.com/portyard/yardboard/internal/server"
	"github.com/portyard/yardboard/internal/service"
	"github.com/portyard/yardboard/internal/workers/syncwkr"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration stay outside the fx graph since infra
	// constructors log before fx starts
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),

		fx.Invoke(infra.SentryInit),
	}

	if ctx.Env == appcontext.EnvServer {
		baseOpts = append(baseOpts,
			// Servers
			server.Module(),

			// Controllers are fx#Invoke functions too, so they register after
			// the singletons above have been initialized.
			controller.Module(),

			// Workers
			fx.Invoke(syncwkr.Start),
		)
	}

	baseOpts = append(baseOpts,
		// infra constructors retry their pings, so give them room
		fx.StartTimeout(30*time.Second),
		// fiber's Shutdown() honours IdleTimeout; this only guards a stuck shutdown
		fx.StopTimeout(5*time.Minute),
	)

	return append(baseOpts, additionalOpts...)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
