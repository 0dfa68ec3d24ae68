package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/portyard/yardboard/internal/app"
	"github.com/portyard/yardboard/internal/app/appcontext"
)

func Start(module fx.Option) *fx.App {
	a := app.New(appcontext.Declare(appcontext.EnvCLI), module)
	if err := a.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to start cli app")
	}
	return a
}
