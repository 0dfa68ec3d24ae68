package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/portyard/yardboard/cmd/app/cli/runscript"
	"github.com/portyard/yardboard/cmd/app/server"
	"github.com/portyard/yardboard/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "yardboard",
		Description: "Container yard dashboard backend: ingests yard workbooks and vessel schedules, serves occupancy and capacity analysis. Built with Go, fiber, bun and go.uber.org/fx.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			runscript.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
