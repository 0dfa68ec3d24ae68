package script_ingest_workbook

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/portyard/yardboard/internal/service"
)

type CommandDeps struct {
	fx.In

	YardService *service.Yard
}

func Command(depsFn func() (CommandDeps, func())) *cli.Command {
	return &cli.Command{
		Name:        "ingest_workbook",
		Description: "ingest a yard workbook from disk, replacing the current yard snapshot",
		ArgsUsage:   "<file>",
		Action: func(ctx *cli.Context) error {
			if ctx.Args().Len() != 1 {
				return cli.Exit("exactly one workbook path is required", 1)
			}
			deps, stop := depsFn()
			defer stop()
			return run(ctx, deps, ctx.Args().First())
		},
	}
}
