package script_extract_schedule

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/portyard/yardboard/internal/service"
)

type CommandDeps struct {
	fx.In

	ScheduleService *service.Schedule
}

func Command(depsFn func() (CommandDeps, func())) *cli.Command {
	return &cli.Command{
		Name:        "extract_schedule",
		Description: "extract text from a schedule document and optionally parse it into the vessel schedule",
		ArgsUsage:   "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "parse",
				Usage: "parse the extracted text and replace the vessel schedule",
			},
		},
		Action: func(ctx *cli.Context) error {
			if ctx.Args().Len() != 1 {
				return cli.Exit("exactly one document path is required", 1)
			}
			deps, stop := depsFn()
			defer stop()
			return run(ctx, deps, ctx.Args().First())
		},
	}
}
