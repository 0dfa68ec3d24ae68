package runscript

import (
	"context"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/portyard/yardboard/cmd/app/cli"
	script_extract_schedule "github.com/portyard/yardboard/cmd/app/cli/runscript/scripts/extract_schedule"
	script_ingest_workbook "github.com/portyard/yardboard/cmd/app/cli/runscript/scripts/ingest_workbook"
)

// depsFn boots the app graph and hands back the populated deps. The returned
// stop func runs the graph's OnStop hooks so background work is drained.
func depsFn[T any]() func() (T, func()) {
	return func() (T, func()) {
		var deps T
		a := cliapp.Start(fx.Populate(&deps))
		return deps, func() { _ = a.Stop(context.Background()) }
	}
}

func Command() *cli.Command {
	return &cli.Command{
		Name:        "run-script",
		Description: "run maintenance go scripts",
		Subcommands: []*cli.Command{
			script_ingest_workbook.Command(depsFn[script_ingest_workbook.CommandDeps]()),
			script_extract_schedule.Command(depsFn[script_extract_schedule.CommandDeps]()),
		},
	}
}
