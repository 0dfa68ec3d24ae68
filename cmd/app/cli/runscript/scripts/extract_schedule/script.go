package script_extract_schedule

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func run(ctx *cli.Context, deps CommandDeps, path string) error {
	log.Info().Str("path", path).Bool("parse", ctx.Bool("parse")).Msg("running script")

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read document")
	}

	result, err := deps.ScheduleService.ExtractFile(ctx.Context, filepath.Base(path), "", content, ctx.Bool("parse"))
	if err != nil {
		return err
	}
	if result.Error != "" {
		return cli.Exit(result.Error, 1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode result")
	}
	fmt.Fprintln(ctx.App.Writer, string(out))

	log.Info().Msg("script finished")
	return nil
}
