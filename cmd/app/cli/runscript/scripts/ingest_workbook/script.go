package script_ingest_workbook

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func run(ctx *cli.Context, deps CommandDeps, path string) error {
	log.Info().Str("path", path).Msg("running script")

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read workbook")
	}

	dataset, err := deps.YardService.Upload(ctx.Context, filepath.Base(path), content)
	if err != nil {
		return errors.Wrap(err, "failed to ingest workbook")
	}

	log.Info().
		Str("version", dataset.Version).
		Int("containers", dataset.Containers).
		Int("created", dataset.Stats.CreatedContainers).
		Int("skipped", dataset.Stats.SkippedRows).
		Int("vessels", len(dataset.Vessels)).
		Msg("script finished")

	return nil
}
