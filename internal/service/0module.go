package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/portyard/yardboard/internal/repo"
)

func Module() fx.Option {
	return fx.Module("service",
		fx.Provide(
			func(s *repo.State) StateStore { return s },
			NewCloud,
			NewSync,
			NewIngestGuard,
			NewArchive,
			NewTextExtractor,
			NewBlockConfig,
			NewYard,
			NewSchedule,
			NewRequest,
			NewStatistics,
			NewReset,
			NewHealth,
		),
		fx.Invoke(RestoreState),
	)
}

type restorer interface {
	Restore(ctx context.Context) error
}

type RestoreDeps struct {
	fx.In

	Lifecycle fx.Lifecycle
	Blocks    *BlockConfig
	Yard      *Yard
	Schedule  *Schedule
	Requests  *Request
	Sync      *Sync
	Archive   *Archive
}

// RestoreState loads persisted state on start and drains background sync and
// archive work on stop.
func RestoreState(deps RestoreDeps) {
	deps.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for name, r := range map[string]restorer{
				"blocks":   deps.Blocks,
				"yard":     deps.Yard,
				"schedule": deps.Schedule,
				"requests": deps.Requests,
			} {
				if err := r.Restore(ctx); err != nil {
					log.Warn().
						Str("evt.name", "state.restore_failed").
						Str("component", name).
						Err(err).
						Msg("failed to restore persisted state, starting empty")
				}
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			deps.Sync.Flush()
			deps.Archive.Wait()
			return nil
		},
	})
}
