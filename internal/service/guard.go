package service

import (
	"context"

	"github.com/go-redsync/redsync/v4"
	"github.com/rs/zerolog/log"

	"github.com/portyard/yardboard/internal/app/appconfig"
	"github.com/portyard/yardboard/internal/pkg/yderr"
)

// IngestGuard serializes workbook ingestion. Acquire fails fast with
// yderr.ErrIngestInProgress while another ingestion holds the guard.
type IngestGuard interface {
	Acquire(ctx context.Context) (release func(), err error)
}

type redsyncGuard struct {
	rs   *redsync.Redsync
	conf *appconfig.Config
}

func NewIngestGuard(rs *redsync.Redsync, conf *appconfig.Config) IngestGuard {
	return &redsyncGuard{rs: rs, conf: conf}
}

func (g *redsyncGuard) Acquire(ctx context.Context) (func(), error) {
	mutex := g.rs.NewMutex("mutex:yardboard:ingest",
		redsync.WithExpiry(g.conf.IngestLockTTL),
		redsync.WithTries(1),
	)
	if err := mutex.LockContext(ctx); err != nil {
		log.Info().
			Str("evt.name", "ingest.lock_busy").
			Err(err).
			Msg("rejecting upload while another ingestion is running")
		return nil, yderr.ErrIngestInProgress
	}
	return func() {
		if _, err := mutex.UnlockContext(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to release ingest lock")
		}
	}, nil
}
