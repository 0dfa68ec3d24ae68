package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/portyard/yardboard/internal/repo"
)

// StateStore is the local key-value store behind every stateful service.
// Load returns repo.ErrStateNotFound for keys that were never saved.
type StateStore interface {
	Load(ctx context.Context, key string, dest any) error
	Save(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

var _ StateStore = (*repo.State)(nil)

// loadState decodes key into dest. A missing key leaves dest untouched and is not an error.
func loadState(ctx context.Context, store StateStore, key string, dest any) (bool, error) {
	err := store.Load(ctx, key, dest)
	if errors.Is(err, repo.ErrStateNotFound) {
		return false, nil
	} else if err != nil {
		return false, errors.Wrapf(err, "failed to load state %q", key)
	}
	return true, nil
}

// saveState persists value under key. Failures are logged only: the in-memory
// state stays authoritative until the next successful save.
func saveState(ctx context.Context, store StateStore, key string, value any) {
	if err := store.Save(ctx, key, value); err != nil {
		log.Error().
			Str("evt.name", "state.save_failed").
			Str("key", key).
			Err(err).
			Msg("failed to persist local state")
	}
}
