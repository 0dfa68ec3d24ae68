package repo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/portyard/yardboard/internal/pkg/cache"
)

// Keys of the persisted local state.
const (
	StateKeyContainers   = "containers"
	StateKeyDataset      = "dataset"
	StateKeyRequests     = "requests"
	StateKeySchedule     = "schedule"
	StateKeyBlockConfigs = "block_configs"
	StateKeyScheduleText = "schedule_text"
	StateKeySelection    = "vessel_selection"
)

var AllStateKeys = []string{
	StateKeyContainers,
	StateKeyDataset,
	StateKeyRequests,
	StateKeySchedule,
	StateKeyBlockConfigs,
	StateKeyScheduleText,
	StateKeySelection,
}

var ErrStateNotFound = cache.ErrNotFound

// State is the local key-value store of this yard instance. Values never expire.
type State struct {
	set *cache.Set
}

func NewState(client *redis.Client) *State {
	return &State{set: cache.NewSet(client, "yardboard:state")}
}

// Load decodes the value under key into dest. ErrStateNotFound means the key was never saved.
func (s *State) Load(ctx context.Context, key string, dest any) error {
	return s.set.Get(ctx, key, dest)
}

func (s *State) Save(ctx context.Context, key string, value any) error {
	return errors.Wrapf(s.set.Set(ctx, key, value, time.Duration(0)), "failed to save state %q", key)
}

func (s *State) Delete(ctx context.Context, keys ...string) error {
	return s.set.Delete(ctx, keys...)
}
