package service

import (
	"bytes"
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/xxh3"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/repo"
)

// Yard owns the current container snapshot. Every upload or cloud update
// replaces the whole snapshot.
type Yard struct {
	state   StateStore
	sync    *Sync
	guard   IngestGuard
	archive *Archive

	mu         sync.RWMutex
	containers []*model.Container
	dataset    *model.YardDataset
}

func NewYard(state StateStore, sync *Sync, guard IngestGuard, archive *Archive) *Yard {
	return &Yard{
		state:      state,
		sync:       sync,
		guard:      guard,
		archive:    archive,
		containers: []*model.Container{},
		dataset:    emptyDataset(),
	}
}

func emptyDataset() *model.YardDataset {
	return &model.YardDataset{Version: "", Vessels: []string{}, Stats: &model.ParseStats{}}
}

// DatasetVersion fingerprints a container collection.
func DatasetVersion(containers []*model.Container) string {
	if len(containers) == 0 {
		return ""
	}
	b, err := msgpack.Marshal(containers)
	if err != nil {
		log.Error().Err(err).Msg("failed to fingerprint containers")
		return strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return strconv.FormatUint(xxh3.Hash(b), 16)
}

// VesselsOf returns the sorted distinct vessel names carried by containers.
func VesselsOf(containers []*model.Container) []string {
	vessels := lo.Uniq(lo.FilterMap(containers, func(c *model.Container, _ int) (string, bool) {
		return c.Vessel.String, c.Vessel.Valid && c.Vessel.String != ""
	}))
	sort.Strings(vessels)
	return vessels
}

// Restore loads the persisted snapshot. Missing keys leave the yard empty.
func (s *Yard) Restore(ctx context.Context) error {
	var containers []*model.Container
	found, err := loadState(ctx, s.state, repo.StateKeyContainers, &containers)
	if err != nil || !found {
		return err
	}
	dataset := emptyDataset()
	if _, err := loadState(ctx, s.state, repo.StateKeyDataset, dataset); err != nil {
		return err
	}
	if dataset.Version == "" {
		dataset.Version = DatasetVersion(containers)
		dataset.Vessels = VesselsOf(containers)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.containers = containers
	s.dataset = dataset
	return nil
}

// Upload ingests a workbook and replaces the current snapshot with it. The
// previous snapshot is kept when the file cannot be read.
func (s *Yard) Upload(ctx context.Context, fileName string, content []byte) (*model.YardDataset, error) {
	release, err := s.guard.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := ReadWorkbook(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	result := ParseRows(rows)

	stats := result.Stats
	dataset := s.replace(ctx, result.Containers, &stats, result.Vessels)
	s.sync.PushContainers(dataset.Version, result.Containers)
	s.archive.ArchiveAsync(RealmWorkbooks, dataset.Version, fileName, content)

	log.Info().
		Str("evt.name", "yard.uploaded").
		Str("file", fileName).
		Str("version", dataset.Version).
		Int("containers", dataset.Containers).
		Msg("yard snapshot replaced from upload")
	return dataset, nil
}

// ReplaceFromCloud installs a snapshot received from another instance. It is
// not pushed back to the cloud.
func (s *Yard) ReplaceFromCloud(ctx context.Context, containers []*model.Container) *model.YardDataset {
	return s.replace(ctx, containers, nil, VesselsOf(containers))
}

func (s *Yard) replace(ctx context.Context, containers []*model.Container, stats *model.ParseStats, vessels []string) *model.YardDataset {
	now := time.Now()
	dataset := &model.YardDataset{
		Version:  DatasetVersion(containers),
		LoadedAt: &now,
		Stats:    stats,
		Vessels:  vessels,
	}

	s.mu.Lock()
	s.containers = containers
	s.dataset = dataset
	s.mu.Unlock()

	saveState(ctx, s.state, repo.StateKeyContainers, containers)
	saveState(ctx, s.state, repo.StateKeyDataset, dataset)

	return s.Dataset()
}

// Dataset describes the current snapshot.
func (s *Yard) Dataset() *model.YardDataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := *s.dataset
	d.Containers = len(s.containers)
	return &d
}

// Containers returns the current snapshot. Callers must not modify it.
func (s *Yard) Containers() []*model.Container {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.containers
}

// Snapshot returns the containers together with their dataset version.
func (s *Yard) Snapshot() ([]*model.Container, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.containers, s.dataset.Version
}

func (s *Yard) Vessels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.dataset.Vessels...)
}

// Search returns containers whose id contains term, or whose location contains
// term, both with dashes removed. Matching ignores case; a blank term matches nothing.
func (s *Yard) Search(term string) []*model.Container {
	term = strings.ToUpper(strings.TrimSpace(term))
	if term == "" {
		return []*model.Container{}
	}
	compact := strings.ReplaceAll(term, "-", "")
	return lo.Filter(s.Containers(), func(c *model.Container, _ int) bool {
		return strings.Contains(strings.ToUpper(c.ID), term) ||
			strings.Contains(strings.ReplaceAll(strings.ToUpper(c.Location), "-", ""), compact)
	})
}

// ByBlock groups the snapshot by block name.
func (s *Yard) ByBlock() map[string][]*model.Container {
	return lo.GroupBy(s.Containers(), func(c *model.Container) string {
		return c.Block
	})
}

// Clear drops the snapshot and its persisted copy.
func (s *Yard) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.containers = []*model.Container{}
	s.dataset = emptyDataset()
	s.mu.Unlock()
	return s.state.Delete(ctx, repo.StateKeyContainers, repo.StateKeyDataset)
}
