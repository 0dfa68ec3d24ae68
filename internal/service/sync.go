package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/portyard/yardboard/internal/app/appconfig"
	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/pkg/observability"
	"github.com/portyard/yardboard/internal/repo"
)

const (
	pushTimeout   = 30 * time.Second
	pushQueueSize = 256
)

// Sync pushes local changes to the Cloud in the background. Pushes are applied
// one at a time in the order they were queued so a later write to a record is
// never overtaken by an earlier one. Push failures are logged and counted,
// never returned.
type Sync struct {
	Cloud Cloud

	batchSize int
	queue     chan func()
	pending   sync.WaitGroup
	startOnce sync.Once
}

func NewSync(conf *appconfig.Config, cloud Cloud) *Sync {
	return &Sync{
		Cloud:     cloud,
		batchSize: conf.SyncBatchSize,
		queue:     make(chan func(), pushQueueSize),
	}
}

func (s *Sync) Enabled() bool {
	return s.Cloud.Enabled()
}

func (s *Sync) enqueue(job func()) {
	s.startOnce.Do(func() {
		go s.drain()
	})
	s.pending.Add(1)
	s.queue <- job
}

func (s *Sync) drain() {
	for job := range s.queue {
		job()
		s.pending.Done()
	}
}

// Push queues an upsert of value.
func (s *Sync) Push(table, id string, value any) {
	if !s.Cloud.Enabled() {
		return
	}
	s.enqueue(func() {
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		s.upsert(ctx, table, id, value)
	})
}

// PushContainers queues an upload of containers as batches of batchSize, one
// batch after another. Every batch carries version. The remaining batches are
// dropped once one fails.
func (s *Sync) PushContainers(version string, containers []*model.Container) {
	if !s.Cloud.Enabled() {
		return
	}
	s.enqueue(func() {
		size := s.batchSize
		if size <= 0 {
			size = 500
		}
		for i, chunk := range lo.Chunk(containers, size) {
			offset := i * size
			ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
			ok := s.upsert(ctx, repo.TableContainers, fmt.Sprintf("BATCH-%d", offset), &model.ContainerBatch{
				Version:    version,
				Offset:     offset,
				Containers: chunk,
			})
			cancel()
			if !ok {
				return
			}
		}
		log.Info().
			Str("evt.name", "sync.containers_pushed").
			Str("version", version).
			Int("containers", len(containers)).
			Msg("pushed yard containers to cloud")
	})
}

func (s *Sync) upsert(ctx context.Context, table, id string, value any) bool {
	if err := s.Cloud.Upsert(ctx, table, id, value); err != nil {
		observability.SyncFailures.WithLabelValues(table, "upsert").Inc()
		log.Warn().
			Str("evt.name", "sync.upsert_failed").
			Str("table", table).
			Str("id", id).
			Err(err).
			Msg("failed to push record to cloud")
		return false
	}
	return true
}

// Flush waits until every queued push has been applied.
func (s *Sync) Flush() {
	s.pending.Wait()
}
