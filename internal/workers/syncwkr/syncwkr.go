package syncwkr

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/pkg/observability"
	"github.com/portyard/yardboard/internal/repo"
	"github.com/portyard/yardboard/internal/service"
)

// containersSettle is how long the worker waits after the last container batch
// event before refetching, since one upload produces a burst of batch events.
const containersSettle = 2 * time.Second

type WorkerDeps struct {
	fx.In

	Lifecycle       fx.Lifecycle
	Cloud           service.Cloud
	CloudRecords    *repo.CloudRecord
	YardService     *service.Yard
	ScheduleService *service.Schedule
	RequestService  *service.Request
}

type Worker struct {
	WorkerDeps

	mu             sync.Mutex
	containerTimer *time.Timer
	unsubscribe    []func()
}

func Start(deps WorkerDeps) {
	if !deps.Cloud.Enabled() {
		log.Info().Str("evt.name", "sync.disabled").Msg("cloud sync disabled, running local only")
		return
	}
	w := &Worker{WorkerDeps: deps}
	deps.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if w.CloudRecords != nil {
				if err := w.CloudRecords.EnsureSchema(ctx); err != nil {
					return err
				}
			}
			// initial load runs detached; a slow cloud must not block startup
			go func() {
				loadCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()
				if err := w.InitialLoad(loadCtx); err != nil {
					log.Error().Err(err).Str("evt.name", "sync.initial_load_failed").Msg("failed to load state from cloud")
				}
			}()
			return w.subscribe()
		},
		OnStop: func(ctx context.Context) error {
			w.stop()
			return nil
		},
	})
}

// InitialLoad fetches every synced table and replaces the non-empty ones locally.
func (w *Worker) InitialLoad(ctx context.Context) error {
	var (
		requests   []*model.ContainerRequest
		schedule   []*model.ScheduleData
		containers []*model.Container
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		requests, err = w.fetchRequests(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		schedule, err = w.fetchSchedule(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		containers, err = w.fetchContainers(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	if len(requests) > 0 {
		w.RequestService.ReplaceFromCloud(ctx, requests)
	}
	if len(schedule) > 0 {
		w.ScheduleService.ReplaceFromCloud(ctx, schedule)
	}
	if len(containers) > 0 {
		w.YardService.ReplaceFromCloud(ctx, containers)
	}
	log.Info().
		Str("evt.name", "sync.initial_load").
		Int("requests", len(requests)).
		Int("schedule", len(schedule)).
		Int("containers", len(containers)).
		Msg("loaded state from cloud")
	return nil
}

func (w *Worker) subscribe() error {
	handlers := map[string]func(*model.CloudEvent){
		repo.TableRequests:   w.onRequest,
		repo.TableSchedule:   w.onSchedule,
		repo.TableContainers: w.onContainers,
	}
	for table, handler := range handlers {
		unsubscribe, err := w.Cloud.Subscribe(table, handler)
		if err != nil {
			w.stop()
			return err
		}
		w.unsubscribe = append(w.unsubscribe, unsubscribe)
	}
	return nil
}

func (w *Worker) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, unsubscribe := range w.unsubscribe {
		unsubscribe()
	}
	w.unsubscribe = nil
	if w.containerTimer != nil {
		w.containerTimer.Stop()
	}
}

func (w *Worker) onRequest(evt *model.CloudEvent) {
	var req model.ContainerRequest
	if err := gojson.Unmarshal(evt.Data, &req); err != nil || req.ID == "" {
		dropEvent(evt, err)
		return
	}
	w.RequestService.ApplyRemote(context.Background(), &req)
}

func (w *Worker) onSchedule(evt *model.CloudEvent) {
	var entry model.ScheduleData
	if err := gojson.Unmarshal(evt.Data, &entry); err != nil || entry.VesselName == "" {
		dropEvent(evt, err)
		return
	}
	w.ScheduleService.ApplyRemote(context.Background(), &entry)
}

func (w *Worker) onContainers(evt *model.CloudEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.containerTimer != nil {
		w.containerTimer.Stop()
	}
	w.containerTimer = time.AfterFunc(containersSettle, w.refetchContainers)
}

func (w *Worker) refetchContainers() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	containers, err := w.fetchContainers(ctx)
	if err != nil {
		log.Warn().Err(err).Str("evt.name", "sync.refetch_failed").Msg("failed to refetch yard containers")
		return
	}
	w.YardService.ReplaceFromCloud(ctx, containers)
}

func dropEvent(evt *model.CloudEvent, err error) {
	observability.SyncFailures.WithLabelValues(evt.Table, "apply").Inc()
	log.Warn().
		Str("evt.name", "sync.event_dropped").
		Str("table", evt.Table).
		Str("id", evt.ID).
		Err(err).
		Msg("dropping cloud event with unusable payload")
}

func (w *Worker) fetch(ctx context.Context, table string) ([]json.RawMessage, error) {
	rows, err := w.Cloud.FetchAll(ctx, table)
	if err != nil {
		observability.SyncFailures.WithLabelValues(table, "fetch").Inc()
		return nil, errors.Wrapf(err, "failed to fetch %s", table)
	}
	return rows, nil
}

func (w *Worker) fetchRequests(ctx context.Context) ([]*model.ContainerRequest, error) {
	rows, err := w.fetch(ctx, repo.TableRequests)
	if err != nil {
		return nil, err
	}
	return decodeAll[model.ContainerRequest](rows, "id"), nil
}

func (w *Worker) fetchSchedule(ctx context.Context) ([]*model.ScheduleData, error) {
	rows, err := w.fetch(ctx, repo.TableSchedule)
	if err != nil {
		return nil, err
	}
	return decodeAll[model.ScheduleData](rows, "vesselName"), nil
}

// fetchContainers reassembles the newest upload. Batches of older uploads that
// were larger than the newest one are still stored and must be ignored.
func (w *Worker) fetchContainers(ctx context.Context) ([]*model.Container, error) {
	rows, err := w.fetch(ctx, repo.TableContainers)
	if err != nil {
		return nil, err
	}
	return AssembleContainers(rows), nil
}

// AssembleContainers flattens the batches that share the version of the newest
// row, ordered by offset.
func AssembleContainers(rows []json.RawMessage) []*model.Container {
	if len(rows) == 0 {
		return nil
	}
	version := gjson.GetBytes(rows[0], "version").String()

	batches := make([]*model.ContainerBatch, 0, len(rows))
	for _, row := range rows {
		if gjson.GetBytes(row, "version").String() != version {
			continue
		}
		var batch model.ContainerBatch
		if err := gojson.Unmarshal(row, &batch); err != nil {
			log.Warn().Err(err).Str("evt.name", "sync.batch_malformed").Msg("skipping malformed container batch")
			continue
		}
		batches = append(batches, &batch)
	}
	sort.Slice(batches, func(i, j int) bool {
		return batches[i].Offset < batches[j].Offset
	})

	containers := make([]*model.Container, 0)
	for _, b := range batches {
		containers = append(containers, b.Containers...)
	}
	return containers
}

// decodeAll decodes rows whose key field is present, skipping the rest.
func decodeAll[T any](rows []json.RawMessage, key string) []*T {
	out := make([]*T, 0, len(rows))
	for _, row := range rows {
		if gjson.GetBytes(row, key).String() == "" {
			continue
		}
		var v T
		if err := gojson.Unmarshal(row, &v); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("skipping malformed cloud row")
			continue
		}
		out = append(out, &v)
	}
	return out
}
