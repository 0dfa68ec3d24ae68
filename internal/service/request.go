package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/pkg/yderr"
	"github.com/portyard/yardboard/internal/repo"
)

const requestIDPrefix = "REQ-"

// Request owns the gate-to-yard request queue.
type Request struct {
	state StateStore
	sync  *Sync

	mu       sync.RWMutex
	requests []*model.ContainerRequest
}

func NewRequest(state StateStore, sync *Sync) *Request {
	return &Request{state: state, sync: sync, requests: []*model.ContainerRequest{}}
}

func (s *Request) Restore(ctx context.Context) error {
	var requests []*model.ContainerRequest
	found, err := loadState(ctx, s.state, repo.StateKeyRequests, &requests)
	if err != nil || !found {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = requests
	return nil
}

// List returns the queue in submission order.
func (s *Request) List() []*model.ContainerRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.ContainerRequest, len(s.requests))
	for i, r := range s.requests {
		c := *r
		out[i] = &c
	}
	return out
}

// update applies fn to a copy of request id, stores and pushes the copy.
func (s *Request) update(ctx context.Context, id string, fn func(r *model.ContainerRequest)) (*model.ContainerRequest, error) {
	s.mu.Lock()
	idx := -1
	for i, r := range s.requests {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil, yderr.ErrNotFound.Msg("request %q not found", id)
	}
	updated := *s.requests[idx]
	fn(&updated)
	next := append([]*model.ContainerRequest{}, s.requests...)
	next[idx] = &updated
	s.requests = next
	// queued under the lock so cloud writes follow the local order
	s.sync.Push(repo.TableRequests, updated.ID, &updated)
	s.mu.Unlock()

	s.persist(ctx, next)
	out := updated
	return &out, nil
}

func (s *Request) persist(ctx context.Context, requests []*model.ContainerRequest) {
	saveState(ctx, s.state, repo.StateKeyRequests, requests)
}

// Submit queues a new pending request.
func (s *Request) Submit(ctx context.Context, submission *model.RequestSubmission) (*model.ContainerRequest, error) {
	var req model.ContainerRequest
	if err := copier.Copy(&req, submission); err != nil {
		return nil, errors.Wrap(err, "failed to copy request submission")
	}
	now := time.Now()
	req.ID = requestIDPrefix + ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
	req.ContainerID = strings.ToUpper(strings.TrimSpace(req.ContainerID))
	req.Status = model.RequestPending
	req.Timestamp = now.UnixMilli()
	req.AcknowledgedByYard = false
	req.AcknowledgedByGate = false

	s.mu.Lock()
	next := append(append([]*model.ContainerRequest{}, s.requests...), &req)
	s.requests = next
	s.sync.Push(repo.TableRequests, req.ID, &req)
	s.mu.Unlock()

	s.persist(ctx, next)

	log.Info().
		Str("evt.name", "request.submitted").
		Str("id", req.ID).
		Str("containerId", req.ContainerID).
		Msg("gate request submitted")
	out := req
	return &out, nil
}

// Assign answers a request with a yard location. The gate has to acknowledge
// the assignment again.
func (s *Request) Assign(ctx context.Context, id, location string) (*model.ContainerRequest, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, yderr.ErrInvalidReq.Msg("location must not be empty")
	}
	return s.update(ctx, id, func(r *model.ContainerRequest) {
		r.Status = model.RequestAssigned
		r.AssignedLocation = location
		r.AcknowledgedByGate = false
	})
}

func (s *Request) Acknowledge(ctx context.Context, id string, target model.AckTarget) (*model.ContainerRequest, error) {
	switch target {
	case model.AckGate:
		return s.update(ctx, id, func(r *model.ContainerRequest) { r.AcknowledgedByGate = true })
	case model.AckYard:
		return s.update(ctx, id, func(r *model.ContainerRequest) { r.AcknowledgedByYard = true })
	default:
		return nil, yderr.ErrInvalidReq.Msg("unknown acknowledgement target %q", target)
	}
}

// Alarm reports whether mode has something to attend to: the yard has pending
// requests it has not acknowledged, the gate has assignments it has not.
func (s *Request) Alarm(mode model.AppMode) *model.AlarmState {
	state := &model.AlarmState{Mode: mode}
	for _, r := range s.List() {
		switch mode {
		case model.ModeYard:
			state.Active = state.Active || (r.Status == model.RequestPending && !r.AcknowledgedByYard)
		case model.ModeGate:
			state.Active = state.Active || (r.Status == model.RequestAssigned && !r.AcknowledgedByGate)
		}
	}
	return state
}

// ApplyRemote upserts a request received from another instance.
func (s *Request) ApplyRemote(ctx context.Context, req *model.ContainerRequest) {
	s.mu.Lock()
	next := append([]*model.ContainerRequest{}, s.requests...)
	replaced := false
	for i, r := range next {
		if r.ID == req.ID {
			next[i] = req
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, req)
	}
	s.requests = next
	s.mu.Unlock()

	s.persist(ctx, next)
}

// ReplaceFromCloud installs the cloud queue, oldest first.
func (s *Request) ReplaceFromCloud(ctx context.Context, requests []*model.ContainerRequest) {
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].Timestamp < requests[j].Timestamp
	})
	s.mu.Lock()
	s.requests = requests
	s.mu.Unlock()
	s.persist(ctx, requests)
}

func (s *Request) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.requests = []*model.ContainerRequest{}
	s.mu.Unlock()
	return s.state.Delete(ctx, repo.StateKeyRequests)
}
