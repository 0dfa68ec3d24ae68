package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/pkg/yderr"
	"github.com/portyard/yardboard/internal/repo"
)

func submission(id string) *model.RequestSubmission {
	return &model.RequestSubmission{
		ContainerID:     id,
		Size:            40,
		ContainerStatus: model.StatusFull,
		Flow:            model.FlowExport,
		Vessel:          "EVER GIVEN",
		TruckPlate:      "51C-123.45",
	}
}

func TestRequestSubmit(t *testing.T) {
	cloud := &fakeCloud{}
	env := newTestEnv(cloud)

	req, err := env.requests.Submit(context.Background(), submission("  abcu1234567 "))
	require.NoError(t, err)
	env.sync.Flush()

	assert.True(t, strings.HasPrefix(req.ID, "REQ-"), req.ID)
	assert.Equal(t, "ABCU1234567", req.ContainerID)
	assert.Equal(t, 40, req.Size)
	assert.Equal(t, model.RequestPending, req.Status)
	assert.Equal(t, model.FlowExport, req.Flow)
	assert.Equal(t, "EVER GIVEN", req.Vessel)
	assert.Equal(t, "51C-123.45", req.TruckPlate)
	assert.Positive(t, req.Timestamp)
	assert.False(t, req.AcknowledgedByYard)
	assert.False(t, req.AcknowledgedByGate)

	require.Len(t, env.requests.List(), 1)
	assert.True(t, env.state.has(repo.StateKeyRequests))

	calls := cloud.callsFor(repo.TableRequests)
	require.Len(t, calls, 1)
	assert.Equal(t, req.ID, calls[0].ID)
}

func TestRequestIDsAreUnique(t *testing.T) {
	env := newTestEnv(nil)
	ids := map[string]struct{}{}
	for i := 0; i < 20; i++ {
		req, err := env.requests.Submit(context.Background(), submission("ABCU1234567"))
		require.NoError(t, err)
		ids[req.ID] = struct{}{}
	}
	assert.Len(t, ids, 20)
}

func TestRequestLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(nil)

	assert.False(t, env.requests.Alarm(model.ModeYard).Active)
	assert.False(t, env.requests.Alarm(model.ModeGate).Active)

	req, err := env.requests.Submit(ctx, submission("ABCU1234567"))
	require.NoError(t, err)
	assert.True(t, env.requests.Alarm(model.ModeYard).Active)
	assert.False(t, env.requests.Alarm(model.ModeGate).Active)
	assert.False(t, env.requests.Alarm(model.ModeViewer).Active)

	_, err = env.requests.Acknowledge(ctx, req.ID, model.AckYard)
	require.NoError(t, err)
	assert.False(t, env.requests.Alarm(model.ModeYard).Active)

	assigned, err := env.requests.Assign(ctx, req.ID, " A1-05-02-03 ")
	require.NoError(t, err)
	assert.Equal(t, model.RequestAssigned, assigned.Status)
	assert.Equal(t, "A1-05-02-03", assigned.AssignedLocation)
	assert.True(t, env.requests.Alarm(model.ModeGate).Active)

	acked, err := env.requests.Acknowledge(ctx, req.ID, model.AckGate)
	require.NoError(t, err)
	assert.True(t, acked.AcknowledgedByGate)
	assert.False(t, env.requests.Alarm(model.ModeGate).Active)

	reassigned, err := env.requests.Assign(ctx, req.ID, "B1-01-01-01")
	require.NoError(t, err)
	assert.False(t, reassigned.AcknowledgedByGate)
	assert.True(t, reassigned.AcknowledgedByYard)
	assert.Equal(t, &model.AlarmState{Mode: model.ModeGate, Active: true}, env.requests.Alarm(model.ModeGate))
}

func TestRequestErrors(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(nil)
	req, err := env.requests.Submit(ctx, submission("ABCU1234567"))
	require.NoError(t, err)

	_, err = env.requests.Assign(ctx, req.ID, "  ")
	assert.Equal(t, yderr.CodeInvalidRequest, asYardError(t, err).ErrorCode)

	_, err = env.requests.Assign(ctx, "REQ-MISSING", "A1-01-01-01")
	assert.Equal(t, yderr.CodeNotFound, asYardError(t, err).ErrorCode)

	_, err = env.requests.Acknowledge(ctx, req.ID, model.AckTarget("truck"))
	assert.Equal(t, yderr.CodeInvalidRequest, asYardError(t, err).ErrorCode)

	_, err = env.requests.Acknowledge(ctx, "REQ-MISSING", model.AckGate)
	assert.Equal(t, yderr.CodeNotFound, asYardError(t, err).ErrorCode)
}

func TestRequestListReturnsCopies(t *testing.T) {
	env := newTestEnv(nil)
	_, err := env.requests.Submit(context.Background(), submission("ABCU1234567"))
	require.NoError(t, err)

	env.requests.List()[0].Status = model.RequestAssigned
	assert.Equal(t, model.RequestPending, env.requests.List()[0].Status)
}

func TestRequestRestore(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(nil)
	req, err := env.requests.Submit(ctx, submission("ABCU1234567"))
	require.NoError(t, err)

	restored := NewRequest(env.state, env.sync)
	require.NoError(t, restored.Restore(ctx))
	require.Len(t, restored.List(), 1)
	assert.Equal(t, req, restored.List()[0])
}

func TestRequestRemoteUpdates(t *testing.T) {
	ctx := context.Background()
	cloud := &fakeCloud{}
	env := newTestEnv(cloud)

	env.requests.ReplaceFromCloud(ctx, []*model.ContainerRequest{
		{ID: "REQ-B", Timestamp: 2, Status: model.RequestPending},
		{ID: "REQ-A", Timestamp: 1, Status: model.RequestPending},
	})
	env.requests.ApplyRemote(ctx, &model.ContainerRequest{ID: "REQ-A", Timestamp: 1, Status: model.RequestAssigned})
	env.requests.ApplyRemote(ctx, &model.ContainerRequest{ID: "REQ-C", Timestamp: 3, Status: model.RequestPending})
	env.sync.Flush()

	list := env.requests.List()
	require.Len(t, list, 3)
	assert.Equal(t, "REQ-A", list[0].ID)
	assert.Equal(t, model.RequestAssigned, list[0].Status)
	assert.Equal(t, "REQ-B", list[1].ID)
	assert.Equal(t, "REQ-C", list[2].ID)
	assert.Empty(t, cloud.callsFor(repo.TableRequests))
}

func TestRequestClear(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(nil)
	_, err := env.requests.Submit(ctx, submission("ABCU1234567"))
	require.NoError(t, err)

	require.NoError(t, env.requests.Clear(ctx))
	assert.Empty(t, env.requests.List())
	assert.False(t, env.state.has(repo.StateKeyRequests))
}
