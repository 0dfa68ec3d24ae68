package service

import (
	"context"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/repo"
)

func fiveContainers() []*model.Container {
	return []*model.Container{
		container("C1", "A1"),
		container("C2", "A1"),
		container("C3", "A1"),
		container("C4", "B1"),
		container("C5", "B1"),
	}
}

func TestSyncPushContainersInBatches(t *testing.T) {
	cloud := &fakeCloud{}
	s := NewSync(testConfig(), cloud)

	s.PushContainers("v1", fiveContainers())
	s.Flush()

	calls := cloud.callsFor(repo.TableContainers)
	require.Len(t, calls, 3, spew.Sdump(calls))

	for i, want := range []struct {
		id     string
		offset int64
		size   int
	}{
		{"BATCH-0", 0, 2},
		{"BATCH-2", 2, 2},
		{"BATCH-4", 4, 1},
	} {
		assert.Equal(t, want.id, calls[i].ID)
		batch := gjson.ParseBytes(calls[i].Data)
		assert.Equal(t, "v1", batch.Get("version").String())
		assert.Equal(t, want.offset, batch.Get("offset").Int())
		assert.Len(t, batch.Get("containers").Array(), want.size)
	}
}

func TestSyncPushContainersStopsOnFailure(t *testing.T) {
	cloud := &fakeCloud{failAfter: 1}
	s := NewSync(testConfig(), cloud)

	s.PushContainers("v1", fiveContainers())
	s.Flush()

	calls := cloud.callsFor(repo.TableContainers)
	require.Len(t, calls, 1)
	assert.Equal(t, "BATCH-0", calls[0].ID)
}

func TestSyncDisabled(t *testing.T) {
	s := NewSync(testConfig(), offlineCloud{})
	assert.False(t, s.Enabled())

	s.Push(repo.TableRequests, "REQ-1", &model.ContainerRequest{ID: "REQ-1"})
	s.PushContainers("v1", fiveContainers())
	s.Flush()
}

func TestUploadPushesToCloud(t *testing.T) {
	cloud := &fakeCloud{}
	env := newTestEnv(cloud)

	dataset, err := env.yard.Upload(context.Background(), "yard.xlsx", yardWorkbook(t))
	require.NoError(t, err)
	env.sync.Flush()

	calls := cloud.callsFor(repo.TableContainers)
	require.Len(t, calls, 3)
	for _, call := range calls {
		assert.Equal(t, dataset.Version, gjson.GetBytes(call.Data, "version").String())
	}
}

func TestSyncPushKeepsOrder(t *testing.T) {
	ctx := context.Background()
	cloud := &fakeCloud{
		delay: func(_ string, value any) time.Duration {
			if r, ok := value.(*model.ContainerRequest); ok && r.Status == model.RequestPending {
				return 50 * time.Millisecond
			}
			return 0
		},
	}
	env := newTestEnv(cloud)

	req, err := env.requests.Submit(ctx, submission("ABCU1234567"))
	require.NoError(t, err)
	_, err = env.requests.Assign(ctx, req.ID, "A1-01-01-1")
	require.NoError(t, err)
	env.sync.Flush()

	calls := cloud.callsFor(repo.TableRequests)
	require.Len(t, calls, 2, spew.Sdump(calls))
	assert.Equal(t, "pending", gjson.GetBytes(calls[0].Data, "status").String())
	last := calls[1]
	assert.Equal(t, req.ID, last.ID)
	assert.Equal(t, "assigned", gjson.GetBytes(last.Data, "status").String())
	assert.Equal(t, "A1-01-01-1", gjson.GetBytes(last.Data, "assignedLocation").String())
}
