package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/pkg/yderr"
	"github.com/portyard/yardboard/internal/repo"
)

func yardWorkbook(t *testing.T) []byte {
	return workbook(t,
		[]any{"Container", "Vessel", "Location", "F/E"},
		[]any{"ABCU0000001", "EVER GIVEN", "A1-01-01-01", "F"},
		[]any{"ABCU0000002", "EVER GIVEN", "A1-03-01-02", "F"},
		[]any{"ABCU0000003", "MAERSK ALABAMA", "B1-05-02-01", "E"},
		[]any{"ABCU0000004", "", "B1-07-02-01", "F"},
		[]any{"ABCU0000005", "MAERSK ALABAMA", "", "F"},
	)
}

func TestYardUpload(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(nil)

	dataset, err := env.yard.Upload(ctx, "yard.xlsx", yardWorkbook(t))
	require.NoError(t, err)

	assert.NotEmpty(t, dataset.Version)
	assert.NotNil(t, dataset.LoadedAt)
	assert.Equal(t, 5, dataset.Containers)
	assert.Equal(t, &model.ParseStats{TotalRows: 5, CreatedContainers: 5}, dataset.Stats)
	assert.Equal(t, []string{"EVER GIVEN", "MAERSK ALABAMA"}, dataset.Vessels)
	assert.True(t, env.state.has(repo.StateKeyContainers))
	assert.True(t, env.state.has(repo.StateKeyDataset))

	assert.Len(t, env.yard.ByBlock()["A1"], 2)
	assert.Len(t, env.yard.ByBlock()[model.BlockUnknown], 1)
}

func TestYardUploadIsDeterministic(t *testing.T) {
	ctx := context.Background()
	first, err := newTestEnv(nil).yard.Upload(ctx, "a.xlsx", yardWorkbook(t))
	require.NoError(t, err)
	second, err := newTestEnv(nil).yard.Upload(ctx, "b.xlsx", yardWorkbook(t))
	require.NoError(t, err)

	assert.Equal(t, first.Version, second.Version)
}

func TestYardUploadKeepsSnapshotOnFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(nil)
	before, err := env.yard.Upload(ctx, "yard.xlsx", yardWorkbook(t))
	require.NoError(t, err)

	_, err = env.yard.Upload(ctx, "broken.xlsx", []byte("not a workbook"))
	require.Error(t, err)
	assert.Equal(t, yderr.CodeInvalidWorkbook, asYardError(t, err).ErrorCode)

	after := env.yard.Dataset()
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, 5, after.Containers)
}

func TestYardUploadWhileBusy(t *testing.T) {
	env := newTestEnv(nil)
	env.guard.busy = true

	_, err := env.yard.Upload(context.Background(), "yard.xlsx", yardWorkbook(t))
	require.Error(t, err)
	assert.Equal(t, 409, asYardError(t, err).StatusCode)
	assert.Empty(t, env.yard.Containers())
}

func TestYardRestore(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(nil)
	uploaded, err := env.yard.Upload(ctx, "yard.xlsx", yardWorkbook(t))
	require.NoError(t, err)

	restored := NewYard(env.state, env.sync, env.guard, NewArchive(testConfig(), nil))
	require.NoError(t, restored.Restore(ctx))

	dataset := restored.Dataset()
	assert.Equal(t, uploaded.Version, dataset.Version)
	assert.Equal(t, uploaded.Vessels, dataset.Vessels)
	assert.Equal(t, 5, dataset.Containers)
	assert.Equal(t, env.yard.Containers()[2].ID, restored.Containers()[2].ID)
}

func TestYardRestoreWithoutState(t *testing.T) {
	env := newTestEnv(nil)
	require.NoError(t, env.yard.Restore(context.Background()))
	assert.Empty(t, env.yard.Containers())
	assert.Empty(t, env.yard.Dataset().Version)
}

func TestYardSearch(t *testing.T) {
	env := newTestEnv(nil)
	_, err := env.yard.Upload(context.Background(), "yard.xlsx", yardWorkbook(t))
	require.NoError(t, err)

	ids := func(cs []*model.Container) []string {
		out := []string{}
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return out
	}

	assert.Equal(t, []string{"ABCU0000003"}, ids(env.yard.Search("abcu0000003")))
	assert.Equal(t, []string{"ABCU0000002"}, ids(env.yard.Search("A1-03")))
	assert.Equal(t, []string{"ABCU0000002"}, ids(env.yard.Search("a10301")))
	assert.Len(t, env.yard.Search("B1"), 2)
	assert.Empty(t, env.yard.Search("   "))
}

func TestYardReplaceFromCloud(t *testing.T) {
	cloud := &fakeCloud{}
	env := newTestEnv(cloud)

	dataset := env.yard.ReplaceFromCloud(context.Background(), []*model.Container{
		container("C1", "A1", withVessel("ZETA")),
		container("C2", "A1", withVessel("ALPHA")),
	})
	env.sync.Flush()

	assert.Equal(t, []string{"ALPHA", "ZETA"}, dataset.Vessels)
	assert.Nil(t, dataset.Stats)
	assert.Empty(t, cloud.callsFor(repo.TableContainers))
}

func TestYardClear(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(nil)
	_, err := env.yard.Upload(ctx, "yard.xlsx", yardWorkbook(t))
	require.NoError(t, err)

	require.NoError(t, env.yard.Clear(ctx))

	assert.Empty(t, env.yard.Containers())
	assert.Empty(t, env.yard.Dataset().Version)
	assert.False(t, env.state.has(repo.StateKeyContainers))
	assert.False(t, env.state.has(repo.StateKeyDataset))
}

func TestDatasetVersion(t *testing.T) {
	assert.Empty(t, DatasetVersion(nil))

	a := []*model.Container{container("C1", "A1")}
	b := []*model.Container{container("C1", "A2")}
	assert.NotEqual(t, DatasetVersion(a), DatasetVersion(b))
	assert.Equal(t, DatasetVersion(a), DatasetVersion([]*model.Container{container("C1", "A1")}))
}
