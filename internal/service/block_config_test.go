package service

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/repo"
)

func TestDefaultBlocks(t *testing.T) {
	blocks := DefaultBlocks()
	require.Len(t, blocks, 47)

	byName := lo.KeyBy(blocks, func(b *model.BlockConfig) string { return b.Name })
	require.Len(t, byName, 47)

	a1 := byName["A1"]
	assert.Equal(t, 676, a1.Capacity)
	assert.Equal(t, model.MachineRTG, a1.MachineType)
	assert.Equal(t, model.BlockTypeGrid, a1.BlockType)

	assert.Equal(t, model.MachineRS, byName["N1"].MachineType)
	assert.Equal(t, model.MachineRTG, byName["L1"].MachineType)

	for _, name := range []string{"APR01", "APR02", "APRON", "MNR", "WAS"} {
		heap := byName[name]
		assert.Equal(t, model.BlockTypeHeap, heap.BlockType, name)
		assert.Equal(t, model.MachineRS, heap.MachineType, name)
		assert.Equal(t, 500, heap.Capacity, name)
		assert.Equal(t, "OTHER", heap.Group, name)
		assert.Zero(t, heap.TotalBays, name)
	}

	DefaultBlocks()[0].Capacity = 1
	assert.Equal(t, 676, DefaultBlocks()[0].Capacity)
}

func TestBlockConfigReplace(t *testing.T) {
	ctx := context.Background()
	state := newMemState()
	s := NewBlockConfig(testConfig(), state)
	_, defaultVersion := s.GetBlocks()

	blocks, err := s.ReplaceBlocks(ctx, []*model.BlockConfig{
		{Name: " a1 ", Capacity: 10, TotalBays: 2},
		{Name: "YARD-X", Capacity: 5, BlockType: model.BlockTypeHeap, TotalBays: 3},
	})
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	assert.Equal(t, "a1", blocks[0].Name)
	assert.Equal(t, model.MachineRTG, blocks[0].MachineType)
	assert.Equal(t, model.BlockTypeGrid, blocks[0].BlockType)
	assert.Equal(t, model.MachineRS, blocks[1].MachineType)
	assert.Zero(t, blocks[1].TotalBays)

	_, version := s.GetBlocks()
	assert.NotEqual(t, defaultVersion, version)
	assert.True(t, state.has(repo.StateKeyBlockConfigs))

	restored := NewBlockConfig(testConfig(), state)
	require.NoError(t, restored.Restore(ctx))
	restoredBlocks, restoredVersion := restored.GetBlocks()
	assert.Equal(t, version, restoredVersion)
	assert.Equal(t, blocks, restoredBlocks)

	s.Reset()
	_, version = s.GetBlocks()
	assert.Equal(t, defaultVersion, version)
}

func TestBlockConfigReplaceRejects(t *testing.T) {
	ctx := context.Background()
	s := NewBlockConfig(testConfig(), newMemState())
	_, version := s.GetBlocks()

	_, err := s.ReplaceBlocks(ctx, []*model.BlockConfig{{Name: "A1"}, {Name: "A1 "}})
	require.Error(t, err)
	assert.Contains(t, asYardError(t, err).Message, "duplicate")

	_, err = s.ReplaceBlocks(ctx, []*model.BlockConfig{{Name: "  "}})
	require.Error(t, err)

	_, after := s.GetBlocks()
	assert.Equal(t, version, after)
}

func TestBlockConfigGetBlocksCopies(t *testing.T) {
	s := NewBlockConfig(testConfig(), newMemState())
	blocks, _ := s.GetBlocks()
	blocks[0].Capacity = 1

	again, _ := s.GetBlocks()
	assert.Equal(t, 676, again[0].Capacity)
}

func TestBlockConfigRTGBlocksFromConfig(t *testing.T) {
	conf := testConfig()
	conf.RTGBlocks = []string{" n1 ", "Z1"}
	s := NewBlockConfig(conf, newMemState())

	blocks, _ := s.GetBlocks()
	byName := lo.KeyBy(blocks, func(b *model.BlockConfig) string { return b.Name })
	assert.Equal(t, model.MachineRTG, byName["N1"].MachineType)
	assert.Equal(t, model.MachineRTG, byName["Z1"].MachineType)
	assert.Equal(t, model.MachineRS, byName["A1"].MachineType)
	assert.Equal(t, model.MachineRS, byName["APRON"].MachineType)

	replaced, err := s.ReplaceBlocks(context.Background(), []*model.BlockConfig{{Name: "n1", Capacity: 10}})
	require.NoError(t, err)
	assert.Equal(t, model.MachineRTG, replaced[0].MachineType)

	s.Reset()
	blocks, _ = s.GetBlocks()
	assert.Equal(t, model.MachineRS, blocks[0].MachineType)
}
