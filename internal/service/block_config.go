package service

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/xxh3"

	"github.com/portyard/yardboard/internal/app/appconfig"
	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/pkg/yderr"
	"github.com/portyard/yardboard/internal/repo"
)

// DefaultRTGBlocks are the blocks worked by rubber-tyred gantries unless
// YARDBOARD_RTG_BLOCKS says otherwise. Every other grid block is worked by
// reach stackers.
var DefaultRTGBlocks = []string{
	"A1", "B1", "C1", "D1",
	"A2", "B2", "C2", "D2",
	"E1", "F1", "G1", "H1",
	"E2", "F2", "G2", "H2",
	"B0", "C0", "D0", "E0",
	"L0", "M0", "M1", "L1",
}

type rtgSet map[string]struct{}

func newRTGSet(names []string) rtgSet {
	if len(names) == 0 {
		names = DefaultRTGBlocks
	}
	set := make(rtgSet, len(names))
	for _, name := range names {
		if name = strings.ToUpper(strings.TrimSpace(name)); name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}

// machineTypeFor derives the machine type of a grid block from its name.
func (r rtgSet) machineTypeFor(name string) model.MachineType {
	if _, ok := r[strings.ToUpper(name)]; ok {
		return model.MachineRTG
	}
	return model.MachineRS
}

func gridBlock(name string, capacity int, group string, bays, rows, tiers int) *model.BlockConfig {
	return &model.BlockConfig{
		Name: name, Capacity: capacity, Group: group, IsDefault: true,
		TotalBays: bays, RowsPerBay: rows, TiersPerBay: tiers,
		BlockType: model.BlockTypeGrid,
	}
}

func heapBlock(name string) *model.BlockConfig {
	return &model.BlockConfig{
		Name: name, Capacity: 500, Group: "OTHER", IsDefault: true,
		BlockType: model.BlockTypeHeap, MachineType: model.MachineRS,
	}
}

// DefaultBlocks returns a fresh copy of the terminal's stock block layout with
// the default RTG blocks.
func DefaultBlocks() []*model.BlockConfig {
	return defaultBlocks(newRTGSet(nil))
}

func defaultBlocks(rtg rtgSet) []*model.BlockConfig {
	blocks := []*model.BlockConfig{
		gridBlock("A1", 676, "GP", 30, 6, 5),
		gridBlock("B1", 676, "GP", 30, 6, 5),
		gridBlock("C1", 676, "GP", 30, 6, 5),
		gridBlock("D1", 676, "GP", 30, 6, 5),
		gridBlock("A2", 884, "GP", 35, 6, 5),
		gridBlock("B2", 884, "GP", 35, 6, 5),
		gridBlock("C2", 884, "GP", 35, 6, 5),
		gridBlock("D2", 884, "GP", 35, 6, 5),
		gridBlock("E1", 600, "GP", 28, 6, 5),
		gridBlock("F1", 676, "GP", 30, 6, 5),
		gridBlock("G1", 676, "GP", 30, 6, 5),
		gridBlock("H1", 676, "GP", 30, 6, 5),
		gridBlock("E2", 598, "GP", 28, 6, 5),
		gridBlock("F2", 884, "GP", 35, 6, 5),
		gridBlock("G2", 884, "GP", 35, 6, 5),
		gridBlock("H2", 884, "GP", 35, 6, 5),
		gridBlock("A0", 650, "RỖNG", 30, 6, 5),
		gridBlock("H0", 650, "RỖNG", 30, 6, 5),
		gridBlock("I0", 650, "RỖNG", 30, 6, 5),
		gridBlock("N1", 376, "GP", 20, 6, 4),
		gridBlock("N2", 344, "GP", 20, 6, 4),
		gridBlock("N3", 408, "GP", 20, 6, 4),
		gridBlock("N4", 162, "GP", 10, 5, 4),
		gridBlock("N5", 160, "GP", 10, 5, 4),
		gridBlock("Z2", 516, "GP", 25, 6, 5),
		gridBlock("Z1", 126, "GP", 10, 5, 3),
		gridBlock("I1", 504, "GP", 25, 6, 5),
		gridBlock("I2", 336, "GP", 20, 6, 4),
		gridBlock("E2-B", 192, "GP", 12, 5, 4),
		gridBlock("R1", 650, "REEFER", 30, 6, 5),
		gridBlock("R3", 450, "REEFER", 25, 6, 5),
		gridBlock("R4", 259, "REEFER", 15, 6, 4),
		gridBlock("R2", 400, "REEFER", 20, 6, 5),
		gridBlock("B0", 1144, "RỖNG", 40, 7, 6),
		gridBlock("C0", 940, "RỖNG", 35, 7, 6),
		gridBlock("D0", 940, "RỖNG", 35, 7, 6),
		gridBlock("E0", 840, "RỖNG", 32, 7, 6),
		gridBlock("L0", 940, "RỖNG", 35, 7, 6),
		gridBlock("M0", 940, "RỖNG", 35, 7, 6),
		gridBlock("M1", 1128, "GP", 40, 7, 6),
		gridBlock("L1", 1128, "GP", 40, 7, 6),
		gridBlock("K1", 378, "GP", 20, 6, 4),
		heapBlock("APR01"),
		heapBlock("APR02"),
		heapBlock("APRON"),
		heapBlock("MNR"),
		heapBlock("WAS"),
	}
	for _, b := range blocks {
		normalizeBlock(b, rtg)
	}
	return blocks
}

// normalizeBlock fills in derived fields: grid blocks take their machine type
// from their name, heap blocks have no grid and default to reach stackers.
func normalizeBlock(b *model.BlockConfig, rtg rtgSet) {
	b.Name = strings.TrimSpace(b.Name)
	if b.BlockType == model.BlockTypeHeap {
		b.TotalBays, b.RowsPerBay, b.TiersPerBay = 0, 0, 0
		if b.MachineType == "" {
			b.MachineType = model.MachineRS
		}
		return
	}
	b.BlockType = model.BlockTypeGrid
	b.MachineType = rtg.machineTypeFor(b.Name)
}

// BlockConfig owns the yard topology.
type BlockConfig struct {
	state StateStore
	rtg   rtgSet

	mu      sync.RWMutex
	blocks  []*model.BlockConfig
	version string
}

func NewBlockConfig(conf *appconfig.Config, state StateStore) *BlockConfig {
	s := &BlockConfig{state: state, rtg: newRTGSet(conf.RTGBlocks)}
	s.set(defaultBlocks(s.rtg))
	return s
}

func (s *BlockConfig) set(blocks []*model.BlockConfig) {
	b, err := msgpack.Marshal(blocks)
	if err != nil {
		log.Error().Err(err).Msg("failed to fingerprint block configs")
	}
	s.blocks = blocks
	s.version = strconv.FormatUint(xxh3.Hash(b), 16)
}

// Restore loads persisted block configs, keeping the defaults when none were saved.
func (s *BlockConfig) Restore(ctx context.Context) error {
	var blocks []*model.BlockConfig
	found, err := loadState(ctx, s.state, repo.StateKeyBlockConfigs, &blocks)
	if err != nil || !found || len(blocks) == 0 {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(blocks)
	return nil
}

// GetBlocks returns a copy of the current topology together with its version.
func (s *BlockConfig) GetBlocks() ([]*model.BlockConfig, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.BlockConfig, 0, len(s.blocks))
	if err := copier.CopyWithOption(&out, s.blocks, copier.Option{DeepCopy: true}); err != nil {
		log.Error().Err(err).Msg("failed to copy block configs")
	}
	return out, s.version
}

// ReplaceBlocks swaps the whole topology. Block names must be unique.
func (s *BlockConfig) ReplaceBlocks(ctx context.Context, blocks []*model.BlockConfig) ([]*model.BlockConfig, error) {
	seen := make(map[string]struct{}, len(blocks))
	for _, b := range blocks {
		normalizeBlock(b, s.rtg)
		if b.Name == "" {
			return nil, yderr.ErrInvalidReq.Msg("block name must not be empty")
		}
		if _, dup := seen[b.Name]; dup {
			return nil, yderr.ErrInvalidReq.Msg("duplicate block name %q", b.Name)
		}
		seen[b.Name] = struct{}{}
	}

	s.mu.Lock()
	s.set(blocks)
	s.mu.Unlock()

	saveState(ctx, s.state, repo.StateKeyBlockConfigs, blocks)
	blocks, _ = s.GetBlocks()
	return blocks, nil
}

// Reset restores the default topology.
func (s *BlockConfig) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(defaultBlocks(s.rtg))
}
