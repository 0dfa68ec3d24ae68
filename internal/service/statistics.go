package service

import (
	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/pkg/cache"
)

type occupancyMemo struct {
	key    string
	result *model.BlockStatsResult
}

// Statistics derives dashboard figures from the current yard, block and
// schedule state. Everything is recomputed from scratch except occupancy,
// which is memoized per dataset and block configuration version.
type Statistics struct {
	yard     *Yard
	blocks   *BlockConfig
	schedule *Schedule

	occupancy *cache.Singular[*occupancyMemo]
}

func NewStatistics(yard *Yard, blocks *BlockConfig, schedule *Schedule) *Statistics {
	return &Statistics{
		yard:      yard,
		blocks:    blocks,
		schedule:  schedule,
		occupancy: cache.NewSingular[*occupancyMemo]("stats#occupancy"),
	}
}

func (s *Statistics) Occupancy() (*model.BlockStatsResult, error) {
	containers, datasetVersion := s.yard.Snapshot()
	blocks, blockVersion := s.blocks.GetBlocks()
	key := datasetVersion + "|" + blockVersion

	if memo, ok := s.occupancy.Get(); ok && memo.key != key {
		s.occupancy.Delete()
	}
	memo, err := s.occupancy.MutexGetSet(func() (*occupancyMemo, error) {
		return &occupancyMemo{key: key, result: BlockOccupancy(containers, blocks)}, nil
	}, 0)
	if err != nil {
		return nil, err
	}
	if memo.key != key {
		// raced with a newer snapshot; answer for the one we read
		return BlockOccupancy(containers, blocks), nil
	}
	return memo.result, nil
}

func (s *Statistics) VesselTable(query *model.VesselTableQuery) *model.VesselTable {
	filter := model.IncludeAll()
	if query.Filter != nil {
		filter = *query.Filter
	}
	opts := VesselTableOptions{Filter: filter, SelectedBlocks: query.SelectedBlocks}
	if query.ByVessel {
		opts.Vessels = query.Vessels
		if len(opts.Vessels) == 0 {
			opts.Vessels = s.schedule.Selection().Displayed
		}
		if opts.Vessels == nil {
			opts.Vessels = []string{}
		}
	}
	blocks, _ := s.blocks.GetBlocks()
	return BuildVesselTable(s.yard.Containers(), blocks, opts)
}

func (s *Statistics) Discharge() *model.DischargeAnalysis {
	blocks, _ := s.blocks.GetBlocks()
	return AnalyzeDischarge(blocks, s.yard.Containers(), s.schedule.Entries())
}

// Load counts each scheduled vessel's containers per block under filter.
func (s *Statistics) Load(query *model.LoadQuery) []*model.VesselLoadResult {
	filter := model.IncludeAll()
	if query != nil && query.Filter != nil {
		filter = *query.Filter
	}
	entries := s.schedule.Entries()
	vessels := make([]string, 0, len(entries))
	for _, e := range entries {
		vessels = append(vessels, e.VesselName)
	}
	blocks, _ := s.blocks.GetBlocks()
	table := BuildVesselTable(s.yard.Containers(), blocks, VesselTableOptions{Filter: filter, Vessels: vessels})
	return AnalyzeLoad(entries, blocks, table)
}
