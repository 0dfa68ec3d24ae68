package service

import (
	"math"
	"sort"

	"github.com/ahmetb/go-linq/v3"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/util/yardcode"
)

// AnalyzeDischarge checks every scheduled discharge against the TEU left in RTG
// blocks. Blocks without a machine type count as RS.
func AnalyzeDischarge(blocks []*model.BlockConfig, containers []*model.Container, schedule []*model.ScheduleData) *model.DischargeAnalysis {
	var rtg, rs []*model.BlockConfig
	for _, b := range blocks {
		if b.MachineType == model.MachineRTG {
			rtg = append(rtg, b)
		} else {
			rs = append(rs, b)
		}
	}

	rtgNames := make(map[string]struct{}, len(rtg))
	analysis := &model.DischargeAnalysis{
		RTGBlocks: make([]string, 0, len(rtg)),
		RSBlocks:  make([]string, 0, len(rs)),
		Vessels:   make([]*model.VesselDischargeResult, 0, len(schedule)),
	}
	for _, b := range rtg {
		rtgNames[b.Name] = struct{}{}
		analysis.RTGBlocks = append(analysis.RTGBlocks, b.Name)
		analysis.RTGCapacity += b.Capacity
	}
	for _, b := range rs {
		analysis.RSBlocks = append(analysis.RSBlocks, b.Name)
	}
	sort.Strings(analysis.RTGBlocks)
	sort.Strings(analysis.RSBlocks)

	analysis.RTGUsed = int(linq.From(containers).
		WhereT(func(c *model.Container) bool {
			_, ok := rtgNames[c.Block]
			return ok && !c.IsTrailingPart()
		}).
		SelectT(func(c *model.Container) int {
			return yardcode.CalculateTEU(c)
		}).
		SumInts())
	analysis.RTGAvailable = analysis.RTGCapacity - analysis.RTGUsed

	for _, s := range schedule {
		r := &model.VesselDischargeResult{
			VesselName: s.VesselName,
			Discharge:  s.Discharge,
			Fits:       s.Discharge <= analysis.RTGAvailable,
		}
		if r.Fits {
			if analysis.RTGAvailable > 0 {
				r.PercentOfAvailable = roundHalfUp(float64(s.Discharge) / float64(analysis.RTGAvailable) * 100)
			}
		} else {
			r.Overflow = s.Discharge - analysis.RTGAvailable
		}
		analysis.Vessels = append(analysis.Vessels, r)
	}
	return analysis
}

// LoadThreshold is the per-block container count a vessel's load may reach
// before a block is flagged: a quarter of the load, rounded half up.
func LoadThreshold(load int) int {
	return roundHalfUp(float64(load) / 4)
}

// AnalyzeLoad flags, per scheduled vessel, the blocks holding more of that
// vessel's containers than LoadThreshold. Block order follows blocks; blocks
// without any of the vessel's containers are left out. table must carry the
// vessel dimension.
func AnalyzeLoad(schedule []*model.ScheduleData, blocks []*model.BlockConfig, table *model.VesselTable) []*model.VesselLoadResult {
	results := make([]*model.VesselLoadResult, 0, len(schedule))
	for _, s := range schedule {
		r := &model.VesselLoadResult{
			VesselName: s.VesselName,
			Load:       s.Load,
			Threshold:  LoadThreshold(s.Load),
			Blocks:     make([]*model.BlockLoadResult, 0),
		}
		for _, b := range blocks {
			row, ok := table.Rows[b.Name]
			if !ok {
				continue
			}
			count := row.VesselCounts[s.VesselName]
			if count <= 0 {
				continue
			}
			br := &model.BlockLoadResult{Block: b.Name, Count: count, Exceeds: count > r.Threshold}
			if br.Exceeds {
				br.Excess = count - r.Threshold
			} else {
				br.Remaining = r.Threshold - count
			}
			r.Blocks = append(r.Blocks, br)
		}
		results = append(results, r)
	}
	return results
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
