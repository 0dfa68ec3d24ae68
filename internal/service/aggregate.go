package service

import (
	"sort"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/util/yardcode"
)

// BlockOccupancy tallies every container into its configured block. Containers
// in blocks that are not configured are ignored. Empties are counted as empty
// regardless of flow; full containers split into export and everything else.
func BlockOccupancy(containers []*model.Container, blocks []*model.BlockConfig) *model.BlockStatsResult {
	result := &model.BlockStatsResult{
		Blocks: make([]*model.BlockStats, 0, len(blocks)),
		Totals: model.BlockStats{Name: "TOTAL"},
	}
	byName := make(map[string]*model.BlockStats, len(blocks))
	for _, b := range blocks {
		group := b.Group
		if group == "" {
			group = "GP"
		}
		s := &model.BlockStats{Name: b.Name, Group: group, Capacity: b.Capacity}
		byName[b.Name] = s
		result.Blocks = append(result.Blocks, s)
		result.Totals.Capacity += b.Capacity
	}

	for _, c := range containers {
		s, ok := byName[c.Block]
		if !ok || c.IsTrailingPart() {
			continue
		}
		teus := yardcode.CalculateTEU(c)
		switch {
		case c.Status == model.StatusEmpty:
			s.EmptyCount++
			s.EmptyTeus += teus
		case c.Flow == model.FlowExport:
			s.ExportFullCount++
			s.ExportFullTeus += teus
		default:
			s.ImportFullCount++
			s.ImportFullTeus += teus
		}
	}

	for _, s := range result.Blocks {
		result.Totals.ExportFullCount += s.ExportFullCount
		result.Totals.ExportFullTeus += s.ExportFullTeus
		result.Totals.ImportFullCount += s.ImportFullCount
		result.Totals.ImportFullTeus += s.ImportFullTeus
		result.Totals.EmptyCount += s.EmptyCount
		result.Totals.EmptyTeus += s.EmptyTeus
	}
	return result
}

// Includes reports whether c falls in an enabled flow/status bucket.
func Includes(f model.InclusionFilter, c *model.Container) bool {
	empty := c.Status == model.StatusEmpty
	if c.Flow == model.FlowExport {
		return (!empty && f.ExportFull) || (empty && f.ExportEmpty)
	}
	return (!empty && f.ImportFull) || (empty && f.ImportEmpty)
}

// VesselTableOptions parameterizes BuildVesselTable.
type VesselTableOptions struct {
	Filter model.InclusionFilter

	// Vessels activates the vessel dimension when non-nil: only containers of
	// these vessels are counted, and counted per vessel.
	Vessels []string

	// SelectedBlocks limits totals and visibility. nil selects every block.
	SelectedBlocks []string
}

// BuildVesselTable cross-tabulates containers by block and vessel. Every
// configured block gets a row. Totals only fold in selected blocks, and a block
// is visible only when it is selected and has a qualifying container.
func BuildVesselTable(containers []*model.Container, blocks []*model.BlockConfig, opts VesselTableOptions) *model.VesselTable {
	vesselDimension := opts.Vessels != nil
	vessels := append([]string{}, opts.Vessels...)
	sort.Strings(vessels)

	vesselSet := make(map[string]struct{}, len(vessels))
	for _, v := range vessels {
		vesselSet[v] = struct{}{}
	}

	selected := make(map[string]struct{}, len(blocks))
	if opts.SelectedBlocks == nil {
		for _, b := range blocks {
			selected[b.Name] = struct{}{}
		}
	} else {
		for _, name := range opts.SelectedBlocks {
			selected[name] = struct{}{}
		}
	}

	table := &model.VesselTable{
		Vessels:       vessels,
		Rows:          make(map[string]*model.BlockRowStats, len(blocks)),
		Totals:        model.NewBlockRowStats(vessels),
		VisibleBlocks: []string{},
	}
	for _, b := range blocks {
		table.Rows[b.Name] = model.NewBlockRowStats(vessels)
	}

	for _, c := range containers {
		if c.IsTrailingPart() || !Includes(opts.Filter, c) {
			continue
		}
		if vesselDimension {
			if !c.Vessel.Valid {
				continue
			}
			if _, ok := vesselSet[c.Vessel.String]; !ok {
				continue
			}
		}
		row, ok := table.Rows[c.Block]
		if !ok {
			continue
		}

		teu := yardcode.CalculateTEU(c)
		targets := []*model.BlockRowStats{row}
		if _, ok := selected[c.Block]; ok {
			targets = append(targets, table.Totals)
		}
		for _, s := range targets {
			if c.Size == 20 {
				s.C20++
			} else {
				s.C40++
			}
			s.Teus += teu
			if vesselDimension {
				s.VesselCounts[c.Vessel.String]++
			}
		}
	}

	if !vesselDimension || len(vessels) > 0 {
		for _, b := range blocks {
			if _, ok := selected[b.Name]; ok && table.Rows[b.Name].Teus > 0 {
				table.VisibleBlocks = append(table.VisibleBlocks, b.Name)
			}
		}
	}
	return table
}
