package model

// BlockStats is the unfiltered occupancy of a single configured block.
type BlockStats struct {
	Name           string `json:"name" msgpack:"name"`
	Group          string `json:"group" msgpack:"group"`
	Capacity       int    `json:"capacity" msgpack:"capacity"`
	ExportFullTeus int    `json:"exportFullTeus" msgpack:"exportFullTeus"`
	ImportFullTeus int    `json:"importFullTeus" msgpack:"importFullTeus"`
	EmptyTeus      int    `json:"emptyTeus" msgpack:"emptyTeus"`

	ExportFullCount int `json:"exportFullCount" msgpack:"exportFullCount"`
	ImportFullCount int `json:"importFullCount" msgpack:"importFullCount"`
	EmptyCount      int `json:"emptyCount" msgpack:"emptyCount"`
}

func (s *BlockStats) TotalTeus() int {
	return s.ExportFullTeus + s.ImportFullTeus + s.EmptyTeus
}

type BlockStatsResult struct {
	Blocks []*BlockStats `json:"blocks"`
	Totals BlockStats    `json:"totals"`
}

// BlockRowStats is one row of the block x vessel cross tabulation.
type BlockRowStats struct {
	C20          int            `json:"c20"`
	C40          int            `json:"c40"`
	Teus         int            `json:"teus"`
	VesselCounts map[string]int `json:"vesselCounts"`
}

func NewBlockRowStats(vessels []string) *BlockRowStats {
	s := &BlockRowStats{VesselCounts: make(map[string]int, len(vessels))}
	for _, v := range vessels {
		s.VesselCounts[v] = 0
	}
	return s
}

// InclusionFilter toggles the four flow/status buckets. Everything that is not an
// export is aggregated under the import toggles.
type InclusionFilter struct {
	ExportFull  bool `json:"exportFull"`
	ExportEmpty bool `json:"exportEmpty"`
	ImportFull  bool `json:"importFull"`
	ImportEmpty bool `json:"importEmpty"`
}

func IncludeAll() InclusionFilter {
	return InclusionFilter{ExportFull: true, ExportEmpty: true, ImportFull: true, ImportEmpty: true}
}

type VesselTable struct {
	Vessels       []string                  `json:"vessels"`
	Rows          map[string]*BlockRowStats `json:"rows"`
	Totals        *BlockRowStats            `json:"totals"`
	VisibleBlocks []string                  `json:"visibleBlocks"`
}

// VesselTableQuery is the body of a vessel table request. A nil Filter
// includes every bucket.
type VesselTableQuery struct {
	Filter         *InclusionFilter `json:"filter"`
	SelectedBlocks []string         `json:"selectedBlocks"`
	// ByVessel activates the vessel dimension. Vessels defaults to the
	// displayed selection when left empty.
	ByVessel bool     `json:"byVessel"`
	Vessels  []string `json:"vessels" validate:"dive,max=128"`
}

type LoadQuery struct {
	Filter *InclusionFilter `json:"filter"`
}
