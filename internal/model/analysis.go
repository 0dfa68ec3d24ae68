package model

type DischargeAnalysis struct {
	RTGBlocks    []string                 `json:"rtgBlocks"`
	RSBlocks     []string                 `json:"rsBlocks"`
	RTGCapacity  int                      `json:"rtgCapacity"`
	RTGUsed      int                      `json:"rtgUsed"`
	RTGAvailable int                      `json:"rtgAvailable"`
	Vessels      []*VesselDischargeResult `json:"vessels"`
}

type VesselDischargeResult struct {
	VesselName string `json:"vesselName"`
	Discharge  int    `json:"discharge"`
	Fits       bool   `json:"fits"`
	Overflow   int    `json:"overflow,omitempty"`
	// PercentOfAvailable is only set when the vessel fits into a positive
	// remaining capacity.
	PercentOfAvailable int `json:"percentOfAvailable,omitempty"`
}

type VesselLoadResult struct {
	VesselName string             `json:"vesselName"`
	Load       int                `json:"load"`
	Threshold  int                `json:"threshold"`
	Blocks     []*BlockLoadResult `json:"blocks"`
}

type BlockLoadResult struct {
	Block     string `json:"block"`
	Count     int    `json:"count"`
	Exceeds   bool   `json:"exceeds"`
	Excess    int    `json:"excess,omitempty"`
	Remaining int    `json:"remaining,omitempty"`
}
