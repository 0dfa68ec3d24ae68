package model

type ScheduleData struct {
	VesselName string `json:"vesselName" msgpack:"vesselName"`
	Discharge  int    `json:"discharge" msgpack:"discharge"`
	Load       int    `json:"load" msgpack:"load"`
}

// VesselListFilter narrows the known vessel list against the schedule table.
type VesselListFilter string

const (
	VesselListAll      VesselListFilter = "ALL"
	VesselListSchedule VesselListFilter = "SCHEDULE"
	VesselListOther    VesselListFilter = "OTHER"
)

// ScheduleParseResult is the outcome of extracting a schedule from text.
type ScheduleParseResult struct {
	Schedule    []*ScheduleData `json:"schedule"`
	Selection   []string        `json:"selection"`
	Highlighted []string        `json:"highlighted"`
}

// ScheduleFileResult is the outcome of reading a schedule document. Error is set
// instead of failing the request when the document cannot be read.
type ScheduleFileResult struct {
	Text   string               `json:"text"`
	Error  string               `json:"error,omitempty"`
	Parsed *ScheduleParseResult `json:"parsed,omitempty"`
}

type VesselEntry struct {
	Name      string `json:"name"`
	Scheduled bool   `json:"scheduled"`
	Selected  bool   `json:"selected"`
}

type VesselSelection struct {
	Selected    []string `json:"selected"`
	Displayed   []string `json:"displayed"`
	Highlighted []string `json:"highlighted"`
}
