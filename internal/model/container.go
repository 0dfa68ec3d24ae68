package model

import (
	"gopkg.in/guregu/null.v3"
)

type ContainerStatus string

const (
	StatusFull  ContainerStatus = "FULL"
	StatusEmpty ContainerStatus = "EMPTY"
)

// Flow is the direction a container moves through the yard. The zero value means
// the source sheet did not say, which downstream aggregation treats as inbound.
type Flow string

const (
	FlowNone    Flow = ""
	FlowImport  Flow = "IMPORT"
	FlowExport  Flow = "EXPORT"
	FlowStorage Flow = "STORAGE"
)

type PartType string

const (
	PartNone  PartType = ""
	PartStart PartType = "start"
	PartEnd   PartType = "end"
)

const (
	BlockUnknown     = "UNK"
	LocationUnmapped = "Unmapped"
	OwnerUnknown     = "Unknown"
)

// Container is one yard occupancy record. A 40ft container sitting on an even bay
// is stored as two records sharing every field except Bay and PartType.
type Container struct {
	ID                string          `json:"id" msgpack:"id"`
	Location          string          `json:"location" msgpack:"location"`
	Block             string          `json:"block" msgpack:"block"`
	Bay               int             `json:"bay" msgpack:"bay"`
	Row               int             `json:"row" msgpack:"row"`
	Tier              int             `json:"tier" msgpack:"tier"`
	Owner             string          `json:"owner" msgpack:"owner"`
	Vessel            null.String     `json:"vessel" msgpack:"vessel"`
	Status            ContainerStatus `json:"status" msgpack:"status"`
	Flow              Flow            `json:"flow,omitempty" msgpack:"flow"`
	TransshipmentPort null.String     `json:"transshipmentPort" msgpack:"transshipmentPort"`
	Weight            float64         `json:"weight" msgpack:"weight"`
	Size              int             `json:"size" msgpack:"size"`
	ISO               null.String     `json:"iso" msgpack:"iso"`
	IsMultiBay        bool            `json:"isMultiBay" msgpack:"isMultiBay"`
	PartType          PartType        `json:"partType,omitempty" msgpack:"partType"`
}

// IsTrailingPart reports whether c is the second record of a split 40ft
// container. Every aggregation skips these so the container is counted once.
func (c *Container) IsTrailingPart() bool {
	return c.IsMultiBay && c.PartType == PartEnd
}

type ParseStats struct {
	TotalRows         int `json:"totalRows" msgpack:"totalRows"`
	CreatedContainers int `json:"createdContainers" msgpack:"createdContainers"`
	SkippedRows       int `json:"skippedRows" msgpack:"skippedRows"`
}

type ParseResult struct {
	Containers []*Container `json:"containers"`
	Stats      ParseStats   `json:"stats"`
	Vessels    []string     `json:"vessels"`
}
