package model

type BlockType string

const (
	BlockTypeGrid BlockType = "GRID"
	BlockTypeHeap BlockType = "HEAP"
)

type MachineType string

const (
	MachineRTG MachineType = "RTG"
	MachineRS  MachineType = "RS"
)

// BlockConfig is the static topology of one yard block. Heap blocks have no
// grid, so their bay/row/tier dimensions are zero.
type BlockConfig struct {
	Name        string      `json:"name" msgpack:"name" validate:"required,max=32"`
	Capacity    int         `json:"capacity" msgpack:"capacity" validate:"gte=0"`
	Group       string      `json:"group" msgpack:"group"`
	IsDefault   bool        `json:"isDefault" msgpack:"isDefault"`
	TotalBays   int         `json:"totalBays" msgpack:"totalBays" validate:"gte=0"`
	RowsPerBay  int         `json:"rowsPerBay" msgpack:"rowsPerBay" validate:"gte=0"`
	TiersPerBay int         `json:"tiersPerBay" msgpack:"tiersPerBay" validate:"gte=0"`
	BlockType   BlockType   `json:"blockType" msgpack:"blockType" validate:"omitempty,oneof=GRID HEAP"`
	MachineType MachineType `json:"machineType" msgpack:"machineType" validate:"omitempty,oneof=RTG RS"`
}
