package model

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAssigned RequestStatus = "assigned"
)

// ContainerRequest is a gate-to-yard placement request raised at the gate and
// answered by the yard with a location.
type ContainerRequest struct {
	ID                 string          `json:"id" msgpack:"id"`
	ContainerID        string          `json:"containerId" msgpack:"containerId"`
	Size               int             `json:"size" msgpack:"size"`
	Status             RequestStatus   `json:"status" msgpack:"status"`
	ContainerStatus    ContainerStatus `json:"containerStatus" msgpack:"containerStatus"`
	Flow               Flow            `json:"flow,omitempty" msgpack:"flow"`
	Vessel             string          `json:"vessel,omitempty" msgpack:"vessel"`
	Owner              string          `json:"owner,omitempty" msgpack:"owner"`
	TruckPlate         string          `json:"truckPlate,omitempty" msgpack:"truckPlate"`
	Note               string          `json:"note,omitempty" msgpack:"note"`
	AssignedLocation   string          `json:"assignedLocation,omitempty" msgpack:"assignedLocation"`
	Timestamp          int64           `json:"timestamp" msgpack:"timestamp"`
	AcknowledgedByYard bool            `json:"acknowledgedByYard" msgpack:"acknowledgedByYard"`
	AcknowledgedByGate bool            `json:"acknowledgedByGate" msgpack:"acknowledgedByGate"`
}

type AppMode string

const (
	ModeViewer AppMode = "VIEWER"
	ModeGate   AppMode = "GATE"
	ModeYard   AppMode = "YARD"
)

// RequestSubmission is what the gate fills in when raising a request.
type RequestSubmission struct {
	ContainerID     string          `json:"containerId" validate:"required,max=32"`
	Size            int             `json:"size" validate:"oneof=20 40"`
	ContainerStatus ContainerStatus `json:"containerStatus" validate:"required,oneof=FULL EMPTY"`
	Flow            Flow            `json:"flow" validate:"omitempty,oneof=IMPORT EXPORT STORAGE"`
	Vessel          string          `json:"vessel" validate:"max=128"`
	Owner           string          `json:"owner" validate:"max=128"`
	TruckPlate      string          `json:"truckPlate" validate:"max=32"`
	Note            string          `json:"note" validate:"max=1024"`
}

type RequestAssignment struct {
	Location string `json:"location" validate:"required,max=32"`
}

type AckTarget string

const (
	AckGate AckTarget = "gate"
	AckYard AckTarget = "yard"
)

type AlarmState struct {
	Mode   AppMode `json:"mode"`
	Active bool    `json:"active"`
}
