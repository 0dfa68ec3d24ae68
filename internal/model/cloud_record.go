package model

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// CloudRecord is a single synced row. Every synced table shares the same
// id/data/updated_at shape, so they all live in one relation keyed by table name.
type CloudRecord struct {
	bun.BaseModel `bun:"cloud_records,alias:cr"`

	TableName string          `bun:"table_name,pk" json:"table"`
	ID        string          `bun:"id,pk" json:"id"`
	Data      json.RawMessage `bun:"data,type:jsonb" json:"data"`
	UpdatedAt time.Time       `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// CloudEvent is broadcast after every upsert so that other instances can apply it.
type CloudEvent struct {
	Table  string          `json:"table"`
	ID     string          `json:"id"`
	Origin string          `json:"origin"`
	Data   json.RawMessage `json:"data"`
}

// ContainerBatch is the payload of one yard_containers record. Version ties the
// batches of one upload together so stale batches of a larger earlier upload can
// be told apart.
type ContainerBatch struct {
	Version    string       `json:"version"`
	Offset     int          `json:"offset"`
	Containers []*Container `json:"containers"`
}
