package repo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/pkg/yderr"
	"github.com/portyard/yardboard/internal/repo/selector"
)

const (
	TableRequests   = "yard_requests"
	TableSchedule   = "yard_schedule"
	TableContainers = "yard_containers"
)

type CloudRecord struct {
	db  *bun.DB
	sel selector.S[model.CloudRecord]
}

// NewCloudRecord returns nil when the cloud database is not connected.
func NewCloudRecord(db *bun.DB) *CloudRecord {
	if db == nil {
		return nil
	}
	return &CloudRecord{db: db, sel: selector.New[model.CloudRecord](db)}
}

func (r *CloudRecord) EnsureSchema(ctx context.Context) error {
	_, err := r.db.NewCreateTable().
		Model((*model.CloudRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to create cloud_records table")
	}

	_, err = r.db.NewCreateIndex().
		Model((*model.CloudRecord)(nil)).
		Index("idx_cloud_records_table_updated_at").
		IfNotExists().
		Column("table_name", "updated_at").
		Exec(ctx)
	return errors.Wrap(err, "failed to create cloud_records index")
}

func (r *CloudRecord) Upsert(ctx context.Context, table, id string, data json.RawMessage) (*model.CloudRecord, error) {
	record := &model.CloudRecord{
		TableName: table,
		ID:        id,
		Data:      data,
		UpdatedAt: time.Now(),
	}
	_, err := r.db.NewInsert().
		Model(record).
		On("CONFLICT (table_name, id) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetAllByTable returns up to limit records of table, most recently updated first.
func (r *CloudRecord) GetAllByTable(ctx context.Context, table string, limit int) ([]*model.CloudRecord, error) {
	records, err := r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("table_name = ?", table).
			Order("updated_at DESC").
			Limit(limit)
	})
	if errors.Is(err, yderr.ErrNotFound) {
		return []*model.CloudRecord{}, nil
	}
	return records, err
}
