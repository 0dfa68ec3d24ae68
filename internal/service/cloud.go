package service

import (
	"context"
	"encoding/json"

	gojson "github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"github.com/portyard/yardboard/internal/app/appconfig"
	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/repo"
)

const cloudSubjectPrefix = "yardboard.sync."

// Cloud is the shared store other yard instances sync through. Records are
// upserted by table and id; every upsert is broadcast to subscribers of the
// table except the instance that made it.
type Cloud interface {
	Enabled() bool
	Upsert(ctx context.Context, table, id string, value any) error
	// FetchAll returns the payloads of table, most recently updated first.
	FetchAll(ctx context.Context, table string) ([]json.RawMessage, error)
	Subscribe(table string, onChange func(evt *model.CloudEvent)) (unsubscribe func(), err error)
}

// NewCloud returns the database and event bus backed Cloud, or an offline one
// when cloud sync is disabled.
func NewCloud(conf *appconfig.Config, records *repo.CloudRecord, nc *nats.Conn) Cloud {
	if !conf.CloudSyncEnabled || records == nil || nc == nil {
		return offlineCloud{}
	}
	return &natsCloud{
		records:    records,
		nc:         nc,
		origin:     xid.New().String(),
		fetchLimit: conf.SyncFetchLimit,
	}
}

type offlineCloud struct{}

func (offlineCloud) Enabled() bool { return false }

func (offlineCloud) Upsert(context.Context, string, string, any) error { return nil }

func (offlineCloud) FetchAll(context.Context, string) ([]json.RawMessage, error) {
	return []json.RawMessage{}, nil
}

func (offlineCloud) Subscribe(string, func(*model.CloudEvent)) (func(), error) {
	return func() {}, nil
}

type natsCloud struct {
	records    *repo.CloudRecord
	nc         *nats.Conn
	origin     string
	fetchLimit int
}

func (c *natsCloud) Enabled() bool { return true }

func (c *natsCloud) Upsert(ctx context.Context, table, id string, value any) error {
	data, err := gojson.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "failed to marshal cloud record")
	}
	if _, err := c.records.Upsert(ctx, table, id, data); err != nil {
		return errors.Wrapf(err, "failed to upsert %s/%s", table, id)
	}

	evt, err := gojson.Marshal(&model.CloudEvent{
		Table:  table,
		ID:     id,
		Origin: c.origin,
		Data:   data,
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal cloud event")
	}
	return errors.Wrap(c.nc.Publish(cloudSubjectPrefix+table, evt), "failed to publish cloud event")
}

func (c *natsCloud) FetchAll(ctx context.Context, table string) ([]json.RawMessage, error) {
	records, err := c.records.GetAllByTable(ctx, table, c.fetchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, len(records))
	for i, r := range records {
		out[i] = r.Data
	}
	return out, nil
}

func (c *natsCloud) Subscribe(table string, onChange func(evt *model.CloudEvent)) (func(), error) {
	sub, err := c.nc.Subscribe(cloudSubjectPrefix+table, func(msg *nats.Msg) {
		var evt model.CloudEvent
		if err := gojson.Unmarshal(msg.Data, &evt); err != nil {
			log.Warn().
				Str("evt.name", "cloud.event_malformed").
				Str("subject", msg.Subject).
				Err(err).
				Msg("dropping malformed cloud event")
			return
		}
		if evt.Origin == c.origin {
			return
		}
		onChange(&evt)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to subscribe to %s", table)
	}
	return func() {
		if err := sub.Unsubscribe(); err != nil {
			log.Warn().Err(err).Str("table", table).Msg("failed to unsubscribe cloud events")
		}
	}, nil
}
