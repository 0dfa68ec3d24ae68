package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/xuri/excelize/v2"
	"gopkg.in/guregu/null.v3"

	"github.com/portyard/yardboard/internal/app/appconfig"
	"github.com/portyard/yardboard/internal/model"
	"github.com/portyard/yardboard/internal/pkg/yderr"
	"github.com/portyard/yardboard/internal/repo"
)

type memState struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemState() *memState {
	return &memState{data: map[string][]byte{}}
}

func (m *memState) Load(_ context.Context, key string, dest any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return repo.ErrStateNotFound
	}
	return msgpack.Unmarshal(b, dest)
}

func (m *memState) Save(_ context.Context, key string, value any) error {
	b, err := msgpack.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = b
	return nil
}

func (m *memState) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memState) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

type fakeGuard struct {
	busy bool
}

func (g *fakeGuard) Acquire(context.Context) (func(), error) {
	if g.busy {
		return nil, yderr.ErrIngestInProgress
	}
	return func() {}, nil
}

type upsertCall struct {
	Table string
	ID    string
	Data  json.RawMessage
}

// fakeCloud records upserts. failAfter > 0 makes every upsert after the first
// failAfter ones fail. delay, when set, stalls an upsert before it is recorded.
type fakeCloud struct {
	mu        sync.Mutex
	calls     []upsertCall
	failAfter int
	delay     func(table string, value any) time.Duration
}

func (c *fakeCloud) Enabled() bool { return true }

func (c *fakeCloud) Upsert(_ context.Context, table, id string, value any) error {
	if c.delay != nil {
		time.Sleep(c.delay(table, value))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAfter > 0 && len(c.calls) >= c.failAfter {
		return errors.New("cloud unavailable")
	}
	b, err := gojson.Marshal(value)
	if err != nil {
		return err
	}
	c.calls = append(c.calls, upsertCall{Table: table, ID: id, Data: b})
	return nil
}

func (c *fakeCloud) FetchAll(context.Context, string) ([]json.RawMessage, error) {
	return []json.RawMessage{}, nil
}

func (c *fakeCloud) Subscribe(string, func(*model.CloudEvent)) (func(), error) {
	return func() {}, nil
}

func (c *fakeCloud) callsFor(table string) []upsertCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []upsertCall{}
	for _, call := range c.calls {
		if call.Table == table {
			out = append(out, call)
		}
	}
	return out
}

func testConfig() *appconfig.Config {
	return &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{
		SyncBatchSize:       2,
		SyncFetchLimit:      1000,
		ScheduleMaxPdfPages: 5,
		HighlightLimit:      3,
	}}
}

type testEnv struct {
	state    *memState
	cloud    Cloud
	sync     *Sync
	guard    *fakeGuard
	yard     *Yard
	blocks   *BlockConfig
	schedule *Schedule
	requests *Request
}

func newTestEnv(cloud Cloud) *testEnv {
	if cloud == nil {
		cloud = offlineCloud{}
	}
	conf := testConfig()
	env := &testEnv{
		state: newMemState(),
		cloud: cloud,
		guard: &fakeGuard{},
	}
	env.sync = NewSync(conf, cloud)
	archive := NewArchive(conf, nil)
	env.yard = NewYard(env.state, env.sync, env.guard, archive)
	env.blocks = NewBlockConfig(conf, env.state)
	env.schedule = NewSchedule(conf, env.state, env.sync, env.yard, NewTextExtractor(conf), archive)
	env.requests = NewRequest(env.state, env.sync)
	return env
}

// workbook builds an xlsx file in memory; the first row is the header row.
func workbook(t *testing.T, rows ...[]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &rows[i]))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func container(id, block string, opts ...func(c *model.Container)) *model.Container {
	c := &model.Container{
		ID:     id,
		Block:  block,
		Owner:  model.OwnerUnknown,
		Status: model.StatusFull,
		Size:   20,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func withVessel(v string) func(c *model.Container) {
	return func(c *model.Container) { c.Vessel = null.StringFrom(v) }
}

func withISO(iso string) func(c *model.Container) {
	return func(c *model.Container) { c.ISO = null.StringFrom(iso) }
}

func withFlow(f model.Flow) func(c *model.Container) {
	return func(c *model.Container) { c.Flow = f }
}

func asEmpty(c *model.Container) { c.Status = model.StatusEmpty }

// split40 returns the two records of a 40ft container on an even bay.
func split40(id, block string, opts ...func(c *model.Container)) []*model.Container {
	start := container(id, block, opts...)
	start.Size, start.IsMultiBay, start.PartType = 40, true, model.PartStart
	end := *start
	end.PartType = model.PartEnd
	return []*model.Container{start, &end}
}

func asYardError(t *testing.T, err error) *yderr.YardError {
	t.Helper()
	var ye *yderr.YardError
	require.True(t, errors.As(err, &ye), "expected a YardError, got %v", err)
	return ye
}
