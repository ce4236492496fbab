package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tabletools/tablepad/config"
	"github.com/tabletools/tablepad/internal/testutil"
	"github.com/tabletools/tablepad/table"
	"github.com/tabletools/tablepad/types"
)

// memKeyValue is an in-memory KeyValue for round-trip tests.
type memKeyValue struct {
	slots map[string][]byte
}

func newMemKeyValue() *memKeyValue {
	return &memKeyValue{slots: map[string][]byte{}}
}

func (m *memKeyValue) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, found := m.slots[key]
	return value, found, nil
}

func (m *memKeyValue) Set(_ context.Context, key string, value []byte) error {
	m.slots[key] = value
	return nil
}

func (m *memKeyValue) Close() error { return nil }

func newTestAdapter(kv KeyValue) (*Adapter, *table.Store) {
	store := table.NewStore(config.NewDefaultNaming())
	return NewAdapter(kv, store, testutil.TestLogger()), store
}

func TestAdapterLoadFirstRun(t *testing.T) {
	adapter, _ := newTestAdapter(NewKeyValueMock())

	columns, rows := adapter.Load(context.Background())

	assert.Equal(t, table.DefaultColumns(), columns)
	assert.Len(t, rows, 1)
	assert.False(t, rows[0].Selected)
	assert.Equal(t, map[string]string{"key": "", "value": "", "notes": ""}, rows[0].Values)
}

func TestAdapterSaveLoadRoundTrip(t *testing.T) {
	kv := newMemKeyValue()
	adapter, _ := newTestAdapter(kv)

	columns := []table.Column{{ID: "id", Name: "ID"}}
	rows := []table.Row{{
		InternalID: "r1",
		Selected:   true,
		Values:     map[string]string{"id": "5"},
	}}

	err := adapter.Save(context.Background(), columns, rows)
	assert.NoError(t, err)

	gotColumns, gotRows := adapter.Load(context.Background())
	assert.Equal(t, columns, gotColumns)
	assert.Len(t, gotRows, 1)
	assert.False(t, gotRows[0].Selected)
	assert.Equal(t, "5", gotRows[0].Values["id"])
}

func TestAdapterSaveStripsSelection(t *testing.T) {
	kv := newMemKeyValue()
	adapter, _ := newTestAdapter(kv)

	rows := []table.Row{{InternalID: "r1", Selected: true, Values: map[string]string{}}}
	err := adapter.Save(context.Background(), []table.Column{{ID: "a", Name: "A"}}, rows)
	assert.NoError(t, err)

	var records []types.RowRecord
	assert.NoError(t, json.Unmarshal(kv.slots[RowsKey], &records))
	assert.Len(t, records, 1)
	assert.False(t, records[0].Selected)
}

func TestAdapterLoadMalformedColumnsSlot(t *testing.T) {
	kvMock := &KeyValueMock{}
	kvMock.On("Get", mock.Anything, ColumnsKey).Return([]byte("{oops"), true, nil)
	kvMock.On("Get", mock.Anything, RowsKey).Return(nil, false, nil)

	adapter, _ := newTestAdapter(kvMock)
	columns, rows := adapter.Load(context.Background())

	assert.Equal(t, table.DefaultColumns(), columns)
	assert.Len(t, rows, 1)
	assert.Equal(t, map[string]string{"key": "", "value": "", "notes": ""}, rows[0].Values)
}

func TestAdapterLoadMalformedRowsSlot(t *testing.T) {
	columnsPayload := []byte(`[{"id":"id","name":"ID"}]`)

	kvMock := &KeyValueMock{}
	kvMock.On("Get", mock.Anything, ColumnsKey).Return(columnsPayload, true, nil)
	kvMock.On("Get", mock.Anything, RowsKey).Return([]byte("not json"), true, nil)

	adapter, _ := newTestAdapter(kvMock)
	columns, rows := adapter.Load(context.Background())

	assert.Equal(t, []table.Column{{ID: "id", Name: "ID"}}, columns)
	// The fallback row is shaped by the columns that just loaded
	assert.Len(t, rows, 1)
	assert.Equal(t, map[string]string{"id": ""}, rows[0].Values)
}

func TestAdapterLoadRejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "missing column id", payload: `[{"id":"","name":"X"}]`},
		{name: "missing column name", payload: `[{"id":"x","name":""}]`},
		{name: "duplicate column ids", payload: `[{"id":"a","name":"A"},{"id":"a","name":"B"}]`},
		{name: "object instead of array", payload: `{"id":"a","name":"A"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kvMock := &KeyValueMock{}
			kvMock.On("Get", mock.Anything, ColumnsKey).Return([]byte(tt.payload), true, nil)
			kvMock.On("Get", mock.Anything, RowsKey).Return(nil, false, nil)

			adapter, _ := newTestAdapter(kvMock)
			columns, _ := adapter.Load(context.Background())
			assert.Equal(t, table.DefaultColumns(), columns)
		})
	}
}

func TestAdapterLoadEmptySlotsStayEmpty(t *testing.T) {
	kvMock := &KeyValueMock{}
	kvMock.On("Get", mock.Anything, ColumnsKey).Return([]byte(`[]`), true, nil)
	kvMock.On("Get", mock.Anything, RowsKey).Return([]byte(`[]`), true, nil)

	adapter, _ := newTestAdapter(kvMock)
	columns, rows := adapter.Load(context.Background())

	// A deliberately emptied table is not re-seeded
	assert.Empty(t, columns)
	assert.Empty(t, rows)
}

func TestAdapterLoadReadError(t *testing.T) {
	kvMock := &KeyValueMock{}
	kvMock.On("Get", mock.Anything, ColumnsKey).Return(nil, false, errors.New("disk error"))
	kvMock.On("Get", mock.Anything, RowsKey).Return(nil, false, errors.New("disk error"))

	adapter, _ := newTestAdapter(kvMock)
	columns, rows := adapter.Load(context.Background())

	assert.Equal(t, table.DefaultColumns(), columns)
	assert.Len(t, rows, 1)
}

func TestAdapterNotifyIgnoredUntilLoaded(t *testing.T) {
	adapter, store := newTestAdapter(newMemKeyValue())
	store.Subscribe(adapter.NotifyChanged)

	store.AddColumn("Early")
	assert.False(t, adapter.Dirty())

	adapter.MarkLoaded()
	store.AddColumn("Late")
	assert.True(t, adapter.Dirty())
}

func TestAdapterFlushWritesPendingSnapshot(t *testing.T) {
	kv := newMemKeyValue()
	adapter, store := newTestAdapter(kv)
	store.Subscribe(adapter.NotifyChanged)
	adapter.MarkLoaded()

	store.AddColumn("Key")
	store.AddRow()
	assert.True(t, adapter.Dirty())

	adapter.Flush(context.Background())

	assert.False(t, adapter.Dirty())
	assert.Contains(t, kv.slots, ColumnsKey)
	assert.Contains(t, kv.slots, RowsKey)

	columns, rows := adapter.Load(context.Background())
	assert.Len(t, columns, 1)
	assert.Len(t, rows, 1)
}

func TestAdapterFlushWithoutChangesIsNoOp(t *testing.T) {
	kv := newMemKeyValue()
	adapter, _ := newTestAdapter(kv)
	adapter.MarkLoaded()

	adapter.Flush(context.Background())
	assert.Empty(t, kv.slots)
}

func TestAdapterFlushKeepsSnapshotOnWriteError(t *testing.T) {
	kvMock := &KeyValueMock{}
	kvMock.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	adapter, store := newTestAdapter(kvMock)
	store.Subscribe(adapter.NotifyChanged)
	adapter.MarkLoaded()

	store.AddColumn("Key")
	adapter.Flush(context.Background())

	// The failed snapshot is retained for retry
	assert.True(t, adapter.Dirty())
}
