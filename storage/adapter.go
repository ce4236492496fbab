package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/tabletools/tablepad/log"
	"github.com/tabletools/tablepad/table"
)

// Slot keys for the two independently persisted snapshots.
const (
	ColumnsKey = "tablepad.columns"
	RowsKey    = "tablepad.rows"
)

// Adapter mirrors store state into two KeyValue slots and reads them
// back on startup. Loading never fails: a slot that is absent,
// unreadable or structurally invalid falls back to that slot's default
// seed.
//
// Change notifications are ignored until MarkLoaded, so startup wiring
// can never overwrite previously saved data with default state.
type Adapter struct {
	kv     KeyValue
	store  *table.Store
	logger log.Logger

	loaded  atomic.Bool
	mu      sync.Mutex
	pending *snapshot
}

// snapshot holds deep-copied state taken on the event loop, so flushes
// from the background goroutine never touch the live store.
type snapshot struct {
	columns []table.Column
	rows    []table.Row
}

func NewAdapter(kv KeyValue, store *table.Store, logger log.Logger) *Adapter {
	return &Adapter{
		kv:     kv,
		store:  store,
		logger: logger,
	}
}

// Load reads both slots and returns the effective state. The columns
// fallback is the default seed; the rows fallback is a single empty row
// shaped by whichever columns just loaded.
func (a *Adapter) Load(ctx context.Context) ([]table.Column, []table.Row) {
	columns := a.loadColumns(ctx)
	rows := a.loadRows(ctx, columns)
	return columns, rows
}

func (a *Adapter) loadColumns(ctx context.Context) []table.Column {
	data, found, err := a.kv.Get(ctx, ColumnsKey)
	if err != nil {
		a.logger.Warn("unable to read columns slot, using defaults",
			"key", ColumnsKey, "error", err)
		return table.DefaultColumns()
	}
	if !found {
		return table.DefaultColumns()
	}

	records, err := decodeColumnRecords(data)
	if err != nil {
		a.logger.Warn("discarding malformed columns slot",
			"key", ColumnsKey, "error", err)
		return table.DefaultColumns()
	}
	return ColumnsFromRecords(records)
}

func (a *Adapter) loadRows(ctx context.Context, columns []table.Column) []table.Row {
	data, found, err := a.kv.Get(ctx, RowsKey)
	if err != nil {
		a.logger.Warn("unable to read rows slot, using defaults",
			"key", RowsKey, "error", err)
		return []table.Row{table.NewRow(columns)}
	}
	if !found {
		return []table.Row{table.NewRow(columns)}
	}

	records, err := decodeRowRecords(data)
	if err != nil {
		a.logger.Warn("discarding malformed rows slot",
			"key", RowsKey, "error", err)
		return []table.Row{table.NewRow(columns)}
	}
	return RowsFromRecords(records)
}

// Save writes both slots. Selection flags are stripped by the record
// conversion, so persisted snapshots never carry session state.
func (a *Adapter) Save(ctx context.Context, columns []table.Column, rows []table.Row) error {
	colData, err := json.Marshal(ColumnRecords(columns))
	if err != nil {
		return fmt.Errorf("encoding columns: %w", err)
	}
	rowData, err := json.Marshal(RowRecords(rows))
	if err != nil {
		return fmt.Errorf("encoding rows: %w", err)
	}

	if err := a.kv.Set(ctx, ColumnsKey, colData); err != nil {
		return fmt.Errorf("writing columns slot: %w", err)
	}
	if err := a.kv.Set(ctx, RowsKey, rowData); err != nil {
		return fmt.Errorf("writing rows slot: %w", err)
	}
	return nil
}

// MarkLoaded opens the gate for change notifications once the initial
// load has been applied to the store.
func (a *Adapter) MarkLoaded() {
	a.loaded.Store(true)
}

// NotifyChanged snapshots current store state as pending work for the
// next flush. It runs synchronously on the event loop, which is the
// only goroutine allowed to touch the store.
func (a *Adapter) NotifyChanged() {
	if !a.loaded.Load() {
		return
	}
	columns, rows := a.store.Snapshot()

	a.mu.Lock()
	a.pending = &snapshot{columns: columns, rows: rows}
	a.mu.Unlock()
}

// Dirty reports whether a snapshot is waiting to be written.
func (a *Adapter) Dirty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}

// Flush writes the most recent pending snapshot, if any. On failure the
// snapshot is kept (unless a newer one arrived) so the next flush
// retries; the editor keeps working either way.
func (a *Adapter) Flush(ctx context.Context) {
	a.mu.Lock()
	snap := a.pending
	a.pending = nil
	a.mu.Unlock()

	if snap == nil {
		return
	}

	if err := a.Save(ctx, snap.columns, snap.rows); err != nil {
		a.logger.Error("unable to save table state", "error", err)
		a.mu.Lock()
		if a.pending == nil {
			a.pending = snap
		}
		a.mu.Unlock()
	}
}
