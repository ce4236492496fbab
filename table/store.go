package table

import (
	"strings"

	"github.com/tabletools/tablepad/config"
)

// Store owns the canonical column sequence and row collection. Every
// mutation keeps the row invariant intact: each row carries an entry,
// possibly empty, for every column id. Operations are total; calls
// referencing an unknown id are no-ops, so stale references after a
// delete are harmless.
//
// The store is confined to the UI event loop and does no locking of its
// own.
type Store struct {
	naming  config.NamingConvention
	columns []Column
	rows    []Row
	subs    map[int]func()
	nextSub int
}

func NewStore(naming config.NamingConvention) *Store {
	return &Store{
		naming: naming,
		subs:   make(map[int]func()),
	}
}

// Subscribe registers fn to run synchronously after every completed
// mutation. The returned function removes the subscription.
func (s *Store) Subscribe(fn func()) func() {
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		delete(s.subs, id)
	}
}

func (s *Store) notify() {
	for _, fn := range s.subs {
		fn()
	}
}

// AddColumn appends a column derived from the display name and
// back-fills an empty value into every existing row. Names that trim to
// empty are ignored. Returns the new column id, or "" when nothing was
// added.
func (s *Store) AddColumn(displayName string) string {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return ""
	}

	id := s.naming.ToColumnIDUnique(name, s.hasColumn)
	s.columns = append(s.columns, Column{ID: id, Name: name})
	for i := range s.rows {
		s.rows[i].Values[id] = ""
	}
	s.notify()
	return id
}

// RenameColumn updates a column's display label. The id is unaffected,
// so existing row values stay keyed correctly.
func (s *Store) RenameColumn(id, displayName string) {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return
	}
	for i := range s.columns {
		if s.columns[i].ID == id {
			if s.columns[i].Name != name {
				s.columns[i].Name = name
				s.notify()
			}
			return
		}
	}
}

// DeleteColumn removes the column and strips its key from every row.
// Idempotent: deleting an unknown id does nothing. Default columns are
// deletable here; withholding that action is the UI's policy.
func (s *Store) DeleteColumn(id string) {
	for i := range s.columns {
		if s.columns[i].ID == id {
			s.columns = append(s.columns[:i], s.columns[i+1:]...)
			for j := range s.rows {
				delete(s.rows[j].Values, id)
			}
			s.notify()
			return
		}
	}
}

// AddRow appends an empty row and returns its identifier.
func (s *Store) AddRow() string {
	row := NewRow(s.columns)
	s.rows = append(s.rows, row)
	s.notify()
	return row.InternalID
}

// DeleteRow removes the row with the given identifier, if present.
func (s *Store) DeleteRow(internalID string) {
	for i := range s.rows {
		if s.rows[i].InternalID == internalID {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			s.notify()
			return
		}
	}
}

// DeleteSelected removes every selected row, keeping the relative order
// of the remainder.
func (s *Store) DeleteSelected() {
	kept := s.rows[:0]
	removed := false
	for _, row := range s.rows {
		if row.Selected {
			removed = true
			continue
		}
		kept = append(kept, row)
	}
	s.rows = kept
	if removed {
		s.notify()
	}
}

// SetSelection sets the selection flag on a single row.
func (s *Store) SetSelection(internalID string, selected bool) {
	for i := range s.rows {
		if s.rows[i].InternalID == internalID {
			if s.rows[i].Selected != selected {
				s.rows[i].Selected = selected
				s.notify()
			}
			return
		}
	}
}

// SetSelectAll sets the selection flag on every row.
func (s *Store) SetSelectAll(selected bool) {
	changed := false
	for i := range s.rows {
		if s.rows[i].Selected != selected {
			s.rows[i].Selected = selected
			changed = true
		}
	}
	if changed {
		s.notify()
	}
}

// SetCellValue overwrites one cell. Content is not validated; unknown
// row or column ids are ignored.
func (s *Store) SetCellValue(internalID, columnID, text string) {
	if !s.hasColumn(columnID) {
		return
	}
	for i := range s.rows {
		if s.rows[i].InternalID == internalID {
			if s.rows[i].Values[columnID] != text {
				s.rows[i].Values[columnID] = text
				s.notify()
			}
			return
		}
	}
}

// Replace swaps in externally loaded state, normalizing it first: every
// row gains empty entries for missing column ids, drops entries for
// unknown ids, and is deselected. Used when seeding the store from
// persisted snapshots.
func (s *Store) Replace(columns []Column, rows []Row) {
	s.columns = make([]Column, len(columns))
	copy(s.columns, columns)

	s.rows = make([]Row, 0, len(rows))
	for _, row := range rows {
		r := row.clone()
		if r.Values == nil {
			r.Values = make(map[string]string, len(s.columns))
		}
		for id := range r.Values {
			if !s.hasColumn(id) {
				delete(r.Values, id)
			}
		}
		for _, col := range s.columns {
			if _, ok := r.Values[col.ID]; !ok {
				r.Values[col.ID] = ""
			}
		}
		r.Selected = false
		s.rows = append(s.rows, r)
	}
	s.notify()
}

// Snapshot returns deep copies of the column sequence and row
// collection, safe to hand to the renderer or to background saves.
func (s *Store) Snapshot() ([]Column, []Row) {
	columns := make([]Column, len(s.columns))
	copy(columns, s.columns)

	rows := make([]Row, len(s.rows))
	for i, row := range s.rows {
		rows[i] = row.clone()
	}
	return columns, rows
}

func (s *Store) ColumnCount() int {
	return len(s.columns)
}

func (s *Store) RowCount() int {
	return len(s.rows)
}

// SelectedCount reports how many rows are currently selected.
func (s *Store) SelectedCount() int {
	count := 0
	for _, row := range s.rows {
		if row.Selected {
			count++
		}
	}
	return count
}

// AllSelected reports whether there is at least one row and every row
// is selected.
func (s *Store) AllSelected() bool {
	if len(s.rows) == 0 {
		return false
	}
	for _, row := range s.rows {
		if !row.Selected {
			return false
		}
	}
	return true
}

func (s *Store) hasColumn(id string) bool {
	for _, col := range s.columns {
		if col.ID == id {
			return true
		}
	}
	return false
}
