package table

import "github.com/google/uuid"

// Column describes one column of the table. ID keys the row value maps
// and never changes after creation; Name is the display label and may
// be renamed freely.
type Column struct {
	ID        string
	Name      string
	IsDefault bool
}

// Row holds one row of cell text keyed by column id. Selected is
// session-only state and is never part of persisted content.
type Row struct {
	InternalID string
	Selected   bool
	Values     map[string]string
}

// NewRow builds an unselected row with a fresh identifier and an empty
// value for every given column.
func NewRow(columns []Column) Row {
	values := make(map[string]string, len(columns))
	for _, col := range columns {
		values[col.ID] = ""
	}
	return Row{
		InternalID: uuid.New().String(),
		Values:     values,
	}
}

// DefaultColumns returns the seed columns used when no persisted state
// exists.
func DefaultColumns() []Column {
	return []Column{
		{ID: "key", Name: "Key", IsDefault: true},
		{ID: "value", Name: "Value", IsDefault: true},
		{ID: "notes", Name: "Notes", IsDefault: true},
	}
}

func (r Row) clone() Row {
	values := make(map[string]string, len(r.Values))
	for k, v := range r.Values {
		values[k] = v
	}
	r.Values = values
	return r
}
