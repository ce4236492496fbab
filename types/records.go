// types package contains the record shapes persisted to the slot store,
// shared between the storage adapter and the export command.
package types

// ColumnRecord is the persisted form of a column definition.
type ColumnRecord struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

// RowRecord is the persisted form of a row. Selected is part of the
// shape for round-trip fidelity but is always written as false; the
// flag is session state, not content.
type RowRecord struct {
	InternalID string            `json:"internalId" validate:"required"`
	Selected   bool              `json:"selected"`
	Values     map[string]string `json:"values"`
}
