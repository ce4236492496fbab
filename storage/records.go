package storage

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/tabletools/tablepad/table"
	"github.com/tabletools/tablepad/types"
)

var validate = validator.New()

// ColumnRecords converts live columns into their persisted shape.
func ColumnRecords(columns []table.Column) []types.ColumnRecord {
	records := make([]types.ColumnRecord, 0, len(columns))
	for _, col := range columns {
		records = append(records, types.ColumnRecord{
			ID:        col.ID,
			Name:      col.Name,
			IsDefault: col.IsDefault,
		})
	}
	return records
}

// RowRecords converts live rows into their persisted shape. Selection
// is session state and is always written as false.
func RowRecords(rows []table.Row) []types.RowRecord {
	records := make([]types.RowRecord, 0, len(rows))
	for _, row := range rows {
		values := make(map[string]string, len(row.Values))
		for k, v := range row.Values {
			values[k] = v
		}
		records = append(records, types.RowRecord{
			InternalID: row.InternalID,
			Selected:   false,
			Values:     values,
		})
	}
	return records
}

// ColumnsFromRecords converts persisted columns back to live ones.
func ColumnsFromRecords(records []types.ColumnRecord) []table.Column {
	columns := make([]table.Column, 0, len(records))
	for _, rec := range records {
		columns = append(columns, table.Column{
			ID:        rec.ID,
			Name:      rec.Name,
			IsDefault: rec.IsDefault,
		})
	}
	return columns
}

// RowsFromRecords converts persisted rows back to live ones, always
// deselected.
func RowsFromRecords(records []types.RowRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, rec := range records {
		values := rec.Values
		if values == nil {
			values = map[string]string{}
		}
		rows = append(rows, table.Row{
			InternalID: rec.InternalID,
			Selected:   false,
			Values:     values,
		})
	}
	return rows
}

// decodeColumnRecords parses and validates a columns slot payload. Any
// structural problem, including duplicate ids, rejects the whole slot.
func decodeColumnRecords(data []byte) ([]types.ColumnRecord, error) {
	var records []types.ColumnRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		if seen[rec.ID] {
			return nil, fmt.Errorf("column %d: duplicate id %q", i, rec.ID)
		}
		seen[rec.ID] = true
	}
	return records, nil
}

// decodeRowRecords parses and validates a rows slot payload.
func decodeRowRecords(data []byte) ([]types.RowRecord, error) {
	var records []types.RowRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if seen[rec.InternalID] {
			return nil, fmt.Errorf("row %d: duplicate internal id %q", i, rec.InternalID)
		}
		seen[rec.InternalID] = true
	}
	return records, nil
}
