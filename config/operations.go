package config

import "fmt"

// Operations is a bitmask of the edit operations the UI may offer.
type Operations int

const (
	ColumnAdd Operations = 1 << iota
	ColumnDelete
	ColumnRename
	RowAdd
	RowDelete
	CellEdit
)

const AllOperations = ColumnAdd | ColumnDelete | ColumnRename | RowAdd | RowDelete | CellEdit

// Ops builds an operation set from setting names. An empty list means
// every operation is allowed.
func Ops(ops ...string) (Operations, error) {
	if len(ops) == 0 {
		return AllOperations, nil
	}
	var o Operations
	if err := o.Add(ops...); err != nil {
		return 0, err
	}
	return o, nil
}

func (o *Operations) Set(ops Operations)             { *o |= ops }
func (o *Operations) Clear(ops Operations)           { *o &= ^ops }
func (o Operations) IsSupported(ops Operations) bool { return o&ops != 0 }

func (o *Operations) Add(ops ...string) error {
	for _, op := range ops {
		switch op {
		case "ColumnAdd":
			o.Set(ColumnAdd)
		case "ColumnDelete":
			o.Set(ColumnDelete)
		case "ColumnRename":
			o.Set(ColumnRename)
		case "RowAdd":
			o.Set(RowAdd)
		case "RowDelete":
			o.Set(RowDelete)
		case "CellEdit":
			o.Set(CellEdit)
		default:
			return fmt.Errorf("invalid operation: %s", op)
		}
	}
	return nil
}
