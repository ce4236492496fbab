package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/tabletools/tablepad/config"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	NextCell key.Binding
	PrevCell key.Binding

	EditCell       key.Binding
	AddRow         key.Binding
	AddColumn      key.Binding
	RenameColumn   key.Binding
	DeleteRow      key.Binding
	DeleteColumn   key.Binding
	DeleteSelected key.Binding

	ToggleSelect key.Binding
	SelectAll    key.Binding

	Copy        key.Binding
	ToggleFence key.Binding

	Help key.Binding
	Quit key.Binding
}

// newKeyMap builds the bindings, disabling the ones whose operation is
// not supported. Disabled bindings neither match key events nor show
// up in help, so gating happens in one place.
func newKeyMap(ops config.Operations) keyMap {
	keys := keyMap{
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		NextCell: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next cell")),
		PrevCell: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("⇧tab", "prev cell")),

		EditCell:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit cell")),
		AddRow:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add row")),
		AddColumn:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "add column")),
		RenameColumn:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename column")),
		DeleteRow:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete row")),
		DeleteColumn:   key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete column")),
		DeleteSelected: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete selected")),

		ToggleSelect: key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "toggle select")),
		SelectAll:    key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all/none")),

		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy table")),
		ToggleFence: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle fence")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}

	keys.EditCell.SetEnabled(ops.IsSupported(config.CellEdit))
	keys.AddRow.SetEnabled(ops.IsSupported(config.RowAdd))
	keys.AddColumn.SetEnabled(ops.IsSupported(config.ColumnAdd))
	keys.RenameColumn.SetEnabled(ops.IsSupported(config.ColumnRename))
	keys.DeleteRow.SetEnabled(ops.IsSupported(config.RowDelete))
	keys.DeleteColumn.SetEnabled(ops.IsSupported(config.ColumnDelete))
	keys.DeleteSelected.SetEnabled(ops.IsSupported(config.RowDelete))

	return keys
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.EditCell, k.AddRow, k.AddColumn, k.Copy, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.NextCell, k.PrevCell},
		{k.EditCell, k.AddRow, k.AddColumn, k.RenameColumn},
		{k.DeleteRow, k.DeleteColumn, k.ToggleSelect, k.SelectAll, k.DeleteSelected},
		{k.Copy, k.ToggleFence, k.Help, k.Quit},
	}
}
