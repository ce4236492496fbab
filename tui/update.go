package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabletools/tablepad/render"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case clipboardResultMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard write failed", "error", msg.err)
			cmd := m.flashStatus(statusError, "clipboard error")
			return m, cmd
		}
		cmd := m.flashStatus(statusSuccess, "copied to clipboard")
		return m, cmd

	case statusExpireMsg:
		if msg.seq == m.statusSeq {
			m.statusKind = statusIdle
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeNormal {
			return m.updatePrompt(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursorY > 0 {
			m.cursorY--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursorY < m.store.RowCount()-1 {
			m.cursorY++
		}

	case key.Matches(msg, m.keys.Left):
		if m.cursorX > 0 {
			m.cursorX--
		}

	case key.Matches(msg, m.keys.Right):
		if m.cursorX < m.store.ColumnCount()-1 {
			m.cursorX++
		}

	case key.Matches(msg, m.keys.NextCell):
		m.advanceCursor(1)

	case key.Matches(msg, m.keys.PrevCell):
		m.advanceCursor(-1)

	case key.Matches(msg, m.keys.EditCell):
		columns, rows := m.store.Snapshot()
		if m.cursorY < len(rows) && m.cursorX < len(columns) {
			m.mode = modeEditCell
			m.input.Placeholder = ""
			m.input.SetValue(rows[m.cursorY].Values[columns[m.cursorX].ID])
			m.input.CursorEnd()
			m.input.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, m.keys.AddRow):
		m.store.AddRow()
		m.cursorY = m.store.RowCount() - 1

	case key.Matches(msg, m.keys.AddColumn):
		m.mode = modeAddColumn
		m.input.Placeholder = "column name"
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.RenameColumn):
		columns, _ := m.store.Snapshot()
		if m.cursorX < len(columns) {
			m.mode = modeRenameColumn
			m.input.Placeholder = ""
			m.input.SetValue(columns[m.cursorX].Name)
			m.input.CursorEnd()
			m.input.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, m.keys.DeleteRow):
		_, rows := m.store.Snapshot()
		if m.cursorY < len(rows) {
			m.store.DeleteRow(rows[m.cursorY].InternalID)
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.DeleteColumn):
		// Default columns are kept out of reach here; the store itself
		// would delete them.
		columns, _ := m.store.Snapshot()
		if m.cursorX < len(columns) && !columns[m.cursorX].IsDefault {
			m.store.DeleteColumn(columns[m.cursorX].ID)
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.ToggleSelect):
		_, rows := m.store.Snapshot()
		if m.cursorY < len(rows) {
			row := rows[m.cursorY]
			m.store.SetSelection(row.InternalID, !row.Selected)
		}

	case key.Matches(msg, m.keys.SelectAll):
		m.store.SetSelectAll(!m.store.AllSelected())

	case key.Matches(msg, m.keys.DeleteSelected):
		m.store.DeleteSelected()
		m.clampCursor()

	case key.Matches(msg, m.keys.Copy):
		return m, copyToClipboard(m.renderedTable())

	case key.Matches(msg, m.keys.ToggleFence):
		m.fenced = !m.fenced
	}

	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.commitPrompt()
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) commitPrompt() {
	value := m.input.Value()
	columns, rows := m.store.Snapshot()

	switch m.mode {
	case modeEditCell:
		if m.cursorY < len(rows) && m.cursorX < len(columns) {
			m.store.SetCellValue(rows[m.cursorY].InternalID, columns[m.cursorX].ID, value)
		}
	case modeAddColumn:
		if m.store.AddColumn(value) != "" {
			m.cursorX = m.store.ColumnCount() - 1
		}
	case modeRenameColumn:
		if m.cursorX < len(columns) {
			m.store.RenameColumn(columns[m.cursorX].ID, value)
		}
	}
}

// renderedTable is the exact text a copy would place on the clipboard;
// the preview pane shows the same string.
func (m Model) renderedTable() string {
	columns, rows := m.store.Snapshot()
	return render.Format(render.Table(columns, rows), m.fenced)
}

// advanceCursor moves one cell forward or back, wrapping across row
// boundaries.
func (m *Model) advanceCursor(delta int) {
	cols := m.store.ColumnCount()
	rows := m.store.RowCount()
	if cols == 0 || rows == 0 {
		return
	}

	m.cursorX += delta
	if m.cursorX >= cols {
		m.cursorX = 0
		if m.cursorY < rows-1 {
			m.cursorY++
		}
	}
	if m.cursorX < 0 {
		m.cursorX = cols - 1
		if m.cursorY > 0 {
			m.cursorY--
		}
	}
}

func (m *Model) clampCursor() {
	if maxY := m.store.RowCount() - 1; m.cursorY > maxY {
		m.cursorY = maxY
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if maxX := m.store.ColumnCount() - 1; m.cursorX > maxX {
		m.cursorX = maxX
	}
	if m.cursorX < 0 {
		m.cursorX = 0
	}
}
