package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tabletools/tablepad/table"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	cursorStyle    = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusOKStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Grid cells are clipped for display; the preview below the grid and
// the clipboard always carry the full text.
const maxGridCellWidth = 24

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	columns, rows := m.store.Snapshot()
	helpView := m.help.View(m.keys)
	gridRows, previewLines := m.splitHeights(len(rows), lipgloss.Height(helpView))

	var b strings.Builder
	b.WriteString(titleStyle.Render(" tablepad"))
	b.WriteString("\n\n")
	b.WriteString(m.viewGrid(columns, rows, gridRows))
	b.WriteString("\n")
	b.WriteString(m.viewPreview(previewLines))
	b.WriteString("\n")
	b.WriteString(m.viewStatus())
	b.WriteString("\n")
	b.WriteString(helpView)
	return b.String()
}

func (m Model) viewGrid(columns []table.Column, rows []table.Row, maxRows int) string {
	if len(columns) == 0 {
		return dimStyle.Render(" (no columns)") + "\n"
	}

	widths := gridWidths(columns, rows)
	start, end := m.visibleCols(widths)

	var b strings.Builder

	b.WriteString("     ")
	for ci := start; ci < end; ci++ {
		b.WriteString(headerStyle.Render(gridCell(columns[ci].Name, widths[ci])))
		if ci < end-1 {
			b.WriteString(dimStyle.Render("│"))
		}
	}
	b.WriteString("\n")

	b.WriteString("     ")
	for ci := start; ci < end; ci++ {
		b.WriteString(dimStyle.Render(strings.Repeat("─", widths[ci]+2)))
		if ci < end-1 {
			b.WriteString(dimStyle.Render("┼"))
		}
	}
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("  (no rows)"))
		b.WriteString("\n")
		return b.String()
	}

	scroll := 0
	if m.cursorY >= maxRows {
		scroll = m.cursorY - maxRows + 1
	}
	endRow := scroll + maxRows
	if endRow > len(rows) {
		endRow = len(rows)
	}

	for ri := scroll; ri < endRow; ri++ {
		row := rows[ri]
		marker := "[ ]"
		style := dimStyle
		if row.Selected {
			marker = "[x]"
			style = selectedStyle
		}
		b.WriteString(" " + style.Render(marker) + " ")

		for ci := start; ci < end; ci++ {
			cell := gridCell(row.Values[columns[ci].ID], widths[ci])
			if ri == m.cursorY && ci == m.cursorX {
				b.WriteString(cursorStyle.Render(cell))
			} else {
				b.WriteString(cell)
			}
			if ci < end-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewPreview(maxLines int) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(" output"))
	b.WriteString("\n")

	text := m.renderedTable()
	if text == "" {
		b.WriteString(dimStyle.Render(" (empty table)"))
		b.WriteString("\n")
		return b.String()
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	clipped := false
	if len(lines) > maxLines {
		// The ellipsis line counts against maxLines too.
		lines = lines[:maxLines-1]
		clipped = true
	}
	for _, line := range lines {
		b.WriteString(" " + runewidth.Truncate(line, m.width-2, "…"))
		b.WriteString("\n")
	}
	if clipped {
		b.WriteString(dimStyle.Render(" …"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewStatus() string {
	if m.mode != modeNormal {
		return " " + m.promptLabel() + m.input.View()
	}

	switch m.statusKind {
	case statusSuccess:
		return statusOKStyle.Render(" " + m.status)
	case statusError:
		return statusErrStyle.Render(" " + m.status)
	}

	fence := "off"
	if m.fenced {
		fence = "on"
	}
	sel := fmt.Sprintf("%d selected", m.store.SelectedCount())
	if m.store.AllSelected() {
		sel = "all selected"
	}
	return dimStyle.Render(fmt.Sprintf(" %d rows  %s  fence %s", m.store.RowCount(), sel, fence))
}

func (m Model) promptLabel() string {
	switch m.mode {
	case modeEditCell:
		return "edit cell: "
	case modeAddColumn:
		return "new column: "
	case modeRenameColumn:
		return "rename column: "
	}
	return ""
}

// splitHeights divides the space left after fixed chrome between the
// grid and the preview.
func (m Model) splitHeights(rowCount, helpLines int) (int, int) {
	chrome := 7 + helpLines
	avail := m.height - chrome
	if avail < 4 {
		avail = 4
	}
	gridRows := avail / 2
	if gridRows > rowCount {
		gridRows = rowCount
	}
	if gridRows < 1 {
		gridRows = 1
	}
	return gridRows, avail - gridRows
}

func (m Model) visibleCols(widths []int) (int, int) {
	avail := m.width - 6
	for start := 0; ; start++ {
		used := 0
		end := start
		for end < len(widths) {
			w := widths[end] + 3
			if used+w > avail && end > start {
				break
			}
			used += w
			end++
		}
		if m.cursorX < end || end == len(widths) {
			return start, end
		}
	}
}

func gridWidths(columns []table.Column, rows []table.Row) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = runewidth.StringWidth(col.Name)
		if widths[i] < 3 {
			widths[i] = 3
		}
	}
	for _, row := range rows {
		for i, col := range columns {
			if w := runewidth.StringWidth(row.Values[col.ID]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] > maxGridCellWidth {
			widths[i] = maxGridCellWidth
		}
	}
	return widths
}

func gridCell(text string, width int) string {
	return " " + runewidth.FillRight(runewidth.Truncate(text, width, "…"), width) + " "
}
