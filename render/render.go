// render package turns table snapshots into aligned, pipe-delimited
// text. The functions are pure: same input, byte-identical output.
package render

import (
	"strings"
	"unicode/utf8"

	"github.com/tabletools/tablepad/table"
)

// Table renders the columns and rows as a fixed-width text table with a
// header line, a dashed separator line and one line per row, each
// newline terminated. When either input is empty the result is empty;
// a header-only table is never produced.
//
// Cell text containing '|' or newlines is passed through unescaped.
func Table(columns []table.Column, rows []table.Row) string {
	if len(columns) == 0 || len(rows) == 0 {
		return ""
	}

	widths := columnWidths(columns, rows)

	var b strings.Builder

	for i, col := range columns {
		b.WriteByte('|')
		writeCell(&b, col.Name, widths[i])
	}
	b.WriteString("|\n")

	for i := range columns {
		b.WriteByte('|')
		b.WriteString(strings.Repeat("-", widths[i]+2))
	}
	b.WriteString("|\n")

	for _, row := range rows {
		for i, col := range columns {
			b.WriteByte('|')
			writeCell(&b, row.Values[col.ID], widths[i])
		}
		b.WriteString("|\n")
	}

	return b.String()
}

// columnWidths computes each column's width as the maximum rune count
// over the column name and every row value for that column; rows
// without an entry count as zero.
func columnWidths(columns []table.Column, rows []table.Row) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		w := utf8.RuneCountInString(col.Name)
		for _, row := range rows {
			if l := utf8.RuneCountInString(row.Values[col.ID]); l > w {
				w = l
			}
		}
		widths[i] = w
	}
	return widths
}

func writeCell(b *strings.Builder, value string, width int) {
	b.WriteByte(' ')
	b.WriteString(value)
	if pad := width - utf8.RuneCountInString(value); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteByte(' ')
}
