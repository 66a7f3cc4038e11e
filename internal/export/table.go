package export

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// WriteTable writes headers and rows as space-separated, aligned columns.
// Columns listed in rightAlign are right-aligned.
func WriteTable(w io.Writer, headers []string, rows [][]string, rightAlign map[int]bool) error {
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func formatTable(headers []string, rows [][]string, rightAlign map[int]bool) []string {
	cols := len(headers)
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil
	}
	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlign))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlign))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlign map[int]bool) string {
	var b strings.Builder
	for i, width := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		pad := width - runewidth.StringWidth(cell)
		if pad < 0 {
			pad = 0
		}
		if rightAlign[i] {
			b.WriteString(strings.Repeat(" ", pad) + cell)
		} else if i == len(widths)-1 {
			b.WriteString(cell)
		} else {
			b.WriteString(cell + strings.Repeat(" ", pad))
		}
	}
	return b.String()
}
