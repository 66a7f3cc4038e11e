// Package export writes built series and chart payloads to files and
// terminals.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/KaramelBytes/datavis-cli/internal/series"
)

// DefaultPrecision is the number of decimals for exported values.
const DefaultPrecision = 6

// WriteCSV writes one series as two columns: x as given, value with
// precision decimals (DefaultPrecision when precision < 0).
func WriteCSV(w io.Writer, s series.Series, xHeader, yHeader string, precision int) error {
	if precision < 0 {
		precision = DefaultPrecision
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{xHeader, yHeader}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range Rows(s, precision) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Rows formats the (x, value) pairs of s.
func Rows(s series.Series, precision int) [][]string {
	out := make([][]string, 0, s.Len())
	for i := range s.Data {
		out = append(out, []string{
			strconv.FormatFloat(s.X[i], 'f', -1, 64),
			strconv.FormatFloat(s.Data[i], 'f', precision, 64),
		})
	}
	return out
}
