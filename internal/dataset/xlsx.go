package dataset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first sheet (or opt.Sheet) of a workbook. The first row
// is the header; the remaining rows go through the same validation as CSV.
func ParseXLSX(name string, r io.Reader, sch Schema, opt Options) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{Name: name, Err: fmt.Errorf("open xlsx: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Name: name, Err: errors.New("workbook has no sheets")}
	}
	sheet := sheets[0]
	if opt.Sheet != "" {
		sheet = ""
		for _, s := range sheets {
			if strings.EqualFold(s, opt.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, &ParseError{Name: name, Err: fmt.Errorf("sheet %q not found; available sheets: %s", opt.Sheet, strings.Join(sheets, ", "))}
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ParseError{Name: name, Err: fmt.Errorf("read sheet %s: %w", sheet, err)}
	}
	start := 0
	for start < len(rows) && isBlank(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, &ParseError{Name: name, Err: errors.New("missing header row")}
	}
	header := make([]string, len(rows[start]))
	for i, h := range rows[start] {
		header[i] = strings.TrimSpace(h)
	}
	ds, dec, err := newDataset(name, sch, header, opt)
	if err != nil {
		return nil, err
	}
	for i := start + 1; i < len(rows); i++ {
		if isBlank(rows[i]) {
			continue
		}
		ds.Results = append(ds.Results, dec.decode(i+1, rows[i]))
	}
	return ds.finish()
}
