package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseCSV reads header-driven delimited text and validates every data row
// against sch. Rows with missing or non-finite numerics are kept as rejected
// results; only structural failures and an empty result are errors.
func ParseCSV(name string, r io.Reader, sch Schema, opt Options) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = ','
	if opt.Delimiter != 0 {
		cr.Comma = opt.Delimiter
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Name: name, Err: errors.New("missing header row")}
		}
		return nil, csvError(name, err)
	}
	// header is reused by the reader on the next Read.
	header = append([]string(nil), header...)
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	ds, dec, err := newDataset(name, sch, header, opt)
	if err != nil {
		return nil, err
	}

	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, csvError(name, err)
		}
		if isBlank(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)
		ds.Results = append(ds.Results, dec.decode(line, rec))
	}
	return ds.finish()
}

func csvError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Name: name, Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Name: name, Err: fmt.Errorf("read csv: %w", err)}
}
