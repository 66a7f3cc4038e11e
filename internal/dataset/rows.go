package dataset

import (
	"fmt"
	"strings"
)

// Row is one validated record: an independent value X, a dependent value Y
// and an optional category label.
type Row struct {
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Category string  `json:"category,omitempty" yaml:"category,omitempty"`
}

// RowResult is the outcome of validating one data row: either Row is set and
// Reason is empty, or Reason says why the row was rejected.
type RowResult struct {
	Line   int
	Row    Row
	Reason string
}

// OK reports whether the row passed validation.
func (r RowResult) OK() bool { return r.Reason == "" }

// Dataset is the parsed content of one upload.
type Dataset struct {
	Name        string
	Schema      Schema
	XColumn     string
	YColumn     string
	XUnit       string
	YUnit       string
	HasCategory bool
	Results     []RowResult
}

// Rows returns the rows that passed validation, in input order.
func (d *Dataset) Rows() []Row {
	out := make([]Row, 0, len(d.Results))
	for _, r := range d.Results {
		if r.OK() {
			out = append(out, r.Row)
		}
	}
	return out
}

// Rejected returns the results that failed validation.
func (d *Dataset) Rejected() []RowResult {
	var out []RowResult
	for _, r := range d.Results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

// decoder turns tokenized records into RowResults for a resolved header.
type decoder struct {
	cols columns
	opt  Options
}

func newDataset(name string, sch Schema, header []string, opt Options) (*Dataset, *decoder, error) {
	cols, err := sch.resolve(header)
	if err != nil {
		return nil, nil, &ParseError{Name: name, Line: 1, Err: err}
	}
	d := &Dataset{
		Name:        name,
		Schema:      sch,
		XColumn:     cols.xName,
		YColumn:     cols.yName,
		XUnit:       cols.xUnit,
		YUnit:       cols.yUnit,
		HasCategory: cols.hasCategory,
	}
	return d, &decoder{cols: cols, opt: opt}, nil
}

func (dc *decoder) decode(line int, rec []string) RowResult {
	cell := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	res := RowResult{Line: line}
	xs, ys := cell(dc.cols.x), cell(dc.cols.y)
	x, ok := parseNumeric(xs, dc.opt)
	if !ok {
		res.Reason = reason(dc.cols.xName, xs)
		return res
	}
	y, ok := parseNumeric(ys, dc.opt)
	if !ok {
		res.Reason = reason(dc.cols.yName, ys)
		return res
	}
	res.Row = Row{X: x, Y: y}
	if dc.cols.hasCategory {
		res.Row.Category = cell(dc.cols.cat)
		if res.Row.Category == "" {
			res.Reason = "category: empty"
			return res
		}
	}
	return res
}

func reason(col, val string) string {
	if val == "" {
		return fmt.Sprintf("%s: empty", col)
	}
	return fmt.Sprintf("%s: not a finite number %q", col, val)
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// finish enforces that at least one row survived.
func (d *Dataset) finish() (*Dataset, error) {
	for _, r := range d.Results {
		if r.OK() {
			return d, nil
		}
	}
	return nil, &ParseError{Name: d.Name, Err: ErrNoRows}
}
