package dataset

import (
	"fmt"
	"strings"
)

// ManualName is the dataset name used for manually entered points.
const ManualName = "manual input"

// FromPoints builds a dataset from "x,y" or "x,y,category" entries. Unlike
// file uploads, an invalid entry is an error rather than a dropped row.
func FromPoints(points []string, sch Schema, opt Options) (*Dataset, error) {
	if len(points) == 0 {
		return nil, &ParseError{Name: ManualName, Err: ErrNoRows}
	}
	ds := &Dataset{
		Name:    ManualName,
		Schema:  sch,
		XColumn: sch.X[0],
		YColumn: sch.Y[0],
	}
	parts := make([][]string, len(points))
	for i, p := range points {
		fields := strings.Split(p, ",")
		if len(fields) < 2 || len(fields) > 3 {
			return nil, &ParseError{Name: ManualName, Line: i + 1, Err: fmt.Errorf("expected x,y[,category], got %q", p)}
		}
		if len(fields) == 3 {
			ds.HasCategory = true
		}
		parts[i] = fields
	}
	// Manual fields are already split on commas, so only '.' can be decimal.
	opt.DecimalSeparator = '.'
	opt.ThousandsSeparator = 0
	dec := &decoder{
		cols: columns{x: 0, y: 1, cat: 2, xName: ds.XColumn, yName: ds.YColumn, hasCategory: ds.HasCategory},
		opt:  opt,
	}
	for i, fields := range parts {
		res := dec.decode(i+1, fields)
		if !res.OK() {
			return nil, &ParseError{Name: ManualName, Line: i + 1, Err: fmt.Errorf("%s", res.Reason)}
		}
		ds.Results = append(ds.Results, res)
	}
	return ds, nil
}
