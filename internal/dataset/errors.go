package dataset

import (
	"errors"
	"fmt"
)

// ErrNoRows indicates that no row survived validation.
var ErrNoRows = errors.New("no valid rows")

// ValidationError is returned before parsing when an upload is rejected
// (too large, wrong content type).
type ValidationError struct {
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("invalid upload %s: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("invalid upload: %s", e.Reason)
}

// ParseError indicates the file could not be split into rows and columns,
// lacks a required column, or yielded zero valid rows.
type ParseError struct {
	Name string
	Line int // 0 when not tied to a line
	Err  error
}

func (e *ParseError) Error() string {
	switch {
	case e.Name != "" && e.Line > 0:
		return fmt.Sprintf("parse %s: line %d: %v", e.Name, e.Line, e.Err)
	case e.Name != "":
		return fmt.Sprintf("parse %s: %v", e.Name, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("parse: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
