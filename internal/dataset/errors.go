package dataset

import "fmt"

// LoadError reports that the dataset file could not be read at all:
// missing, unreadable, or not parseable as CSV.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load dataset: %v", e.Err)
	}
	return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SchemaError reports a required column that is absent from the header or a
// value that violates the column's type or range. Row is the 1-based data
// row number; 0 means the header itself.
type SchemaError struct {
	Column string
	Row    int
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("schema: column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("schema: column %q, row %d: %s", e.Column, e.Row, e.Reason)
}
