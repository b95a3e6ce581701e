package services

import (
	"fmt"
	"strings"
)

// SourceNotFoundError reports a source extract that is missing or unreadable.
type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("loader: source %q not readable: %v", e.Path, e.Err)
}

func (e *SourceNotFoundError) Unwrap() error { return e.Err }

// SchemaMismatchError reports a source whose columns differ from the
// reference extract, or that lacks required columns.
type SchemaMismatchError struct {
	Path          string
	ReferencePath string // empty when checked against the required columns
	Missing       []string
	Unexpected    []string
}

func (e *SchemaMismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "loader: schema mismatch in %q", e.Path)
	if e.ReferencePath != "" {
		fmt.Fprintf(&b, " (against %q)", e.ReferencePath)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "; missing columns %v", e.Missing)
	}
	if len(e.Unexpected) > 0 {
		fmt.Fprintf(&b, "; unexpected columns %v", e.Unexpected)
	}
	return b.String()
}
