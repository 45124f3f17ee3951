package ingest

import (
	"errors"
	"fmt"
)

// Reason classifies why a row was rejected.
type Reason string

const (
	MissingField     Reason = "MissingField"
	Unparseable      Reason = "Unparseable"
	NonPositiveSize  Reason = "NonPositiveSize"
	UnknownDirection Reason = "UnknownDirection"
	InvalidPrice     Reason = "InvalidPrice"
	OutOfRange       Reason = "OutOfRange"
)

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("invalid trade row")

	// ErrMissingColumns is returned when a file lacks a required column.
	ErrMissingColumns = errors.New("missing required columns")
)

// ValidationError describes one rejected row. Row is the 1-based data row
// of a batch, or 0 for a single manual entry.
type ValidationError struct {
	Row    int
	Field  string
	Reason Reason
	Value  string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (%q)", e.Value)
	}
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s", e.Row, msg)
	}
	return msg
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
