package parser

import (
	"errors"
	"fmt"
)

// ErrNoRecords is wrapped by the ParseError returned when nothing valid was found
var ErrNoRecords = errors.New("no valid records found")

// ParseError represents a source that could not be turned into draw records
type ParseError struct {
	Line   int // 1-based, 0 when not tied to a line
	Reason string
	Err    error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	if e.Err != nil {
		return "parse: " + msg + ": " + e.Err.Error()
	}
	return "parse: " + msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
