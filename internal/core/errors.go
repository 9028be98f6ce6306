package core

import (
	"errors"
	"fmt"
)

var (
	ErrNoPath             = errors.New("no path between provinces")
	ErrInvalidRequirement = errors.New("invalid requirement")
	ErrMalformedRecord    = errors.New("malformed record")
	ErrUnknownProvince    = errors.New("unknown province")
)

// NoPathError is returned by Graph.Distance when the search frontier empties
// before the target province is reached.
type NoPathError struct {
	From int
	To   int
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("failed to find path between %d and %d", e.From, e.To)
}

func (e *NoPathError) Unwrap() error { return ErrNoPath }

// InvalidRequirementError reports a requirement tag that maps to no known flag.
type InvalidRequirementError struct {
	Candidate string
	Tag       string
}

func (e *InvalidRequirementError) Error() string {
	return fmt.Sprintf("unknown requirement for %s: %q", e.Candidate, e.Tag)
}

func (e *InvalidRequirementError) Unwrap() error { return ErrInvalidRequirement }

// ParseError locates a malformed record in a loader input.
type ParseError struct {
	Source string // file name or other label, may be empty
	Line   int
	Record string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s:%d: %q: %v", e.Source, e.Line, e.Record, e.Err)
	}
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Record, e.Err)
}

// Unwrap exposes both ErrMalformedRecord and the underlying cause.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedRecord}
	}
	return []error{ErrMalformedRecord, e.Err}
}
