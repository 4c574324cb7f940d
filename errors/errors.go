// Package errors defines the error values reported by the namelist parser
// and the document lookups.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. A ParseError unwraps to exactly one of these, so callers can
// test the kind with errors.Is.
var (
	// ErrSyntax reports a line that is neither an assignment nor a valid
	// continuation, or an unbalanced group delimiter.
	ErrSyntax = errors.New("syntax error")
	// ErrMalformedLiteral reports a value that matches no literal form.
	ErrMalformedLiteral = errors.New("malformed literal")
	// ErrInconsistentIndex reports indexed assignments that leave a gap.
	ErrInconsistentIndex = errors.New("inconsistent array index")
	// ErrNotFound reports a lookup miss.
	ErrNotFound = errors.New("not found")
)

// ParseError represents a single error that occurred during parsing.
// It includes the group and the source line the error was found on.
type ParseError struct {
	Kind    error
	Group   string
	Line    int
	Text    string
	Message string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("namelist: ")
	b.WriteString(e.Kind.Error())
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Group != "" {
		fmt.Fprintf(&b, " in group %q", e.Group)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Text != "" {
		fmt.Fprintf(&b, ": %q", e.Text)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Kind }

// ParseErrors is a slice of ParseError that implements the error interface.
// This allows returning all errors found during parsing at once.
type ParseErrors []*ParseError

func (p ParseErrors) Error() string {
	if len(p) == 0 {
		return ""
	}
	// The collection reports the first error; the rest are reachable
	// through Unwrap.
	if len(p) == 1 {
		return p[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", p[0].Error(), len(p)-1)
}

// Unwrap exposes every collected error to errors.Is and errors.As.
func (p ParseErrors) Unwrap() []error {
	errs := make([]error, len(p))
	for i, e := range p {
		errs[i] = e
	}
	return errs
}

// NotFoundError is returned by lookups that miss. It unwraps to ErrNotFound.
type NotFoundError struct {
	What string // "group" or "variable"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("namelist: %s %q not found", e.What, e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
