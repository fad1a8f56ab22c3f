package directions

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when there is no document to parse: a nil stream, an
// empty body, or a body holding nothing but whitespace. Callers treat it as
// "nothing to show" rather than a failure worth reporting.
var ErrEmptyInput = errors.New("directions: empty input")

// ParseError reports a document that could not be turned into a Route: malformed
// XML, a premature end of stream, or a coordinate that is not a number.
type ParseError struct {
	Element string // innermost element being read when the failure occurred
	Line    int    // 1-based line in the input, 0 if unknown
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse directions: %s (line %d): %v", e.Element, e.Line, e.Err)
	}
	return fmt.Sprintf("parse directions: %s: %v", e.Element, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FetchError reports a failure to obtain the directions document from the upstream
// API: transport errors, timeouts, or a non-success HTTP status.
type FetchError struct {
	Op         string // e.g. "build request", "get", "status"
	StatusCode int    // HTTP status when the server answered, otherwise 0
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch directions: %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch directions: %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
