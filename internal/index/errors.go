package index

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates an identifier resolved to zero records.
var ErrNotFound = errors.New("matrix not found")

// AmbiguousError indicates a matrix name present in more than one
// group. Callers must disambiguate; the engine never guesses.
type AmbiguousError struct {
	Name   string
	Groups []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("matrix %q exists in multiple groups: %s (specify group/name)",
		e.Name, strings.Join(e.Groups, ", "))
}

// ParseError indicates the remote index document did not match the
// documented schema.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("index parse error at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("index parse error: %s", e.Reason)
}
