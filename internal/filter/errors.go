package filter

import "fmt"

// InvalidFilterError indicates a predicate that failed validation
// before any record was evaluated.
type InvalidFilterError struct {
	Spec   string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	if e.Spec != "" {
		return fmt.Sprintf("invalid filter %q: %s", e.Spec, e.Reason)
	}
	return fmt.Sprintf("invalid filter: %s", e.Reason)
}
