package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is a closed numeric interval where either bound may be absent,
// meaning unbounded on that side.
type Range struct {
	Min, Max       float64
	HasMin, HasMax bool
}

// ParseRange parses the textual form "min:max" where either side may be
// empty (":100", "100:", "10:100"). A value without a colon is an exact
// match ("100" means [100,100]). Numeric literals accept scientific
// notation. Malformed input or min > max is an *InvalidFilterError.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, &InvalidFilterError{Spec: s, Reason: "empty range"}
	}

	if !strings.Contains(s, ":") {
		v, err := parseBound(s)
		if err != nil {
			return Range{}, &InvalidFilterError{Spec: s, Reason: err.Error()}
		}
		return Range{Min: v, Max: v, HasMin: true, HasMax: true}, nil
	}

	parts := strings.SplitN(s, ":", 2)
	var r Range
	var err error
	if strings.TrimSpace(parts[0]) != "" {
		if r.Min, err = parseBound(parts[0]); err != nil {
			return Range{}, &InvalidFilterError{Spec: s, Reason: err.Error()}
		}
		r.HasMin = true
	}
	if strings.TrimSpace(parts[1]) != "" {
		if r.Max, err = parseBound(parts[1]); err != nil {
			return Range{}, &InvalidFilterError{Spec: s, Reason: err.Error()}
		}
		r.HasMax = true
	}
	if err := r.validate(); err != nil {
		return Range{}, &InvalidFilterError{Spec: s, Reason: err.Error()}
	}
	return r, nil
}

func parseBound(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", strings.TrimSpace(s))
	}
	return v, nil
}

func (r Range) validate() error {
	if r.HasMin && r.HasMax && r.Min > r.Max {
		return fmt.Errorf("min %g greater than max %g", r.Min, r.Max)
	}
	return nil
}

// Contains reports whether v falls within the range, bounds inclusive.
func (r Range) Contains(v float64) bool {
	if r.HasMin && v < r.Min {
		return false
	}
	if r.HasMax && v > r.Max {
		return false
	}
	return true
}

// IsZero reports whether the range constrains nothing.
func (r Range) IsZero() bool {
	return !r.HasMin && !r.HasMax
}
