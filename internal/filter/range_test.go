package filter

import (
	"errors"
	"testing"
)

func TestParseRange(t *testing.T) {
	cases := []struct {
		spec             string
		min, max         float64
		hasMin, hasMax   bool
	}{
		{"1000:10000", 1000, 10000, true, true},
		{":5000", 0, 5000, false, true},
		{"5000:", 5000, 0, true, false},
		{"1e4:1e5", 1e4, 1e5, true, true},
		{"42", 42, 42, true, true},
		{"2.5e6", 2.5e6, 2.5e6, true, true},
	}
	for _, tc := range cases {
		r, err := ParseRange(tc.spec)
		if err != nil {
			t.Fatalf("ParseRange(%q): %v", tc.spec, err)
		}
		if r.HasMin != tc.hasMin || r.HasMax != tc.hasMax {
			t.Errorf("ParseRange(%q): bounds presence = (%v,%v), want (%v,%v)",
				tc.spec, r.HasMin, r.HasMax, tc.hasMin, tc.hasMax)
		}
		if r.HasMin && r.Min != tc.min {
			t.Errorf("ParseRange(%q): min = %g, want %g", tc.spec, r.Min, tc.min)
		}
		if r.HasMax && r.Max != tc.max {
			t.Errorf("ParseRange(%q): max = %g, want %g", tc.spec, r.Max, tc.max)
		}
	}
}

func TestParseRange_Invalid(t *testing.T) {
	for _, spec := range []string{"", "abc", "1:2:3", "abc:10", "10:abc", "100:10"} {
		_, err := ParseRange(spec)
		if err == nil {
			t.Errorf("ParseRange(%q): expected error", spec)
			continue
		}
		var inv *InvalidFilterError
		if !errors.As(err, &inv) {
			t.Errorf("ParseRange(%q): expected *InvalidFilterError, got %v", spec, err)
		}
	}
}

func TestRange_ContainsIsInclusive(t *testing.T) {
	r, err := ParseRange("1000:10000")
	if err != nil {
		t.Fatalf("ParseRange: %v", err)
	}
	for _, v := range []float64{1000, 5000, 10000} {
		if !r.Contains(v) {
			t.Errorf("Contains(%g) = false, want true", v)
		}
	}
	for _, v := range []float64{999, 10001} {
		if r.Contains(v) {
			t.Errorf("Contains(%g) = true, want false", v)
		}
	}
}

func TestRange_ScientificNotationBounds(t *testing.T) {
	r, err := ParseRange("1e4:1e5")
	if err != nil {
		t.Fatalf("ParseRange: %v", err)
	}
	if !r.Contains(20000) {
		t.Fatalf("Contains(20000) = false for 1e4:1e5")
	}
	if r.Contains(9999) || r.Contains(100001) {
		t.Fatalf("bounds not honored for 1e4:1e5")
	}
}

func TestRange_OpenEnds(t *testing.T) {
	lower, _ := ParseRange("100:")
	if !lower.Contains(1e12) || lower.Contains(99) {
		t.Fatalf("open upper bound misbehaved")
	}
	upper, _ := ParseRange(":100")
	if !upper.Contains(0) || upper.Contains(101) {
		t.Fatalf("open lower bound misbehaved")
	}
}

func TestRange_IsZero(t *testing.T) {
	var r Range
	if !r.IsZero() {
		t.Fatalf("zero Range should report IsZero")
	}
	// A bare colon constrains neither side.
	open, err := ParseRange(":")
	if err != nil {
		t.Fatalf("ParseRange(\":\"): %v", err)
	}
	if !open.IsZero() {
		t.Fatalf("\":\" should be unconstrained")
	}
	r, _ = ParseRange("1:2")
	if r.IsZero() {
		t.Fatalf("bounded Range should not report IsZero")
	}
}
