// Package filter compiles declarative matrix predicates into a single
// evaluation function. Absent predicates impose no constraint; active
// predicates combine with logical AND.
package filter

import (
	"strings"

	"github.com/sk-226/ssdownload/internal/index"
)

// Filter is a set of independent predicates over matrix metadata. The
// zero value matches every record.
type Filter struct {
	// SPD selects (or excludes) symmetric positive definite matrices.
	// SPD is the derived classification, never a stored field.
	SPD *bool

	// PosDef matches the stored tri-state flag. A record whose
	// positive-definiteness is unknown matches neither true nor false.
	PosDef *bool

	Rows     Range
	Cols     Range
	Nonzeros Range

	// Substring predicates, case-insensitive.
	Field     string
	Group     string
	Name      string
	Kind      string
	Structure string
}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool {
	return f.SPD == nil && f.PosDef == nil &&
		f.Rows.IsZero() && f.Cols.IsZero() && f.Nonzeros.IsZero() &&
		f.Field == "" && f.Group == "" && f.Name == "" &&
		f.Kind == "" && f.Structure == ""
}

// Matcher is a compiled filter. Match is pure and safe for concurrent
// use.
type Matcher struct {
	preds []predicate
}

type predicate func(*index.MatrixRecord) bool

// Compile validates every predicate and builds the matcher. All
// validation happens here; Match never fails. Cheap boolean checks are
// compiled ahead of substring scans.
func Compile(f Filter) (*Matcher, error) {
	if err := f.Rows.validate(); err != nil {
		return nil, &InvalidFilterError{Spec: "rows", Reason: err.Error()}
	}
	if err := f.Cols.validate(); err != nil {
		return nil, &InvalidFilterError{Spec: "cols", Reason: err.Error()}
	}
	if err := f.Nonzeros.validate(); err != nil {
		return nil, &InvalidFilterError{Spec: "nnz", Reason: err.Error()}
	}

	var preds []predicate

	if f.SPD != nil {
		want := *f.SPD
		preds = append(preds, func(r *index.MatrixRecord) bool {
			return r.IsSPD() == want
		})
	}
	if f.PosDef != nil {
		want := index.TriFalse
		if *f.PosDef {
			want = index.TriTrue
		}
		preds = append(preds, func(r *index.MatrixRecord) bool {
			return r.PosDef == want
		})
	}

	if !f.Rows.IsZero() {
		rng := f.Rows
		preds = append(preds, func(r *index.MatrixRecord) bool {
			return rng.Contains(float64(r.Rows))
		})
	}
	if !f.Cols.IsZero() {
		rng := f.Cols
		preds = append(preds, func(r *index.MatrixRecord) bool {
			return rng.Contains(float64(r.Cols))
		})
	}
	if !f.Nonzeros.IsZero() {
		rng := f.Nonzeros
		preds = append(preds, func(r *index.MatrixRecord) bool {
			return rng.Contains(float64(r.Nonzeros))
		})
	}

	if f.Field != "" {
		want := strings.ToLower(f.Field)
		preds = append(preds, func(r *index.MatrixRecord) bool {
			return strings.Contains(r.FieldType(), want)
		})
	}
	if f.Group != "" {
		want := strings.ToLower(f.Group)
		preds = append(preds, func(r *index.MatrixRecord) bool {
			return strings.Contains(strings.ToLower(r.Group), want)
		})
	}
	if f.Name != "" {
		want := strings.ToLower(f.Name)
		preds = append(preds, func(r *index.MatrixRecord) bool {
			return strings.Contains(strings.ToLower(r.Name), want)
		})
	}
	if f.Kind != "" {
		want := strings.ToLower(f.Kind)
		preds = append(preds, func(r *index.MatrixRecord) bool {
			return strings.Contains(strings.ToLower(r.Kind), want)
		})
	}
	if f.Structure != "" {
		want := strings.ToLower(f.Structure)
		preds = append(preds, func(r *index.MatrixRecord) bool {
			return strings.Contains(r.Structure(), want)
		})
	}

	return &Matcher{preds: preds}, nil
}

// Match reports whether a record satisfies every active predicate.
func (m *Matcher) Match(rec index.MatrixRecord) bool {
	for _, p := range m.preds {
		if !p(&rec) {
			return false
		}
	}
	return true
}

// Select returns the records matching m, preserving input order.
func (m *Matcher) Select(records []index.MatrixRecord) []index.MatrixRecord {
	var out []index.MatrixRecord
	for _, rec := range records {
		if m.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}
