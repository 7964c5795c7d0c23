package index

import "time"

// TriState is a three-valued boolean used for matrix properties the
// index may not know. The numeric values match the wire encoding in
// ssstats.csv (-1 unknown, 0 false, 1 true).
type TriState int8

const (
	TriFalse   TriState = 0
	TriTrue    TriState = 1
	TriUnknown TriState = -1
)

// String returns "true", "false", or "unknown".
func (t TriState) String() string {
	switch t {
	case TriTrue:
		return "true"
	case TriFalse:
		return "false"
	}
	return "unknown"
}

// MatrixRecord is the metadata for one cataloged matrix. (Group, Name)
// is the composite key; Name alone is not unique across groups.
type MatrixRecord struct {
	Group    string `json:"group"`
	Name     string `json:"name"`
	Rows     int64  `json:"rows"`
	Cols     int64  `json:"cols"`
	Nonzeros int64  `json:"nonzeros"`

	IsReal   bool `json:"is_real"`
	IsBinary bool `json:"is_binary"`
	Is2D3D   bool `json:"is_2d3d"`

	PosDef TriState `json:"pos_def"`

	PatternSymmetry   float64 `json:"pattern_symmetry"`
	NumericalSymmetry float64 `json:"numerical_symmetry"`

	Kind string `json:"kind"`
}

// Key returns the composite "group/name" identifier.
func (r MatrixRecord) Key() string {
	return r.Group + "/" + r.Name
}

// IsSPD reports whether the matrix is symmetric positive definite.
// SPD is never a stored field; it is always derived from primitives:
// real, square, fully symmetric (pattern and numerical), and known
// positive definite. PosDef == TriUnknown is not SPD.
func (r MatrixRecord) IsSPD() bool {
	return r.IsReal &&
		r.PosDef == TriTrue &&
		r.PatternSymmetry == 1.0 &&
		r.NumericalSymmetry == 1.0 &&
		r.Rows == r.Cols
}

// FieldType classifies the matrix entries as "real", "binary", or
// "complex".
func (r MatrixRecord) FieldType() string {
	switch {
	case r.IsReal:
		return "real"
	case r.IsBinary:
		return "binary"
	default:
		return "complex"
	}
}

// Structure classifies the matrix as "symmetric" or "unsymmetric".
// Matrices with at least 99% numerical symmetry count as symmetric.
func (r MatrixRecord) Structure() string {
	if r.NumericalSymmetry >= 0.99 {
		return "symmetric"
	}
	return "unsymmetric"
}

// Snapshot is an immutable view of the remote index at one point in
// time. A Snapshot is never mutated after creation; a refresh produces
// a new one.
type Snapshot struct {
	Records        []MatrixRecord `json:"records"`
	FetchedAt      time.Time      `json:"fetched_at"`
	SourceRevision string         `json:"source_revision"`

	// DuplicatesDropped counts records discarded during parsing because
	// an earlier record claimed the same (group, name) key.
	DuplicatesDropped int `json:"duplicates_dropped"`

	// Stale is set when the snapshot is older than the freshness window
	// but is being served anyway because a refresh attempt failed.
	Stale bool `json:"-"`
}

// Age returns how old the snapshot is.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}
