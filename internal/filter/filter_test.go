package filter

import (
	"errors"
	"testing"

	"github.com/sk-226/ssdownload/internal/index"
)

func boolPtr(v bool) *bool { return &v }

func testRecords() []index.MatrixRecord {
	return []index.MatrixRecord{
		{
			Group: "HB", Name: "nos5", Rows: 468, Cols: 468, Nonzeros: 5172,
			IsReal: true, PosDef: index.TriTrue,
			PatternSymmetry: 1.0, NumericalSymmetry: 1.0,
			Kind: "structural problem",
		},
		{
			Group: "HB", Name: "ash85", Rows: 85, Cols: 85, Nonzeros: 523,
			IsReal: true, PosDef: index.TriFalse,
			PatternSymmetry: 1.0, NumericalSymmetry: 1.0,
			Kind: "least squares problem",
		},
		{
			Group: "Boeing", Name: "ct20stif", Rows: 52329, Cols: 52329, Nonzeros: 2600295,
			IsReal: true, PosDef: index.TriUnknown,
			PatternSymmetry: 1.0, NumericalSymmetry: 0.5,
			Kind: "structural problem",
		},
		{
			Group: "vanHeukelum", Name: "cage10", Rows: 11397, Cols: 11397, Nonzeros: 150645,
			IsReal: true, PosDef: index.TriFalse,
			PatternSymmetry: 1.0, NumericalSymmetry: 0.0,
			Kind: "directed weighted graph",
		},
	}
}

func mustCompile(t *testing.T, f Filter) *Matcher {
	t.Helper()
	m, err := Compile(f)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return m
}

func names(recs []index.MatrixRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Name
	}
	return out
}

func TestMatcher_ZeroFilterMatchesEverything(t *testing.T) {
	m := mustCompile(t, Filter{})
	got := m.Select(testRecords())
	if len(got) != 4 {
		t.Fatalf("expected all 4 records, got %v", names(got))
	}
}

func TestMatcher_SPDIsDerived(t *testing.T) {
	m := mustCompile(t, Filter{SPD: boolPtr(true)})
	got := m.Select(testRecords())
	if len(got) != 1 || got[0].Name != "nos5" {
		t.Fatalf("expected only nos5, got %v", names(got))
	}

	// Excluding picks up everything that fails any SPD condition,
	// including the posdef-unknown record.
	m = mustCompile(t, Filter{SPD: boolPtr(false)})
	got = m.Select(testRecords())
	if len(got) != 3 {
		t.Fatalf("expected 3 non-SPD records, got %v", names(got))
	}
}

func TestMatcher_PosDefUnknownMatchesNeitherSide(t *testing.T) {
	recs := testRecords()

	m := mustCompile(t, Filter{PosDef: boolPtr(true)})
	got := m.Select(recs)
	if len(got) != 1 || got[0].Name != "nos5" {
		t.Fatalf("posdef=true: expected nos5, got %v", names(got))
	}

	m = mustCompile(t, Filter{PosDef: boolPtr(false)})
	got = m.Select(recs)
	if len(got) != 2 {
		t.Fatalf("posdef=false: expected ash85 and cage10, got %v", names(got))
	}
	for _, r := range got {
		if r.Name == "ct20stif" {
			t.Fatalf("unknown posdef must not match false")
		}
	}
}

func TestMatcher_Ranges(t *testing.T) {
	rows, _ := ParseRange("100:20000")
	m := mustCompile(t, Filter{Rows: rows})
	got := m.Select(testRecords())
	if len(got) != 2 || got[0].Name != "nos5" || got[1].Name != "cage10" {
		t.Fatalf("rows 100:20000: got %v", names(got))
	}

	nnz, _ := ParseRange("1e6:")
	m = mustCompile(t, Filter{Nonzeros: nnz})
	got = m.Select(testRecords())
	if len(got) != 1 || got[0].Name != "ct20stif" {
		t.Fatalf("nnz 1e6:: got %v", names(got))
	}
}

func TestMatcher_SubstringsAreCaseInsensitive(t *testing.T) {
	m := mustCompile(t, Filter{Group: "hb"})
	if got := m.Select(testRecords()); len(got) != 2 {
		t.Fatalf("group hb: got %v", names(got))
	}

	m = mustCompile(t, Filter{Kind: "STRUCTURAL"})
	if got := m.Select(testRecords()); len(got) != 2 {
		t.Fatalf("kind STRUCTURAL: got %v", names(got))
	}

	m = mustCompile(t, Filter{Name: "cage"})
	got := m.Select(testRecords())
	if len(got) != 1 || got[0].Name != "cage10" {
		t.Fatalf("name cage: got %v", names(got))
	}
}

func TestMatcher_PredicatesCombineWithAND(t *testing.T) {
	rows, _ := ParseRange(":100000")
	m := mustCompile(t, Filter{Group: "HB", PosDef: boolPtr(false), Rows: rows})
	got := m.Select(testRecords())
	if len(got) != 1 || got[0].Name != "ash85" {
		t.Fatalf("combined filter: got %v", names(got))
	}
}

func TestMatcher_SelectPreservesOrder(t *testing.T) {
	m := mustCompile(t, Filter{Field: "real"})
	got := names(m.Select(testRecords()))
	want := []string{"nos5", "ash85", "ct20stif", "cage10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order not preserved: got %v", got)
		}
	}
}

func TestCompile_RejectsInvertedRange(t *testing.T) {
	_, err := Compile(Filter{Rows: Range{Min: 100, Max: 10, HasMin: true, HasMax: true}})
	var inv *InvalidFilterError
	if !errors.As(err, &inv) {
		t.Fatalf("expected *InvalidFilterError, got %v", err)
	}
}

func TestFilter_IsZero(t *testing.T) {
	if !(Filter{}).IsZero() {
		t.Fatalf("empty filter should be zero")
	}
	if (Filter{Group: "HB"}).IsZero() {
		t.Fatalf("active filter should not be zero")
	}
	if (Filter{SPD: boolPtr(false)}).IsZero() {
		t.Fatalf("spd=false is an active predicate")
	}
}
