package index

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const sampleIndex = `2893
31-Oct-2025 14:12:05
HB,nos5,468,468,5172,1,0,1,1,1,1,structural problem
HB,ash85,85,85,523,1,0,1,0,1,1,least squares problem
Boeing,ct20stif,52329,52329,2600295,1,0,1,-1,1,0.5,structural problem
`

func TestParse_HappyPath(t *testing.T) {
	now := time.Now()
	snap, err := Parse(strings.NewReader(sampleIndex), now)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(snap.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(snap.Records))
	}
	if snap.SourceRevision != "31-Oct-2025 14:12:05" {
		t.Fatalf("unexpected source revision %q", snap.SourceRevision)
	}
	if !snap.FetchedAt.Equal(now) {
		t.Fatalf("snapshot not stamped with now")
	}

	rec := snap.Records[0]
	if rec.Group != "HB" || rec.Name != "nos5" {
		t.Fatalf("unexpected first record %s", rec.Key())
	}
	if rec.Rows != 468 || rec.Cols != 468 || rec.Nonzeros != 5172 {
		t.Fatalf("unexpected dimensions %d×%d nnz=%d", rec.Rows, rec.Cols, rec.Nonzeros)
	}
	if !rec.IsReal || rec.IsBinary || !rec.Is2D3D {
		t.Fatalf("unexpected flags on %s", rec.Key())
	}
	if rec.PosDef != TriTrue {
		t.Fatalf("expected posDef true, got %s", rec.PosDef)
	}
	if rec.Kind != "structural problem" {
		t.Fatalf("unexpected kind %q", rec.Kind)
	}

	if got := snap.Records[2].PosDef; got != TriUnknown {
		t.Fatalf("expected posDef unknown for ct20stif, got %s", got)
	}
}

func TestParse_DuplicateKeyKeepsFirst(t *testing.T) {
	doc := "2\ndate\n" +
		"HB,nos5,468,468,5172,1,0,1,1,1,1,structural problem\n" +
		"HB,nos5,468,468,9999,1,0,1,1,1,1,structural problem\n"
	snap, err := Parse(strings.NewReader(doc), time.Now())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(snap.Records) != 1 {
		t.Fatalf("expected 1 record after dedup, got %d", len(snap.Records))
	}
	if snap.Records[0].Nonzeros != 5172 {
		t.Fatalf("dedup kept the wrong record: nnz=%d", snap.Records[0].Nonzeros)
	}
	if snap.DuplicatesDropped != 1 {
		t.Fatalf("expected 1 dropped duplicate, got %d", snap.DuplicatesDropped)
	}
}

func TestParse_SameNameDifferentGroupIsNotDuplicate(t *testing.T) {
	doc := "2\ndate\n" +
		"HB,nos5,468,468,5172,1,0,1,1,1,1,structural problem\n" +
		"FIDAP,nos5,100,100,500,1,0,0,0,1,1,fluid dynamics\n"
	snap, err := Parse(strings.NewReader(doc), time.Now())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(snap.Records) != 2 || snap.DuplicatesDropped != 0 {
		t.Fatalf("records=%d dropped=%d, want 2/0", len(snap.Records), snap.DuplicatesDropped)
	}
}

func TestParse_ColumnCountMismatch(t *testing.T) {
	doc := "1\ndate\nHB,nos5,468,468,5172,1,0,1\n"
	_, err := Parse(strings.NewReader(doc), time.Now())
	if err == nil {
		t.Fatalf("expected error for short row")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if perr.Line != 3 {
		t.Fatalf("expected line 3, got %d", perr.Line)
	}
}

func TestParse_TrailingPatternEntriesColumnTolerated(t *testing.T) {
	doc := "1\ndate\nHB,nos5,468,468,5172,1,0,1,1,1,1,structural problem,5172\n"
	snap, err := Parse(strings.NewReader(doc), time.Now())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if snap.Records[0].Kind != "structural problem" {
		t.Fatalf("unexpected kind %q", snap.Records[0].Kind)
	}
}

func TestParse_BadValues(t *testing.T) {
	cases := []string{
		"HB,nos5,-1,468,5172,1,0,1,1,1,1,k",  // negative rows
		"HB,nos5,468,468,5172,2,0,1,1,1,1,k", // bad bool
		"HB,nos5,468,468,5172,1,0,1,3,1,1,k", // bad tri-state
		"HB,nos5,468,468,5172,1,0,1,1,1.5,1,k", // symmetry out of range
		"HB,,468,468,5172,1,0,1,1,1,1,k",     // empty name
	}
	for _, row := range cases {
		_, err := Parse(strings.NewReader("1\ndate\n"+row+"\n"), time.Now())
		if err == nil {
			t.Fatalf("expected parse error for row %q", row)
		}
	}
}

func TestParse_TruncatedHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("2893\n"), time.Now())
	if err == nil {
		t.Fatalf("expected error for truncated header")
	}
}
