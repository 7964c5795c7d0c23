package index

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ssstats.csv column layout. The first two lines of the document are
// collection-level metadata (matrix count, revision date); every line
// after that is one record with exactly these columns:
//
//	0  group
//	1  name
//	2  rows
//	3  cols
//	4  nonzeros
//	5  isReal        (0/1)
//	6  isBinary      (0/1)
//	7  is2D3D        (0/1)
//	8  posDef        (-1 unknown / 0 / 1)
//	9  patternSymmetry    [0,1]
//	10 numericalSymmetry  [0,1]
//	11 kind
//
// A trailing 13th column (pattern entries) appears in newer revisions
// of the document and is ignored.
const (
	recordColumns    = 12
	recordColumnsMax = 13
	headerLines      = 2
)

// Parse reads a full index document and returns a Snapshot stamped
// with now. A line whose column count does not match the schema is an
// error, never a silent truncation. Duplicate (group, name) keys keep
// the first occurrence and are counted in DuplicatesDropped.
func Parse(r io.Reader, now time.Time) (*Snapshot, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	snap := &Snapshot{FetchedAt: now}
	seen := make(map[string]struct{})

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if lineNo <= headerLines {
			// Line 1 is the matrix count, line 2 the revision date.
			if lineNo == headerLines {
				snap.SourceRevision = line
			}
			continue
		}
		if line == "" {
			continue
		}

		rec, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Reason: err.Error()}
		}

		key := rec.Key()
		if _, dup := seen[key]; dup {
			snap.DuplicatesDropped++
			continue
		}
		seen[key] = struct{}{}
		snap.Records = append(snap.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}
	if lineNo < headerLines {
		return nil, &ParseError{Reason: "document shorter than its header"}
	}
	return snap, nil
}

func parseLine(line string) (MatrixRecord, error) {
	fields := strings.Split(line, ",")
	if len(fields) < recordColumns || len(fields) > recordColumnsMax {
		return MatrixRecord{}, fmt.Errorf("expected %d columns, got %d", recordColumns, len(fields))
	}

	var rec MatrixRecord
	rec.Group = strings.TrimSpace(fields[0])
	rec.Name = strings.TrimSpace(fields[1])
	if rec.Group == "" || rec.Name == "" {
		return MatrixRecord{}, fmt.Errorf("empty group or name")
	}

	var err error
	if rec.Rows, err = parseCount(fields[2], "rows"); err != nil {
		return MatrixRecord{}, err
	}
	if rec.Cols, err = parseCount(fields[3], "cols"); err != nil {
		return MatrixRecord{}, err
	}
	if rec.Nonzeros, err = parseCount(fields[4], "nonzeros"); err != nil {
		return MatrixRecord{}, err
	}
	if rec.IsReal, err = parseBool(fields[5], "isReal"); err != nil {
		return MatrixRecord{}, err
	}
	if rec.IsBinary, err = parseBool(fields[6], "isBinary"); err != nil {
		return MatrixRecord{}, err
	}
	if rec.Is2D3D, err = parseBool(fields[7], "is2D3D"); err != nil {
		return MatrixRecord{}, err
	}
	if rec.PosDef, err = parseTriState(fields[8]); err != nil {
		return MatrixRecord{}, err
	}
	if rec.PatternSymmetry, err = parseRatio(fields[9], "patternSymmetry"); err != nil {
		return MatrixRecord{}, err
	}
	if rec.NumericalSymmetry, err = parseRatio(fields[10], "numericalSymmetry"); err != nil {
		return MatrixRecord{}, err
	}
	rec.Kind = strings.TrimSpace(fields[11])
	return rec, nil
}

func parseCount(s, col string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", col, s)
	}
	return n, nil
}

func parseBool(s, col string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("invalid %s %q (expected 0 or 1)", col, s)
}

func parseTriState(s string) (TriState, error) {
	switch strings.TrimSpace(s) {
	case "-1":
		return TriUnknown, nil
	case "0":
		return TriFalse, nil
	case "1":
		return TriTrue, nil
	}
	return TriUnknown, fmt.Errorf("invalid posDef %q (expected -1, 0, or 1)", s)
}

func parseRatio(s, col string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || v > 1 {
		return 0, fmt.Errorf("invalid %s %q (expected value in [0,1])", col, s)
	}
	return v, nil
}
