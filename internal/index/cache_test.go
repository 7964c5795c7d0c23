package index

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

// Parsing then persisting and reloading a snapshot must yield an
// identical set of records.
func TestCache_RoundTrip(t *testing.T) {
	snap, err := Parse(strings.NewReader(sampleIndex), time.Now().UTC().Truncate(time.Second))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	path := CachePath(t.TempDir())
	if err := saveCache(path, snap); err != nil {
		t.Fatalf("saveCache: %v", err)
	}
	got, err := loadCache(path)
	if err != nil {
		t.Fatalf("loadCache: %v", err)
	}

	if !reflect.DeepEqual(got.Records, snap.Records) {
		t.Fatalf("records changed across round-trip:\ngot  %+v\nwant %+v", got.Records, snap.Records)
	}
	if !got.FetchedAt.Equal(snap.FetchedAt) {
		t.Fatalf("fetchedAt changed: got %v want %v", got.FetchedAt, snap.FetchedAt)
	}
	if got.SourceRevision != snap.SourceRevision {
		t.Fatalf("sourceRevision changed: %q", got.SourceRevision)
	}
	if got.DuplicatesDropped != snap.DuplicatesDropped {
		t.Fatalf("duplicatesDropped changed: %d", got.DuplicatesDropped)
	}
}

func TestCache_LoadMissingFile(t *testing.T) {
	if _, err := loadCache(CachePath(t.TempDir())); err == nil {
		t.Fatalf("expected error for missing cache file")
	}
}
