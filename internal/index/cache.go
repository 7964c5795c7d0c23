package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// cacheFileName is the durable snapshot file inside the cache directory.
const cacheFileName = "ssstats_cache.json"

// CachePath returns the snapshot file path for a cache directory.
func CachePath(cacheDir string) string {
	return filepath.Join(cacheDir, cacheFileName)
}

// loadCache reads a previously persisted snapshot. A missing file is
// reported via os.IsNotExist on the returned error.
func loadCache(path string) (*Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("invalid cache file %s: %w", path, err)
	}
	return &snap, nil
}

// saveCache persists a snapshot. The write goes through a temp file and
// rename so a concurrent reader never observes a torn snapshot, and a
// flock serializes writers across processes.
func saveCache(path string, snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create cache dir: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("cannot acquire cache lock: %w", err)
	}
	if !locked {
		// Another process is persisting the same snapshot; let it win.
		return nil
	}
	defer lock.Unlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cannot marshal snapshot: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("cannot write cache file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("cannot replace cache file: %w", err)
	}
	return nil
}
