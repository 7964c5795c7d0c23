package index

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sk-226/ssdownload/internal/config"
)

// Options configures a Store. Zero values fall back to the package
// defaults in internal/config.
type Options struct {
	// IndexURL is the remote index document location.
	IndexURL string
	// CacheDir holds the durable snapshot cache.
	CacheDir string
	// Freshness is the maximum snapshot age served without a re-fetch.
	Freshness time.Duration
	// Timeout bounds one index fetch.
	Timeout time.Duration
	// OnStale, when set, is called each time a refresh failure is
	// papered over with an older snapshot.
	OnStale func(*Snapshot)
	// HTTPClient overrides the default client (used by tests).
	HTTPClient *http.Client
}

// Store owns the index snapshot lifecycle: remote fetch, durable cache,
// freshness policy, and identifier resolution. It is safe for
// concurrent use; concurrent refreshes collapse into a single in-flight
// fetch.
type Store struct {
	opts   Options
	client *http.Client

	mu   sync.RWMutex
	snap *Snapshot

	flight singleflight.Group
}

// New creates a Store. The cache directory is created lazily on first
// persist.
func New(opts Options) *Store {
	if opts.IndexURL == "" {
		opts.IndexURL = config.DefaultIndexURL
	}
	if opts.Freshness <= 0 {
		opts.Freshness = config.DefaultFreshness
	}
	if opts.Timeout <= 0 {
		opts.Timeout = config.DefaultTimeout
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Store{opts: opts, client: client}
}

// GetSnapshot returns a snapshot no older than the freshness window,
// fetching from the remote when needed. Exactly one fetch is in flight
// at a time; concurrent callers share its result. When a refresh fails
// but an older snapshot exists (in memory or on disk), that snapshot is
// served with Stale set instead of failing the caller.
func (s *Store) GetSnapshot(ctx context.Context) (*Snapshot, error) {
	now := time.Now()

	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	if snap != nil && snap.Age(now) < s.opts.Freshness {
		return snap, nil
	}

	return s.refresh(ctx, false)
}

// Refresh discards the freshness window and fetches a new snapshot.
func (s *Store) Refresh(ctx context.Context) (*Snapshot, error) {
	return s.refresh(ctx, true)
}

func (s *Store) refresh(ctx context.Context, force bool) (*Snapshot, error) {
	// Forced refreshes use their own flight key so they never join an
	// in-flight background refresh that may resolve from cache.
	key := "refresh"
	if force {
		key = "refresh-forced"
	}
	v, err, _ := s.flight.Do(key, func() (any, error) {
		now := time.Now()

		// A caller that queued behind the winning fetch sees its result
		// here instead of triggering another network call.
		if !force {
			s.mu.RLock()
			snap := s.snap
			s.mu.RUnlock()
			if snap != nil && snap.Age(now) < s.opts.Freshness {
				return snap, nil
			}

			// Disk cache left by a previous process may still be fresh.
			if snap := s.loadFreshCache(now); snap != nil {
				s.setSnapshot(snap)
				return snap, nil
			}
		}

		snap, err := s.fetch(ctx)
		if err != nil {
			if stale := s.staleFallback(); stale != nil {
				if s.opts.OnStale != nil {
					s.opts.OnStale(stale)
				}
				return stale, nil
			}
			return nil, err
		}

		// Cache write failure is not fatal; the snapshot is still good.
		_ = saveCache(CachePath(s.opts.CacheDir), snap)
		s.setSnapshot(snap)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (s *Store) setSnapshot(snap *Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// loadFreshCache returns the on-disk snapshot if it is within the
// freshness window, nil otherwise.
func (s *Store) loadFreshCache(now time.Time) *Snapshot {
	if s.opts.CacheDir == "" {
		return nil
	}
	snap, err := loadCache(CachePath(s.opts.CacheDir))
	if err != nil || snap.Age(now) >= s.opts.Freshness {
		return nil
	}
	return snap
}

// staleFallback returns a stale-flagged copy of the best snapshot
// available after a failed refresh, or nil when there is none.
func (s *Store) staleFallback() *Snapshot {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	if snap == nil && s.opts.CacheDir != "" {
		if disk, err := loadCache(CachePath(s.opts.CacheDir)); err == nil {
			snap = disk
		}
	}
	if snap == nil {
		return nil
	}
	stale := *snap
	stale.Stale = true
	return &stale
}

// fetch performs one remote index fetch and parse.
func (s *Store) fetch(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.opts.IndexURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", config.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("index fetch failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return nil, fmt.Errorf("index fetch failed: %s\n%s", resp.Status, strings.TrimSpace(string(body)))
	}

	return Parse(resp.Body, time.Now())
}

// ResolveGroup finds the unique group containing a matrix name. Zero
// matches yield ErrNotFound; more than one group yields an
// AmbiguousError naming every candidate.
func (s *Store) ResolveGroup(ctx context.Context, name string) (string, error) {
	snap, err := s.GetSnapshot(ctx)
	if err != nil {
		return "", err
	}

	var groups []string
	seen := make(map[string]struct{})
	for _, rec := range snap.Records {
		if rec.Name != name {
			continue
		}
		if _, dup := seen[rec.Group]; dup {
			continue
		}
		seen[rec.Group] = struct{}{}
		groups = append(groups, rec.Group)
	}

	switch len(groups) {
	case 0:
		return "", fmt.Errorf("matrix %q: %w", name, ErrNotFound)
	case 1:
		return groups[0], nil
	}
	sort.Strings(groups)
	return "", &AmbiguousError{Name: name, Groups: groups}
}

// FindRecord returns the record for an exact (group, name) key.
func (s *Store) FindRecord(ctx context.Context, group, name string) (MatrixRecord, error) {
	snap, err := s.GetSnapshot(ctx)
	if err != nil {
		return MatrixRecord{}, err
	}
	for _, rec := range snap.Records {
		if rec.Group == group && rec.Name == name {
			return rec, nil
		}
	}
	return MatrixRecord{}, fmt.Errorf("matrix %s/%s: %w", group, name, ErrNotFound)
}

// Groups returns all group names in the snapshot, sorted.
func (s *Store) Groups(ctx context.Context) ([]string, error) {
	snap, err := s.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, rec := range snap.Records {
		if _, dup := seen[rec.Group]; dup {
			continue
		}
		seen[rec.Group] = struct{}{}
		out = append(out, rec.Group)
	}
	sort.Strings(out)
	return out, nil
}

// ClearCache drops the in-memory snapshot and deletes the durable cache
// file. A missing cache file is not an error.
func (s *Store) ClearCache() error {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()

	if s.opts.CacheDir == "" {
		return nil
	}
	if err := os.Remove(CachePath(s.opts.CacheDir)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cannot remove cache file: %w", err)
	}
	return nil
}
