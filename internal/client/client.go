// Package client composes the index store, the filter engine, and the
// transfer engine into the user-facing download operations. It is the
// only surface the CLI layer calls.
package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sk-226/ssdownload/internal/config"
	"github.com/sk-226/ssdownload/internal/download"
	"github.com/sk-226/ssdownload/internal/filter"
	"github.com/sk-226/ssdownload/internal/index"
)

// Options configures a Client.
type Options struct {
	// Config carries endpoints, cache directory, and tuning knobs.
	// Nil means the package defaults.
	Config *config.Config

	// OutputDir receives downloaded artifacts. Empty means the current
	// directory.
	OutputDir string

	// Workers bounds concurrent transfers for bulk downloads.
	Workers int

	// VerifyChecksums fetches the remote MD5 sidecar for each artifact
	// and verifies the transfer against it.
	VerifyChecksums bool

	// ExtractArchives unpacks mm/rb tar.gz artifacts after download.
	ExtractArchives bool
	// KeepArchives retains the tar.gz after extraction.
	KeepArchives bool
	// FlatStructure drops the per-group subdirectory in output paths.
	FlatStructure bool

	// Progress receives transfer progress callbacks.
	Progress download.ProgressFunc

	// OnStale is called when an operation proceeds on index data that
	// could not be refreshed.
	OnStale func(*index.Snapshot)
}

// Client is the orchestrator. Create one with New; the zero value is
// not usable.
type Client struct {
	cfg    *config.Config
	opts   Options
	store  *index.Store
	engine *download.Engine
}

// New creates a Client. When opts.Config is nil the built-in defaults
// are used with the platform cache directory.
func New(opts Options) (*Client, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if cfg.CacheDir == "" {
		dir, err := config.DefaultCacheDir()
		if err != nil {
			return nil, err
		}
		cfg.CacheDir = dir
	}
	if opts.Workers <= 0 {
		opts.Workers = cfg.Workers
	}
	if opts.Workers > config.MaxWorkers {
		opts.Workers = config.MaxWorkers
	}

	store := index.New(index.Options{
		IndexURL:  cfg.IndexURL,
		CacheDir:  cfg.CacheDir,
		Freshness: cfg.Freshness,
		Timeout:   cfg.Timeout,
		OnStale:   opts.OnStale,
	})
	engine := download.New(download.Options{
		Timeout:         cfg.Timeout,
		VerifyChecksums: opts.VerifyChecksums,
		Progress:        opts.Progress,
	})
	return &Client{cfg: cfg, opts: opts, store: store, engine: engine}, nil
}

// Snapshot returns the current index snapshot, fetching it if needed.
func (c *Client) Snapshot(ctx context.Context) (*index.Snapshot, error) {
	return c.store.GetSnapshot(ctx)
}

// RefreshIndex fetches a fresh index snapshot, bypassing the freshness
// window.
func (c *Client) RefreshIndex(ctx context.Context) (*index.Snapshot, error) {
	return c.store.Refresh(ctx)
}

// ResolveGroup finds the unique group containing a matrix name.
func (c *Client) ResolveGroup(ctx context.Context, name string) (string, error) {
	return c.store.ResolveGroup(ctx, name)
}

// FindRecord returns the metadata record for an exact (group, name) key.
func (c *Client) FindRecord(ctx context.Context, group, name string) (index.MatrixRecord, error) {
	return c.store.FindRecord(ctx, group, name)
}

// Groups returns all group names in the collection, sorted.
func (c *Client) Groups(ctx context.Context) ([]string, error) {
	return c.store.Groups(ctx)
}

// FindMatrices returns the records matching f in snapshot order. The
// filter is compiled (and therefore fully validated) before any record
// is scanned.
func (c *Client) FindMatrices(ctx context.Context, f filter.Filter) ([]index.MatrixRecord, error) {
	m, err := filter.Compile(f)
	if err != nil {
		return nil, err
	}
	snap, err := c.store.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return m.Select(snap.Records), nil
}

// ClearCache drops the cached index snapshot, in memory and on disk.
func (c *Client) ClearCache() error {
	return c.store.ClearCache()
}

// Download fetches a single matrix identified by its exact (group,
// name) key.
func (c *Client) Download(ctx context.Context, group, name string, format config.Format) (download.Result, error) {
	task, err := c.buildTask(ctx, group, name, format)
	if err != nil {
		return download.Result{}, err
	}
	res := c.engine.Fetch(ctx, task)
	return c.finishResult(res, format), nil
}

// DownloadByName fetches a matrix by name alone, resolving its group
// from the index. An ambiguous name (present in more than one group)
// is an error naming every candidate group.
func (c *Client) DownloadByName(ctx context.Context, name string, format config.Format) (download.Result, error) {
	group, err := c.store.ResolveGroup(ctx, name)
	if err != nil {
		return download.Result{}, err
	}
	return c.Download(ctx, group, name, format)
}

// DownloadMany fetches every matrix matching f, truncated to maxCount
// (zero or negative means no limit) in snapshot order, fanning out over
// the configured worker count. Per-item failures are reported in the
// batch results; they never abort sibling tasks.
func (c *Client) DownloadMany(ctx context.Context, f filter.Filter, format config.Format, maxCount int) (*Batch, error) {
	records, err := c.FindMatrices(ctx, f)
	if err != nil {
		return nil, err
	}
	if maxCount > 0 && len(records) > maxCount {
		records = records[:maxCount]
	}

	ctx, cancel := context.WithCancel(ctx)

	// A record whose task cannot be built, for example when its
	// checksum-sidecar fetch fails, becomes a Failed result for that
	// record alone. Siblings still run.
	tasks := make([]download.Task, 0, len(records))
	var prefailed []download.Result
	for _, rec := range records {
		task, err := c.buildTask(ctx, rec.Group, rec.Name, format)
		if err != nil {
			prefailed = append(prefailed, download.Result{
				Task:    download.Task{Label: rec.Group + "/" + rec.Name},
				Outcome: download.Failed,
				Err:     err,
			})
			continue
		}
		tasks = append(tasks, task)
	}

	results := make(chan download.Result, len(records))
	go func() {
		defer cancel()
		defer close(results)
		for _, res := range prefailed {
			results <- res
		}
		for res := range c.engine.FetchAll(ctx, tasks, c.opts.Workers) {
			results <- c.finishResult(res, format)
		}
	}()

	return &Batch{Count: len(records), results: results, cancel: cancel}, nil
}

// buildTask constructs the transfer task for one artifact, including
// the remote checksum lookup when verification is on.
func (c *Client) buildTask(ctx context.Context, group, name string, format config.Format) (download.Task, error) {
	url, err := c.cfg.MatrixURL(group, name, format)
	if err != nil {
		return download.Task{}, err
	}

	task := download.Task{
		URL:          url,
		Dest:         c.destPath(group, name, format),
		ExpectedSize: -1,
		Label:        group + "/" + name,
	}

	if c.opts.VerifyChecksums {
		sumURL, err := c.cfg.ChecksumURL(group, name, format)
		if err != nil {
			return download.Task{}, err
		}
		digest, err := c.engine.FetchChecksum(ctx, sumURL)
		if err != nil {
			return download.Task{}, fmt.Errorf("cannot fetch checksum for %s: %w", task.Label, err)
		}
		task.ExpectedMD5 = digest
	}
	return task, nil
}

// destPath places artifacts under <out>/<group>/<name><ext>, or
// directly under <out> with the flat layout. Group, name, and format
// are all part of the path, so distinct tasks never collide.
func (c *Client) destPath(group, name string, format config.Format) string {
	out := c.opts.OutputDir
	if out == "" {
		out = "."
	}
	if c.opts.FlatStructure {
		return filepath.Join(out, name+format.Extension())
	}
	return filepath.Join(out, group, name+format.Extension())
}

// finishResult applies post-transfer steps: archive extraction for
// completed mm/rb downloads.
func (c *Client) finishResult(res download.Result, format config.Format) download.Result {
	if res.Outcome != download.Completed || !format.IsArchive() || !c.opts.ExtractArchives {
		return res
	}
	if _, err := download.ExtractTarGz(res.Path, filepath.Dir(res.Path)); err != nil {
		res.Outcome = download.Failed
		res.Err = fmt.Errorf("cannot extract %s: %w", res.Path, err)
		return res
	}
	if !c.opts.KeepArchives {
		_ = os.Remove(res.Path)
	}
	return res
}
