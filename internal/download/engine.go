// Package download fetches artifacts over HTTP with bounded
// concurrency, transparent resume of interrupted transfers, and
// optional integrity verification.
package download

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/sk-226/ssdownload/internal/config"
)

// PartSuffix marks the temporary side-file a transfer writes to before
// the atomic rename to its final name. Side-files are co-located with
// the destination and safe to delete when no transfer is running.
const PartSuffix = ".part"

const copyChunkSize = 32 * 1024

// ProgressFunc receives transfer progress. total is negative when the
// full size is unknown.
type ProgressFunc func(label string, written, total int64)

// Options configures an Engine.
type Options struct {
	// Timeout bounds the connect and response-header phases of each
	// request, and the idle gap between body reads. It does not bound
	// the whole body read, which for large artifacts legitimately takes
	// longer than any fixed window.
	Timeout time.Duration
	// Retry bounds how transient network failures are retried.
	Retry RetryPolicy
	// VerifyChecksums enables digest verification when a task carries
	// an expected checksum.
	VerifyChecksums bool
	// Progress, when set, is called as bytes arrive.
	Progress ProgressFunc
	// HTTPClient overrides the default client (used by tests).
	HTTPClient *http.Client
}

// Engine performs transfers. It is safe for concurrent use.
type Engine struct {
	opts   Options
	client *http.Client
}

// New creates an Engine.
func New(opts Options) *Engine {
	if opts.Timeout <= 0 {
		opts.Timeout = config.DefaultTimeout
	}
	if opts.Retry.MaxAttempts <= 0 {
		opts.Retry = DefaultRetryPolicy()
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: opts.Timeout}).DialContext,
				ResponseHeaderTimeout: opts.Timeout,
			},
		}
	}
	return &Engine{opts: opts, client: client}
}

// FetchAll runs the tasks with at most workers concurrent transfers and
// streams one Result per task. Workers are admitted in submission
// order; the count is clamped to [1, config.MaxWorkers] with the
// package default when zero. One task's failure never cancels its
// siblings. Results arrive in completion order, which may differ from
// submission order. The channel closes after the last result.
func (e *Engine) FetchAll(ctx context.Context, tasks []Task, workers int) <-chan Result {
	if workers <= 0 {
		workers = config.DefaultWorkers
	}
	if workers > config.MaxWorkers {
		workers = config.MaxWorkers
	}

	results := make(chan Result, len(tasks))
	sem := semaphore.NewWeighted(int64(workers))

	go func() {
		var wg sync.WaitGroup
		for _, task := range tasks {
			if err := sem.Acquire(ctx, 1); err != nil {
				results <- Result{Task: task, Outcome: Failed, Err: err}
				continue
			}
			wg.Add(1)
			go func(task Task) {
				defer wg.Done()
				defer sem.Release(1)
				results <- e.Fetch(ctx, task)
			}(task)
		}
		wg.Wait()
		close(results)
	}()

	return results
}

// Fetch runs a single task to its terminal state, including the
// pre-flight skip check, resume, retries, verification, and the final
// atomic rename. Cancellation leaves the side-file intact so a later
// attempt can resume.
func (e *Engine) Fetch(ctx context.Context, task Task) Result {
	if skip, res := e.preflight(task); skip {
		return res
	}

	if err := os.MkdirAll(filepath.Dir(task.Dest), 0o755); err != nil {
		return Result{Task: task, Outcome: Failed, Err: fmt.Errorf("cannot create output dir: %w", err)}
	}

	part := task.Dest + PartSuffix
	var written int64
	var err error
	for attempt := 1; ; attempt++ {
		var n int64
		n, err = e.transfer(ctx, task, part)
		written += n
		if err == nil {
			break
		}
		if ctx.Err() != nil || !isTransient(err) || attempt >= e.opts.Retry.MaxAttempts {
			return Result{Task: task, BytesWritten: written, Outcome: Failed, Err: err}
		}
		select {
		case <-time.After(e.opts.Retry.Delay(attempt)):
		case <-ctx.Done():
			return Result{Task: task, BytesWritten: written, Outcome: Failed, Err: ctx.Err()}
		}
	}

	if task.ExpectedSize >= 0 {
		st, err := os.Stat(part)
		if err != nil {
			return Result{Task: task, BytesWritten: written, Outcome: Failed, Err: err}
		}
		if st.Size() != task.ExpectedSize {
			_ = os.Remove(part)
			return Result{Task: task, BytesWritten: written, Outcome: Failed,
				Err: fmt.Errorf("size mismatch for %s: expected %d bytes, got %d", task.Label, task.ExpectedSize, st.Size())}
		}
	}

	verified := false
	if e.opts.VerifyChecksums && task.ExpectedMD5 != "" {
		actual, err := fileMD5Hex(part)
		if err != nil {
			return Result{Task: task, BytesWritten: written, Outcome: Failed, Err: err}
		}
		if !strings.EqualFold(actual, task.ExpectedMD5) {
			_ = os.Remove(part)
			return Result{Task: task, BytesWritten: written, Outcome: Failed,
				Err: &ChecksumError{Label: task.Label, Expected: strings.ToLower(task.ExpectedMD5), Actual: actual}}
		}
		verified = true
	}

	if err := os.Rename(part, task.Dest); err != nil {
		return Result{Task: task, BytesWritten: written, Outcome: Failed,
			Err: fmt.Errorf("cannot finalize %s: %w", task.Dest, err)}
	}
	return Result{Task: task, Path: task.Dest, BytesWritten: written, Verified: verified, Outcome: Completed}
}

// preflight short-circuits a task whose destination already exists and
// matches what is known about the artifact. This is the primary defense
// against redundant re-downloads.
func (e *Engine) preflight(task Task) (bool, Result) {
	st, err := os.Stat(task.Dest)
	if err != nil {
		return false, Result{}
	}

	if e.opts.VerifyChecksums && task.ExpectedMD5 != "" {
		actual, err := fileMD5Hex(task.Dest)
		if err == nil && strings.EqualFold(actual, task.ExpectedMD5) {
			return true, Result{Task: task, Path: task.Dest, Verified: true, Outcome: Skipped}
		}
		// Existing file fails verification; re-download it.
		return false, Result{}
	}
	if task.ExpectedSize >= 0 {
		if st.Size() == task.ExpectedSize {
			return true, Result{Task: task, Path: task.Dest, Outcome: Skipped}
		}
		return false, Result{}
	}
	// Nothing to check against; an existing file counts as done.
	return true, Result{Task: task, Path: task.Dest, Outcome: Skipped}
}

// transfer performs one HTTP attempt, resuming from the side-file's
// current length when the server honors range requests. It returns the
// bytes written by this attempt. A server that stalls mid-body is cut
// off once no bytes arrive for a full timeout window; the stall
// surfaces as a retryable net.Error.
func (e *Engine) transfer(ctx context.Context, task Task, part string) (int64, error) {
	var resumeFrom int64
	if st, err := os.Stat(part); err == nil {
		resumeFrom = st.Size()
	}

	ctx, cancelRead := context.WithCancel(ctx)
	defer cancelRead()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, task.URL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", config.UserAgent)
	if resumeFrom > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", resumeFrom))
	}

	// The transport timeouts cover dial and response headers only, so a
	// watchdog bounds the gaps between body reads. Each received chunk
	// re-arms it.
	var stalled atomic.Bool
	watchdog := time.AfterFunc(e.opts.Timeout, func() {
		stalled.Store(true)
		cancelRead()
	})
	defer watchdog.Stop()

	resp, err := e.client.Do(req)
	if err != nil {
		if stalled.Load() {
			return 0, &stallError{timeout: e.opts.Timeout}
		}
		return 0, err
	}
	defer resp.Body.Close()

	flags := os.O_CREATE | os.O_WRONLY
	switch resp.StatusCode {
	case http.StatusPartialContent:
		flags |= os.O_APPEND
	case http.StatusOK:
		// The server ignored the range request; partial data must not
		// be retained when resume is not honored.
		flags |= os.O_TRUNC
		resumeFrom = 0
	case http.StatusRequestedRangeNotSatisfiable:
		// The side-file already holds the whole artifact, which happens
		// when an earlier run was interrupted between the last byte and
		// the rename. Verification and the rename follow in the caller.
		if resumeFrom > 0 {
			return 0, nil
		}
		return 0, &RemoteError{URL: task.URL, Status: resp.Status, Code: resp.StatusCode}
	default:
		return 0, &RemoteError{URL: task.URL, Status: resp.Status, Code: resp.StatusCode}
	}

	total := int64(-1)
	if resp.ContentLength >= 0 {
		total = resumeFrom + resp.ContentLength
	}

	out, err := os.OpenFile(part, flags, 0o644)
	if err != nil {
		return 0, fmt.Errorf("cannot open side-file %s: %w", part, err)
	}

	var written int64
	buf := make([]byte, copyChunkSize)
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			watchdog.Reset(e.opts.Timeout)
			if _, werr := out.Write(buf[:n]); werr != nil {
				_ = out.Close()
				return written, fmt.Errorf("write failed: %w", werr)
			}
			written += int64(n)
			if e.opts.Progress != nil {
				e.opts.Progress(task.Label, resumeFrom+written, total)
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				break
			}
			_ = out.Close()
			if stalled.Load() {
				return written, &stallError{timeout: e.opts.Timeout}
			}
			return written, rerr
		}
	}
	if err := out.Close(); err != nil {
		return written, err
	}
	return written, nil
}

// FetchChecksum retrieves the remote MD5 sidecar for an artifact and
// returns the lowercase hex digest. A missing sidecar (404) is not an
// error; it returns the empty string.
func (e *Engine) FetchChecksum(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", config.UserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("checksum fetch failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &RemoteError{URL: url, Status: resp.Status, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("checksum read failed: %w", err)
	}
	fields := strings.Fields(string(body))
	if len(fields) == 0 {
		return "", nil
	}
	digest := strings.ToLower(fields[0])
	if _, err := hex.DecodeString(digest); err != nil || len(digest) != 2*md5.Size {
		return "", fmt.Errorf("invalid checksum %q from %s", fields[0], url)
	}
	return digest, nil
}

// fileMD5Hex returns the MD5 digest of a file as lowercase hex,
// computed streaming.
func fileMD5Hex(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// CleanSideFiles removes orphaned side-files under dir. Completed
// artifacts are never touched. It returns the number of files removed.
func CleanSideFiles(dir string) (int, error) {
	removed := 0
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), PartSuffix) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		removed++
		return nil
	})
	return removed, err
}
