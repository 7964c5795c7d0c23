package download

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"time"
)

// ChecksumError indicates a completed transfer whose digest did not
// match the expected value. The corrupt data is removed before the
// error is reported.
type ChecksumError struct {
	Label    string
	Expected string
	Actual   string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: expected %s, got %s", e.Label, e.Expected, e.Actual)
}

// RemoteError indicates a non-2xx/non-206 HTTP response. It is never
// retried.
type RemoteError struct {
	URL    string
	Status string
	Code   int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error for %s: %s", e.URL, e.Status)
}

// stallError reports a transfer whose body stopped arriving for a full
// timeout window. It implements net.Error so the retry policy treats
// the stall like any other transient network failure.
type stallError struct {
	timeout time.Duration
}

func (e *stallError) Error() string {
	return fmt.Sprintf("transfer stalled: no data received for %s", e.timeout)
}

func (e *stallError) Timeout() bool   { return true }
func (e *stallError) Temporary() bool { return true }

// isTransient reports whether an error is a transient network failure
// worth retrying: timeouts, connection resets, DNS hiccups, or a stream
// cut short mid-body. Remote HTTP errors and local I/O failures are
// terminal.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		return false
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return true
	}
	var uerr *url.Error
	return errors.As(err, &uerr)
}
