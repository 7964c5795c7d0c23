package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/sk-226/ssdownload/internal/client"
	"github.com/sk-226/ssdownload/internal/config"
	"github.com/sk-226/ssdownload/internal/download"
	"github.com/sk-226/ssdownload/internal/index"
)

// splitIdentifier parses "group/name" or a bare name. group is empty
// when the identifier carries no group.
func splitIdentifier(identifier string) (group, name string, err error) {
	if !strings.Contains(identifier, "/") {
		return "", identifier, nil
	}
	parts := strings.SplitN(identifier, "/", 2)
	if parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid identifier %q (expected name or group/name)", identifier)
	}
	return parts[0], parts[1], nil
}

// newClient builds a Client from the user config plus command flags.
func newClient(outputDir string, workers int, verify, keepArchive, flat bool, progress download.ProgressFunc) (*client.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return client.New(client.Options{
		Config:          cfg,
		OutputDir:       outputDir,
		Workers:         workers,
		VerifyChecksums: verify,
		ExtractArchives: true,
		KeepArchives:    keepArchive,
		FlatStructure:   flat,
		Progress:        progress,
		OnStale:         warnStaleIndex,
	})
}

// warnStaleIndex reports that an operation is proceeding on index data
// that could not be refreshed.
func warnStaleIndex(snap *index.Snapshot) {
	printWarn("", fmt.Sprintf("index refresh failed; using cached data from %s",
		snap.FetchedAt.Format(time.RFC1123)))
}

// reportResult prints one transfer result and returns its error, if any.
func reportResult(res download.Result) error {
	switch res.Outcome {
	case download.Completed:
		msg := fmt.Sprintf("downloaded %s (%s)", res.Path, humanBytes(res.BytesWritten))
		if res.Verified {
			msg += ", checksum verified"
		}
		printOK(res.Task.Label, msg)
		return nil
	case download.Skipped:
		printSkip(res.Task.Label, fmt.Sprintf("already present: %s", res.Path))
		return nil
	default:
		printErr(res.Task.Label, res.Err.Error())
		return res.Err
	}
}
