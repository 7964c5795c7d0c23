package cmd

import (
	"fmt"
	"os"
	"time"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// All commands use these functions to ensure consistent icon usage and
// indentation throughout ssdl's CLI output.
//
// Icon semantics:
//   ✓  success / downloaded
//   ✗  error / failure          (written to stderr)
//   ⚠  warning
//   ○  skipped / already present
//   ~  neutral info / state change

// printSection prints a top-level section header, e.g. "=== Download ===".
func printSection(title string) {
	fmt.Printf("\n=== %s ===\n", title)
}

// printOK prints a success line.
//   name = "" → "  ✓  msg"
//   name set  → "  ✓  [name] msg"
func printOK(name, msg string) {
	if name == "" {
		fmt.Printf("  ✓  %s\n", msg)
	} else {
		fmt.Printf("  ✓  [%s] %s\n", name, msg)
	}
}

// printErr prints an error line to stderr.
func printErr(name, msg string) {
	if name == "" {
		fmt.Fprintf(os.Stderr, "  ✗  %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "  ✗  [%s] %s\n", name, msg)
	}
}

// printWarn prints a warning line.
func printWarn(name, msg string) {
	if name == "" {
		fmt.Printf("  ⚠  %s\n", msg)
	} else {
		fmt.Printf("  ⚠  [%s] %s\n", name, msg)
	}
}

// printSkip prints a skipped / already-present line.
func printSkip(name, msg string) {
	if name == "" {
		fmt.Printf("  ○  %s\n", msg)
	} else {
		fmt.Printf("  ○  [%s] %s\n", name, msg)
	}
}

// printInfo prints a neutral informational / state-change line.
func printInfo(name, msg string) {
	if name == "" {
		fmt.Printf("  ~  %s\n", msg)
	} else {
		fmt.Printf("  ~  [%s] %s\n", name, msg)
	}
}

// progressPrinter renders a throttled single-line progress indicator to
// stderr, suitable as a download.ProgressFunc.
type progressPrinter struct {
	lastPrint time.Time
}

func (p *progressPrinter) update(label string, written, total int64) {
	if time.Since(p.lastPrint) < 200*time.Millisecond {
		return
	}
	p.lastPrint = time.Now()
	if total > 0 {
		pct := float64(written) / float64(total) * 100
		fmt.Fprintf(os.Stderr, "\r%s  %s / %s (%.1f%%)", label, humanBytes(written), humanBytes(total), pct)
		return
	}
	fmt.Fprintf(os.Stderr, "\r%s  %s", label, humanBytes(written))
}

func (p *progressPrinter) done() {
	fmt.Fprintln(os.Stderr)
}

// humanBytes formats a byte count in a human-friendly binary unit.
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	prefix := "KMGTPE"[exp]
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), prefix)
}
