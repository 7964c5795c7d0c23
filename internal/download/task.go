package download

// Outcome is the terminal state of one transfer task.
type Outcome int

const (
	// Completed means all bytes were transferred and, when requested,
	// verified.
	Completed Outcome = iota
	// Skipped means the destination already satisfied the task and no
	// bytes were transferred.
	Skipped
	// Failed means the task ended with an error after any retries.
	Failed
)

// String returns "completed", "skipped", or "failed".
func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Skipped:
		return "skipped"
	}
	return "failed"
}

// Task describes one artifact transfer. A Task is owned by the engine
// for the duration of a single fetch call and is never shared across
// calls.
type Task struct {
	// URL is the remote artifact location.
	URL string
	// Dest is the final destination path. The engine writes to
	// Dest+".part" and renames on completion, so a half-written
	// artifact is never observable under the final name.
	Dest string
	// ExpectedMD5 is the lowercase hex digest to verify against, empty
	// when unknown.
	ExpectedMD5 string
	// ExpectedSize is the full artifact size in bytes, negative when
	// unknown.
	ExpectedSize int64
	// Label identifies the task in results and progress output,
	// e.g. "HB/nos5".
	Label string
}

// Result reports the terminal state of one task.
type Result struct {
	Task Task
	// Path is the final artifact path for Completed and Skipped tasks.
	Path string
	// BytesWritten counts bytes transferred by this call; zero for
	// Skipped and for resumed portions carried over from prior attempts.
	BytesWritten int64
	// Verified is set when a checksum comparison succeeded.
	Verified bool
	Outcome  Outcome
	Err      error
}
