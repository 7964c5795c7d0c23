package client

import "github.com/sk-226/ssdownload/internal/download"

// Batch is a handle to an in-flight bulk download. Results arrive in
// completion order, which may differ from the (stable, deterministic)
// candidate selection order.
type Batch struct {
	// Count is the number of records selected after filtering and
	// truncation. Every one of them produces exactly one result.
	Count int

	results <-chan download.Result
	cancel  func()
}

// Results streams one result per task. The channel closes after the
// last task finishes or the batch is canceled.
func (b *Batch) Results() <-chan download.Result {
	return b.results
}

// Cancel stops all in-flight transfers in the batch. Partially written
// side-files are left intact so a later attempt can resume.
func (b *Batch) Cancel() {
	b.cancel()
}

// Collect drains the batch and returns all results.
func (b *Batch) Collect() []download.Result {
	var out []download.Result
	for res := range b.results {
		out = append(out, res)
	}
	return out
}
