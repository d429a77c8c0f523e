package devdocs

import (
	"context"
	"time"
)

// RunStatus is the state of an index run.
type RunStatus string

// RunStatus constants.
const (
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// Run records one indexing pass over a set of requested docs.
type Run struct {
	ID         string    `json:"id"`
	Requested  []string  `json:"requested"`
	Resolved   []string  `json:"resolved"`
	Status     RunStatus `json:"status"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	switch r.Status {
	case RunRunning, RunSucceeded, RunFailed:
	default:
		return Errorf(EINVALID, "invalid run status %q", r.Status)
	}
	return nil
}

// Stale reports whether the run is older than ttl at now.
// Runs that never succeeded are always stale.
func (r *Run) Stale(now time.Time, ttl time.Duration) bool {
	if r.Status != RunSucceeded || r.FinishedAt.IsZero() {
		return true
	}
	return now.Sub(r.FinishedAt) >= ttl
}

// Fetch records one entries file persisted during a run.
type Fetch struct {
	ID          string    `json:"id"`
	RunID       string    `json:"runId"`
	Slug        string    `json:"slug"`
	Entries     int       `json:"entries"`
	Bytes       int       `json:"bytes"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the fetch contains invalid fields.
func (f *Fetch) Validate() error {
	if f.RunID == "" {
		return Errorf(EINVALID, "fetch run ID required")
	}
	if f.Slug == "" {
		return Errorf(EINVALID, "fetch slug required")
	}
	return nil
}

// RunService represents a service for recording index run history.
type RunService interface {
	// CreateRun records the start of a run and assigns its ID.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun sets the final status of a run.
	// Returns ENOTFOUND if the run does not exist.
	FinishRun(ctx context.Context, id string, upd RunUpdate) (*Run, error)

	// CreateFetch records a persisted entries file.
	CreateFetch(ctx context.Context, fetch *Fetch) error

	// LastRun returns the most recently started run matching the filter.
	// Returns ENOTFOUND if there is none.
	LastRun(ctx context.Context, filter RunFilter) (*Run, error)

	// FindFetches retrieves fetches matching the filter.
	FindFetches(ctx context.Context, filter FetchFilter) ([]*Fetch, error)
}

// RunUpdate represents the fields set when a run finishes.
type RunUpdate struct {
	Resolved []string  `json:"resolved"`
	Status   RunStatus `json:"status"`
	Error    string    `json:"error"`
}

// RunFilter represents a filter for LastRun.
type RunFilter struct {
	Status *RunStatus `json:"status"`

	// Requested matches runs for exactly this list of identifiers.
	Requested []string `json:"requested"`
}

// FetchFilter represents a filter for FindFetches.
type FetchFilter struct {
	RunID *string `json:"runId"`
	Slug  *string `json:"slug"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
