package mengram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// JobStatus is the lifecycle state of an asynchronous server-side job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Terminal reports whether no further status transition will occur.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// Job tracks an asynchronous operation such as deferred extraction or a
// procedure rewrite. It is never mutated locally; each poll returns a
// fresh snapshot.
type Job struct {
	ID     string          `json:"id"`
	Status JobStatus       `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// GetJob fetches the current snapshot of a job.
func (c *Client) GetJob(ctx context.Context, id string) (*Job, error) {
	var out Job
	if err := c.do(ctx, http.MethodGet, "/v1/jobs/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WaitForJob polls a job at a fixed interval until it reaches a
// terminal status, returning that snapshot. Job durations are short and
// predictable, so there is no backoff.
//
// If maxWait elapses before the job finishes, WaitForJob returns a 408
// *APIError; a job that reports its own "failed" status is returned
// without error so callers can tell the two apart.
func (c *Client) WaitForJob(ctx context.Context, id string, interval, maxWait time.Duration) (*Job, error) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	deadline := time.Now().Add(maxWait)

	for {
		job, err := c.GetJob(ctx, id)
		if err != nil {
			return nil, err
		}
		if job.Status.Terminal() {
			return job, nil
		}

		if time.Now().Add(interval).After(deadline) {
			return nil, newTimeoutError(fmt.Sprintf("job %s still %s after %s", id, job.Status, maxWait))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}
