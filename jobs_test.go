package mengram

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

func TestWaitForJob_ReturnsOnTerminalStatus(t *testing.T) {
	var polls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/jobs/job-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		status := JobRunning
		if polls.Add(1) > 2 {
			status = JobCompleted
		}
		json.NewEncoder(w).Encode(Job{ID: "job-1", Status: status})
	})

	job, err := c.WaitForJob(context.Background(), "job-1", 10*time.Millisecond, time.Second)
	if err != nil {
		t.Fatalf("WaitForJob: %v", err)
	}
	if job.Status != JobCompleted {
		t.Errorf("status = %q", job.Status)
	}
	if got := polls.Load(); got != 3 {
		t.Errorf("polled %d times, want 3 (stop immediately on terminal)", got)
	}
}

func TestWaitForJob_FailedJobIsNotAnError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Job{ID: "job-2", Status: JobFailed, Error: "extraction crashed"})
	})

	job, err := c.WaitForJob(context.Background(), "job-2", 10*time.Millisecond, time.Second)
	if err != nil {
		t.Fatalf("a job reporting failed must be returned, not errored: %v", err)
	}
	if job.Status != JobFailed || job.Error != "extraction crashed" {
		t.Errorf("got %+v", job)
	}
}

func TestWaitForJob_DeadlineShorterThanInterval(t *testing.T) {
	var polls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		json.NewEncoder(w).Encode(Job{ID: "job-3", Status: JobPending})
	})

	_, err := c.WaitForJob(context.Background(), "job-3", 100*time.Millisecond, 30*time.Millisecond)
	if !IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if got := polls.Load(); got != 1 {
		t.Errorf("polled %d times, want 1", got)
	}
}

func TestWaitForJob_ContextCancellation(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Job{ID: "job-4", Status: JobPending})
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.WaitForJob(ctx, "job-4", time.Second, time.Minute)
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestJobStatus_Terminal(t *testing.T) {
	for status, want := range map[JobStatus]bool{
		JobPending:   false,
		JobRunning:   false,
		JobCompleted: true,
		JobFailed:    true,
	} {
		if got := status.Terminal(); got != want {
			t.Errorf("Terminal(%q) = %v, want %v", status, got, want)
		}
	}
}
