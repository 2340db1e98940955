// Package importer turns bulk personal data (ChatGPT exports, note
// vaults, arbitrary text files) into chunked submissions against a
// mengram.Client. All preprocessing is local; only the final chunks
// leave the machine.
package importer

import "time"

// Message is a single turn of a source conversation.
type Message struct {
	Role string // "user" or "assistant"
	Text string
}

// Source is one logical unit to import: a reconstructed conversation,
// a note file, or an arbitrary text file.
type Source struct {
	Title    string
	Messages []Message
}

// ProgressFunc is invoked after every chunk submission attempt, success
// or failure, so long imports can report status without the pipeline
// knowing anything about the caller's UI.
type ProgressFunc func(done, total int, title string)

// Options configures one import run.
type Options struct {
	// UserID scopes submitted memories; falls back to the client default.
	UserID string

	// ChunkSize is the character budget per submitted chunk.
	// DefaultChunkSize when zero.
	ChunkSize int

	// Progress, when set, receives a callback per submission attempt.
	Progress ProgressFunc

	// StatePath enables resumable runs: sources recorded there are
	// skipped on re-run. Empty disables state tracking.
	StatePath string
}

// Result accumulates the outcome of a whole import call. It is returned
// once, complete, even when individual units fail along the way.
type Result struct {
	// SourcesFound counts every source unit discovered, including ones
	// that later failed or held nothing importable.
	SourcesFound int

	// Skipped counts sources with zero reconstructable text, such as a
	// conversation whose kept branch carries no user/assistant turns.
	Skipped int

	// ChunksSent counts successfully submitted chunks.
	ChunksSent int

	// Created holds ids of memories the service reports creating.
	// Best-effort: empty when extraction is deferred to a job.
	Created []string

	// Errors lists per-unit failures as "title: cause", in submission
	// order. A non-empty list does not mean the import aborted.
	Errors []string

	// Elapsed is the wall time of the whole run.
	Elapsed time.Duration
}
