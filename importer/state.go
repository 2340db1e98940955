package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// runState tracks which sources have already been imported so a large
// run interrupted halfway can resume without re-submitting everything.
type runState struct {
	RunID           string    `json:"run_id"`
	StartedAt       time.Time `json:"started_at"`
	LastProcessedAt time.Time `json:"last_processed_at"`
	Processed       []string  `json:"processed"`
	ChunksSent      int       `json:"chunks_sent"`

	path string // not serialized
}

// loadState loads state from disk, or starts a fresh run.
func loadState(path string) (*runState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &runState{
				RunID:     uuid.NewString(),
				StartedAt: time.Now().UTC(),
				path:      path,
			}, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}

	var s runState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	s.path = path
	return &s, nil
}

// Save persists the state to disk.
func (s *runState) Save() error {
	s.LastProcessedAt = time.Now().UTC()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Done reports whether a source was fully imported in a previous run.
func (s *runState) Done(title string) bool {
	for _, p := range s.Processed {
		if p == title {
			return true
		}
	}
	return false
}

// Mark records a source as fully imported.
func (s *runState) Mark(title string) {
	if !s.Done(title) {
		s.Processed = append(s.Processed, title)
	}
}
