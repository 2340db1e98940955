package mengram

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Procedure is one entry of procedural memory: a learned multi-step
// workflow that evolves with feedback.
type Procedure struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Steps       []string  `json:"steps"`
	Version     int       `json:"version"`
	UserID      string    `json:"user_id"`
	UpdatedAt   time.Time `json:"updated_at"`
	Score       float64   `json:"score,omitempty"` // set on search results only
}

// ListProcedures returns all procedures for a user.
func (c *Client) ListProcedures(ctx context.Context, opts *ListOptions) ([]Procedure, error) {
	if opts == nil {
		opts = &ListOptions{}
	}
	var out struct {
		Procedures []Procedure `json:"procedures"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/procedures", opts.query(c), nil, &out); err != nil {
		return nil, err
	}
	return out.Procedures, nil
}

// GetProcedure fetches one procedure by id.
func (c *Client) GetProcedure(ctx context.Context, id string) (*Procedure, error) {
	var out Procedure
	if err := c.do(ctx, http.MethodGet, "/v1/procedures/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProcedure patches the named fields of a procedure. Zero-valued
// fields are left unchanged server-side.
type UpdateProcedure struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Steps       []string `json:"steps,omitempty"`
}

func (c *Client) UpdateProcedure(ctx context.Context, id string, upd UpdateProcedure) (*Procedure, error) {
	var out Procedure
	if err := c.do(ctx, http.MethodPatch, "/v1/procedures/"+url.PathEscape(id), nil, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProcedureFeedback grades one execution of a procedure; the evolution
// engine folds it into the next version.
type ProcedureFeedback struct {
	Helpful bool   `json:"helpful"`
	Comment string `json:"comment,omitempty"`
}

func (c *Client) SendProcedureFeedback(ctx context.Context, id string, fb ProcedureFeedback) error {
	return c.do(ctx, http.MethodPost, "/v1/procedures/"+url.PathEscape(id)+"/feedback", nil, fb, nil)
}

// ProcedureRevision is one historical version of a procedure.
type ProcedureRevision struct {
	Version   int       `json:"version"`
	Summary   string    `json:"summary"`
	ChangedAt time.Time `json:"changed_at"`
}

// ProcedureHistory lists a procedure's past versions, oldest first.
func (c *Client) ProcedureHistory(ctx context.Context, id string) ([]ProcedureRevision, error) {
	var out struct {
		History []ProcedureRevision `json:"history"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/procedures/"+url.PathEscape(id)+"/history", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.History, nil
}

// ProcedureEvolution reports the state of feedback-driven rewriting for
// one procedure. When a rewrite is running, JobID can be polled with
// WaitForJob.
type ProcedureEvolution struct {
	Status          string    `json:"status"`
	PendingFeedback int       `json:"pending_feedback"`
	JobID           string    `json:"job_id,omitempty"`
	LastEvolvedAt   time.Time `json:"last_evolved_at,omitempty"`
}

func (c *Client) GetProcedureEvolution(ctx context.Context, id string) (*ProcedureEvolution, error) {
	var out ProcedureEvolution
	if err := c.do(ctx, http.MethodGet, "/v1/procedures/"+url.PathEscape(id)+"/evolution", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
