package mengram

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Message is a single conversation turn submitted for extraction.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// MemoryItem is one extracted memory as the service returns it.
type MemoryItem struct {
	ID         string            `json:"id"`
	Memory     string            `json:"memory"`
	UserID     string            `json:"user_id"`
	Categories []string          `json:"categories,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
}

// SearchResult pairs a memory with its relevance score.
type SearchResult struct {
	Memory MemoryItem `json:"memory"`
	Score  float64    `json:"score"`
}

// AddOptions configures a single Add call.
type AddOptions struct {
	UserID    string            // overrides the client default
	SessionID string            // groups turns of the same conversation
	Metadata  map[string]string // attached verbatim to extracted memories
	Async     bool              // return a job id instead of waiting for extraction
}

// AddResult reports what an Add call produced. IDs is best-effort: the
// service may defer extraction, in which case JobID is set instead.
type AddResult struct {
	IDs   []string `json:"ids,omitempty"`
	JobID string   `json:"job_id,omitempty"`
}

type addRequest struct {
	Messages  []Message         `json:"messages"`
	UserID    string            `json:"user_id,omitempty"`
	SessionID string            `json:"session_id,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Async     bool              `json:"async,omitempty"`
}

// Add submits conversation messages for memory extraction.
func (c *Client) Add(ctx context.Context, messages []Message, opts *AddOptions) (*AddResult, error) {
	if opts == nil {
		opts = &AddOptions{}
	}
	req := addRequest{
		Messages:  messages,
		UserID:    c.resolveUserID(opts.UserID),
		SessionID: opts.SessionID,
		Metadata:  opts.Metadata,
		Async:     opts.Async,
	}
	var out AddResult
	if err := c.do(ctx, http.MethodPost, "/v1/add", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddText submits plain text as a single user turn.
func (c *Client) AddText(ctx context.Context, text string, opts *AddOptions) (*AddResult, error) {
	return c.Add(ctx, []Message{{Role: "user", Content: text}}, opts)
}

// SearchOptions configures Search and SearchAll calls.
type SearchOptions struct {
	UserID string
	TopK   int // maximum results, service default when 0
}

type searchRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id,omitempty"`
	TopK   int    `json:"top_k,omitempty"`
}

// Search runs a semantic search over factual memory.
func (c *Client) Search(ctx context.Context, q string, opts *SearchOptions) ([]SearchResult, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	req := searchRequest{Query: q, UserID: c.resolveUserID(opts.UserID), TopK: opts.TopK}
	var out struct {
		Results []SearchResult `json:"results"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/search", nil, req, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// UnifiedSearchResult groups hits across every memory kind plus the raw
// conversation chunks the service keeps as an extraction fallback.
type UnifiedSearchResult struct {
	Memories   []SearchResult `json:"memories"`
	Episodes   []Episode      `json:"episodes"`
	Procedures []Procedure    `json:"procedures"`
	Chunks     []RawChunk     `json:"chunks"`
}

// RawChunk is a stored fragment of an original conversation.
type RawChunk struct {
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// SearchAll runs one query across factual, episodic, and procedural memory.
func (c *Client) SearchAll(ctx context.Context, q string, opts *SearchOptions) (*UnifiedSearchResult, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	req := searchRequest{Query: q, UserID: c.resolveUserID(opts.UserID), TopK: opts.TopK}
	var out UnifiedSearchResult
	if err := c.do(ctx, http.MethodPost, "/v1/search/all", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOptions configures paged list calls.
type ListOptions struct {
	UserID string
	Limit  int
	Offset int
}

func (o *ListOptions) query(c *Client) query {
	q := query{"user_id": c.resolveUserID(o.UserID)}
	if o.Limit > 0 {
		q["limit"] = strconv.Itoa(o.Limit)
	}
	if o.Offset > 0 {
		q["offset"] = strconv.Itoa(o.Offset)
	}
	return q
}

// GetAll lists every memory for a user.
func (c *Client) GetAll(ctx context.Context, opts *ListOptions) ([]MemoryItem, error) {
	if opts == nil {
		opts = &ListOptions{}
	}
	var out struct {
		Memories []MemoryItem `json:"memories"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/memories", opts.query(c), nil, &out); err != nil {
		return nil, err
	}
	return out.Memories, nil
}

// Get fetches a single memory by id. Absence is a normal outcome, not
// an error: a 404 yields (nil, false, nil).
func (c *Client) Get(ctx context.Context, id string, opts *ListOptions) (*MemoryItem, bool, error) {
	if opts == nil {
		opts = &ListOptions{}
	}
	var out MemoryItem
	err := c.do(ctx, http.MethodGet, "/v1/memories/"+url.PathEscape(id), query{"user_id": c.resolveUserID(opts.UserID)}, nil, &out)
	if err != nil {
		if IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &out, true, nil
}

// Delete removes a single memory. Deleting something already gone is
// not a failure: a 404 yields (false, nil).
func (c *Client) Delete(ctx context.Context, id string, opts *ListOptions) (bool, error) {
	if opts == nil {
		opts = &ListOptions{}
	}
	err := c.do(ctx, http.MethodDelete, "/v1/memories/"+url.PathEscape(id), query{"user_id": c.resolveUserID(opts.UserID)}, nil, nil)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteAll wipes every memory for a user.
func (c *Client) DeleteAll(ctx context.Context, opts *ListOptions) error {
	if opts == nil {
		opts = &ListOptions{}
	}
	return c.do(ctx, http.MethodDelete, "/v1/memories", query{"user_id": c.resolveUserID(opts.UserID)}, nil, nil)
}

// Stats summarizes a user's stored memory.
type Stats struct {
	Memories   int       `json:"memories"`
	Episodes   int       `json:"episodes"`
	Procedures int       `json:"procedures"`
	LastAdded  time.Time `json:"last_added,omitempty"`
}

func (c *Client) Stats(ctx context.Context, opts *ListOptions) (*Stats, error) {
	if opts == nil {
		opts = &ListOptions{}
	}
	var out Stats
	if err := c.do(ctx, http.MethodGet, "/v1/stats", query{"user_id": c.resolveUserID(opts.UserID)}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
