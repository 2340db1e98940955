package mengram

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Episode is one entry of event-based memory: something that happened,
// anchored in time.
type Episode struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Score      float64   `json:"score,omitempty"` // set on search results only
}

// ListEpisodes returns episodic memory, newest first.
func (c *Client) ListEpisodes(ctx context.Context, opts *ListOptions) ([]Episode, error) {
	if opts == nil {
		opts = &ListOptions{}
	}
	var out struct {
		Episodes []Episode `json:"episodes"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/episodes", opts.query(c), nil, &out); err != nil {
		return nil, err
	}
	return out.Episodes, nil
}

// SearchEpisodes runs a semantic search over episodic memory only.
func (c *Client) SearchEpisodes(ctx context.Context, q string, opts *SearchOptions) ([]Episode, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	params := query{
		"query":   q,
		"user_id": c.resolveUserID(opts.UserID),
	}
	if opts.TopK > 0 {
		params["top_k"] = strconv.Itoa(opts.TopK)
	}
	var out struct {
		Episodes []Episode `json:"episodes"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/episodes/search", params, nil, &out); err != nil {
		return nil, err
	}
	return out.Episodes, nil
}

// GetEpisode fetches one episode by id.
func (c *Client) GetEpisode(ctx context.Context, id string) (*Episode, error) {
	var out Episode
	if err := c.do(ctx, http.MethodGet, "/v1/episodes/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEpisode removes one episode. A 404 yields (false, nil).
func (c *Client) DeleteEpisode(ctx context.Context, id string) (bool, error) {
	err := c.do(ctx, http.MethodDelete, "/v1/episodes/"+url.PathEscape(id), nil, nil, nil)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
