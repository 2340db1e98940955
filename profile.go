package mengram

import (
	"context"
	"net/http"
	"time"
)

// Profile is the generated cognitive profile for a user: a system-prompt
// ready summary of who they are, what they're working on, and how they
// like to work. Generation happens server-side; this is a plain read.
type Profile struct {
	Prompt      string    `json:"prompt"`
	UserID      string    `json:"user_id"`
	GeneratedAt time.Time `json:"generated_at"`
}

func (c *Client) GetProfile(ctx context.Context, opts *ListOptions) (*Profile, error) {
	if opts == nil {
		opts = &ListOptions{}
	}
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/v1/profile", query{"user_id": c.resolveUserID(opts.UserID)}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health pings the service. A nil return means the API is reachable and
// the credential is accepted.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/v1/health", nil, nil, nil)
}
