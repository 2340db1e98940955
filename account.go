package mengram

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Webhook is a registered delivery target for memory events.
type Webhook struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Events    []string  `json:"events"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateWebhook registers a delivery URL for the named event types.
type CreateWebhook struct {
	URL    string   `json:"url,omitempty"`
	Events []string `json:"events,omitempty"`
	Secret string   `json:"secret,omitempty"` // sent back as the bearer token on deliveries
}

func (c *Client) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	var out struct {
		Webhooks []Webhook `json:"webhooks"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/webhooks", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Webhooks, nil
}

func (c *Client) AddWebhook(ctx context.Context, wh CreateWebhook) (*Webhook, error) {
	var out Webhook
	if err := c.do(ctx, http.MethodPost, "/v1/webhooks", nil, wh, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWebhook replaces a webhook's delivery URL, event list, or
// secret. Zero-value fields are omitted and left unchanged.
func (c *Client) UpdateWebhook(ctx context.Context, id string, upd CreateWebhook) (*Webhook, error) {
	var out Webhook
	if err := c.do(ctx, http.MethodPatch, "/v1/webhooks/"+url.PathEscape(id), nil, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteWebhook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/webhooks/"+url.PathEscape(id), nil, nil, nil)
}

// Team is a group of users sharing a memory scope.
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	var out struct {
		Teams []Team `json:"teams"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/teams", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Teams, nil
}

func (c *Client) CreateTeam(ctx context.Context, name string, members []string) (*Team, error) {
	body := struct {
		Name    string   `json:"name"`
		Members []string `json:"members,omitempty"`
	}{Name: name, Members: members}
	var out Team
	if err := c.do(ctx, http.MethodPost, "/v1/teams", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTeam(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/teams/"+url.PathEscape(id), nil, nil, nil)
}

// APIKey describes a credential. The secret itself is only returned
// once, at creation time, in CreatedKey.
type APIKey struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Prefix    string    `json:"prefix"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatedKey carries the one-time secret of a freshly minted key.
type CreatedKey struct {
	APIKey
	Secret string `json:"secret"`
}

func (c *Client) ListKeys(ctx context.Context) ([]APIKey, error) {
	var out struct {
		Keys []APIKey `json:"keys"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/keys", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Keys, nil
}

func (c *Client) CreateKey(ctx context.Context, name string) (*CreatedKey, error) {
	body := struct {
		Name string `json:"name"`
	}{Name: name}
	var out CreatedKey
	if err := c.do(ctx, http.MethodPost, "/v1/keys", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteKey(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/keys/"+url.PathEscape(id), nil, nil, nil)
}

// Trigger fires a webhook when a memory event matching the filter occurs.
type Trigger struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Event     string `json:"event"`
	WebhookID string `json:"webhook_id"`
}

func (c *Client) ListTriggers(ctx context.Context) ([]Trigger, error) {
	var out struct {
		Triggers []Trigger `json:"triggers"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/triggers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Triggers, nil
}

func (c *Client) CreateTrigger(ctx context.Context, t Trigger) (*Trigger, error) {
	var out Trigger
	if err := c.do(ctx, http.MethodPost, "/v1/triggers", nil, t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTrigger(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/triggers/"+url.PathEscape(id), nil, nil, nil)
}
