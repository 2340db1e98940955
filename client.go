// Package mengram is a Go client for the Mengram memory service.
//
// A Client turns method calls into authenticated HTTP requests against
// the /v1 REST API. Bulk imports of chat exports, note vaults, and
// arbitrary files live in the importer package; receiving webhook
// deliveries lives in the webhook package.
package mengram

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.mengram.io"
	defaultTimeout = 30 * time.Second
	defaultUserID  = "default"
)

// Config configures a Client. Only APIKey is required.
type Config struct {
	// APIKey is the bearer credential sent with every request.
	APIKey string

	// BaseURL overrides the service endpoint. Defaults to the hosted API.
	BaseURL string

	// UserID scopes calls that don't set their own. Defaults to "default".
	UserID string

	// Timeout bounds each individual request, including body read.
	// Defaults to 30s. A request that exceeds it fails with status 408.
	Timeout time.Duration

	// HTTPClient replaces the underlying client, mainly for tests.
	HTTPClient *http.Client
}

// Client is a handle to the Mengram API. Its configuration is read-only
// after New, so a single Client may be shared across goroutines.
type Client struct {
	apiKey  string
	baseURL string
	userID  string
	timeout time.Duration
	http    *http.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("mengram: APIKey is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	userID := cfg.UserID
	if userID == "" {
		userID = defaultUserID
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		userID:  userID,
		timeout: timeout,
		http:    httpClient,
	}, nil
}

// resolveUserID picks the per-call user id, falling back to the client default.
func (c *Client) resolveUserID(override string) string {
	if override != "" {
		return override
	}
	return c.userID
}
