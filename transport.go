package mengram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
)

// query holds request query parameters. Keys with empty values are
// treated as absent and dropped from the encoded URL.
type query map[string]string

func (q query) encode() string {
	if len(q) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range q {
		if v == "" {
			continue
		}
		values.Set(k, v)
	}
	return values.Encode()
}

// do performs one authenticated request and decodes the JSON response
// into out. Every remote call in the client goes through here.
//
// Failures are normalized to *APIError: status 0 for network errors,
// 408 for the configured timeout, the HTTP status otherwise. A 2xx
// response with an empty body leaves out untouched.
func (c *Client) do(ctx context.Context, method, path string, q query, body, out any) error {
	u := c.baseURL + path
	if enc := q.encode(); enc != "" {
		u += "?" + enc
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if timeoutErr(err) {
			return newTimeoutError(fmt.Sprintf("%s %s did not complete within %s", method, path, c.timeout))
		}
		return newTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if timeoutErr(err) {
			return newTimeoutError(fmt.Sprintf("%s %s did not complete within %s", method, path, c.timeout))
		}
		return newTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data, resp.Status)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func timeoutErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// errorMessage pulls a machine-readable detail out of an error response
// body. The service answers with {"detail": ...} on most failures and
// {"error": {"message": ...}} on a few legacy paths; anything else falls
// back to the raw status line.
func errorMessage(body []byte, fallback string) string {
	var envelope struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		switch {
		case envelope.Detail != "":
			return envelope.Detail
		case envelope.Error.Message != "":
			return envelope.Error.Message
		case envelope.Message != "":
			return envelope.Message
		}
	}
	return fallback
}
