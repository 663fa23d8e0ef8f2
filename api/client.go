// ABOUTME: HTTP client for the church REST API
// ABOUTME: Wraps envelope decoding, bearer-token auth, and typed errors
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// ErrNoCredential means the ambient session holds no bearer token. It is a
// local precondition failure: no request is sent.
var ErrNoCredential = errors.New("no credential in session")

// APIError carries the server-reported failure for a completed request.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// envelope is the response shape every endpoint shares.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Client talks to one API server. Safe for concurrent use.
type Client struct {
	baseURL string
	tokens  oauth2.TokenSource
	http    *http.Client
}

// NewClient creates a client for the given base URL. The token source is
// consulted on every call, so a login performed mid-session takes effect
// without rebuilding the client.
func NewClient(baseURL string, tokens oauth2.TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithHTTPClient overrides the underlying HTTP client (used in tests).
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

func (c *Client) endpoint(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return c.baseURL + "/" + strings.Join(escaped, "/")
}

// do runs one request and decodes the envelope. body may be nil, a
// JSON-marshalable value, or *Multipart.
func (c *Client) do(ctx context.Context, method, endpoint string, body any) (*envelope, error) {
	tok, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCredential, err)
	}

	var reader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case *Multipart:
		reader, contentType, err = b.encode()
		if err != nil {
			return nil, fmt.Errorf("failed to encode form data: %w", err)
		}
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	tok.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &APIError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !env.Success || resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}

func decodeData[T any](env *envelope) (T, error) {
	var out T
	if len(env.Data) == 0 {
		return out, fmt.Errorf("response envelope has no data")
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("failed to decode entity: %w", err)
	}
	return out, nil
}
