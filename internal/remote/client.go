// Package remote wraps the DreamShops REST API. It is the only package
// that speaks HTTP to the backend: it attaches the bearer token, enforces
// the request timeout, purges the token on authentication failure and
// normalizes the loose response shapes the API serves into the canonical
// domain types.
package remote

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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTimeout = 15 * time.Second

// ErrUnauthenticated is returned after a 401 response. By the time the
// caller sees it the token has been purged and the auth-failure hook has
// already run.
var ErrUnauthenticated = errors.New("remote: not authenticated")

// APIError is a non-2xx response from the API. Services inspect Status to
// map business-rule rejections (400/404/410) to user-facing messages.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote: api error (status %d)", e.Status)
	}
	return fmt.Sprintf("remote: %s (status %d)", e.Message, e.Status)
}

// StatusOf extracts the HTTP status from an *APIError, or 0 when err is
// not one (network failures, decode errors).
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type Client struct {
	baseURL   string
	http      *http.Client
	tokens    TokenStore
	onAuthErr func()
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithAuthFailureHook installs the global 401 handler; the session layer
// uses it to tear itself down and send the user back to login.
func WithAuthFailureHook(fn func()) Option {
	return func(c *Client) { c.onAuthErr = fn }
}

func NewClient(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(newBreakerTransport(http.DefaultTransport)),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do issues a single API request and decodes the (possibly enveloped)
// JSON response into out. A nil out discards the body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("remote: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.Clear()
		if c.onAuthErr != nil {
			c.onAuthErr()
		}
		return ErrUnauthenticated
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("remote: read response: %w", err)
	}
	if err := json.Unmarshal(unwrapEnvelope(raw), out); err != nil {
		return fmt.Errorf("remote: decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPut, path, query, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func readErrorMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
