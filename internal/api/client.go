// ABOUTME: HTTP client for the Cloud Cost Intelligence backends
// ABOUTME: Routes logical paths to origins, attaches bearer tokens, handles 401 teardown

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/AnurajMane/web-cost/internal/debuglog"
)

// TokenSource is the view of persisted credential storage the client needs:
// read the current token before each request, clear it on a 401.
type TokenSource interface {
	Token() string
	Clear() error
}

// Client is the single call surface for both backend origins. Callers pass
// logical paths; the client resolves the origin, attaches the bearer token
// when one is stored, and unwraps JSON payloads.
type Client struct {
	routes         *RouteTable
	tokens         TokenSource
	httpClient     *http.Client
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client over the given routing table and token storage.
func New(routes *RouteTable, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		routes: routes,
		tokens: tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnUnauthorized registers a hook invoked whenever any response comes back
// 401. The hook runs after the stored token has been cleared; the triggering
// call still returns its error to the caller.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// Get issues a GET for the logical path and decodes the payload into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the payload into out.
// Both body and out may be nil.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body and decodes the payload into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE for the logical path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, path, err)
	}
	defer resp.Body.Close()
	debuglog.Request(method, path, resp.StatusCode, req.Header.Get("X-Request-ID"))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// newRequest builds the outgoing request: origin resolution, JSON body,
// bearer credential, and a correlation ID for the debug log.
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	origin := c.routes.Resolve(path)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, origin+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	// A missing token is not an error: the request goes out unauthenticated
	// and the backend decides whether to reject it.
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// handleRequestError converts context errors to user-friendly messages.
func (c *Client) handleRequestError(ctx context.Context, path string, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot reach backend at %s: %w", c.routes.Resolve(path), err)
}

// handleErrorResponse parses backend error envelopes. A 401 additionally
// clears the stored token and fires the unauthorized hook; that side effect
// is global while the failure stays local to the caller.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var envelope errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&envelope)

	httpErr := &HTTPError{Status: resp.StatusCode, Message: envelope.text()}

	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.tokens.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		if httpErr.Message == "" {
			httpErr.Message = "session expired"
		}
	}

	return httpErr
}
