package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/felixgeelhaar/alumni/internal/log"
)

// DefaultTimeout aborts a hung request. A timed-out request counts as a network failure.
const DefaultTimeout = 10 * time.Second

// TokenSource supplies the bearer token attached to outgoing requests.
// An empty token means the request is sent without credentials.
type TokenSource interface {
	Token() (string, error)
}

// Client is the alumni portal API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger

	tokens         TokenSource
	onUnauthorized func(*http.Request)
	userAgent      string
	timeout        time.Duration
	base           http.RoundTripper
}

// Option configures a Client
type Option func(*Client)

// WithTokenSource sets where bearer tokens are read from for every request
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHandler registers fn to run whenever any response has status 401.
// It runs before the response is returned to the caller.
func WithUnauthorizedHandler(fn func(*http.Request)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithUserAgent sets the User-Agent sent with every request
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithTransport sets the underlying round tripper (http.DefaultTransport by default)
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.base = rt }
}

// WithLogger sets the client logger
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a new portal API client. baseURL includes any path prefix,
// e.g. http://localhost:8000/api.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		base:    http.DefaultTransport,
		logger:  log.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.httpClient = &http.Client{
		Timeout: c.timeout,
		Transport: &authTransport{
			base:           c.base,
			tokens:         c.tokens,
			onUnauthorized: c.onUnauthorized,
			userAgent:      c.userAgent,
			logger:         c.logger,
		},
	}
	return c
}

// BaseURL returns the configured base URL without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doJSON performs a request with an optional JSON body
func (c *Client) doJSON(ctx context.Context, method, path string, body any, header http.Header) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	if header == nil {
		header = http.Header{}
	}
	header.Set("Content-Type", "application/json")
	header.Set("Accept", "application/json")

	return c.do(ctx, method, path, reqBody, header)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	return resp, nil
}

// ErrorResponse represents an API error response. The portal backend uses "detail";
// "error" and "message" are accepted as well.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (e ErrorResponse) text() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Error != "":
		return e.Error
	default:
		return e.Message
	}
}

// parseResponse closes the body and decodes it into target on a 2xx status,
// or returns a *StatusError otherwise
func parseResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

		statusErr := &StatusError{
			StatusCode: resp.StatusCode,
			Method:     resp.Request.Method,
			Path:       resp.Request.URL.Path,
		}

		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.text() != "" {
			statusErr.Message = errResp.text()
		} else {
			statusErr.Message = strings.TrimSpace(string(body))
		}
		return statusErr
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
