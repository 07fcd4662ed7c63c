// Package gw2api is the rate-limited client for the Guild Wars 2 API
// (api.guildwars2.com/v2).
//
// The Client wraps plain GET endpoints behind a shared admission Limiter
// and decodes typed JSON responses. Fetch stages that need many requests
// (character records, season records, quest detail batches) fan out
// concurrently and gather their results into maps keyed by a derived
// identifier, so downstream ordering never depends on completion timing.
//
// Failures split into two classes the caller can tell apart: RequestError
// for transport-level problems (connection failures, non-2xx statuses) and
// DecodeError for responses that do not match the expected JSON shape.
// Both are fatal for a run; the client never retries.
package gw2api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.guildwars2.com/v2"

// RequestError reports a transport-level failure: the request could not be
// sent, or the server answered with a non-2xx status.
type RequestError struct {
	// Endpoint is the API path that failed, without query parameters.
	Endpoint string
	// Status is the HTTP status code, or 0 when the request never
	// completed.
	Status int
	// Err is the underlying transport error, if any.
	Err error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gw2api: GET %s: unexpected status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("gw2api: GET %s: %v", e.Endpoint, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// DecodeError reports a schema failure: the response body did not
// deserialize into the expected shape.
type DecodeError struct {
	// Endpoint is the API path whose response failed to decode.
	Endpoint string
	// Err is the underlying JSON error.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gw2api: decoding %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Client issues authenticated, rate-limited GET requests against the API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    Limiter
	batchSize  int
	logger     *log.Logger
}

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the API root. Used by the settings file and by
// tests pointing at a mock server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithLimiter sets the shared admission limiter. All clients of one run
// must share a single limiter instance for the quota to be global.
func WithLimiter(l Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithBatchSize sets the maximum number of quest ids per batched detail
// request.
func WithBatchSize(n int) Option {
	return func(c *Client) {
		c.batchSize = n
	}
}

// WithLogger attaches a charmbracelet/log Logger to the client.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a Client authenticating with the given access token.
// Defaults: production base URL, 30s timeout, 100-id quest batches, and a
// limiter admitting 300 requests per minute with up to 1s of jitter.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		limiter:    NewRateLimiter(300, time.Second),
		batchSize:  100,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs one rate-limited GET of baseURL+path and decodes the JSON
// response into out. authenticated appends the access_token query
// parameter, the authentication form the API template expects.
func (c *Client) get(ctx context.Context, path string, query url.Values, authenticated bool, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("gw2api: waiting for rate limiter: %w", err)
	}

	if authenticated {
		if query == nil {
			query = url.Values{}
		}
		query.Set("access_token", c.apiKey)
	}

	uri := c.baseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}
	c.logDebug("fetching", "path", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return &RequestError{Endpoint: path, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Endpoint: path, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Endpoint: path, Err: err}
	}
	return nil
}

// logDebug logs at Debug level if a logger is configured.
func (c *Client) logDebug(msg string, keyvals ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, keyvals...)
	}
}
