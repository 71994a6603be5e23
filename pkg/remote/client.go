package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/wire"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

const defaultUserAgent = "go-formbuilder"

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the http client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithTimeout bounds each request. Zero or negative disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if agent = strings.TrimSpace(agent); agent != "" {
			c.userAgent = agent
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client reads and replaces the schema stored at one endpoint.
type Client struct {
	endpoint  string
	http      *http.Client
	timeout   time.Duration
	userAgent string
	logger    *slog.Logger
}

// New constructs a client for endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, ErrEndpointRequired
	}
	c := &Client{
		endpoint:  endpoint,
		http:      http.DefaultClient,
		timeout:   DefaultTimeout,
		userAgent: defaultUserAgent,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Endpoint returns the configured URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch retrieves and decodes the stored schema. The payload may be a bare
// array or an object wrapping it; see wire.DecodePayload.
func (c *Client) Fetch(ctx context.Context) ([]wire.Group, error) {
	raw, err := c.FetchRaw(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := wire.DecodePayload(raw)
	if err != nil {
		return nil, fmt.Errorf("remote: fetch %s: %w", c.endpoint, err)
	}
	return groups, nil
}

// FetchRaw returns the response body of a GET on the endpoint.
func (c *Client) FetchRaw(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, nil)
}

// Push replaces the remote schema with groups.
func (c *Client) Push(ctx context.Context, groups []wire.Group) error {
	payload, err := wire.EncodePayload(groups)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, payload)
	return err
}

func (c *Client) do(ctx context.Context, method string, body []byte) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	op := strings.ToLower(method)

	reqCtx := ctx
	var cancel context.CancelFunc
	if c.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, c.endpoint, reader)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: c.endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("remote request failed", "method", method, "url", c.endpoint, "error", err)
		return nil, &NetworkError{Op: op, URL: c.endpoint, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.Debug("remote request",
		"method", method,
		"url", c.endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &NetworkError{
			Op:         op,
			URL:        c.endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: c.endpoint, Err: err}
	}
	return data, nil
}
