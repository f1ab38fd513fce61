package myrapid

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/NERVsystems/rapidmcp/pkg/myrapid/jsonval"
)

// Client performs requests against the MyRapid geoservice. It is safe for
// concurrent use and holds no mutable state after construction.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client. The client is copied
// and the configured timeout is applied to the copy, so hc itself is
// never modified.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		copied := *hc
		c.httpClient = &copied
	}
}

// WithLogger sets the logger for the client
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client bound to cfg.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	c := &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient.Timeout = cfg.Timeout
	return c
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	return c.cfg
}

// Fetch issues one GET for rawURL and returns the decoded JSON body.
// Transport failures, non-2xx statuses and undecodable bodies all yield
// ok == false, as does a literal null payload; the cause is only logged.
// There are no retries.
func (c *Client) Fetch(ctx context.Context, rawURL string) (data any, ok bool) {
	logger := c.logger.With("url", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		logger.Warn("failed to create request", "error", err)
		return nil, false
	}
	req.Header = c.cfg.Headers()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("request failed", "error", NewAPIError(ServiceName, 0, err.Error(), ""))
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("geoservice returned error status",
			"error", NewAPIError(ServiceName, resp.StatusCode, http.StatusText(resp.StatusCode), ""))
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("failed to read response body", "error", err)
		return nil, false
	}

	data, err = jsonval.Decode(body)
	if err != nil {
		logger.Warn("failed to decode response",
			"error", NewAPIError(ServiceName, resp.StatusCode, err.Error(), GuidanceDataError))
		return nil, false
	}
	if data == nil {
		logger.Warn("geoservice returned a null payload")
		return nil, false
	}

	logger.Debug("geoservice request completed",
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start))
	return data, true
}
