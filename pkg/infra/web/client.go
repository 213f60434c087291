package web

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/types"
)

// DefaultTimeout bounds every page fetch
const DefaultTimeout = 30 * time.Second

type config struct {
	timeout   time.Duration
	userAgent string
}

// Option is a functional option for Client configuration
type Option func(*config)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.userAgent = ua
	}
}

// Client fetches pages over HTTP(S). Each fetch is a single attempt.
type Client struct {
	client *resty.Client
}

// NewClient creates a new live HTTP page source
func NewClient(opts ...Option) *Client {
	cfg := &config{
		timeout:   DefaultTimeout,
		userAgent: types.ServiceName + "/" + types.Version,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client := resty.New().
		SetTimeout(cfg.timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", cfg.userAgent)

	return &Client{client: client}
}

// Fetch downloads url and returns the response body
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	logger := ctxlog.From(ctx)
	start := time.Now()

	resp, err := c.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch page",
			goerr.V("url", url),
			goerr.T(model.ErrTagFetch),
		)
	}

	logger.Debug("Fetched page",
		"url", url,
		"status", resp.StatusCode(),
		"size_bytes", len(resp.Body()),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if !resp.IsSuccess() {
		return nil, goerr.New("unexpected status code",
			goerr.V("url", url),
			goerr.V("status", resp.StatusCode()),
			goerr.T(model.ErrTagFetch),
		)
	}

	return resp.Body(), nil
}
