// Package httpclient builds the HTTP client shared by the catalog loader and
// the launch client: resty on top of a retryablehttp transport, with an
// optional request rate limit.
package httpclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

const userAgent = "popup-apps/1.0"

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
	// RateLimit caps requests per second. Zero or negative disables limiting.
	RateLimit float64
}

// DefaultOptions mirrors the values used when no configuration is supplied.
func DefaultOptions() Options {
	return Options{
		Timeout:   10 * time.Second,
		Retries:   2,
		RetryWait: 250 * time.Millisecond,
	}
}

// Client wraps resty with rate limiting.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
}

// New creates a client from opts.
func New(opts Options) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	restyClient := resty.New()
	restyClient.
		SetTimeout(opts.Timeout).
		SetRetryCount(maxInt(opts.Retries, 0)).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(4*opts.RetryWait).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")
	restyClient.SetTransport(retryClient.HTTPClient.Transport)
	if base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"); base != "" {
		restyClient.SetBaseURL(base)
	}

	return &Client{
		resty:   restyClient,
		limiter: newLimiter(opts.RateLimit),
	}
}

// Request creates a new request bound to ctx once the rate limiter admits it.
func (c *Client) Request(ctx context.Context) (*resty.Request, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	return c.resty.R().SetContext(ctx), nil
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
