package httpclient

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"StockWatch/internal/retry"
)

// Client wraps an http.Client with a shared token-bucket rate limit and
// bounded-backoff retries on transport errors and retryable statuses.
type Client struct {
	httpClient    *http.Client
	limiter       *rate.Limiter
	retryer       *retry.Retryer
	retryOnStatus []int
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type RetryConfig struct {
	MaxRetries    int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	RetryOnStatus []int
}

type ClientConfig struct {
	HTTPClient      *http.Client
	RateLimitConfig RateLimitConfig
	RetryConfig     RetryConfig
}

func NewClient(config ClientConfig) *Client {
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	limit := rate.Limit(config.RateLimitConfig.RequestsPerSecond)
	if limit <= 0 {
		limit = rate.Inf
	}
	burst := config.RateLimitConfig.Burst
	if burst < 1 {
		burst = 1
	}
	return &Client{
		httpClient:    config.HTTPClient,
		limiter:       rate.NewLimiter(limit, burst),
		retryer:       retry.NewRetryer(config.RetryConfig.MaxRetries, config.RetryConfig.BaseDelay, config.RetryConfig.MaxDelay),
		retryOnStatus: config.RetryConfig.RetryOnStatus,
	}
}

// Do executes the request, waiting on the rate limit before each attempt.
// Responses with a status in RetryOnStatus are closed and retried; any other
// response is returned as-is for the caller to interpret.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	var resp *http.Response

	err := c.retryer.Do(ctx, func() (bool, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return false, err
		}

		var err error
		resp, err = c.httpClient.Do(req.WithContext(ctx))
		if err != nil {
			return true, err
		}

		for _, status := range c.retryOnStatus {
			if resp.StatusCode == status {
				resp.Body.Close()
				return true, nil
			}
		}

		return false, nil
	})

	return resp, err
}
