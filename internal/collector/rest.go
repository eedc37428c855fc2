package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"StockWatch/internal/httpclient"
	"StockWatch/internal/model"
)

// RESTFetcher implements Fetcher against a self-hosted bars API, used when a
// base URL is configured instead of the public Yahoo endpoint.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  httpclient.Doer
}

// NewRESTFetcher creates a fetcher for the given API with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string, rl httpclient.RateLimitConfig, rc httpclient.RetryConfig) *RESTFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if rc.RetryOnStatus == nil {
		rc.RetryOnStatus = []int{http.StatusTooManyRequests, 500, 502, 503}
	}
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: httpclient.NewClient(httpclient.ClientConfig{
			HTTPClient: &http.Client{
				Timeout:   30 * time.Second,
				Transport: transport,
			},
			RateLimitConfig: rl,
			RetryConfig:     rc,
		}),
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars API.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (f *RESTFetcher) FetchHistory(ctx context.Context, symbol string, period model.Period) ([]model.Bar, error) {
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrUnknownTicker)
	}
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&period=%s",
		f.BaseURL, url.QueryEscape(symbol), period)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}

	resp, err := f.Client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTicker, symbol)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var raw []restBar
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode bars: %v", ErrProviderUnavailable, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no data for %s", ErrUnknownTicker, symbol)
	}

	bars := make([]model.Bar, len(raw))
	for i, rb := range raw {
		bars[i] = model.Bar{
			Time:   time.Unix(rb.Timestamp, 0).UTC(),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	return normalizeBars(bars), nil
}
