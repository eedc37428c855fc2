package collector

import (
	"context"
	"errors"

	"StockWatch/internal/model"
)

// Taxonomy of fetch failures. UnknownTicker is definitive and never retried;
// ProviderUnavailable is transient and retried a bounded number of times
// before being surfaced.
var (
	ErrInvalidPeriod       = errors.New("invalid period")
	ErrUnknownTicker       = errors.New("unknown ticker")
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// Fetcher defines the interface for fetching price history.
type Fetcher interface {
	// FetchHistory returns bars for the symbol over the period, ordered by
	// ascending time with unique timestamps, never empty on success.
	FetchHistory(ctx context.Context, symbol string, period model.Period) ([]model.Bar, error)
	Name() string
}
