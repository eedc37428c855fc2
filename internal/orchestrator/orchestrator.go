package orchestrator

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"StockWatch/internal/calculator"
	"StockWatch/internal/collector"
	"StockWatch/internal/model"
)

// Windows holds the indicator lookback windows applied to every fetch.
type Windows struct {
	SMA int
	EMA int
	RSI int
}

// DefaultWindows matches the dashboard defaults: SMA 20, EMA 20, RSI 14.
var DefaultWindows = Windows{SMA: 20, EMA: 20, RSI: 14}

// Orchestrator fans fetches out over a bounded worker pool and computes
// indicator series for each result.
type Orchestrator struct {
	fetcher collector.Fetcher
	workers int
	windows Windows
	log     *zap.Logger
}

func New(fetcher collector.Fetcher, workers int, windows Windows, log *zap.Logger) *Orchestrator {
	if workers <= 0 {
		workers = 10
	}
	if windows.SMA <= 0 {
		windows.SMA = DefaultWindows.SMA
	}
	if windows.EMA <= 0 {
		windows.EMA = DefaultWindows.EMA
	}
	if windows.RSI <= 0 {
		windows.RSI = DefaultWindows.RSI
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{fetcher: fetcher, workers: workers, windows: windows, log: log}
}

// FetchAll fetches every symbol concurrently and returns exactly one result
// per symbol, in input order regardless of completion order. Each worker
// writes only to its own pre-allocated slot, so the result slice needs no
// locking. One symbol's failure never cancels or delays the others.
func (o *Orchestrator) FetchAll(ctx context.Context, symbols []string, period model.Period) []model.FetchResult {
	results := make([]model.FetchResult, len(symbols))
	if len(symbols) == 0 {
		return results
	}

	type job struct {
		idx    int
		symbol string
	}
	jobs := make(chan job)

	workers := o.workers
	if workers > len(symbols) {
		workers = len(symbols)
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.idx] = o.fetchOne(ctx, j.symbol, period)
			}
		}()
	}

	for i, s := range symbols {
		jobs <- job{idx: i, symbol: strings.ToUpper(strings.TrimSpace(s))}
	}
	close(jobs)
	wg.Wait()

	return results
}

func (o *Orchestrator) fetchOne(ctx context.Context, symbol string, period model.Period) model.FetchResult {
	start := time.Now()
	bars, err := o.fetcher.FetchHistory(ctx, symbol, period)
	if err != nil {
		o.log.Warn("fetch failed",
			zap.String("symbol", symbol),
			zap.String("period", period.String()),
			zap.Error(err))
		return model.FetchResult{Symbol: symbol, Err: err}
	}

	data := &model.StockData{
		Prices: model.PriceSeries{
			Symbol:    symbol,
			Period:    period,
			Bars:      bars,
			FetchedAt: time.Now().UTC(),
		},
	}

	// Short series leave the affected indicator empty rather than failing
	// the whole fetch.
	if data.SMA, err = calculator.SMA(bars, o.windows.SMA); err != nil {
		o.log.Warn("SMA calculation skipped", zap.String("symbol", symbol), zap.Error(err))
	}
	if data.EMA, err = calculator.EMA(bars, o.windows.EMA); err != nil {
		o.log.Warn("EMA calculation skipped", zap.String("symbol", symbol), zap.Error(err))
	}
	if data.RSI, err = calculator.RSI(bars, o.windows.RSI); err != nil {
		o.log.Warn("RSI calculation skipped", zap.String("symbol", symbol), zap.Error(err))
	}

	o.log.Debug("fetch complete",
		zap.String("symbol", symbol),
		zap.Int("bars", len(bars)),
		zap.Duration("elapsed", time.Since(start)))

	return model.FetchResult{Symbol: symbol, Data: data}
}
