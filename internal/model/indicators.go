package model

import "time"

// IndicatorPoint is one timestamped indicator value.
type IndicatorPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// IndicatorSeries holds a computed indicator aligned to the bars it was
// derived from. Points begin at the first index where the indicator is
// defined, so leading undefined values are absent rather than zero.
type IndicatorSeries struct {
	Name   string           `json:"name"`
	Window int              `json:"window"`
	Points []IndicatorPoint `json:"points"`
}

// StockData bundles raw prices with the indicator series computed from them.
type StockData struct {
	Prices PriceSeries     `json:"prices"`
	SMA    IndicatorSeries `json:"sma"`
	EMA    IndicatorSeries `json:"ema"`
	RSI    IndicatorSeries `json:"rsi"`
}

// FetchResult is the outcome for one requested symbol: either Data or Err
// is set, never both.
type FetchResult struct {
	Symbol string
	Data   *StockData
	Err    error
}
