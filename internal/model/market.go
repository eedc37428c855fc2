package model

import "time"

// Bar represents a single OHLCV candlestick.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries holds the raw price history for one symbol, ordered by
// ascending time with unique timestamps. Not mutated after the fetch
// that produced it.
type PriceSeries struct {
	Symbol    string    `json:"symbol"`
	Period    Period    `json:"period"`
	Bars      []Bar     `json:"bars"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Closes extracts the closing prices in series order.
func (p PriceSeries) Closes() []float64 {
	closes := make([]float64, len(p.Bars))
	for i, b := range p.Bars {
		closes[i] = b.Close
	}
	return closes
}
