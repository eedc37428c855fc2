package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"StockWatch/internal/model"
)

func barsFromCloses(closes []float64) []model.Bar {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestSMA_TrailingMeans(t *testing.T) {
	bars := barsFromCloses([]float64{1, 2, 3, 4, 5, 6})

	series, err := SMA(bars, 3)
	require.NoError(t, err)
	require.Equal(t, "SMA_3", series.Name)
	require.Len(t, series.Points, 4) // len(bars) - window + 1

	require.InDelta(t, 2.0, series.Points[0].Value, 1e-9)
	require.InDelta(t, 3.0, series.Points[1].Value, 1e-9)
	require.InDelta(t, 4.0, series.Points[2].Value, 1e-9)
	require.InDelta(t, 5.0, series.Points[3].Value, 1e-9)

	// First defined point aligns to bar index window-1.
	require.Equal(t, bars[2].Time, series.Points[0].Time)
	require.Equal(t, bars[5].Time, series.Points[3].Time)
}

func TestSMA_PointCountProperty(t *testing.T) {
	closes := []float64{10, 11, 9, 12, 13, 8, 14, 15, 16, 12}
	bars := barsFromCloses(closes)
	for window := 1; window <= len(bars); window++ {
		series, err := SMA(bars, window)
		require.NoError(t, err)
		require.Len(t, series.Points, len(bars)-window+1, "window %d", window)
	}
}

func TestSMA_WindowOfOneIsIdentity(t *testing.T) {
	closes := []float64{5, 7, 6, 9}
	series, err := SMA(barsFromCloses(closes), 1)
	require.NoError(t, err)
	require.Len(t, series.Points, len(closes))
	for i, p := range series.Points {
		require.InDelta(t, closes[i], p.Value, 1e-9)
	}
}

func TestSMA_Errors(t *testing.T) {
	bars := barsFromCloses([]float64{1, 2, 3})

	_, err := SMA(bars, 0)
	require.Error(t, err)

	_, err = SMA(bars, -2)
	require.Error(t, err)

	_, err = SMA(bars, 4)
	require.Error(t, err)
}

func TestEMA_SeededWithSMA(t *testing.T) {
	bars := barsFromCloses([]float64{1, 2, 3, 4, 5})

	series, err := EMA(bars, 3)
	require.NoError(t, err)
	require.Equal(t, "EMA_3", series.Name)
	require.Len(t, series.Points, 3)

	// Seed at index window-1 is the SMA of the first window closes.
	require.Equal(t, bars[2].Time, series.Points[0].Time)
	require.InDelta(t, 2.0, series.Points[0].Value, 1e-9)

	// factor = 2/(3+1) = 0.5
	require.InDelta(t, 2.0+0.5*(4-2.0), series.Points[1].Value, 1e-9)
	require.InDelta(t, 3.0+0.5*(5-3.0), series.Points[2].Value, 1e-9)
}

func TestEMA_WindowOfOneIsIdentity(t *testing.T) {
	closes := []float64{3, 8, 2, 11, 7}
	series, err := EMA(barsFromCloses(closes), 1)
	require.NoError(t, err)
	require.Len(t, series.Points, len(closes))
	for i, p := range series.Points {
		require.InDelta(t, closes[i], p.Value, 1e-9)
	}
}

func TestEMA_Deterministic(t *testing.T) {
	bars := barsFromCloses([]float64{10, 12, 11, 13, 15, 14, 16})
	a, err := EMA(bars, 4)
	require.NoError(t, err)
	b, err := EMA(bars, 4)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestEMA_Errors(t *testing.T) {
	bars := barsFromCloses([]float64{1, 2})

	_, err := EMA(bars, 0)
	require.Error(t, err)

	_, err = EMA(bars, 3)
	require.Error(t, err)
}
