package calculator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRSI_WithinBounds(t *testing.T) {
	closes := []float64{44, 44.5, 43.8, 44.2, 45.1, 44.9, 45.6, 46.2, 45.8, 46.5,
		46.1, 47.0, 46.6, 47.3, 47.9, 47.5, 48.2, 47.8, 48.5, 49.1}
	series, err := RSI(barsFromCloses(closes), 14)
	require.NoError(t, err)
	require.Equal(t, "RSI_14", series.Name)
	require.Len(t, series.Points, len(closes)-14)
	for _, p := range series.Points {
		require.GreaterOrEqual(t, p.Value, 0.0)
		require.LessOrEqual(t, p.Value, 100.0)
	}
}

func TestRSI_FirstPointAlignment(t *testing.T) {
	bars := barsFromCloses([]float64{1, 2, 3, 4, 5, 6})
	series, err := RSI(bars, 3)
	require.NoError(t, err)
	require.Equal(t, bars[3].Time, series.Points[0].Time)
	require.Equal(t, bars[5].Time, series.Points[len(series.Points)-1].Time)
}

func TestRSI_AllGainsIsHundred(t *testing.T) {
	series, err := RSI(barsFromCloses([]float64{1, 2, 3, 4, 5, 6, 7}), 3)
	require.NoError(t, err)
	for _, p := range series.Points {
		require.InDelta(t, 100.0, p.Value, 1e-9)
	}
}

func TestRSI_AllLossesIsZero(t *testing.T) {
	series, err := RSI(barsFromCloses([]float64{7, 6, 5, 4, 3, 2, 1}), 3)
	require.NoError(t, err)
	for _, p := range series.Points {
		require.InDelta(t, 0.0, p.Value, 1e-9)
	}
}

// Flat prices have zero average gain and zero average loss; the documented
// policy is the neutral value 50.
func TestRSI_FlatPricesAreNeutral(t *testing.T) {
	series, err := RSI(barsFromCloses([]float64{5, 5, 5, 5, 5, 5}), 3)
	require.NoError(t, err)
	require.NotEmpty(t, series.Points)
	for _, p := range series.Points {
		require.InDelta(t, 50.0, p.Value, 1e-9)
	}
}

func TestRSI_KnownValue(t *testing.T) {
	// Alternating +2/-1 moves: avg gain 1, avg loss 0.5 over the first
	// 4 changes, RS = 2, RSI = 100 - 100/3.
	bars := barsFromCloses([]float64{10, 12, 11, 13, 12})
	series, err := RSI(bars, 4)
	require.NoError(t, err)
	require.Len(t, series.Points, 1)
	require.InDelta(t, 100.0-100.0/3.0, series.Points[0].Value, 1e-9)
}

func TestRSI_Errors(t *testing.T) {
	bars := barsFromCloses([]float64{1, 2, 3})

	_, err := RSI(bars, 0)
	require.Error(t, err)

	// Needs window+1 bars.
	_, err = RSI(bars, 3)
	require.Error(t, err)
}
