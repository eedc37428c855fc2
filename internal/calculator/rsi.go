package calculator

import (
	"errors"
	"fmt"

	"StockWatch/internal/model"
)

// RSI computes the Wilder-smoothed relative strength index over the given
// window. Requires at least window+1 bars; the first defined value is aligned
// to bar index window. When the rolling average loss is zero with gains
// present the value is 100; when both averages are zero (flat prices) the
// value is the neutral 50.
func RSI(bars []model.Bar, window int) (model.IndicatorSeries, error) {
	series := model.IndicatorSeries{Name: fmt.Sprintf("RSI_%d", window), Window: window}
	if window <= 0 {
		return series, errors.New("window must be positive")
	}
	if len(bars) < window+1 {
		return series, errors.New("not enough data for RSI calculation")
	}

	// Initial averages over the first window changes.
	var avgGain, avgLoss float64
	for i := 1; i <= window; i++ {
		change := bars[i].Close - bars[i-1].Close
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(window)
	avgLoss /= float64(window)

	series.Points = make([]model.IndicatorPoint, 0, len(bars)-window)
	series.Points = append(series.Points, model.IndicatorPoint{
		Time:  bars[window].Time,
		Value: rsiValue(avgGain, avgLoss),
	})

	// Wilder smoothing for the remaining bars, one value per bar.
	for i := window + 1; i < len(bars); i++ {
		change := bars[i].Close - bars[i-1].Close
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(window-1) + gain) / float64(window)
		avgLoss = (avgLoss*float64(window-1) + loss) / float64(window)
		series.Points = append(series.Points, model.IndicatorPoint{
			Time:  bars[i].Time,
			Value: rsiValue(avgGain, avgLoss),
		})
	}
	return series, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0 // flat prices carry no momentum signal
		}
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
