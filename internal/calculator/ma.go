package calculator

import (
	"errors"
	"fmt"

	"StockWatch/internal/model"
)

// SMA computes the simple moving average of closing prices over the given
// window. The result has len(bars)-window+1 points; the first is aligned to
// bar index window-1, since earlier values are undefined.
func SMA(bars []model.Bar, window int) (model.IndicatorSeries, error) {
	series := model.IndicatorSeries{Name: fmt.Sprintf("SMA_%d", window), Window: window}
	if window <= 0 {
		return series, errors.New("window must be positive")
	}
	if len(bars) < window {
		return series, errors.New("not enough data for SMA calculation")
	}

	series.Points = make([]model.IndicatorPoint, 0, len(bars)-window+1)
	sum := 0.0
	for i, b := range bars {
		sum += b.Close
		if i < window-1 {
			continue
		}
		if i >= window {
			sum -= bars[i-window].Close
		}
		series.Points = append(series.Points, model.IndicatorPoint{
			Time:  b.Time,
			Value: sum / float64(window),
		})
	}
	return series, nil
}

// EMA computes the exponential moving average of closing prices with
// smoothing factor 2/(window+1). The value at bar index window-1 is seeded
// with the SMA of the first window closes; each later value is
// prev + factor*(close-prev). A window of 1 degenerates to the closes
// themselves.
func EMA(bars []model.Bar, window int) (model.IndicatorSeries, error) {
	series := model.IndicatorSeries{Name: fmt.Sprintf("EMA_%d", window), Window: window}
	if window <= 0 {
		return series, errors.New("window must be positive")
	}
	if len(bars) < window {
		return series, errors.New("not enough data for EMA calculation")
	}

	seed := 0.0
	for i := 0; i < window; i++ {
		seed += bars[i].Close
	}
	seed /= float64(window)

	factor := 2.0 / float64(window+1)
	series.Points = make([]model.IndicatorPoint, 0, len(bars)-window+1)
	series.Points = append(series.Points, model.IndicatorPoint{Time: bars[window-1].Time, Value: seed})

	prev := seed
	for i := window; i < len(bars); i++ {
		prev += factor * (bars[i].Close - prev)
		series.Points = append(series.Points, model.IndicatorPoint{Time: bars[i].Time, Value: prev})
	}
	return series, nil
}
