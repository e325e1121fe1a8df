package analytics

import (
	"fmt"
	"math"

	"FinLens/internal/domain/models"
)

// DefaultPeriod is used when an indicator request names no window.
const DefaultPeriod = 20

// DefaultBollingerK is the band width in standard deviations.
const DefaultBollingerK = 2.0

// SMA computes the simple moving average with the given period. The
// result is aligned 1:1 with obs: points before the first full window
// are nil, and any window containing a gap yields nil.
func SMA(obs []models.Observation, period int) (models.IndicatorResult, error) {
	if period < 2 {
		return models.IndicatorResult{}, fmt.Errorf("sma: period must be > 1, got %d", period)
	}

	points := make([]models.IndicatorPoint, len(obs))
	var sum float64
	var gaps int
	for i, o := range obs {
		points[i].Date = o.Date
		if o.Value != nil {
			sum += *o.Value
		} else {
			gaps++
		}
		if i >= period {
			if prev := obs[i-period].Value; prev != nil {
				sum -= *prev
			} else {
				gaps--
			}
		}
		if i >= period-1 && gaps == 0 {
			v := sum / float64(period)
			points[i].Value = &v
		}
	}

	return models.IndicatorResult{Kind: models.IndicatorSMA, Period: period, Points: points}, nil
}

// EMA computes the exponential moving average with smoothing
// alpha = 2/(period+1). The seed is the simple average of the first
// full gap-free window; before the seed all points are nil. A gap
// yields a nil point but the running average carries across it.
func EMA(obs []models.Observation, period int) (models.IndicatorResult, error) {
	if period < 2 {
		return models.IndicatorResult{}, fmt.Errorf("ema: period must be > 1, got %d", period)
	}

	alpha := 2.0 / float64(period+1)
	points := make([]models.IndicatorPoint, len(obs))
	for i, o := range obs {
		points[i].Date = o.Date
	}

	seedAt := firstFullWindow(obs, period)
	if seedAt < 0 {
		return models.IndicatorResult{Kind: models.IndicatorEMA, Period: period, Points: points}, nil
	}

	var ema float64
	for i := seedAt - period + 1; i <= seedAt; i++ {
		ema += *obs[i].Value
	}
	ema /= float64(period)
	v := ema
	points[seedAt].Value = &v

	for i := seedAt + 1; i < len(obs); i++ {
		if obs[i].Value == nil {
			continue
		}
		ema = alpha**obs[i].Value + (1-alpha)*ema
		v := ema
		points[i].Value = &v
	}

	return models.IndicatorResult{Kind: models.IndicatorEMA, Period: period, Points: points}, nil
}

// Bollinger computes the three Bollinger bands: middle is SMA(period),
// upper/lower are middle +/- k population standard deviations. Windows
// containing a gap yield nil on all three bands.
func Bollinger(obs []models.Observation, period int, k float64) ([]models.IndicatorResult, error) {
	if period < 2 {
		return nil, fmt.Errorf("bollinger: period must be > 1, got %d", period)
	}
	if k <= 0 {
		k = DefaultBollingerK
	}

	upper := make([]models.IndicatorPoint, len(obs))
	middle := make([]models.IndicatorPoint, len(obs))
	lower := make([]models.IndicatorPoint, len(obs))

	var sum, sumSq float64
	var gaps int
	for i, o := range obs {
		upper[i].Date = o.Date
		middle[i].Date = o.Date
		lower[i].Date = o.Date

		if o.Value != nil {
			sum += *o.Value
			sumSq += *o.Value * *o.Value
		} else {
			gaps++
		}
		if i >= period {
			if prev := obs[i-period].Value; prev != nil {
				sum -= *prev
				sumSq -= *prev * *prev
			} else {
				gaps--
			}
		}
		if i < period-1 || gaps > 0 {
			continue
		}

		n := float64(period)
		mean := sum / n
		variance := sumSq/n - mean*mean
		if variance < 0 {
			variance = 0 // float round-off
		}
		sd := math.Sqrt(variance)

		m, u, l := mean, mean+k*sd, mean-k*sd
		middle[i].Value = &m
		upper[i].Value = &u
		lower[i].Value = &l
	}

	return []models.IndicatorResult{
		{Kind: models.IndicatorBollingerUpper, Period: period, Points: upper},
		{Kind: models.IndicatorBollingerMiddle, Period: period, Points: middle},
		{Kind: models.IndicatorBollingerLower, Period: period, Points: lower},
	}, nil
}

// firstFullWindow returns the smallest index i >= period-1 whose
// trailing window of length period has no gaps, or -1.
func firstFullWindow(obs []models.Observation, period int) int {
	run := 0
	for i, o := range obs {
		if o.Value == nil {
			run = 0
			continue
		}
		run++
		if run >= period {
			return i
		}
	}
	return -1
}
