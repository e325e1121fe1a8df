package analytics

import (
	"fmt"
	"math"

	"FinLens/internal/domain/models"
)

// Correlation computes the Pearson coefficient over the date
// intersection of two series. Pairs where either value is nil are
// skipped. Fewer than two aligned pairs yield ErrInsufficientData; a
// constant input over the overlap yields ErrZeroVariance.
func Correlation(a, b []models.Observation) (models.CorrelationResult, error) {
	xs, ys := alignByDate(a, b)
	n := len(xs)
	if n < 2 {
		return models.CorrelationResult{}, fmt.Errorf("%w: %d aligned points, need at least 2", ErrInsufficientData, n)
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return models.CorrelationResult{}, fmt.Errorf("%w over %d aligned points", ErrZeroVariance, n)
	}

	r := cov / math.Sqrt(varX*varY)
	// Round-off can push |r| a hair over 1.
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}

	return models.CorrelationResult{Coefficient: r, SampleSize: n}, nil
}

// alignByDate pairs values on common dates. Both inputs are sorted
// ascending, so a single merge pass suffices.
func alignByDate(a, b []models.Observation) ([]float64, []float64) {
	xs := make([]float64, 0, min(len(a), len(b)))
	ys := make([]float64, 0, min(len(a), len(b)))

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Date.Before(b[j].Date):
			i++
		case b[j].Date.Before(a[i].Date):
			j++
		default:
			if a[i].Value != nil && b[j].Value != nil {
				xs = append(xs, *a[i].Value)
				ys = append(ys, *b[j].Value)
			}
			i++
			j++
		}
	}
	return xs, ys
}
