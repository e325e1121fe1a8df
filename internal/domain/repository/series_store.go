package repository

import (
	"context"
	"time"

	"FinLens/internal/domain/models"
)

// SeriesStore reads stored observations for analytics queries.
type SeriesStore interface {
	// GetObservations returns observations for a series in ascending
	// date order, optionally bounded by [from, to]. Zero times mean
	// unbounded.
	GetObservations(ctx context.Context, seriesID string, from, to time.Time) ([]models.Observation, error)

	// GetLatestN returns the most recent n observations in ascending
	// date order.
	GetLatestN(ctx context.Context, seriesID string, n int) ([]models.Observation, error)
}
