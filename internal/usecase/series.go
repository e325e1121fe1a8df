package usecase

import (
	"context"
	"fmt"
	"time"

	"FinLens/internal/domain/models"
	"FinLens/internal/domain/repository"
	"FinLens/internal/services/analytics"
)

// SeriesQuery reads stored series for the HTTP API.
type SeriesQuery struct {
	store repository.SeriesStore
}

// NewSeriesQuery creates the series read usecase.
func NewSeriesQuery(store repository.SeriesStore) *SeriesQuery {
	return &SeriesQuery{store: store}
}

// Get returns a stored series with its observations, optionally limited
// to the latest n points or a date range.
func (s *SeriesQuery) Get(ctx context.Context, seriesID string, limit int, from, to time.Time) (*models.Series, error) {
	if seriesID == "" {
		return nil, fmt.Errorf("series_id is required")
	}

	var (
		obs []models.Observation
		err error
	)
	if limit > 0 {
		obs, err = s.store.GetLatestN(ctx, seriesID, limit)
	} else {
		obs, err = s.store.GetObservations(ctx, seriesID, from, to)
	}
	if err != nil {
		return nil, fmt.Errorf("load series %q: %w", seriesID, err)
	}

	freq := repository.Infer(analytics.Dates(obs))
	return &models.Series{
		ID:           seriesID,
		Frequency:    string(freq),
		Observations: obs,
	}, nil
}
