package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"FinLens/internal/domain/models"
	pkgch "FinLens/pkg/clickhouse"
	applogger "FinLens/pkg/logger"
)

// CHSeriesStore reads normalized observations out of ClickHouse.
// Duplicate (series_id, date) rows are collapsed last-write-wins by
// ingest timestamp at query time, so readers never see pre-merge
// duplicates from the ReplacingMergeTree.
type CHSeriesStore struct {
	client *pkgch.Client
	log    *applogger.Logger
}

// NewCHSeriesStore creates a ClickHouse-backed series reader.
func NewCHSeriesStore(client *pkgch.Client) *CHSeriesStore {
	return &CHSeriesStore{client: client}
}

// SetLogger attaches a logger for query diagnostics.
func (s *CHSeriesStore) SetLogger(l *applogger.Logger) { s.log = l }

// GetObservations returns observations ascending by date, bounded by
// [from, to] when non-zero.
func (s *CHSeriesStore) GetObservations(ctx context.Context, seriesID string, from, to time.Time) ([]models.Observation, error) {
	query := `
		SELECT date, argMax(value, ts) AS value
		FROM finlens.series_observations
		WHERE series_id = ?`
	args := []any{seriesID}
	if !from.IsZero() {
		query += " AND date >= ?"
		args = append(args, from)
	}
	if !to.IsZero() {
		query += " AND date <= ?"
		args = append(args, to)
	}
	query += `
		GROUP BY date
		ORDER BY date ASC`

	start := time.Now()
	rows, err := s.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	obs, err := scanObservations(rows)
	if err != nil {
		return nil, err
	}
	if s.log != nil {
		s.log.Debug("observations loaded",
			applogger.String("series_id", seriesID),
			applogger.Int("rows", len(obs)),
			applogger.Duration("elapsed", time.Since(start)),
		)
	}
	return obs, nil
}

// GetLatestN returns the most recent n observations in ascending order.
func (s *CHSeriesStore) GetLatestN(ctx context.Context, seriesID string, n int) ([]models.Observation, error) {
	if n <= 0 {
		return nil, nil
	}

	query := `
		SELECT date, argMax(value, ts) AS value
		FROM finlens.series_observations
		WHERE series_id = ?
		GROUP BY date
		ORDER BY date DESC
		LIMIT ?`

	rows, err := s.client.DB().QueryContext(ctx, query, seriesID, n)
	if err != nil {
		return nil, fmt.Errorf("query latest observations: %w", err)
	}
	defer rows.Close()

	obs, err := scanObservations(rows)
	if err != nil {
		return nil, err
	}

	// rows arrive newest-first; callers expect ascending dates
	for i, j := 0, len(obs)-1; i < j; i, j = i+1, j-1 {
		obs[i], obs[j] = obs[j], obs[i]
	}
	return obs, nil
}

func scanObservations(rows *sql.Rows) ([]models.Observation, error) {
	var obs []models.Observation
	for rows.Next() {
		var (
			date  time.Time
			value sql.NullFloat64
		)
		if err := rows.Scan(&date, &value); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		o := models.Observation{Date: date.UTC()}
		if value.Valid {
			v := value.Float64
			o.Value = &v
		}
		obs = append(obs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observations: %w", err)
	}
	return obs, nil
}
