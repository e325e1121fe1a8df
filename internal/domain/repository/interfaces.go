package repository

import (
	"context"

	"FinLens/internal/domain/models"
)

// Publisher publishes observation events to a message broker.
type Publisher interface {
	Publish(ctx context.Context, event *models.ObservationEvent) error
	PublishBatch(ctx context.Context, events []*models.ObservationEvent) error
	Close() error
}

// Storage persists observation events.
type Storage interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, event *models.ObservationEvent) error
	StoreBatch(ctx context.Context, events []*models.ObservationEvent) error
	Health(ctx context.Context) error
	Close() error
}

// Metrics records operational metrics for the ingest pipeline.
type Metrics interface {
	RecordObservationStored(backend, seriesID string)
	RecordError(errType string)
	RecordLastValue(seriesID string, value float64)
	RecordLatency(operation string, seconds float64)
}

// DistributionProvider fetches peer distribution anchors for a ratio.
type DistributionProvider interface {
	Distribution(ctx context.Context, ratioName string) (*models.Distribution, error)
}
