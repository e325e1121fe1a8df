package usecase

import (
	"context"
	"fmt"
	"time"

	"FinLens/internal/domain/models"
	"FinLens/internal/domain/repository"
	"FinLens/pkg/config"
	applogger "FinLens/pkg/logger"
	"FinLens/pkg/util"
)

// ObservationProcessor routes accepted observations into the configured
// ingest backend: published to Kafka for asynchronous storage, or
// written to ClickHouse directly.
type ObservationProcessor struct {
	cfg       *config.Config
	publisher repository.Publisher
	storage   repository.Storage
	metrics   repository.Metrics
	log       *applogger.Logger
}

// NewObservationProcessor creates the ingest usecase.
func NewObservationProcessor(
	cfg *config.Config,
	publisher repository.Publisher,
	storage repository.Storage,
	metrics repository.Metrics,
) *ObservationProcessor {
	return &ObservationProcessor{
		cfg:       cfg,
		publisher: publisher,
		storage:   storage,
		metrics:   metrics,
	}
}

// SetLogger attaches a logger for ingest diagnostics.
func (p *ObservationProcessor) SetLogger(l *applogger.Logger) { p.log = l }

// Ingest validates raw observations and routes them into the backend.
// Malformed dates are dropped and counted; they never abort the batch.
func (p *ObservationProcessor) Ingest(ctx context.Context, seriesID, source string, raw []models.RawObservation) (accepted, dropped int, err error) {
	if seriesID == "" {
		return 0, 0, fmt.Errorf("series_id is required")
	}

	now := time.Now().UnixMilli()
	events := make([]*models.ObservationEvent, 0, len(raw))
	for _, r := range raw {
		t, ok := util.ParseDate(r.Date)
		if !ok {
			dropped++
			continue
		}
		events = append(events, &models.ObservationEvent{
			SeriesID: seriesID,
			Date:     util.FormatDate(t),
			Value:    r.Value,
			Source:   source,
			Ts:       now,
		})
	}
	if dropped > 0 && p.log != nil {
		p.log.Warn("dropped malformed observation dates",
			applogger.String("series_id", seriesID),
			applogger.Int("dropped", dropped),
		)
	}
	if len(events) == 0 {
		return 0, dropped, nil
	}

	start := time.Now()
	switch p.cfg.Ingest.Backend {
	case "kafka":
		if p.publisher == nil {
			return 0, dropped, fmt.Errorf("kafka backend selected but publisher not configured")
		}
		if err := p.publisher.PublishBatch(ctx, events); err != nil {
			p.recordError("publish")
			return 0, dropped, fmt.Errorf("publish observations: %w", err)
		}
		p.recordStored("kafka", events)
	case "clickhouse":
		if p.storage == nil {
			return 0, dropped, fmt.Errorf("clickhouse backend selected but storage not configured")
		}
		if err := p.storage.StoreBatch(ctx, events); err != nil {
			p.recordError("store")
			return 0, dropped, fmt.Errorf("store observations: %w", err)
		}
		p.recordStored("clickhouse", events)
	default:
		return 0, dropped, fmt.Errorf("unknown ingest backend %q", p.cfg.Ingest.Backend)
	}

	if p.metrics != nil {
		p.metrics.RecordLatency("ingest", time.Since(start).Seconds())
	}
	return len(events), dropped, nil
}

// StoreEvents persists events that arrived from the Kafka consumer.
func (p *ObservationProcessor) StoreEvents(ctx context.Context, events []*models.ObservationEvent) error {
	if p.storage == nil {
		return fmt.Errorf("storage not configured")
	}
	if len(events) == 0 {
		return nil
	}
	if err := p.storage.StoreBatch(ctx, events); err != nil {
		p.recordError("store")
		return err
	}
	p.recordStored("clickhouse", events)
	return nil
}

func (p *ObservationProcessor) recordStored(backend string, events []*models.ObservationEvent) {
	if p.metrics == nil {
		return
	}
	for _, e := range events {
		p.metrics.RecordObservationStored(backend, e.SeriesID)
		if e.Value != nil {
			p.metrics.RecordLastValue(e.SeriesID, *e.Value)
		}
	}
}

func (p *ObservationProcessor) recordError(errType string) {
	if p.metrics != nil {
		p.metrics.RecordError(errType)
	}
}

// Close releases the publisher and storage resources.
func (p *ObservationProcessor) Close() {
	if p.publisher != nil {
		if err := p.publisher.Close(); err != nil && p.log != nil {
			p.log.Warn("publisher close error", applogger.Error(err))
		}
	}
	if p.storage != nil {
		if err := p.storage.Close(); err != nil && p.log != nil {
			p.log.Warn("storage close error", applogger.Error(err))
		}
	}
}
