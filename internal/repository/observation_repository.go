package repository

import (
	"context"
	"fmt"
	"time"

	"FinLens/internal/domain/models"
	pkgch "FinLens/pkg/clickhouse"
	pkgkafka "FinLens/pkg/kafka"
	applogger "FinLens/pkg/logger"
	"FinLens/pkg/util"
)

// insertChunkSize bounds rows per INSERT to keep statements small.
const insertChunkSize = 2000

var schemaStatements = []string{
	`CREATE DATABASE IF NOT EXISTS finlens`,
	`CREATE TABLE IF NOT EXISTS finlens.series_observations (
		series_id String,
		date Date,
		value Nullable(Float64),
		source LowCardinality(String),
		ts DateTime64(3)
	) ENGINE = ReplacingMergeTree(ts)
	ORDER BY (series_id, date)`,
}

// ClickHouseStorage persists observation events.
type ClickHouseStorage struct {
	client *pkgch.Client
	log    *applogger.Logger
}

// NewClickHouseStorage creates ClickHouse-backed observation storage.
func NewClickHouseStorage(client *pkgch.Client) *ClickHouseStorage {
	return &ClickHouseStorage{client: client}
}

// SetLogger attaches a logger for insert diagnostics.
func (s *ClickHouseStorage) SetLogger(l *applogger.Logger) { s.log = l }

// Init ensures the database and table exist.
func (s *ClickHouseStorage) Init(ctx context.Context) error {
	return s.client.InitSchema(ctx, schemaStatements)
}

// Store persists a single event.
func (s *ClickHouseStorage) Store(ctx context.Context, event *models.ObservationEvent) error {
	return s.StoreBatch(ctx, []*models.ObservationEvent{event})
}

// StoreBatch persists events in chunks within one transaction per
// chunk.
func (s *ClickHouseStorage) StoreBatch(ctx context.Context, events []*models.ObservationEvent) error {
	for start := 0; start < len(events); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(events) {
			end = len(events)
		}
		if err := s.insertChunk(ctx, events[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClickHouseStorage) insertChunk(ctx context.Context, events []*models.ObservationEvent) error {
	start := time.Now()
	tx, err := s.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO finlens.series_observations (series_id, date, value, source, ts)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		date, ok := util.ParseDate(e.Date)
		if !ok {
			_ = tx.Rollback()
			return fmt.Errorf("event for series %q has invalid date %q", e.SeriesID, e.Date)
		}
		var value any
		if e.Value != nil {
			value = *e.Value
		}
		ts := time.UnixMilli(e.Ts)
		if e.Ts == 0 {
			ts = time.Now()
		}
		if _, err := stmt.ExecContext(ctx, e.SeriesID, date, value, e.Source, ts); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	if s.log != nil {
		s.log.Debug("observations inserted",
			applogger.Int("rows", len(events)),
			applogger.Duration("elapsed", time.Since(start)),
		)
	}
	return nil
}

// Health pings the database.
func (s *ClickHouseStorage) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

// Close is a no-op; the shared client is closed by the app.
func (s *ClickHouseStorage) Close() error { return nil }

// KafkaPublisher publishes observation events keyed by series ID so
// each series lands on one partition and keeps its order.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher wraps a producer for the given topic.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

// Publish sends one event.
func (p *KafkaPublisher) Publish(ctx context.Context, event *models.ObservationEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(event.SeriesID), event)
}

// PublishBatch sends a batch of events.
func (p *KafkaPublisher) PublishBatch(ctx context.Context, events []*models.ObservationEvent) error {
	msgs := make([]pkgkafka.Message, 0, len(events))
	for _, e := range events {
		msgs = append(msgs, pkgkafka.Message{Key: []byte(e.SeriesID), Value: e})
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

// Close closes the underlying producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
