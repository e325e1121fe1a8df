package usecase

import (
	"context"
	"testing"

	"FinLens/internal/domain/models"
	"FinLens/pkg/config"
)

type stubPublisher struct {
	published []*models.ObservationEvent
	closed    bool
}

func (p *stubPublisher) Publish(_ context.Context, e *models.ObservationEvent) error {
	p.published = append(p.published, e)
	return nil
}

func (p *stubPublisher) PublishBatch(_ context.Context, events []*models.ObservationEvent) error {
	p.published = append(p.published, events...)
	return nil
}

func (p *stubPublisher) Close() error {
	p.closed = true
	return nil
}

type stubStorage struct {
	stored []*models.ObservationEvent
}

func (s *stubStorage) Init(context.Context) error   { return nil }
func (s *stubStorage) Health(context.Context) error { return nil }
func (s *stubStorage) Close() error                 { return nil }

func (s *stubStorage) Store(_ context.Context, e *models.ObservationEvent) error {
	s.stored = append(s.stored, e)
	return nil
}

func (s *stubStorage) StoreBatch(_ context.Context, events []*models.ObservationEvent) error {
	s.stored = append(s.stored, events...)
	return nil
}

func ingestConfig(backend string) *config.Config {
	cfg := &config.Config{}
	cfg.Ingest.Backend = backend
	return cfg
}

func TestIngestKafkaBackend(t *testing.T) {
	pub := &stubPublisher{}
	proc := NewObservationProcessor(ingestConfig("kafka"), pub, nil, nil)

	accepted, dropped, err := proc.Ingest(context.Background(), "gdp", "api", []models.RawObservation{
		{Date: "2024-01-01", Value: models.Float64Ptr(1)},
		{Date: "garbage", Value: models.Float64Ptr(2)},
		{Date: "2024-02-01", Value: nil},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accepted != 2 || dropped != 1 {
		t.Fatalf("accepted=%d dropped=%d, want 2/1", accepted, dropped)
	}
	if len(pub.published) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(pub.published))
	}
	if pub.published[0].SeriesID != "gdp" || pub.published[0].Date != "2024-01-01" {
		t.Fatalf("unexpected event: %+v", pub.published[0])
	}
	if pub.published[1].Value != nil {
		t.Fatalf("null value must survive ingest as a gap")
	}
}

func TestIngestClickHouseBackend(t *testing.T) {
	store := &stubStorage{}
	proc := NewObservationProcessor(ingestConfig("clickhouse"), nil, store, nil)

	accepted, _, err := proc.Ingest(context.Background(), "cpi", "", []models.RawObservation{
		{Date: "2024-01-01", Value: models.Float64Ptr(3.1)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accepted != 1 || len(store.stored) != 1 {
		t.Fatalf("expected 1 stored event, got accepted=%d stored=%d", accepted, len(store.stored))
	}
}

func TestIngestValidation(t *testing.T) {
	proc := NewObservationProcessor(ingestConfig("kafka"), &stubPublisher{}, nil, nil)

	if _, _, err := proc.Ingest(context.Background(), "", "", nil); err == nil {
		t.Fatalf("expected error for empty series_id")
	}

	// all-malformed batch drops everything without touching the backend
	accepted, dropped, err := proc.Ingest(context.Background(), "x", "", []models.RawObservation{
		{Date: "nope", Value: models.Float64Ptr(1)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accepted != 0 || dropped != 1 {
		t.Fatalf("accepted=%d dropped=%d, want 0/1", accepted, dropped)
	}
}

func TestKafkaHandlerDecodesSingleAndArray(t *testing.T) {
	store := &stubStorage{}
	proc := NewObservationProcessor(ingestConfig("clickhouse"), nil, store, nil)
	h := NewKafkaObservationsHandler("observations", proc, nil)

	if h.Topic() != "observations" {
		t.Fatalf("unexpected topic %q", h.Topic())
	}

	single := []byte(`{"series_id":"gdp","date":"2024-01-01","value":1.5,"ts":1}`)
	if err := h.Handle(context.Background(), single); err != nil {
		t.Fatalf("single event: %v", err)
	}
	array := []byte(`[{"series_id":"gdp","date":"2024-02-01","value":null,"ts":2}]`)
	if err := h.Handle(context.Background(), array); err != nil {
		t.Fatalf("event array: %v", err)
	}
	if len(store.stored) != 2 {
		t.Fatalf("expected 2 stored events, got %d", len(store.stored))
	}
	if store.stored[1].Value != nil {
		t.Fatalf("null value must decode as nil")
	}

	if err := h.Handle(context.Background(), []byte("{broken")); err == nil {
		t.Fatalf("expected decode error for malformed payload")
	}
}

func TestProcessorClose(t *testing.T) {
	pub := &stubPublisher{}
	proc := NewObservationProcessor(ingestConfig("kafka"), pub, &stubStorage{}, nil)
	proc.Close()
	if !pub.closed {
		t.Fatalf("publisher must be closed")
	}
}
