package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"FinLens/internal/domain/models"
	applogger "FinLens/pkg/logger"
)

// KafkaObservationsHandler consumes observation events from Kafka and
// stores them through the processor. Payloads may be a single event or
// a JSON array of events.
type KafkaObservationsHandler struct {
	topic string
	proc  *ObservationProcessor
	log   *applogger.Logger
}

// NewKafkaObservationsHandler creates a consumer handler for the given
// topic.
func NewKafkaObservationsHandler(topic string, proc *ObservationProcessor, log *applogger.Logger) *KafkaObservationsHandler {
	return &KafkaObservationsHandler{topic: topic, proc: proc, log: log}
}

// Topic returns the subscribed topic.
func (h *KafkaObservationsHandler) Topic() string { return h.topic }

// Handle decodes and stores one message worth of observation events.
// Decode failures are returned so the consumer can route the payload to
// the DLQ.
func (h *KafkaObservationsHandler) Handle(ctx context.Context, data []byte) error {
	events, err := decodeEvents(data)
	if err != nil {
		if h.log != nil {
			h.log.Warn("undecodable observation payload", applogger.Error(err), applogger.Int("bytes", len(data)))
		}
		return err
	}
	if len(events) == 0 {
		return nil
	}
	return h.proc.StoreEvents(ctx, events)
}

func decodeEvents(data []byte) ([]*models.ObservationEvent, error) {
	trimmed := firstNonSpace(data)
	if trimmed == '[' {
		var events []*models.ObservationEvent
		if err := json.Unmarshal(data, &events); err != nil {
			return nil, fmt.Errorf("decode event array: %w", err)
		}
		return events, nil
	}

	var event models.ObservationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if event.SeriesID == "" {
		return nil, fmt.Errorf("event missing series_id")
	}
	return []*models.ObservationEvent{&event}, nil
}

func firstNonSpace(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
