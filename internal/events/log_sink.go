package events

import (
	"context"

	"go.uber.org/zap"
)

// LogSink writes events to the structured log
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink backed by the given logger
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.L()
	}
	return &LogSink{logger: logger}
}

// Publish implements Sink
func (s *LogSink) Publish(_ context.Context, event Event) error {
	fields := make([]zap.Field, 0, len(event.Attributes)+3)
	fields = append(fields,
		zap.String("event_id", event.ID.String()),
		zap.String("event_type", string(event.Type)),
		zap.Time("occurred_at", event.OccurredAt))
	for k, v := range event.Attributes {
		fields = append(fields, zap.String(k, v))
	}
	s.logger.Info("Event emitted", fields...)
	return nil
}
