package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cyphera/cyphera-relay/internal/events"
)

// EventStore persists relay events to the relay_events table. It is an
// events.Sink; inserts are idempotent on the event ID.
type EventStore struct {
	queries Querier
}

// NewEventStore creates a store over queries
func NewEventStore(queries Querier) *EventStore {
	return &EventStore{queries: queries}
}

// Publish implements events.Sink
func (s *EventStore) Publish(ctx context.Context, event events.Event) error {
	attributes, err := json.Marshal(event.Attributes)
	if err != nil {
		return fmt.Errorf("failed to encode event attributes: %w", err)
	}
	if err := s.queries.InsertRelayEvent(ctx, InsertRelayEventParams{
		ID:         event.ID,
		EventType:  string(event.Type),
		OccurredAt: event.OccurredAt,
		Attributes: attributes,
	}); err != nil {
		return fmt.Errorf("failed to store %s event: %w", event.Type, err)
	}
	return nil
}

// Recent returns up to limit events, newest first. An empty eventType
// returns every type.
func (s *EventStore) Recent(ctx context.Context, eventType events.Type, limit int32) ([]events.Event, error) {
	var (
		rows []RelayEvent
		err  error
	)
	if eventType == "" {
		rows, err = s.queries.ListRecentRelayEvents(ctx, limit)
	} else {
		rows, err = s.queries.ListRelayEventsByType(ctx, ListRelayEventsByTypeParams{EventType: string(eventType), Limit: limit})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	out := make([]events.Event, 0, len(rows))
	for _, row := range rows {
		attributes := map[string]string{}
		if len(row.Attributes) > 0 {
			if err := json.Unmarshal(row.Attributes, &attributes); err != nil {
				return nil, fmt.Errorf("event %s has invalid attributes: %w", row.ID, err)
			}
		}
		out = append(out, events.Event{
			ID:         row.ID,
			Type:       events.Type(row.EventType),
			OccurredAt: row.OccurredAt,
			Attributes: attributes,
		})
	}
	return out, nil
}
