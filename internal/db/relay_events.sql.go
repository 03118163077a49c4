package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const insertRelayEvent = `-- name: InsertRelayEvent :exec
INSERT INTO relay_events (id, event_type, occurred_at, attributes)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING
`

type InsertRelayEventParams struct {
	ID         uuid.UUID `json:"id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	Attributes []byte    `json:"attributes"`
}

func (q *Queries) InsertRelayEvent(ctx context.Context, arg InsertRelayEventParams) error {
	_, err := q.db.Exec(ctx, insertRelayEvent,
		arg.ID,
		arg.EventType,
		arg.OccurredAt,
		arg.Attributes,
	)
	return err
}

const listRecentRelayEvents = `-- name: ListRecentRelayEvents :many
SELECT id, event_type, occurred_at, attributes, created_at FROM relay_events
ORDER BY occurred_at DESC
LIMIT $1
`

func (q *Queries) ListRecentRelayEvents(ctx context.Context, limit int32) ([]RelayEvent, error) {
	rows, err := q.db.Query(ctx, listRecentRelayEvents, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []RelayEvent{}
	for rows.Next() {
		var i RelayEvent
		if err := rows.Scan(
			&i.ID,
			&i.EventType,
			&i.OccurredAt,
			&i.Attributes,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listRelayEventsByType = `-- name: ListRelayEventsByType :many
SELECT id, event_type, occurred_at, attributes, created_at FROM relay_events
WHERE event_type = $1
ORDER BY occurred_at DESC
LIMIT $2
`

type ListRelayEventsByTypeParams struct {
	EventType string `json:"event_type"`
	Limit     int32  `json:"limit"`
}

func (q *Queries) ListRelayEventsByType(ctx context.Context, arg ListRelayEventsByTypeParams) ([]RelayEvent, error) {
	rows, err := q.db.Query(ctx, listRelayEventsByType, arg.EventType, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []RelayEvent{}
	for rows.Next() {
		var i RelayEvent
		if err := rows.Scan(
			&i.ID,
			&i.EventType,
			&i.OccurredAt,
			&i.Attributes,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
