package db

import (
	"time"

	"github.com/google/uuid"
)

type RelayEvent struct {
	ID         uuid.UUID `json:"id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	Attributes []byte    `json:"attributes"`
	CreatedAt  time.Time `json:"created_at"`
}
