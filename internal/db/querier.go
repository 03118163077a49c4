package db

import (
	"context"
)

//go:generate mockgen -source=querier.go -destination=../mocks/mock_querier.go -package=mocks

type Querier interface {
	InsertRelayEvent(ctx context.Context, arg InsertRelayEventParams) error
	ListRecentRelayEvents(ctx context.Context, limit int32) ([]RelayEvent, error)
	ListRelayEventsByType(ctx context.Context, arg ListRelayEventsByTypeParams) ([]RelayEvent, error)
}

var _ Querier = (*Queries)(nil)
