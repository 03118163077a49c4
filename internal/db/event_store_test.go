package db_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cyphera/cyphera-relay/internal/db"
	"github.com/cyphera/cyphera-relay/internal/events"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/cyphera/cyphera-relay/internal/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	logger.InitLogger("test")
}

func TestEventStore_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	queries := mocks.NewMockQuerier(ctrl)
	store := db.NewEventStore(queries)

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	event := events.New(events.GasCovered, at, "user", "0xabc", "amount", "3")

	tests := []struct {
		name    string
		dbErr   error
		wantErr bool
	}{
		{name: "stored"},
		{name: "insert fails", dbErr: errors.New("connection refused"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queries.EXPECT().
				InsertRelayEvent(ctx, gomock.Any()).
				DoAndReturn(func(_ context.Context, arg db.InsertRelayEventParams) error {
					assert.Equal(t, event.ID, arg.ID)
					assert.Equal(t, "GasCovered", arg.EventType)
					assert.Equal(t, at, arg.OccurredAt)
					assert.JSONEq(t, `{"user":"0xabc","amount":"3"}`, string(arg.Attributes))
					return tt.dbErr
				})

			err := store.Publish(ctx, event)
			if tt.wantErr {
				assert.ErrorContains(t, err, "failed to store GasCovered event")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEventStore_Recent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	queries := mocks.NewMockQuerier(ctrl)
	store := db.NewEventStore(queries)

	id := uuid.New()
	attrs, _ := json.Marshal(map[string]string{"relayer": "0xdef"})
	row := db.RelayEvent{ID: id, EventType: "RelayerRegistered", OccurredAt: time.Unix(1_700_000_000, 0).UTC(), Attributes: attrs}

	queries.EXPECT().ListRecentRelayEvents(ctx, int32(10)).Return([]db.RelayEvent{row}, nil)
	queries.EXPECT().
		ListRelayEventsByType(ctx, db.ListRelayEventsByTypeParams{EventType: "RelayerRegistered", Limit: 5}).
		Return([]db.RelayEvent{row}, nil)
	queries.EXPECT().
		ListRelayEventsByType(ctx, db.ListRelayEventsByTypeParams{EventType: "Paused", Limit: 5}).
		Return(nil, errors.New("timeout"))

	all, err := store.Recent(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0].ID)
	assert.Equal(t, events.RelayerRegistered, all[0].Type)
	assert.Equal(t, "0xdef", all[0].Attributes["relayer"])

	typed, err := store.Recent(ctx, events.RelayerRegistered, 5)
	require.NoError(t, err)
	assert.Len(t, typed, 1)

	_, err = store.Recent(ctx, events.Paused, 5)
	assert.ErrorContains(t, err, "timeout")
}
