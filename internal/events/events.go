package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Type names an observable state change
type Type string

const (
	PricesUpdated           Type = "PricesUpdated"
	GasCovered              Type = "GasCovered"
	RelayerRegistered       Type = "RelayerRegistered"
	RelayerRemoved          Type = "RelayerRemoved"
	RelayerBalanceUpdated   Type = "RelayerBalanceUpdated"
	RelayExecuted           Type = "RelayExecuted"
	PoolReplenished         Type = "PoolReplenished"
	TierUpdated             Type = "TierUpdated"
	UserTierUpdated         Type = "UserTierUpdated"
	MetaTransactionExecuted Type = "MetaTransactionExecuted"
	RoleGranted             Type = "RoleGranted"
	RoleRevoked             Type = "RoleRevoked"
	RoleTransferInitiated   Type = "RoleTransferInitiated"
	RoleTransferCompleted   Type = "RoleTransferCompleted"
	RoleTransferCancelled   Type = "RoleTransferCancelled"
	Paused                  Type = "Paused"
	Unpaused                Type = "Unpaused"
)

// Event is a single emitted record. Attribute values are strings so every sink
// can serialize them without knowing the payload shape.
type Event struct {
	ID         uuid.UUID         `json:"id"`
	Type       Type              `json:"type"`
	OccurredAt time.Time         `json:"occurred_at"`
	Attributes map[string]string `json:"attributes"`
}

// New builds an event from alternating key/value pairs
func New(t Type, at time.Time, kv ...string) Event {
	attrs := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs[kv[i]] = kv[i+1]
	}
	return Event{
		ID:         uuid.New(),
		Type:       t,
		OccurredAt: at.UTC(),
		Attributes: attrs,
	}
}

// Sink receives published events
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher is what services depend on to report state changes
type Publisher interface {
	Emit(ctx context.Context, event Event)
}

// Emitter fans an event out to every configured sink. Sink failures are logged
// and never fail the operation that produced the event.
type Emitter struct {
	sinks  []Sink
	logger *zap.Logger
}

// NewEmitter creates an emitter over the given sinks
func NewEmitter(logger *zap.Logger, sinks ...Sink) *Emitter {
	if logger == nil {
		logger = zap.L()
	}
	return &Emitter{sinks: sinks, logger: logger}
}

// Emit publishes the event to all sinks
func (e *Emitter) Emit(ctx context.Context, event Event) {
	for _, sink := range e.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			e.logger.Error("Failed to publish event",
				zap.String("event_type", string(event.Type)),
				zap.String("event_id", event.ID.String()),
				zap.Error(err))
		}
	}
}

// Nop discards every event
type Nop struct{}

// Emit implements Publisher
func (Nop) Emit(context.Context, Event) {}

// MemorySink keeps published events in memory
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

// Publish implements Sink
func (m *MemorySink) Publish(_ context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Emit lets a MemorySink be used directly as a Publisher
func (m *MemorySink) Emit(ctx context.Context, event Event) {
	_ = m.Publish(ctx, event)
}

// Events returns a copy of everything published so far
func (m *MemorySink) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// OfType returns published events of the given type
func (m *MemorySink) OfType(t Type) []Event {
	var out []Event
	for _, ev := range m.Events() {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}
