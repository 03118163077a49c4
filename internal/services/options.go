package services

import (
	"time"

	"github.com/cyphera/cyphera-relay/internal/events"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Clock returns the current wall-clock time
type Clock func() time.Time

// Option configures the shared dependencies of a service
type Option func(*serviceOptions)

type serviceOptions struct {
	clock     Clock
	publisher events.Publisher
	logger    *zap.Logger
}

// WithClock overrides the time source
func WithClock(clock Clock) Option {
	return func(o *serviceOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithPublisher sets the event publisher
func WithPublisher(publisher events.Publisher) Option {
	return func(o *serviceOptions) {
		if publisher != nil {
			o.publisher = publisher
		}
	}
}

// WithLogger overrides the service logger
func WithLogger(l *zap.Logger) Option {
	return func(o *serviceOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(component logger.LogComponent, opts []Option) serviceOptions {
	o := serviceOptions{
		clock:     time.Now,
		publisher: events.Nop{},
		logger:    logger.Log,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With(zap.String("component", string(component)))
	return o
}

// Authorizer is the access control view the ledgers depend on
type Authorizer interface {
	RequireRole(role string, caller common.Address) error
	Paused() bool
}
