package interfaces

//go:generate mockgen -source=clients.go -destination=../mocks/mock_clients.go -package=mocks

import (
	"context"
	"math/big"

	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
)

// PriceFeed is an external price source read by the oracle
type PriceFeed interface {
	LatestAnswer(ctx context.Context) (*business.FeedReading, error)
	Description() string
}

// BalanceSource reports the qualifying token balance used for tier selection
type BalanceSource interface {
	BalanceOf(ctx context.Context, account common.Address) (*big.Int, error)
}

// ActionExecutor performs the payload call of a relayed or meta transaction
type ActionExecutor interface {
	Execute(ctx context.Context, from common.Address, data []byte) ([]byte, error)
}

// Alerter delivers monitor findings to operators
type Alerter interface {
	SendAlerts(ctx context.Context, report business.HealthReport) error
}
