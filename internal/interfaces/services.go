package interfaces

//go:generate mockgen -source=services.go -destination=../mocks/mock_services.go -package=mocks

import (
	"context"
	"math/big"
	"time"

	"github.com/cyphera/cyphera-relay/internal/events"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
)

// IAccessControlService owns the role table and the pause switch
type IAccessControlService interface {
	HasRole(role string, account common.Address) bool
	RequireRole(role string, caller common.Address) error
	RoleMembers(role string) []common.Address
	GrantRole(ctx context.Context, caller common.Address, role string, account common.Address) error
	RevokeRole(ctx context.Context, caller common.Address, role string, account common.Address) error
	InitiateRoleTransfer(ctx context.Context, caller common.Address, role string, newHolder common.Address) (*business.RoleTransfer, error)
	CompleteRoleTransfer(ctx context.Context, caller common.Address, role string) error
	CancelRoleTransfer(ctx context.Context, caller common.Address, role string) error
	RoleTransferStatus(role string) business.RoleTransfer
	UpdateTransferDelay(ctx context.Context, caller common.Address, delay time.Duration) error
	TransferDelay() time.Duration
	Pause(ctx context.Context, caller common.Address) error
	Unpause(ctx context.Context, caller common.Address) error
	Paused() bool
}

// IPriceOracleService converts feed readings into gas costs
type IPriceOracleService interface {
	UpdatePrices(ctx context.Context) (*business.PriceSnapshot, error)
	CalculateGasCost(gasUnits *big.Int) (*big.Int, error)
	NeedsUpdate() bool
	LatestPrices() (*business.PriceSnapshot, error)
	SetMaxAge(ctx context.Context, caller common.Address, maxAge time.Duration) error
}

// IGasPoolService is the sponsorship ledger
type IGasPoolService interface {
	UpdateUserTier(ctx context.Context, user common.Address) (int, error)
	CoverGasFee(ctx context.Context, caller, user common.Address, gasAmount *big.Int) (*big.Int, error)
	ReplenishPool(ctx context.Context, funder common.Address, amount *big.Int) error
	UpdateTier(ctx context.Context, caller common.Address, tier business.Tier) error
	EstimateCoverage(user common.Address, gasUnits *big.Int) (*business.CoverageQuote, error)
	Status() business.PoolStatus
	UserAccount(user common.Address) (business.UserGasAccount, bool)
}

// IRelayerRegistryService manages staked relayer accounts
type IRelayerRegistryService interface {
	RegisterRelayer(ctx context.Context, relayer common.Address, stake *big.Int) (*business.RelayerAccount, error)
	DepositRelayerBalance(ctx context.Context, relayer common.Address, amount *big.Int) (*business.RelayerAccount, error)
	WithdrawRelayerBalance(ctx context.Context, relayer common.Address, amount *big.Int) (*big.Int, error)
	RemoveInactiveRelayer(ctx context.Context, relayer common.Address) error
	RecordOutcome(ctx context.Context, relayer common.Address, succeeded bool)
	IsActiveRelayer(relayer common.Address) bool
	GetRelayer(relayer common.Address) (*business.RelayerAccount, error)
	Metrics(relayer common.Address) (*business.RelayerMetrics, error)
	ListRelayers() []business.RelayerAccount
	SetMinRelayerBalance(ctx context.Context, caller common.Address, amount *big.Int) error
	SetRelayerTimeout(ctx context.Context, caller common.Address, timeout time.Duration) error
}

// IRelayDispatcherService validates and executes signed relay requests
type IRelayDispatcherService interface {
	ExecuteRelay(ctx context.Context, relayer common.Address, request business.RelayRequest) (*business.RelayResult, error)
	ExecuteBatch(ctx context.Context, relayer common.Address, requests []business.RelayRequest) []business.BatchRelayResult
	GetUserNonce(user common.Address) uint64
	SigningHash(request business.RelayRequest) common.Hash
	Address() common.Address
	SetMaxGasPerRequest(ctx context.Context, caller common.Address, maxGas *big.Int) error
}

// IMetaTransactionService executes EIP-712 signed calls
type IMetaTransactionService interface {
	ExecuteMetaTransaction(ctx context.Context, relayer common.Address, tx business.MetaTransaction) (*business.MetaTransactionResult, error)
	GetNonce(user common.Address) uint64
	TypedDataHash(from common.Address, nonce uint64, functionSignature []byte) (common.Hash, error)
}

// IMonitorService runs health checks over the relay system
type IMonitorService interface {
	Check(ctx context.Context) (*business.HealthReport, error)
}

// IEventReader lists stored relay events
type IEventReader interface {
	Recent(ctx context.Context, eventType events.Type, limit int32) ([]events.Event, error)
}
