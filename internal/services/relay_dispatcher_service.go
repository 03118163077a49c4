package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/cyphera/cyphera-relay/internal/constants"
	"github.com/cyphera/cyphera-relay/internal/events"
	"github.com/cyphera/cyphera-relay/internal/interfaces"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// ErrNoActionExecutor is reported when a request carries call data but no
// executor is configured
var ErrNoActionExecutor = errors.New("no action executor configured")

// RelayerChecker is the registry view used by the dispatcher
type RelayerChecker interface {
	IsActiveRelayer(relayer common.Address) bool
	RecordOutcome(ctx context.Context, relayer common.Address, succeeded bool)
}

// GasCoverer is the pool view used by the dispatcher
type GasCoverer interface {
	CoverGasFee(ctx context.Context, caller, user common.Address, gasAmount *big.Int) (*big.Int, error)
}

// DispatcherConfig configures the relay dispatcher
type DispatcherConfig struct {
	// Address identifies the dispatcher in signed payloads and is the
	// OPERATOR identity it uses against the pool
	Address          common.Address
	MaxGasPerRequest *big.Int
	BatchWorkers     int
}

// RelayDispatcherService validates signed relay requests, owns the per-user
// nonce table and dispatches accepted requests to the pool and registry
type RelayDispatcherService struct {
	address  common.Address
	access   Authorizer
	registry RelayerChecker
	pool     GasCoverer
	executor interfaces.ActionExecutor
	workers  *ants.Pool

	// mu serializes validation and nonce consumption
	mu               sync.Mutex
	nonces           map[common.Address]uint64
	maxGasPerRequest *big.Int

	clock     Clock
	publisher events.Publisher
	logger    *zap.Logger
	relayLog  *logger.StructuredLogger
}

// NewRelayDispatcherService creates a dispatcher. executor may be nil when
// only gas coverage is relayed.
func NewRelayDispatcherService(access Authorizer, registry RelayerChecker, pool GasCoverer, executor interfaces.ActionExecutor, config DispatcherConfig, opts ...Option) (*RelayDispatcherService, error) {
	o := applyOptions(logger.ComponentDispatcher, opts)

	maxGas := config.MaxGasPerRequest
	if maxGas == nil {
		maxGas = big.NewInt(constants.DefaultMaxGasPerRequest)
	}
	workers := config.BatchWorkers
	if workers <= 0 {
		workers = constants.DefaultBatchWorkers
	}

	workerPool, err := ants.NewPool(workers, ants.WithExpiryDuration(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to create relay worker pool: %w", err)
	}

	return &RelayDispatcherService{
		address:          config.Address,
		access:           access,
		registry:         registry,
		pool:             pool,
		executor:         executor,
		workers:          workerPool,
		nonces:           make(map[common.Address]uint64),
		maxGasPerRequest: new(big.Int).Set(maxGas),
		clock:            o.clock,
		publisher:        o.publisher,
		logger:           o.logger,
		relayLog:         logger.NewStructuredLogger(logger.ComponentDispatcher),
	}, nil
}

// Address returns the dispatcher identity bound into signed payloads
func (s *RelayDispatcherService) Address() common.Address {
	return s.address
}

// SigningHash returns the digest a user signs for request
func (s *RelayDispatcherService) SigningHash(request business.RelayRequest) common.Hash {
	return RelaySigningHash(request, s.address)
}

// GetUserNonce returns the next nonce expected from user
func (s *RelayDispatcherService) GetUserNonce(user common.Address) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nonces[user]
}

// ExecuteRelay validates request and, once accepted, consumes its nonce and
// dispatches it. Validation failures are returned as errors and leave all
// state unchanged. Failures after the nonce is consumed are reported in the
// result with Succeeded=false.
func (s *RelayDispatcherService) ExecuteRelay(ctx context.Context, relayer common.Address, request business.RelayRequest) (*business.RelayResult, error) {
	if err := s.validateAndConsume(relayer, request); err != nil {
		s.logger.Debug("Relay request rejected",
			zap.String("user", request.User.Hex()),
			zap.String("relayer", relayer.Hex()),
			zap.Uint64("nonce", request.Nonce),
			zap.Error(err))
		return nil, err
	}

	result := &business.RelayResult{
		User:          request.User,
		Relayer:       relayer,
		GasAmount:     new(big.Int).Set(request.GasAmount),
		CoveredAmount: new(big.Int),
		Nonce:         request.Nonce,
		State:         business.RelayStateExecuted,
	}

	if err := s.dispatch(ctx, request, result); err != nil {
		result.FailureReason = Reason(err)
		s.logger.Info("Relayed action failed",
			zap.String("user", request.User.Hex()),
			zap.Uint64("nonce", request.Nonce),
			zap.Error(err))
	} else {
		result.Succeeded = true
	}

	s.registry.RecordOutcome(ctx, relayer, result.Succeeded)

	s.relayLog.LogRelayEvent(request.User.Hex(), relayer.Hex(), request.Nonce, result.Succeeded, result.FailureReason)
	s.publisher.Emit(ctx, events.New(events.RelayExecuted, s.clock(),
		"user", request.User.Hex(),
		"relayer", relayer.Hex(),
		"amount", request.GasAmount.String(),
		"covered", result.CoveredAmount.String(),
		"nonce", fmt.Sprint(request.Nonce),
		"succeeded", fmt.Sprint(result.Succeeded)))

	return result, nil
}

// validateAndConsume runs every acceptance check and advances the user's
// nonce under one lock so a (user, nonce) pair is accepted at most once.
// Signer recovery happens before the lock; its verdict is reported after the
// expiry and nonce checks.
func (s *RelayDispatcherService) validateAndConsume(relayer common.Address, request business.RelayRequest) error {
	const op = "execute relay"

	if !s.registry.IsActiveRelayer(relayer) {
		return newRelayError(op, ErrNotActiveRelayer, "relayer", relayer.Hex())
	}
	if request.GasAmount == nil || request.GasAmount.Sign() <= 0 {
		return newRelayError(op, ErrInvalidAmount, "user", request.User.Hex())
	}
	signatureValid := VerifySignature(RelaySigningHash(request, s.address), request.Signature, request.User)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	if now.After(request.ExpiryTime) {
		return newRelayError(op, ErrRequestExpired,
			"user", request.User.Hex(), "expiry_time", request.ExpiryTime.UTC().Format(time.RFC3339))
	}

	expected := s.nonces[request.User]
	if request.Nonce != expected {
		return newRelayError(op, ErrInvalidNonce,
			"user", request.User.Hex(), "nonce", fmt.Sprint(request.Nonce), "expected", fmt.Sprint(expected))
	}

	if !signatureValid {
		return newRelayError(op, ErrInvalidSignature, "user", request.User.Hex())
	}

	if request.GasAmount.Cmp(s.maxGasPerRequest) > 0 {
		return newRelayError(op, ErrGasLimitExceeded,
			"user", request.User.Hex(), "gas_amount", request.GasAmount.String(), "max_gas_per_request", s.maxGasPerRequest.String())
	}

	s.nonces[request.User] = expected + 1
	return nil
}

// dispatch covers the fee and runs the payload action
func (s *RelayDispatcherService) dispatch(ctx context.Context, request business.RelayRequest, result *business.RelayResult) error {
	covered, err := s.pool.CoverGasFee(ctx, s.address, request.User, request.GasAmount)
	if err != nil {
		return err
	}
	result.CoveredAmount = covered

	if len(request.Data) == 0 {
		return nil
	}
	if s.executor == nil {
		return ErrNoActionExecutor
	}
	if _, err := s.executor.Execute(ctx, request.User, request.Data); err != nil {
		return fmt.Errorf("relayed action failed: %w", err)
	}
	return nil
}

// ExecuteBatch runs requests on the worker pool. Requests from the same user
// run in submission order; different users run concurrently. Results are
// returned in input order.
func (s *RelayDispatcherService) ExecuteBatch(ctx context.Context, relayer common.Address, requests []business.RelayRequest) []business.BatchRelayResult {
	results := make([]business.BatchRelayResult, len(requests))

	byUser := make(map[common.Address][]int)
	var order []common.Address
	for i, req := range requests {
		if _, ok := byUser[req.User]; !ok {
			order = append(order, req.User)
		}
		byUser[req.User] = append(byUser[req.User], i)
	}

	var wg sync.WaitGroup
	for _, user := range order {
		indexes := byUser[user]
		wg.Add(1)
		task := func() {
			defer wg.Done()
			for _, i := range indexes {
				if err := ctx.Err(); err != nil {
					results[i] = business.BatchRelayResult{Err: err}
					continue
				}
				res, err := s.ExecuteRelay(ctx, relayer, requests[i])
				results[i] = business.BatchRelayResult{Result: res, Err: err}
			}
		}
		if err := s.workers.Submit(task); err != nil {
			wg.Done()
			for _, i := range indexes {
				results[i] = business.BatchRelayResult{Err: fmt.Errorf("failed to schedule relay: %w", err)}
			}
		}
	}
	wg.Wait()

	return results
}

// SetMaxGasPerRequest changes the per-request ceiling. ADMIN only.
func (s *RelayDispatcherService) SetMaxGasPerRequest(_ context.Context, caller common.Address, maxGas *big.Int) error {
	if err := s.access.RequireRole(constants.RoleAdmin, caller); err != nil {
		return err
	}
	if maxGas == nil || maxGas.Sign() <= 0 {
		return newRelayError("set max gas per request", ErrInvalidAmount)
	}

	s.mu.Lock()
	s.maxGasPerRequest = new(big.Int).Set(maxGas)
	s.mu.Unlock()

	s.logger.Info("Max gas per request updated", zap.String("max_gas", maxGas.String()), zap.String("by", caller.Hex()))
	return nil
}

// Close releases the batch worker pool
func (s *RelayDispatcherService) Close() {
	s.workers.Release()
}
