package services

import (
	"context"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/cyphera/cyphera-relay/internal/constants"
	"github.com/cyphera/cyphera-relay/internal/events"
	"github.com/cyphera/cyphera-relay/internal/helpers"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// RegistryConfig configures relayer staking and liveness
type RegistryConfig struct {
	MinRelayerBalance *big.Int
	RelayerTimeout    time.Duration
}

// RelayerRegistryService manages stake-backed relayer accounts
type RelayerRegistryService struct {
	access Authorizer

	mu                sync.RWMutex
	relayers          map[common.Address]*business.RelayerAccount
	minRelayerBalance *big.Int
	relayerTimeout    time.Duration

	clock     Clock
	publisher events.Publisher
	logger    *zap.Logger
}

// NewRelayerRegistryService creates an empty registry
func NewRelayerRegistryService(access Authorizer, config RegistryConfig, opts ...Option) *RelayerRegistryService {
	o := applyOptions(logger.ComponentRegistry, opts)

	minBalance := config.MinRelayerBalance
	if minBalance == nil {
		minBalance = helpers.ToWei(1, 18)
	}
	timeout := config.RelayerTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRelayerTimeout
	}

	return &RelayerRegistryService{
		access:            access,
		relayers:          make(map[common.Address]*business.RelayerAccount),
		minRelayerBalance: new(big.Int).Set(minBalance),
		relayerTimeout:    timeout,
		clock:             o.clock,
		publisher:         o.publisher,
		logger:            o.logger,
	}
}

// RegisterRelayer opens an active account for relayer funded with stake. A
// relayer that was evicted may register again; its remaining balance is kept.
func (s *RelayerRegistryService) RegisterRelayer(ctx context.Context, relayer common.Address, stake *big.Int) (*business.RelayerAccount, error) {
	const op = "register relayer"

	if s.access.Paused() {
		return nil, newRelayError(op, ErrPaused)
	}
	if stake == nil || stake.Sign() < 0 {
		return nil, newRelayError(op, ErrInvalidAmount, "relayer", relayer.Hex())
	}

	s.mu.Lock()
	if stake.Cmp(s.minRelayerBalance) < 0 {
		min := s.minRelayerBalance.String()
		s.mu.Unlock()
		return nil, newRelayError(op, ErrInsufficientInitialBalance,
			"relayer", relayer.Hex(), "stake", stake.String(), "min_relayer_balance", min)
	}

	now := s.clock()
	account, exists := s.relayers[relayer]
	switch {
	case exists && account.IsActive:
		s.mu.Unlock()
		return nil, newRelayError(op, ErrAlreadyRegistered, "relayer", relayer.Hex())
	case exists:
		account.Balance.Add(account.Balance, stake)
		account.IsActive = true
		account.RegisteredAt = now
		account.LastActivityTime = now
	default:
		account = &business.RelayerAccount{
			Address:          relayer,
			Balance:          new(big.Int).Set(stake),
			IsActive:         true,
			RegisteredAt:     now,
			LastActivityTime: now,
		}
		s.relayers[relayer] = account
	}
	out := account.Copy()
	s.mu.Unlock()

	s.logger.Info("Relayer registered",
		zap.String("relayer", relayer.Hex()),
		zap.String("stake", stake.String()),
		zap.Bool("re_registration", exists))
	s.publisher.Emit(ctx, events.New(events.RelayerRegistered, now,
		"relayer", relayer.Hex(), "stake", stake.String()))

	return &out, nil
}

// DepositRelayerBalance tops up an existing account
func (s *RelayerRegistryService) DepositRelayerBalance(ctx context.Context, relayer common.Address, amount *big.Int) (*business.RelayerAccount, error) {
	const op = "deposit relayer balance"

	if amount == nil || amount.Sign() <= 0 {
		return nil, newRelayError(op, ErrInvalidAmount, "relayer", relayer.Hex())
	}

	s.mu.Lock()
	account, ok := s.relayers[relayer]
	if !ok {
		s.mu.Unlock()
		return nil, newRelayError(op, ErrNotRegistered, "relayer", relayer.Hex())
	}
	account.Balance.Add(account.Balance, amount)
	out := account.Copy()
	s.mu.Unlock()

	s.emitBalanceUpdated(ctx, relayer, amount, out.Balance, "deposit")
	return &out, nil
}

// WithdrawRelayerBalance debits amount from the relayer's stake and returns
// it. An active relayer must keep at least the minimum balance.
func (s *RelayerRegistryService) WithdrawRelayerBalance(ctx context.Context, relayer common.Address, amount *big.Int) (*big.Int, error) {
	const op = "withdraw relayer balance"

	if amount == nil || amount.Sign() <= 0 {
		return nil, newRelayError(op, ErrInvalidAmount, "relayer", relayer.Hex())
	}

	s.mu.Lock()
	account, ok := s.relayers[relayer]
	if !ok {
		s.mu.Unlock()
		return nil, newRelayError(op, ErrNotRegistered, "relayer", relayer.Hex())
	}

	remaining := new(big.Int).Sub(account.Balance, amount)
	if remaining.Sign() < 0 {
		balance := account.Balance.String()
		s.mu.Unlock()
		return nil, newRelayError(op, ErrInvalidAmount, "relayer", relayer.Hex(), "balance", balance, "amount", amount.String())
	}
	if account.IsActive && remaining.Cmp(s.minRelayerBalance) < 0 {
		min := s.minRelayerBalance.String()
		s.mu.Unlock()
		return nil, newRelayError(op, ErrMustMaintainMinBalance,
			"relayer", relayer.Hex(), "remaining", remaining.String(), "min_relayer_balance", min)
	}
	account.Balance = remaining
	s.mu.Unlock()

	s.emitBalanceUpdated(ctx, relayer, amount, remaining, "withdraw")
	return new(big.Int).Set(amount), nil
}

func (s *RelayerRegistryService) emitBalanceUpdated(ctx context.Context, relayer common.Address, amount, balance *big.Int, direction string) {
	s.logger.Info("Relayer balance updated",
		zap.String("relayer", relayer.Hex()),
		zap.String("direction", direction),
		zap.String("amount", amount.String()),
		zap.String("balance", balance.String()))
	s.publisher.Emit(ctx, events.New(events.RelayerBalanceUpdated, s.clock(),
		"relayer", relayer.Hex(), "direction", direction, "amount", amount.String(), "balance", balance.String()))
}

// RemoveInactiveRelayer deactivates a relayer idle for longer than the
// relayer timeout. Anyone may call it.
func (s *RelayerRegistryService) RemoveInactiveRelayer(ctx context.Context, relayer common.Address) error {
	const op = "remove inactive relayer"

	s.mu.Lock()
	account, ok := s.relayers[relayer]
	if !ok || !account.IsActive {
		s.mu.Unlock()
		return newRelayError(op, ErrNotRegistered, "relayer", relayer.Hex())
	}
	now := s.clock()
	idle := now.Sub(account.LastActivityTime)
	if idle <= s.relayerTimeout {
		timeout := s.relayerTimeout
		s.mu.Unlock()
		return newRelayError(op, ErrStillActive,
			"relayer", relayer.Hex(), "idle", idle.String(), "relayer_timeout", timeout.String())
	}
	account.IsActive = false
	s.mu.Unlock()

	s.logger.Info("Relayer removed for inactivity", zap.String("relayer", relayer.Hex()), zap.Duration("idle", idle))
	s.publisher.Emit(ctx, events.New(events.RelayerRemoved, now, "relayer", relayer.Hex()))
	return nil
}

// RecordOutcome counts a relay attempt and refreshes the relayer's liveness
func (s *RelayerRegistryService) RecordOutcome(_ context.Context, relayer common.Address, succeeded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.relayers[relayer]
	if !ok {
		return
	}
	if succeeded {
		account.SuccessfulRelays++
	} else {
		account.FailedRelays++
	}
	account.LastActivityTime = s.clock()
}

// IsActiveRelayer reports whether relayer is registered, active and funded
func (s *RelayerRegistryService) IsActiveRelayer(relayer common.Address) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.relayers[relayer]
	return ok && account.IsActive && account.Balance.Cmp(s.minRelayerBalance) >= 0
}

// GetRelayer returns a copy of the relayer's account
func (s *RelayerRegistryService) GetRelayer(relayer common.Address) (*business.RelayerAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.relayers[relayer]
	if !ok {
		return nil, newRelayError("get relayer", ErrNotRegistered, "relayer", relayer.Hex())
	}
	out := account.Copy()
	return &out, nil
}

// Metrics returns the relayer's counters and integer success rate
func (s *RelayerRegistryService) Metrics(relayer common.Address) (*business.RelayerMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.relayers[relayer]
	if !ok {
		return nil, newRelayError("relayer metrics", ErrNotRegistered, "relayer", relayer.Hex())
	}
	return &business.RelayerMetrics{
		SuccessfulRelays: account.SuccessfulRelays,
		FailedRelays:     account.FailedRelays,
		SuccessRate:      successRate(account.SuccessfulRelays, account.FailedRelays),
	}, nil
}

func successRate(successful, failed uint64) uint64 {
	total := successful + failed
	if total == 0 {
		return 0
	}
	return successful * 100 / total
}

// ListRelayers returns every known account ordered by address
func (s *RelayerRegistryService) ListRelayers() []business.RelayerAccount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]business.RelayerAccount, 0, len(s.relayers))
	for _, account := range s.relayers {
		out = append(out, account.Copy())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address.Cmp(out[j].Address) < 0 })
	return out
}

// TotalRelayers counts active relayers
func (s *RelayerRegistryService) TotalRelayers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, account := range s.relayers {
		if account.IsActive {
			n++
		}
	}
	return n
}

// MinRelayerBalance returns the stake floor
func (s *RelayerRegistryService) MinRelayerBalance() *big.Int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return new(big.Int).Set(s.minRelayerBalance)
}

// RelayerTimeout returns the liveness window
func (s *RelayerRegistryService) RelayerTimeout() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.relayerTimeout
}

// SetMinRelayerBalance changes the stake floor for future checks. ADMIN only.
func (s *RelayerRegistryService) SetMinRelayerBalance(_ context.Context, caller common.Address, amount *big.Int) error {
	if err := s.access.RequireRole(constants.RoleAdmin, caller); err != nil {
		return err
	}
	if amount == nil || amount.Sign() < 0 {
		return newRelayError("set min relayer balance", ErrInvalidAmount)
	}

	s.mu.Lock()
	s.minRelayerBalance = new(big.Int).Set(amount)
	s.mu.Unlock()

	s.logger.Info("Minimum relayer balance updated", zap.String("amount", amount.String()), zap.String("by", caller.Hex()))
	return nil
}

// SetRelayerTimeout changes the liveness window. ADMIN only.
func (s *RelayerRegistryService) SetRelayerTimeout(_ context.Context, caller common.Address, timeout time.Duration) error {
	if err := s.access.RequireRole(constants.RoleAdmin, caller); err != nil {
		return err
	}
	if timeout <= 0 {
		return newRelayError("set relayer timeout", ErrInvalidDelay, "timeout", timeout.String())
	}

	s.mu.Lock()
	s.relayerTimeout = timeout
	s.mu.Unlock()

	s.logger.Info("Relayer timeout updated", zap.Duration("timeout", timeout), zap.String("by", caller.Hex()))
	return nil
}
