package services

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/cyphera/cyphera-relay/internal/constants"
	"github.com/cyphera/cyphera-relay/internal/events"
	"github.com/cyphera/cyphera-relay/internal/helpers"
	"github.com/cyphera/cyphera-relay/internal/interfaces"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// GasCostCalculator quotes the native cost of a gas amount
type GasCostCalculator interface {
	CalculateGasCost(gasUnits *big.Int) (*big.Int, error)
}

// GasPoolConfig configures the sponsorship ledger
type GasPoolConfig struct {
	Tiers              []business.Tier
	MinimumPoolBalance *big.Int
	DailyWindow        time.Duration
}

// DefaultTiers returns the four standard coverage brackets. Thresholds are in
// token base units (18 decimals), caps in native wei.
func DefaultTiers() []business.Tier {
	return []business.Tier{
		{Index: 0, Name: "Basic", MinBalanceThreshold: big.NewInt(0), CoveragePercent: 2500,
			MaxDailyGas: helpers.ToWei(1, 17), MaxLifetimeGas: helpers.ToWei(1, 18)},
		{Index: 1, Name: "Bronze", MinBalanceThreshold: helpers.ToWei(1000, 18), CoveragePercent: 5000,
			MaxDailyGas: helpers.ToWei(5, 17), MaxLifetimeGas: helpers.ToWei(5, 18)},
		{Index: 2, Name: "Standard", MinBalanceThreshold: helpers.ToWei(5000, 18), CoveragePercent: 7500,
			MaxDailyGas: helpers.ToWei(1, 18), MaxLifetimeGas: helpers.ToWei(20, 18)},
		{Index: 3, Name: "Premium", MinBalanceThreshold: helpers.ToWei(10000, 18), CoveragePercent: 10000,
			MaxDailyGas: helpers.ToWei(5, 18), MaxLifetimeGas: helpers.ToWei(100, 18)},
	}
}

// GasPoolService is the sponsorship ledger. A single mutex guards the pool
// balance, the tier table and every user account so that each coverage
// decision and its debit commit as one unit.
type GasPoolService struct {
	access   Authorizer
	oracle   GasCostCalculator
	balances interfaces.BalanceSource

	mu                 sync.Mutex
	balance            *big.Int
	tiers              []business.Tier
	accounts           map[common.Address]*business.UserGasAccount
	minimumPoolBalance *big.Int
	dailyWindow        time.Duration

	clock     Clock
	publisher events.Publisher
	logger    *zap.Logger
}

// NewGasPoolService creates an empty pool
func NewGasPoolService(access Authorizer, oracle GasCostCalculator, balances interfaces.BalanceSource, config GasPoolConfig, opts ...Option) *GasPoolService {
	o := applyOptions(logger.ComponentPool, opts)

	tiers := config.Tiers
	if len(tiers) == 0 {
		tiers = DefaultTiers()
	}
	copied := make([]business.Tier, len(tiers))
	for i, t := range tiers {
		copied[i] = t.Copy()
		copied[i].Index = i
	}

	window := config.DailyWindow
	if window <= 0 {
		window = constants.DefaultDailyWindow
	}

	return &GasPoolService{
		access:             access,
		oracle:             oracle,
		balances:           balances,
		balance:            new(big.Int),
		tiers:              copied,
		accounts:           make(map[common.Address]*business.UserGasAccount),
		minimumPoolBalance: helpers.CloneBig(config.MinimumPoolBalance),
		dailyWindow:        window,
		clock:              o.clock,
		publisher:          o.publisher,
		logger:             o.logger,
	}
}

// UpdateUserTier classifies user by their qualifying token balance and
// records the highest tier whose threshold is met
func (s *GasPoolService) UpdateUserTier(ctx context.Context, user common.Address) (int, error) {
	const op = "update user tier"

	balance, err := s.balances.BalanceOf(ctx, user)
	if err != nil {
		return 0, newRelayError(op, errors.Wrapf(ErrFeedUnavailable, "balance source: %v", err), "user", user.Hex())
	}

	s.mu.Lock()
	tier := s.resolveTierLocked(balance)
	account, ok := s.accounts[user]
	if !ok {
		account = s.newAccount()
		s.accounts[user] = account
	}
	previous := account.Tier
	account.Tier = tier
	s.mu.Unlock()

	if !ok || previous != tier {
		s.logger.Info("User tier updated",
			zap.String("user", user.Hex()),
			zap.Int("tier", tier),
			zap.String("balance", balance.String()))
		s.publisher.Emit(ctx, events.New(events.UserTierUpdated, s.clock(),
			"user", user.Hex(), "tier", fmt.Sprint(tier)))
	}
	return tier, nil
}

// resolveTierLocked picks the highest-index tier whose threshold balance meets
func (s *GasPoolService) resolveTierLocked(balance *big.Int) int {
	selected := 0
	for i, t := range s.tiers {
		if balance.Cmp(t.MinBalanceThreshold) >= 0 {
			selected = i
		}
	}
	return selected
}

func (s *GasPoolService) newAccount() *business.UserGasAccount {
	return &business.UserGasAccount{
		Tier:             0,
		DailyUsed:        new(big.Int),
		DailyWindowStart: s.clock(),
		LifetimeUsed:     new(big.Int),
	}
}

// CoverGasFee pays the tier's share of gasAmount from the pool and records the
// usage against the user's limits. OPERATOR only. Returns the covered amount.
func (s *GasPoolService) CoverGasFee(ctx context.Context, caller, user common.Address, gasAmount *big.Int) (*big.Int, error) {
	const op = "cover gas fee"

	if err := s.access.RequireRole(constants.RoleOperator, caller); err != nil {
		return nil, err
	}
	if s.access.Paused() {
		return nil, newRelayError(op, ErrPaused)
	}
	if gasAmount == nil || gasAmount.Sign() <= 0 {
		return nil, newRelayError(op, ErrInvalidAmount, "user", user.Hex())
	}

	s.mu.Lock()

	now := s.clock()
	var account business.UserGasAccount
	if existing, ok := s.accounts[user]; ok {
		account = existing.Copy()
	} else {
		account = *s.newAccount()
	}
	if !now.Before(account.DailyWindowStart.Add(s.dailyWindow)) {
		account.DailyUsed = new(big.Int)
		account.DailyWindowStart = now
	}

	tier := s.tiers[account.Tier]

	daily := new(big.Int).Add(account.DailyUsed, gasAmount)
	if daily.Cmp(tier.MaxDailyGas) > 0 {
		s.mu.Unlock()
		return nil, newRelayError(op, ErrDailyLimitExceeded,
			"user", user.Hex(), "daily_used", account.DailyUsed.String(), "max_daily_gas", tier.MaxDailyGas.String())
	}

	lifetime := new(big.Int).Add(account.LifetimeUsed, gasAmount)
	if lifetime.Cmp(tier.MaxLifetimeGas) > 0 {
		s.mu.Unlock()
		return nil, newRelayError(op, ErrLifetimeLimitExceeded,
			"user", user.Hex(), "lifetime_used", account.LifetimeUsed.String(), "max_lifetime_gas", tier.MaxLifetimeGas.String())
	}

	covered := coveredAmount(gasAmount, tier.CoveragePercent)
	if covered.Cmp(s.balance) > 0 {
		balance := s.balance.String()
		s.mu.Unlock()
		return nil, newRelayError(op, ErrInsufficientPoolBalance,
			"user", user.Hex(), "covered", covered.String(), "pool_balance", balance)
	}

	s.balance.Sub(s.balance, covered)
	account.DailyUsed = daily
	account.LifetimeUsed.Add(account.LifetimeUsed, covered)
	s.accounts[user] = &account
	s.mu.Unlock()

	s.logger.Debug("Gas covered",
		zap.String("user", user.Hex()),
		zap.String("gas_amount", gasAmount.String()),
		zap.String("covered", covered.String()),
		zap.Int("tier", account.Tier))
	s.publisher.Emit(ctx, events.New(events.GasCovered, now,
		"user", user.Hex(), "amount", covered.String(), "gas_amount", gasAmount.String()))

	return new(big.Int).Set(covered), nil
}

func coveredAmount(gasAmount *big.Int, coveragePercent uint16) *big.Int {
	covered := new(big.Int).Mul(gasAmount, big.NewInt(int64(coveragePercent)))
	return covered.Quo(covered, big.NewInt(constants.BasisPoints))
}

// ReplenishPool credits the pool
func (s *GasPoolService) ReplenishPool(ctx context.Context, funder common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return newRelayError("replenish pool", ErrInvalidAmount)
	}

	s.mu.Lock()
	s.balance.Add(s.balance, amount)
	balance := s.balance.String()
	s.mu.Unlock()

	s.logger.Info("Pool replenished",
		zap.String("funder", funder.Hex()),
		zap.String("amount", amount.String()),
		zap.String("balance", balance))
	s.publisher.Emit(ctx, events.New(events.PoolReplenished, s.clock(),
		"funder", funder.Hex(), "amount", amount.String()))
	return nil
}

// UpdateTier replaces the parameters of an existing tier. ADMIN only; applies
// to coverage calls made after it returns.
func (s *GasPoolService) UpdateTier(ctx context.Context, caller common.Address, tier business.Tier) error {
	const op = "update tier"

	if err := s.access.RequireRole(constants.RoleAdmin, caller); err != nil {
		return err
	}
	if tier.CoveragePercent > constants.MaxCoveragePercent {
		return newRelayError(op, ErrInvalidTier, "coverage_percent", fmt.Sprint(tier.CoveragePercent))
	}
	if tier.MinBalanceThreshold == nil || tier.MinBalanceThreshold.Sign() < 0 ||
		tier.MaxDailyGas == nil || tier.MaxDailyGas.Sign() < 0 ||
		tier.MaxLifetimeGas == nil || tier.MaxLifetimeGas.Sign() < 0 {
		return newRelayError(op, ErrInvalidTier, "index", fmt.Sprint(tier.Index))
	}

	s.mu.Lock()
	if tier.Index < 0 || tier.Index >= len(s.tiers) {
		count := len(s.tiers)
		s.mu.Unlock()
		return newRelayError(op, ErrInvalidTier, "index", fmt.Sprint(tier.Index), "tiers", fmt.Sprint(count))
	}
	updated := tier.Copy()
	if updated.Name == "" {
		updated.Name = s.tiers[tier.Index].Name
	}
	s.tiers[tier.Index] = updated
	s.mu.Unlock()

	s.logger.Info("Tier updated",
		zap.Int("index", updated.Index),
		zap.Uint16("coverage_percent", updated.CoveragePercent),
		zap.String("max_daily_gas", updated.MaxDailyGas.String()),
		zap.String("max_lifetime_gas", updated.MaxLifetimeGas.String()),
		zap.String("by", caller.Hex()))
	s.publisher.Emit(ctx, events.New(events.TierUpdated, s.clock(),
		"index", fmt.Sprint(updated.Index),
		"coverage_percent", fmt.Sprint(updated.CoveragePercent),
		"max_daily_gas", updated.MaxDailyGas.String(),
		"max_lifetime_gas", updated.MaxLifetimeGas.String()))
	return nil
}

// EstimateCoverage quotes what the pool would pay for gasUnits of gas at the
// current oracle price for user's tier. It does not reserve anything.
func (s *GasPoolService) EstimateCoverage(user common.Address, gasUnits *big.Int) (*business.CoverageQuote, error) {
	cost, err := s.oracle.CalculateGasCost(gasUnits)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	tierIndex := 0
	if account, ok := s.accounts[user]; ok {
		tierIndex = account.Tier
	}
	pct := s.tiers[tierIndex].CoveragePercent
	s.mu.Unlock()

	covered := coveredAmount(cost, pct)
	return &business.CoverageQuote{
		Tier:            tierIndex,
		CoveragePercent: pct,
		GasCost:         cost,
		CoveredCost:     covered,
		UserCost:        new(big.Int).Sub(cost, covered),
	}, nil
}

// Status returns the pool balance, configured minimum and tier table
func (s *GasPoolService) Status() business.PoolStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	tiers := make([]business.Tier, len(s.tiers))
	for i, t := range s.tiers {
		tiers[i] = t.Copy()
	}
	return business.PoolStatus{
		Balance:        new(big.Int).Set(s.balance),
		MinimumBalance: new(big.Int).Set(s.minimumPoolBalance),
		Paused:         s.access.Paused(),
		Tiers:          tiers,
	}
}

// PoolBalance returns the current pool balance
func (s *GasPoolService) PoolBalance() *big.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return new(big.Int).Set(s.balance)
}

// UserAccount returns a copy of user's account, if one exists
func (s *GasPoolService) UserAccount(user common.Address) (business.UserGasAccount, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[user]
	if !ok {
		return business.UserGasAccount{}, false
	}
	return account.Copy(), true
}
