package services

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/cyphera/cyphera-relay/internal/constants"
	"github.com/cyphera/cyphera-relay/internal/events"
	"github.com/cyphera/cyphera-relay/internal/interfaces"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// OracleConfig holds the oracle staleness bounds
type OracleConfig struct {
	// MaxAge is how old a snapshot may get before NeedsUpdate reports true
	MaxAge time.Duration
	// MaxFeedAge rejects feed readings older than this
	MaxFeedAge time.Duration
	// FeedTimeout bounds a single UpdatePrices call
	FeedTimeout time.Duration
}

// DefaultOracleConfig returns the production staleness bounds
func DefaultOracleConfig() OracleConfig {
	return OracleConfig{
		MaxAge:      constants.DefaultOracleMaxAge,
		MaxFeedAge:  constants.DefaultMaxFeedAge,
		FeedTimeout: 15 * time.Second,
	}
}

// PriceOracleService turns the gas-price and native/USD feeds into a snapshot
// used for gas cost quotes
type PriceOracleService struct {
	gasFeed    interfaces.PriceFeed
	nativeFeed interfaces.PriceFeed
	access     Authorizer

	mu       sync.RWMutex
	snapshot *business.PriceSnapshot
	config   OracleConfig

	clock     Clock
	publisher events.Publisher
	logger    *zap.Logger
}

// NewPriceOracleService creates an oracle over the two feeds
func NewPriceOracleService(gasFeed, nativeFeed interfaces.PriceFeed, access Authorizer, config OracleConfig, opts ...Option) *PriceOracleService {
	o := applyOptions(logger.ComponentOracle, opts)

	defaults := DefaultOracleConfig()
	if config.MaxAge <= 0 {
		config.MaxAge = defaults.MaxAge
	}
	if config.MaxFeedAge <= 0 {
		config.MaxFeedAge = defaults.MaxFeedAge
	}
	if config.FeedTimeout <= 0 {
		config.FeedTimeout = defaults.FeedTimeout
	}

	return &PriceOracleService{
		gasFeed:    gasFeed,
		nativeFeed: nativeFeed,
		access:     access,
		config:     config,
		clock:      o.clock,
		publisher:  o.publisher,
		logger:     o.logger,
	}
}

// UpdatePrices reads both feeds and stores a new snapshot. The previous
// snapshot is kept when either feed fails or is stale.
func (s *PriceOracleService) UpdatePrices(ctx context.Context) (*business.PriceSnapshot, error) {
	const op = "update prices"

	ctx, cancel := context.WithTimeout(ctx, s.config.FeedTimeout)
	defer cancel()

	var gasReading, nativeReading *business.FeedReading
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.readFeed(gctx, s.gasFeed)
		gasReading = r
		return err
	})
	g.Go(func() error {
		r, err := s.readFeed(gctx, s.nativeFeed)
		nativeReading = r
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("Price update failed", zap.Error(err))
		return nil, newRelayError(op, err)
	}

	s.mu.RLock()
	maxFeedAge := s.config.MaxFeedAge
	s.mu.RUnlock()

	now := s.clock()
	for _, r := range []struct {
		name    string
		reading *business.FeedReading
	}{
		{s.gasFeed.Description(), gasReading},
		{s.nativeFeed.Description(), nativeReading},
	} {
		if r.reading.UpdatedAt.IsZero() || now.Sub(r.reading.UpdatedAt) > maxFeedAge {
			s.logger.Warn("Stale feed reading",
				zap.String("feed", r.name),
				zap.Time("updated_at", r.reading.UpdatedAt),
				zap.Duration("max_feed_age", maxFeedAge))
			return nil, newRelayError(op, ErrStalePrice, "feed", r.name, "updated_at", r.reading.UpdatedAt.UTC().Format(time.RFC3339))
		}
	}

	gasUnitPrice := scaleDecimals(gasReading.Value, gasReading.Decimals, 0)
	if gasUnitPrice.Sign() == 0 {
		return nil, newRelayError(op, errors.Wrapf(ErrFeedUnavailable, "%s: answer below one wei", s.gasFeed.Description()))
	}

	snapshot := business.PriceSnapshot{
		GasUnitPrice:   gasUnitPrice,
		NativeUSDPrice: scaleDecimals(nativeReading.Value, nativeReading.Decimals, constants.NativeUSDDecimals),
		LastUpdateTime: now,
	}

	s.mu.Lock()
	s.snapshot = &snapshot
	s.mu.Unlock()

	s.logger.Info("Prices updated",
		zap.String("gas_unit_price", snapshot.GasUnitPrice.String()),
		zap.String("native_usd_price", snapshot.NativeUSDPrice.String()))
	s.publisher.Emit(ctx, events.New(events.PricesUpdated, now,
		"gas_unit_price", snapshot.GasUnitPrice.String(),
		"native_usd_price", snapshot.NativeUSDPrice.String()))

	out := snapshot.Copy()
	return &out, nil
}

func (s *PriceOracleService) readFeed(ctx context.Context, feed interfaces.PriceFeed) (*business.FeedReading, error) {
	reading, err := feed.LatestAnswer(ctx)
	if err != nil {
		return nil, errors.Wrapf(ErrFeedUnavailable, "%s: %v", feed.Description(), err)
	}
	if reading == nil || reading.Value == nil || reading.Value.Sign() <= 0 {
		return nil, errors.Wrapf(ErrFeedUnavailable, "%s: non-positive answer", feed.Description())
	}
	return reading, nil
}

// CalculateGasCost returns gasUnits × gasUnitPrice in wei
func (s *PriceOracleService) CalculateGasCost(gasUnits *big.Int) (*big.Int, error) {
	const op = "calculate gas cost"

	if gasUnits == nil || gasUnits.Sign() < 0 {
		return nil, newRelayError(op, ErrInvalidAmount)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, newRelayError(op, ErrOracleNotInitialized)
	}
	return new(big.Int).Mul(gasUnits, s.snapshot.GasUnitPrice), nil
}

// NeedsUpdate reports whether the snapshot is missing or older than MaxAge
func (s *PriceOracleService) NeedsUpdate() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return true
	}
	return s.clock().Sub(s.snapshot.LastUpdateTime) > s.config.MaxAge
}

// LatestPrices returns a copy of the current snapshot
func (s *PriceOracleService) LatestPrices() (*business.PriceSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, newRelayError("latest prices", ErrOracleNotInitialized)
	}
	out := s.snapshot.Copy()
	return &out, nil
}

// SetMaxAge changes the NeedsUpdate threshold. ADMIN only.
func (s *PriceOracleService) SetMaxAge(ctx context.Context, caller common.Address, maxAge time.Duration) error {
	if err := s.access.RequireRole(constants.RoleAdmin, caller); err != nil {
		return err
	}
	if maxAge <= 0 {
		return newRelayError("set max age", ErrInvalidDelay, "max_age", maxAge.String())
	}

	s.mu.Lock()
	s.config.MaxAge = maxAge
	s.mu.Unlock()

	s.logger.Info("Oracle max age updated", zap.Duration("max_age", maxAge), zap.String("by", caller.Hex()))
	return nil
}

// scaleDecimals rescales value from one fixed-point precision to another
func scaleDecimals(value *big.Int, from, to uint8) *big.Int {
	out := new(big.Int).Set(value)
	switch {
	case from < to:
		return out.Mul(out, pow10(to-from))
	case from > to:
		return out.Quo(out, pow10(from-to))
	default:
		return out
	}
}

func pow10(n uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// StaticFeed is a fixed-answer PriceFeed for local runs and tests
type StaticFeed struct {
	Name     string
	Value    *big.Int
	Decimals uint8
	// Clock stamps each answer; time.Now when nil
	Clock Clock
}

// LatestAnswer implements interfaces.PriceFeed
func (f *StaticFeed) LatestAnswer(context.Context) (*business.FeedReading, error) {
	now := time.Now
	if f.Clock != nil {
		now = f.Clock
	}
	value := new(big.Int)
	if f.Value != nil {
		value.Set(f.Value)
	}
	return &business.FeedReading{Value: value, Decimals: f.Decimals, UpdatedAt: now()}, nil
}

// Description implements interfaces.PriceFeed
func (f *StaticFeed) Description() string {
	if f.Name == "" {
		return "static"
	}
	return f.Name
}
