package business

import (
	"math/big"
	"time"
)

// Tier is a coverage bracket selected by a user's qualifying token balance
type Tier struct {
	Index               int      `json:"index" toml:"index"`
	Name                string   `json:"name" toml:"name"`
	MinBalanceThreshold *big.Int `json:"min_balance_threshold" toml:"-"`
	CoveragePercent     uint16   `json:"coverage_percent" toml:"coverage_percent"` // basis points
	MaxDailyGas         *big.Int `json:"max_daily_gas" toml:"-"`
	MaxLifetimeGas      *big.Int `json:"max_lifetime_gas" toml:"-"`
}

// Copy returns a deep copy of the tier
func (t Tier) Copy() Tier {
	return Tier{
		Index:               t.Index,
		Name:                t.Name,
		MinBalanceThreshold: cloneOrZero(t.MinBalanceThreshold),
		CoveragePercent:     t.CoveragePercent,
		MaxDailyGas:         cloneOrZero(t.MaxDailyGas),
		MaxLifetimeGas:      cloneOrZero(t.MaxLifetimeGas),
	}
}

// UserGasAccount tracks a user's tier and sponsored usage
type UserGasAccount struct {
	Tier             int       `json:"tier"`
	DailyUsed        *big.Int  `json:"daily_used"`
	DailyWindowStart time.Time `json:"daily_window_start"`
	LifetimeUsed     *big.Int  `json:"lifetime_used"`
}

// Copy returns a deep copy of the account
func (a UserGasAccount) Copy() UserGasAccount {
	return UserGasAccount{
		Tier:             a.Tier,
		DailyUsed:        cloneOrZero(a.DailyUsed),
		DailyWindowStart: a.DailyWindowStart,
		LifetimeUsed:     cloneOrZero(a.LifetimeUsed),
	}
}

// CoverageQuote is an estimate of what the pool would pay for a call
type CoverageQuote struct {
	Tier            int      `json:"tier"`
	CoveragePercent uint16   `json:"coverage_percent"`
	GasCost         *big.Int `json:"gas_cost"`
	CoveredCost     *big.Int `json:"covered_cost"`
	UserCost        *big.Int `json:"user_cost"`
}

// PoolStatus summarizes the sponsoring pool
type PoolStatus struct {
	Balance        *big.Int `json:"balance"`
	MinimumBalance *big.Int `json:"minimum_balance"`
	Paused         bool     `json:"paused"`
	Tiers          []Tier   `json:"tiers"`
}

func cloneOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
