package business

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// RelayerAccount is a staked operator entitled to submit relay requests
type RelayerAccount struct {
	Address          common.Address `json:"address"`
	Balance          *big.Int       `json:"balance"`
	IsActive         bool           `json:"is_active"`
	RegisteredAt     time.Time      `json:"registered_at"`
	LastActivityTime time.Time      `json:"last_activity_time"`
	SuccessfulRelays uint64         `json:"successful_relays"`
	FailedRelays     uint64         `json:"failed_relays"`
}

// Copy returns a deep copy of the account
func (r RelayerAccount) Copy() RelayerAccount {
	out := r
	out.Balance = cloneOrZero(r.Balance)
	return out
}

// RelayerMetrics reports a relayer's performance
type RelayerMetrics struct {
	SuccessfulRelays uint64 `json:"successful_relays"`
	FailedRelays     uint64 `json:"failed_relays"`
	SuccessRate      uint64 `json:"success_rate"` // percent, 0-100
}
