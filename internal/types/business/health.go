package business

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// AlertSeverity grades monitor findings
type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is a single monitor finding
type Alert struct {
	Kind     string        `json:"kind"`
	Severity AlertSeverity `json:"severity"`
	Message  string        `json:"message"`
}

// RelayerHealth is the monitor view of one relayer
type RelayerHealth struct {
	Address     common.Address `json:"address"`
	IsActive    bool           `json:"is_active"`
	Balance     *big.Int       `json:"balance"`
	SuccessRate uint64         `json:"success_rate"`
	IdleFor     time.Duration  `json:"idle_for"`
}

// HealthReport is produced by a monitor pass
type HealthReport struct {
	CheckedAt      time.Time       `json:"checked_at"`
	PoolBalance    *big.Int        `json:"pool_balance"`
	MinimumBalance *big.Int        `json:"minimum_balance"`
	Paused         bool            `json:"paused"`
	OracleStale    bool            `json:"oracle_stale"`
	LastPriceAt    time.Time       `json:"last_price_at"`
	Relayers       []RelayerHealth `json:"relayers"`
	Alerts         []Alert         `json:"alerts"`
}

// Healthy reports whether the pass produced no alerts
func (h HealthReport) Healthy() bool {
	return len(h.Alerts) == 0
}
