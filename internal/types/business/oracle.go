package business

import (
	"math/big"
	"time"
)

// PriceSnapshot is the latest normalized oracle reading
type PriceSnapshot struct {
	GasUnitPrice   *big.Int  `json:"gas_unit_price"`   // wei per gas unit
	NativeUSDPrice *big.Int  `json:"native_usd_price"` // 8 decimals
	LastUpdateTime time.Time `json:"last_update_time"`
}

// Copy returns a deep copy of the snapshot
func (p PriceSnapshot) Copy() PriceSnapshot {
	out := PriceSnapshot{LastUpdateTime: p.LastUpdateTime}
	if p.GasUnitPrice != nil {
		out.GasUnitPrice = new(big.Int).Set(p.GasUnitPrice)
	}
	if p.NativeUSDPrice != nil {
		out.NativeUSDPrice = new(big.Int).Set(p.NativeUSDPrice)
	}
	return out
}

// FeedReading is a raw answer from an external price feed
type FeedReading struct {
	Value     *big.Int
	Decimals  uint8
	UpdatedAt time.Time
}
