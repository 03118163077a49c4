package helpers

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Stage constants define the possible deployment/runtime environments.
const (
	StageProd  = "prod"
	StageDev   = "dev"
	StageLocal = "local"
)

// IsValidStage checks if the provided stage string is one of the defined valid stages.
func IsValidStage(stage string) bool {
	switch stage {
	case StageProd, StageDev, StageLocal:
		return true
	default:
		return false
	}
}

// ParseAddress validates a hex address and returns it in checksum form
func ParseAddress(raw string) (common.Address, error) {
	raw = strings.TrimSpace(raw)
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("invalid address: %q", raw)
	}
	return common.HexToAddress(raw), nil
}

// ParseAmount parses a base-10 integer amount. Negative values are rejected.
func ParseAmount(raw string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(strings.TrimSpace(raw), 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %q", raw)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("amount must not be negative: %s", raw)
	}
	return amount, nil
}

// ParseDecimal converts a decimal string such as "3012.45" into an integer
// with the given number of fractional digits. Extra digits are truncated.
func ParseDecimal(raw string, decimals uint8) (*big.Int, error) {
	value, ok := new(big.Rat).SetString(strings.TrimSpace(raw))
	if !ok {
		return nil, fmt.Errorf("invalid decimal: %q", raw)
	}
	if value.Sign() < 0 {
		return nil, fmt.Errorf("decimal must not be negative: %s", raw)
	}
	value.Mul(value, new(big.Rat).SetInt(ToWei(1, decimals)))
	return new(big.Int).Quo(value.Num(), value.Denom()), nil
}

// ToWei scales a whole-unit amount by 10^decimals
func ToWei(units int64, decimals uint8) *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return new(big.Int).Mul(big.NewInt(units), scale)
}

// CloneBig returns a copy of v, or zero when v is nil
func CloneBig(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
