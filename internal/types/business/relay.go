package business

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// RelayState is the lifecycle position of a relay request
type RelayState string

const (
	RelayStateReceived  RelayState = "received"
	RelayStateValidated RelayState = "validated"
	RelayStateExecuted  RelayState = "executed"
	RelayStateRejected  RelayState = "rejected"
)

// RelayRequest is a user-signed request for sponsored execution
type RelayRequest struct {
	User       common.Address `json:"user"`
	GasAmount  *big.Int       `json:"gas_amount"`
	Nonce      uint64         `json:"nonce"`
	ExpiryTime time.Time      `json:"expiry_time"`
	Data       []byte         `json:"data"`
	Signature  []byte         `json:"signature"`
}

// RelayResult is the record produced for every accepted relay request
type RelayResult struct {
	User          common.Address `json:"user"`
	Relayer       common.Address `json:"relayer"`
	GasAmount     *big.Int       `json:"gas_amount"`
	CoveredAmount *big.Int       `json:"covered_amount"`
	Nonce         uint64         `json:"nonce"`
	State         RelayState     `json:"state"`
	Succeeded     bool           `json:"succeeded"`
	FailureReason string         `json:"failure_reason,omitempty"`
}

// BatchRelayResult pairs a batch entry with its outcome
type BatchRelayResult struct {
	Result *RelayResult `json:"result,omitempty"`
	Err    error        `json:"-"`
}
