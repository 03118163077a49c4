package business

import (
	"github.com/ethereum/go-ethereum/common"
)

// MetaTransaction is an EIP-712 signed arbitrary call
type MetaTransaction struct {
	From              common.Address `json:"from"`
	Nonce             uint64         `json:"nonce"`
	FunctionSignature []byte         `json:"function_signature"`
	Signature         []byte         `json:"signature"`
}

// MetaTransactionResult is returned after a meta-transaction is executed
type MetaTransactionResult struct {
	From       common.Address `json:"from"`
	Relayer    common.Address `json:"relayer"`
	Nonce      uint64         `json:"nonce"`
	ReturnData []byte         `json:"return_data"`
}
