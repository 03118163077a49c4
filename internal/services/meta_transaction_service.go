package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/cyphera/cyphera-relay/internal/constants"
	"github.com/cyphera/cyphera-relay/internal/events"
	"github.com/cyphera/cyphera-relay/internal/interfaces"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"go.uber.org/zap"
)

// ErrMetaCallFailed is returned when the executor rejects the signed call
var ErrMetaCallFailed = errors.New("meta transaction call failed")

// MetaTxConfig is the EIP-712 domain meta-transactions are signed under
type MetaTxConfig struct {
	DomainName        string
	DomainVersion     string
	ChainID           int64
	VerifyingContract common.Address
}

func (c MetaTxConfig) withDefaults() MetaTxConfig {
	if c.DomainName == "" {
		c.DomainName = constants.DefaultMetaTxDomainName
	}
	if c.DomainVersion == "" {
		c.DomainVersion = constants.DefaultMetaTxDomainVersion
	}
	return c
}

var metaTransactionTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	"MetaTransaction": {
		{Name: "nonce", Type: "uint256"},
		{Name: "from", Type: "address"},
		{Name: "functionSignature", Type: "bytes"},
	},
}

// MetaTransactionService executes arbitrary calls signed off-process with
// EIP-712. It keeps its own per-user nonces.
type MetaTransactionService struct {
	config   MetaTxConfig
	executor interfaces.ActionExecutor

	mu     sync.Mutex
	nonces map[common.Address]uint64

	clock     Clock
	publisher events.Publisher
	logger    *zap.Logger
}

// NewMetaTransactionService creates the executor for the given domain
func NewMetaTransactionService(executor interfaces.ActionExecutor, config MetaTxConfig, opts ...Option) *MetaTransactionService {
	o := applyOptions(logger.ComponentMetaTx, opts)

	return &MetaTransactionService{
		config:    config.withDefaults(),
		executor:  executor,
		nonces:    make(map[common.Address]uint64),
		clock:     o.clock,
		publisher: o.publisher,
		logger:    o.logger,
	}
}

// TypedData builds the EIP-712 payload for a meta-transaction
func (s *MetaTransactionService) TypedData(from common.Address, nonce uint64, functionSignature []byte) apitypes.TypedData {
	return MetaTransactionTypedData(s.config, from, nonce, functionSignature)
}

// MetaTransactionTypedData builds the EIP-712 payload under config's domain
func MetaTransactionTypedData(config MetaTxConfig, from common.Address, nonce uint64, functionSignature []byte) apitypes.TypedData {
	config = config.withDefaults()
	return apitypes.TypedData{
		Types:       metaTransactionTypes,
		PrimaryType: "MetaTransaction",
		Domain: apitypes.TypedDataDomain{
			Name:              config.DomainName,
			Version:           config.DomainVersion,
			ChainId:           math.NewHexOrDecimal256(config.ChainID),
			VerifyingContract: config.VerifyingContract.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"nonce":             new(big.Int).SetUint64(nonce).String(),
			"from":              from.Hex(),
			"functionSignature": hexutil.Encode(functionSignature),
		},
	}
}

// TypedDataHash returns the EIP-712 digest the user signs
func (s *MetaTransactionService) TypedDataHash(from common.Address, nonce uint64, functionSignature []byte) (common.Hash, error) {
	hash, _, err := apitypes.TypedDataAndHash(s.TypedData(from, nonce, functionSignature))
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to hash typed data: %w", err)
	}
	return common.BytesToHash(hash), nil
}

// GetNonce returns the next meta-transaction nonce for user
func (s *MetaTransactionService) GetNonce(user common.Address) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nonces[user]
}

// ExecuteMetaTransaction verifies tx and invokes its call on behalf of
// tx.From. The nonce is consumed before the call runs.
func (s *MetaTransactionService) ExecuteMetaTransaction(ctx context.Context, relayer common.Address, tx business.MetaTransaction) (*business.MetaTransactionResult, error) {
	const op = "execute meta transaction"

	if len(tx.FunctionSignature) == 0 {
		return nil, newRelayError(op, ErrInvalidAmount, "from", tx.From.Hex(), "reason", "empty call")
	}

	if s.executor == nil {
		return nil, newRelayError(op, ErrNoActionExecutor, "from", tx.From.Hex())
	}

	hash, err := s.TypedDataHash(tx.From, tx.Nonce, tx.FunctionSignature)
	if err != nil {
		return nil, newRelayError(op, err, "from", tx.From.Hex())
	}
	signatureValid := VerifySignature(hash, tx.Signature, tx.From)

	s.mu.Lock()
	expected := s.nonces[tx.From]
	if tx.Nonce != expected {
		s.mu.Unlock()
		return nil, newRelayError(op, ErrInvalidNonce, "from", tx.From.Hex(), "nonce", fmt.Sprint(tx.Nonce), "expected", fmt.Sprint(expected))
	}
	if !signatureValid {
		s.mu.Unlock()
		return nil, newRelayError(op, ErrInvalidSignature, "from", tx.From.Hex())
	}
	s.nonces[tx.From] = expected + 1
	s.mu.Unlock()

	returnData, err := s.executor.Execute(ctx, tx.From, tx.FunctionSignature)
	if err != nil {
		s.logger.Warn("Meta transaction call failed",
			zap.String("from", tx.From.Hex()),
			zap.Uint64("nonce", tx.Nonce),
			zap.Error(err))
		return nil, newRelayError(op, fmt.Errorf("%w: %v", ErrMetaCallFailed, err), "from", tx.From.Hex())
	}

	s.logger.Info("Meta transaction executed",
		zap.String("from", tx.From.Hex()),
		zap.String("relayer", relayer.Hex()),
		zap.Uint64("nonce", tx.Nonce))
	s.publisher.Emit(ctx, events.New(events.MetaTransactionExecuted, s.clock(),
		"from", tx.From.Hex(),
		"relayer", relayer.Hex(),
		"nonce", fmt.Sprint(tx.Nonce),
		"function_signature", hexutil.Encode(tx.FunctionSignature)))

	return &business.MetaTransactionResult{
		From:       tx.From,
		Relayer:    relayer,
		Nonce:      tx.Nonce,
		ReturnData: returnData,
	}, nil
}
