package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cyphera/cyphera-relay/internal/constants"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const erc20BalanceABI = `[{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"}]`

// Dial connects to an Ethereum JSON-RPC endpoint
func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
	}
	return client, nil
}

// GasPriceFeed reports the node's suggested gas price in wei per gas
type GasPriceFeed struct {
	pricer ethereum.GasPricer
	clock  func() time.Time
}

// NewGasPriceFeed creates a gas price feed backed by pricer
func NewGasPriceFeed(pricer ethereum.GasPricer) *GasPriceFeed {
	return &GasPriceFeed{pricer: pricer, clock: time.Now}
}

// Description implements interfaces.PriceFeed
func (f *GasPriceFeed) Description() string {
	return "node gas price"
}

// LatestAnswer implements interfaces.PriceFeed
func (f *GasPriceFeed) LatestAnswer(ctx context.Context) (*business.FeedReading, error) {
	price, err := f.pricer.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}
	return &business.FeedReading{Value: price, Decimals: 0, UpdatedAt: f.clock()}, nil
}

// TokenBalanceSource reads ERC-20 balances of the qualifying token, caching
// each answer for a short TTL
type TokenBalanceSource struct {
	caller ethereum.ContractCaller
	token  common.Address
	abi    abi.ABI
	cache  *expirable.LRU[common.Address, *big.Int]
	logger *zap.Logger
}

// NewTokenBalanceSource creates a balance source for token. A ttl of zero
// uses the default cache TTL.
func NewTokenBalanceSource(caller ethereum.ContractCaller, token common.Address, ttl time.Duration) (*TokenBalanceSource, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20BalanceABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse erc20 abi: %w", err)
	}
	if ttl <= 0 {
		ttl = constants.DefaultBalanceCacheTTL
	}
	return &TokenBalanceSource{
		caller: caller,
		token:  token,
		abi:    parsed,
		cache:  expirable.NewLRU[common.Address, *big.Int](constants.DefaultBalanceCacheSize, nil, ttl),
		logger: logger.Log.With(zap.String("component", string(logger.ComponentPool)), zap.String("token", token.Hex())),
	}, nil
}

// BalanceOf implements interfaces.BalanceSource
func (s *TokenBalanceSource) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	if cached, ok := s.cache.Get(account); ok {
		return new(big.Int).Set(cached), nil
	}

	input, err := s.abi.Pack("balanceOf", account)
	if err != nil {
		return nil, fmt.Errorf("failed to pack balanceOf: %w", err)
	}
	output, err := s.caller.CallContract(ctx, ethereum.CallMsg{To: &s.token, Data: input}, nil)
	if err != nil {
		return nil, fmt.Errorf("balanceOf call failed: %w", err)
	}

	values, err := s.abi.Unpack("balanceOf", output)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack balanceOf: %w", err)
	}
	balance, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected balanceOf result %T", values[0])
	}

	s.cache.Add(account, new(big.Int).Set(balance))
	s.logger.Debug("Token balance fetched", zap.String("account", account.Hex()), zap.String("balance", balance.String()))
	return balance, nil
}

// CallExecutor runs relayed payloads as calls against a target contract on
// behalf of the user and returns the call's return data. A revert is reported
// as an error.
type CallExecutor struct {
	caller ethereum.ContractCaller
	target common.Address
	gas    uint64
}

// NewCallExecutor creates an executor targeting target with a per-call gas cap
func NewCallExecutor(caller ethereum.ContractCaller, target common.Address, gas uint64) *CallExecutor {
	return &CallExecutor{caller: caller, target: target, gas: gas}
}

// Execute implements interfaces.ActionExecutor
func (e *CallExecutor) Execute(ctx context.Context, from common.Address, data []byte) ([]byte, error) {
	output, err := e.caller.CallContract(ctx, ethereum.CallMsg{
		From: from,
		To:   &e.target,
		Gas:  e.gas,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("call to %s failed: %w", e.target.Hex(), err)
	}
	return output, nil
}
