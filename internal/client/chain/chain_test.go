package chain_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/cyphera/cyphera-relay/internal/client/chain"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
}

var (
	token   = common.HexToAddress("0x00000000000000000000000000000000000f0001")
	account = common.HexToAddress("0x00000000000000000000000000000000000e0001")
)

type fakeCaller struct {
	calls  []ethereum.CallMsg
	output []byte
	err    error
}

func (f *fakeCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.calls = append(f.calls, msg)
	return f.output, f.err
}

type fakePricer struct {
	price *big.Int
	err   error
}

func (f fakePricer) SuggestGasPrice(context.Context) (*big.Int, error) {
	return f.price, f.err
}

func TestGasPriceFeed_LatestAnswer(t *testing.T) {
	feed := chain.NewGasPriceFeed(fakePricer{price: big.NewInt(30_000_000_000)})
	reading, err := feed.LatestAnswer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(30_000_000_000), reading.Value)
	assert.Equal(t, uint8(0), reading.Decimals)
	assert.False(t, reading.UpdatedAt.IsZero())

	_, err = chain.NewGasPriceFeed(fakePricer{err: errors.New("rpc down")}).LatestAnswer(context.Background())
	assert.ErrorContains(t, err, "rpc down")
}

func TestTokenBalanceSource_BalanceOf(t *testing.T) {
	balance := new(big.Int).Mul(big.NewInt(5000), big.NewInt(1e18))
	caller := &fakeCaller{output: common.BigToHash(balance).Bytes()}

	source, err := chain.NewTokenBalanceSource(caller, token, 0)
	require.NoError(t, err)

	got, err := source.BalanceOf(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, balance, got)

	require.Len(t, caller.calls, 1)
	assert.Equal(t, token, *caller.calls[0].To)
	selector := crypto.Keccak256([]byte("balanceOf(address)"))[:4]
	assert.Equal(t, selector, caller.calls[0].Data[:4])
	assert.Equal(t, common.LeftPadBytes(account.Bytes(), 32), caller.calls[0].Data[4:])

	// served from cache
	got.SetInt64(0)
	again, err := source.BalanceOf(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, balance, again)
	assert.Len(t, caller.calls, 1)
}

func TestTokenBalanceSource_CallError(t *testing.T) {
	source, err := chain.NewTokenBalanceSource(&fakeCaller{err: errors.New("execution reverted")}, token, 0)
	require.NoError(t, err)

	_, err = source.BalanceOf(context.Background(), account)
	assert.ErrorContains(t, err, "execution reverted")
}

func TestCallExecutor_Execute(t *testing.T) {
	target := common.HexToAddress("0x00000000000000000000000000000000000f0002")
	caller := &fakeCaller{output: []byte{0x01}}
	executor := chain.NewCallExecutor(caller, target, 200_000)

	out, err := executor.Execute(context.Background(), account, []byte{0xaa})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, out)
	require.Len(t, caller.calls, 1)
	assert.Equal(t, account, caller.calls[0].From)
	assert.Equal(t, target, *caller.calls[0].To)
	assert.Equal(t, uint64(200_000), caller.calls[0].Gas)
}
