package config_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/cyphera/cyphera-relay/internal/config"
	"github.com/cyphera/cyphera-relay/internal/constants"
	"github.com/cyphera/cyphera-relay/internal/services"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func etherFraction(numerator, denominator int64) *big.Int {
	v := new(big.Int).Mul(big.NewInt(numerator), big.NewInt(1e18))
	return v.Div(v, big.NewInt(denominator))
}

func TestDefaultParams_WeiDenominatedRelay(t *testing.T) {
	ctx := context.Background()
	admin := common.HexToAddress("0x00000000000000000000000000000000000a0001")
	relayer := common.HexToAddress("0x00000000000000000000000000000000000b0001")
	dispatcherAddr := common.HexToAddress("0x00000000000000000000000000000000000d0001")

	params := config.DefaultParams()
	assert.Equal(t, uint64(constants.DefaultCallGasLimit), params.CallGasLimit())

	poolConfig, err := params.GasPoolConfig()
	require.NoError(t, err)
	registryConfig, err := params.RegistryConfig()
	require.NoError(t, err)
	dispatcherConfig, err := params.DispatcherConfig(dispatcherAddr)
	require.NoError(t, err)
	assert.Equal(t, etherFraction(1, 1), dispatcherConfig.MaxGasPerRequest)

	access := services.NewAccessControlService(admin)
	require.NoError(t, access.GrantRole(ctx, admin, constants.RoleOperator, dispatcherAddr))
	pool := services.NewGasPoolService(access, nil, nil, poolConfig)
	require.NoError(t, pool.ReplenishPool(ctx, admin, etherFraction(10, 1)))
	registry := services.NewRelayerRegistryService(access, registryConfig)
	_, err = registry.RegisterRelayer(ctx, relayer, registryConfig.MinRelayerBalance)
	require.NoError(t, err)

	dispatcher, err := services.NewRelayDispatcherService(access, registry, pool, nil, dispatcherConfig)
	require.NoError(t, err)
	t.Cleanup(dispatcher.Close)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	user := crypto.PubkeyToAddress(key.PublicKey)

	signed := func(nonce uint64, gas *big.Int) business.RelayRequest {
		req := business.RelayRequest{User: user, GasAmount: gas, Nonce: nonce, ExpiryTime: time.Now().Add(time.Hour)}
		sig, err := services.SignRelayRequest(req, dispatcherAddr, key)
		require.NoError(t, err)
		req.Signature = sig
		return req
	}

	// Basic tier: 25% coverage, 0.1 ether per day
	result, err := dispatcher.ExecuteRelay(ctx, relayer, signed(0, etherFraction(1, 10)))
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Equal(t, etherFraction(1, 40), result.CoveredAmount)

	account, ok := pool.UserAccount(user)
	require.True(t, ok)
	assert.Equal(t, etherFraction(1, 10), account.DailyUsed)

	result, err = dispatcher.ExecuteRelay(ctx, relayer, signed(1, etherFraction(1, 10)))
	require.NoError(t, err)
	assert.False(t, result.Succeeded)
	assert.Equal(t, services.ErrDailyLimitExceeded.Error(), result.FailureReason)

	_, err = dispatcher.ExecuteRelay(ctx, relayer, signed(2, etherFraction(2, 1)))
	assert.ErrorIs(t, err, services.ErrGasLimitExceeded)
	assert.Equal(t, uint64(2), dispatcher.GetUserNonce(user))
}
