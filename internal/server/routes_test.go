package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cyphera/cyphera-relay/internal/constants"
	"github.com/cyphera/cyphera-relay/internal/handlers"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/cyphera/cyphera-relay/internal/middleware"
	"github.com/cyphera/cyphera-relay/internal/server"
	"github.com/cyphera/cyphera-relay/internal/services"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
	gin.SetMode(gin.TestMode)
}

var (
	adminAddr      = common.HexToAddress("0x00000000000000000000000000000000000a0001")
	relayerAddr    = common.HexToAddress("0x00000000000000000000000000000000000b0001")
	dispatcherAddr = common.HexToAddress("0x00000000000000000000000000000000000d0001")
)

type apiFixture struct {
	router *gin.Engine
	auth   *middleware.Authenticator
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	ctx := context.Background()

	access := services.NewAccessControlService(adminAddr)
	oracle := services.NewPriceOracleService(
		&services.StaticFeed{Name: "gas", Value: big.NewInt(20_000_000_000)},
		&services.StaticFeed{Name: "usd", Value: big.NewInt(300_000_000_000), Decimals: 8},
		access, services.OracleConfig{MaxAge: time.Hour})
	pool := services.NewGasPoolService(access, oracle, nil, services.GasPoolConfig{})
	registry := services.NewRelayerRegistryService(access, services.RegistryConfig{MinRelayerBalance: big.NewInt(1000)})
	require.NoError(t, access.GrantRole(ctx, adminAddr, constants.RoleOperator, dispatcherAddr))

	dispatcher, err := services.NewRelayDispatcherService(access, registry, pool, nil, services.DispatcherConfig{
		Address:          dispatcherAddr,
		MaxGasPerRequest: big.NewInt(500_000),
		BatchWorkers:     2,
	})
	require.NoError(t, err)
	t.Cleanup(dispatcher.Close)

	auth := middleware.NewAuthenticator([]byte("routes-test-secret"), "")
	router := server.NewRouter(server.Dependencies{
		Access:      access,
		Oracle:      oracle,
		Pool:        pool,
		Registry:    registry,
		Dispatcher:  dispatcher,
		MetaTx:      services.NewMetaTransactionService(nil, services.MetaTxConfig{ChainID: 1}),
		Auth:        auth,
		RateLimiter: middleware.NewRateLimiter(1000, 1000),
		Metrics:     middleware.NewMetrics(),
	})
	return &apiFixture{router: router, auth: auth}
}

func (f *apiFixture) do(t *testing.T, as *common.Address, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		token, err := f.auth.IssueToken(*as, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func signedRelay(t *testing.T, nonce uint64, gas int64) (handlers.RelayRequestBody, common.Address) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	user := crypto.PubkeyToAddress(key.PublicKey)

	expiry := time.Now().Add(time.Hour).Unix()
	sig, err := services.SignRelayRequest(business.RelayRequest{
		User:       user,
		GasAmount:  big.NewInt(gas),
		Nonce:      nonce,
		ExpiryTime: time.Unix(expiry, 0),
	}, dispatcherAddr, key)
	require.NoError(t, err)

	return handlers.RelayRequestBody{
		User:       user.Hex(),
		GasAmount:  big.NewInt(gas).String(),
		Nonce:      nonce,
		ExpiryTime: expiry,
		Signature:  hexutil.Encode(sig),
	}, user
}

func TestRouter_RelayFlow(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, &relayerAddr, http.MethodPost, "/api/v1/relayers/register", handlers.StakeRequest{Amount: "1000"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = f.do(t, &adminAddr, http.MethodPost, "/api/v1/pool/replenish", handlers.ReplenishRequest{Amount: "1000000"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body, user := signedRelay(t, 0, 21000)
	w = f.do(t, &relayerAddr, http.MethodPost, "/api/v1/relay/execute", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result handlers.RelayResultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Succeeded)
	assert.Equal(t, relayerAddr.Hex(), result.Relayer)
	// tier 0 covers 25%
	assert.Equal(t, "5250", result.CoveredAmount)

	w = f.do(t, &relayerAddr, http.MethodGet, "/api/v1/relay/nonce/"+user.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var nonce handlers.NonceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nonce))
	assert.Equal(t, uint64(1), nonce.Nonce)

	w = f.do(t, &relayerAddr, http.MethodPost, "/api/v1/relay/execute", body)
	assert.Equal(t, http.StatusBadRequest, w.Code, "replayed nonce")

	w = f.do(t, &relayerAddr, http.MethodGet, "/api/v1/pool", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var status handlers.PoolStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "994750", status.Balance)

	w = f.do(t, &relayerAddr, http.MethodGet, "/api/v1/relayers/"+relayerAddr.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var relayer handlers.RelayerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &relayer))
	assert.Equal(t, uint64(1), relayer.SuccessfulRelays)
	assert.Equal(t, uint64(100), relayer.SuccessRate)
}

func TestRouter_UnregisteredRelayerRejected(t *testing.T) {
	f := newAPIFixture(t)
	body, _ := signedRelay(t, 0, 21000)

	w := f.do(t, &relayerAddr, http.MethodPost, "/api/v1/relay/execute", body)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
}

func TestRouter_PauseGatesRegistration(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, &relayerAddr, http.MethodPost, "/api/v1/admin/pause", nil)
	assert.Equal(t, http.StatusForbidden, w.Code, "only ADMIN may pause")

	w = f.do(t, &adminAddr, http.MethodPost, "/api/v1/admin/pause", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(t, &relayerAddr, http.MethodPost, "/api/v1/relayers/register", handlers.StakeRequest{Amount: "1000"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, w.Body.String())

	w = f.do(t, &adminAddr, http.MethodPost, "/api/v1/admin/unpause", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, &relayerAddr, http.MethodPost, "/api/v1/relayers/register", handlers.StakeRequest{Amount: "1000"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestRouter_PublicAndProtectedRoutes(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, nil, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.CorrelationIDHeader))

	w = f.do(t, nil, http.MethodGet, "/api/v1/pool", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, &adminAddr, http.MethodGet, "/api/v1/events", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "events are only served with a database")

	w = f.do(t, nil, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "relay_http_requests_total")
}

func TestRouter_OracleCost(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, &adminAddr, http.MethodGet, "/api/v1/oracle/cost?units=21000", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "no snapshot yet")

	w = f.do(t, &adminAddr, http.MethodPost, "/api/v1/oracle/update", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(t, &adminAddr, http.MethodGet, "/api/v1/oracle/cost?units=21000", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var cost handlers.GasCostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cost))
	assert.Equal(t, "420000000000000", cost.Cost)
}
