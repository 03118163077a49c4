package handlers_test

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"testing"
	"time"

	"github.com/cyphera/cyphera-relay/internal/handlers"
	"github.com/cyphera/cyphera-relay/internal/mocks"
	"github.com/cyphera/cyphera-relay/internal/services"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRelayRouter(t *testing.T) (*gin.Engine, *mocks.MockIRelayDispatcherService, *mocks.MockIMetaTransactionService) {
	ctrl := gomock.NewController(t)
	dispatcher := mocks.NewMockIRelayDispatcherService(ctrl)
	metaTx := mocks.NewMockIMetaTransactionService(ctrl)
	relay := handlers.NewRelayHandler(dispatcher)
	meta := handlers.NewMetaTransactionHandler(metaTx)

	router := newTestRouter()
	router.POST("/relay/execute", relay.ExecuteRelay)
	router.POST("/relay/batch", relay.ExecuteBatch)
	router.GET("/relay/nonce/:address", relay.GetNonce)
	router.PUT("/relay/max-gas", relay.SetMaxGas)
	router.POST("/meta/execute", meta.ExecuteMetaTransaction)
	router.GET("/meta/nonce/:address", meta.GetNonce)
	return router, dispatcher, metaTx
}

func relayBody(nonce uint64) handlers.RelayRequestBody {
	return handlers.RelayRequestBody{
		User:       userAddr.Hex(),
		GasAmount:  "21000",
		Nonce:      nonce,
		ExpiryTime: 1_900_000_000,
		Data:       "0xdeadbeef",
		Signature:  hexutil.Encode(make([]byte, 65)),
	}
}

func TestRelayHandler_ExecuteRelay(t *testing.T) {
	tests := []struct {
		name       string
		body       handlers.RelayRequestBody
		setupMocks func(d *mocks.MockIRelayDispatcherService)
		wantStatus int
	}{
		{
			name: "executed",
			body: relayBody(0),
			setupMocks: func(d *mocks.MockIRelayDispatcherService) {
				d.EXPECT().ExecuteRelay(gomock.Any(), callerAddr, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ common.Address, req business.RelayRequest) (*business.RelayResult, error) {
						assert.Equal(t, userAddr, req.User)
						assert.Equal(t, int64(21000), req.GasAmount.Int64())
						assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, req.Data)
						assert.True(t, req.ExpiryTime.Equal(time.Unix(1_900_000_000, 0)))
						assert.Len(t, req.Signature, 65)
						return &business.RelayResult{
							User: req.User, Relayer: callerAddr, GasAmount: req.GasAmount,
							CoveredAmount: big.NewInt(21000), State: business.RelayStateExecuted, Succeeded: true,
						}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "replayed nonce",
			body: relayBody(3),
			setupMocks: func(d *mocks.MockIRelayDispatcherService) {
				d.EXPECT().ExecuteRelay(gomock.Any(), callerAddr, gomock.Any()).Return(nil, services.ErrInvalidNonce)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "not an active relayer",
			body: relayBody(0),
			setupMocks: func(d *mocks.MockIRelayDispatcherService) {
				d.EXPECT().ExecuteRelay(gomock.Any(), callerAddr, gomock.Any()).Return(nil, services.ErrNotActiveRelayer)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "malformed signature",
			body: func() handlers.RelayRequestBody {
				b := relayBody(0)
				b.Signature = "zz"
				return b
			}(),
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "malformed data",
			body: func() handlers.RelayRequestBody {
				b := relayBody(0)
				b.Data = "0xabc"
				return b
			}(),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, dispatcher, _ := newRelayRouter(t)
			if tt.setupMocks != nil {
				tt.setupMocks(dispatcher)
			}
			w := doRequest(t, router, http.MethodPost, "/relay/execute", tt.body)
			assertStatus(t, w, tt.wantStatus)

			if tt.wantStatus == http.StatusOK {
				var resp handlers.RelayResultResponse
				decode(t, w, &resp)
				assert.True(t, resp.Succeeded)
				assert.Equal(t, "21000", resp.CoveredAmount)
				assert.Equal(t, string(business.RelayStateExecuted), resp.State)
			}
		})
	}
}

func TestRelayHandler_ExecuteBatch(t *testing.T) {
	t.Run("results keep input order", func(t *testing.T) {
		router, dispatcher, _ := newRelayRouter(t)
		dispatcher.EXPECT().ExecuteBatch(gomock.Any(), callerAddr, gomock.Len(2)).Return([]business.BatchRelayResult{
			{Result: &business.RelayResult{User: userAddr, Nonce: 0, Succeeded: true, GasAmount: big.NewInt(1), CoveredAmount: big.NewInt(1)}},
			{Err: &services.RelayError{Kind: services.KindValidation, Op: "execute relay", Err: services.ErrRequestExpired}},
		})

		w := doRequest(t, router, http.MethodPost, "/relay/batch", handlers.BatchRelayRequest{
			Requests: []handlers.RelayRequestBody{relayBody(0), relayBody(1)},
		})
		assertStatus(t, w, http.StatusOK)

		var resp struct {
			Data []handlers.BatchItemResponse `json:"data"`
		}
		decode(t, w, &resp)
		require.Len(t, resp.Data, 2)
		require.NotNil(t, resp.Data[0].Result)
		assert.True(t, resp.Data[0].Result.Succeeded)
		assert.Equal(t, services.ErrRequestExpired.Error(), resp.Data[1].Error)
		assert.Equal(t, string(services.KindValidation), resp.Data[1].Kind)
	})

	t.Run("empty batch", func(t *testing.T) {
		router, _, _ := newRelayRouter(t)
		w := doRequest(t, router, http.MethodPost, "/relay/batch", handlers.BatchRelayRequest{Requests: []handlers.RelayRequestBody{}})
		assertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("oversized batch", func(t *testing.T) {
		router, _, _ := newRelayRouter(t)
		requests := make([]handlers.RelayRequestBody, handlers.MaxBatchSize+1)
		for i := range requests {
			requests[i] = relayBody(uint64(i))
		}
		w := doRequest(t, router, http.MethodPost, "/relay/batch", handlers.BatchRelayRequest{Requests: requests})
		assertStatus(t, w, http.StatusBadRequest)
	})
}

func TestRelayHandler_NonceAndSettings(t *testing.T) {
	router, dispatcher, metaTx := newRelayRouter(t)
	dispatcher.EXPECT().GetUserNonce(userAddr).Return(uint64(7))
	metaTx.EXPECT().GetNonce(userAddr).Return(uint64(2))
	dispatcher.EXPECT().SetMaxGasPerRequest(gomock.Any(), callerAddr, big.NewInt(300000)).Return(services.ErrUnauthorized)

	w := doRequest(t, router, http.MethodGet, "/relay/nonce/"+userAddr.Hex(), nil)
	assertStatus(t, w, http.StatusOK)
	var nonce handlers.NonceResponse
	decode(t, w, &nonce)
	assert.Equal(t, uint64(7), nonce.Nonce)

	w = doRequest(t, router, http.MethodGet, "/meta/nonce/"+userAddr.Hex(), nil)
	assertStatus(t, w, http.StatusOK)
	decode(t, w, &nonce)
	assert.Equal(t, uint64(2), nonce.Nonce)

	w = doRequest(t, router, http.MethodPut, "/relay/max-gas", handlers.MaxGasRequest{MaxGasPerRequest: "300000"})
	assertStatus(t, w, http.StatusForbidden)
}

func TestMetaTransactionHandler_Execute(t *testing.T) {
	body := handlers.MetaTransactionRequest{
		From:              userAddr.Hex(),
		Nonce:             0,
		FunctionSignature: "0xa9059cbb",
		Signature:         hexutil.Encode(make([]byte, 65)),
	}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "executed", wantStatus: http.StatusOK},
		{name: "bad signature", err: services.ErrInvalidSignature, wantStatus: http.StatusBadRequest},
		{name: "call reverted", err: errors.Join(services.ErrMetaCallFailed, errors.New("execution reverted")), wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, metaTx := newRelayRouter(t)
			call := metaTx.EXPECT().ExecuteMetaTransaction(gomock.Any(), callerAddr, business.MetaTransaction{
				From:              userAddr,
				FunctionSignature: []byte{0xa9, 0x05, 0x9c, 0xbb},
				Signature:         make([]byte, 65),
			})
			if tt.err != nil {
				call.Return(nil, tt.err)
			} else {
				call.Return(&business.MetaTransactionResult{From: userAddr, Relayer: callerAddr, ReturnData: []byte{0x01}}, nil)
			}

			w := doRequest(t, router, http.MethodPost, "/meta/execute", body)
			assertStatus(t, w, tt.wantStatus)
			if tt.wantStatus == http.StatusOK {
				var resp handlers.MetaTransactionResponse
				decode(t, w, &resp)
				assert.Equal(t, "0x01", resp.ReturnData)
				assert.Equal(t, callerAddr.Hex(), resp.Relayer)
			}
		})
	}
}
