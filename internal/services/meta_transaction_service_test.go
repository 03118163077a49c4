package services_test

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"testing"

	"github.com/cyphera/cyphera-relay/internal/events"
	"github.com/cyphera/cyphera-relay/internal/mocks"
	"github.com/cyphera/cyphera-relay/internal/services"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var metaTxConfig = services.MetaTxConfig{
	ChainID:           137,
	VerifyingContract: common.HexToAddress("0x00000000000000000000000000000000000c0001"),
}

func signMetaTx(t *testing.T, svc *services.MetaTransactionService, key *ecdsa.PrivateKey, from common.Address, nonce uint64, call []byte) business.MetaTransaction {
	t.Helper()
	hash, err := svc.TypedDataHash(from, nonce, call)
	require.NoError(t, err)
	sig, err := services.SignMetaTransaction(metaTxConfig, from, nonce, call, key)
	require.NoError(t, err)
	require.True(t, services.VerifySignature(hash, sig, from))
	return business.MetaTransaction{From: from, Nonce: nonce, FunctionSignature: call, Signature: sig}
}

func TestMetaTransactionService_TypedDataHash(t *testing.T) {
	svc := services.NewMetaTransactionService(nil, metaTxConfig)
	from := common.HexToAddress("0x00000000000000000000000000000000000e0001")
	call := []byte{0xde, 0xad, 0xbe, 0xef}

	domainType := crypto.Keccak256([]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))
	domainSeparator := crypto.Keccak256(
		domainType,
		crypto.Keccak256([]byte("Verix Protocol")),
		crypto.Keccak256([]byte("1")),
		common.BigToHash(big.NewInt(137)).Bytes(),
		common.LeftPadBytes(metaTxConfig.VerifyingContract.Bytes(), 32),
	)
	structType := crypto.Keccak256([]byte("MetaTransaction(uint256 nonce,address from,bytes functionSignature)"))
	structHash := crypto.Keccak256(
		structType,
		common.BigToHash(big.NewInt(3)).Bytes(),
		common.LeftPadBytes(from.Bytes(), 32),
		crypto.Keccak256(call),
	)
	want := crypto.Keccak256([]byte{0x19, 0x01}, domainSeparator, structHash)

	got, err := svc.TypedDataHash(from, 3, call)
	require.NoError(t, err)
	assert.Equal(t, common.BytesToHash(want), got)

	other := services.NewMetaTransactionService(nil, services.MetaTxConfig{ChainID: 1, VerifyingContract: metaTxConfig.VerifyingContract})
	otherHash, err := other.TypedDataHash(from, 3, call)
	require.NoError(t, err)
	assert.NotEqual(t, got, otherHash)
}

func TestMetaTransactionService_ExecuteMetaTransaction(t *testing.T) {
	ctx := context.Background()
	key, from := newUserKey(t)
	otherKey, _ := newUserKey(t)
	call := []byte{0x12, 0x34, 0x56, 0x78}

	tests := []struct {
		name       string
		build      func(svc *services.MetaTransactionService) business.MetaTransaction
		setupMocks func(executor *mocks.MockActionExecutor)
		wantErr    error
		wantNonce  uint64
	}{
		{
			name: "valid call",
			build: func(svc *services.MetaTransactionService) business.MetaTransaction {
				return signMetaTx(t, svc, key, from, 0, call)
			},
			setupMocks: func(executor *mocks.MockActionExecutor) {
				executor.EXPECT().Execute(gomock.Any(), from, call).Return([]byte{0x01}, nil)
			},
			wantNonce: 1,
		},
		{
			name: "future nonce",
			build: func(svc *services.MetaTransactionService) business.MetaTransaction {
				return signMetaTx(t, svc, key, from, 1, call)
			},
			wantErr: services.ErrInvalidNonce,
		},
		{
			name: "signed by someone else",
			build: func(svc *services.MetaTransactionService) business.MetaTransaction {
				return signMetaTx(t, svc, otherKey, from, 0, call)
			},
			wantErr: services.ErrInvalidSignature,
		},
		{
			name: "call swapped after signing",
			build: func(svc *services.MetaTransactionService) business.MetaTransaction {
				tx := signMetaTx(t, svc, key, from, 0, call)
				tx.FunctionSignature = []byte{0x87, 0x65, 0x43, 0x21}
				return tx
			},
			wantErr: services.ErrInvalidSignature,
		},
		{
			name: "empty call",
			build: func(svc *services.MetaTransactionService) business.MetaTransaction {
				return business.MetaTransaction{From: from}
			},
			wantErr: services.ErrInvalidAmount,
		},
		{
			name: "call reverts",
			build: func(svc *services.MetaTransactionService) business.MetaTransaction {
				return signMetaTx(t, svc, key, from, 0, call)
			},
			setupMocks: func(executor *mocks.MockActionExecutor) {
				executor.EXPECT().Execute(gomock.Any(), from, call).Return(nil, errors.New("execution reverted"))
			},
			wantErr:   services.ErrMetaCallFailed,
			wantNonce: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			executor := mocks.NewMockActionExecutor(ctrl)
			if tt.setupMocks != nil {
				tt.setupMocks(executor)
			}
			sink := &events.MemorySink{}
			svc := services.NewMetaTransactionService(executor, metaTxConfig, services.WithPublisher(sink))

			result, err := svc.ExecuteMetaTransaction(ctx, relayerAddr, tt.build(svc))
			assert.Equal(t, tt.wantNonce, svc.GetNonce(from))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
				assert.Empty(t, sink.OfType(events.MetaTransactionExecuted))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, from, result.From)
			assert.Equal(t, relayerAddr, result.Relayer)
			assert.Equal(t, []byte{0x01}, result.ReturnData)
			assert.Len(t, sink.OfType(events.MetaTransactionExecuted), 1)
		})
	}
}

func TestMetaTransactionService_Replay(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockActionExecutor(ctrl)
	key, from := newUserKey(t)
	call := []byte{0x01, 0x02, 0x03, 0x04}

	executor.EXPECT().Execute(gomock.Any(), from, call).Return(nil, nil).Times(2)

	svc := services.NewMetaTransactionService(executor, metaTxConfig)
	first := signMetaTx(t, svc, key, from, 0, call)

	_, err := svc.ExecuteMetaTransaction(ctx, relayerAddr, first)
	require.NoError(t, err)

	_, err = svc.ExecuteMetaTransaction(ctx, relayerAddr, first)
	assert.ErrorIs(t, err, services.ErrInvalidNonce)

	_, err = svc.ExecuteMetaTransaction(ctx, relayerAddr, signMetaTx(t, svc, key, from, 1, call))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), svc.GetNonce(from))
}

func TestMetaTransactionService_NoExecutorKeepsNonce(t *testing.T) {
	ctx := context.Background()
	key, from := newUserKey(t)
	sink := &events.MemorySink{}
	svc := services.NewMetaTransactionService(nil, metaTxConfig, services.WithPublisher(sink))

	result, err := svc.ExecuteMetaTransaction(ctx, relayerAddr, signMetaTx(t, svc, key, from, 0, []byte{0x01, 0x02, 0x03, 0x04}))
	assert.ErrorIs(t, err, services.ErrNoActionExecutor)
	assert.Nil(t, result)
	assert.Equal(t, uint64(0), svc.GetNonce(from))
	assert.Empty(t, sink.OfType(events.MetaTransactionExecuted))
}
