package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/cyphera/cyphera-relay/internal/handlers"
	"github.com/cyphera/cyphera-relay/internal/helpers"
	"github.com/cyphera/cyphera-relay/internal/middleware"
	"github.com/cyphera/cyphera-relay/internal/services"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dispatcher = common.HexToAddress("0x00000000000000000000000000000000000d0001")

func TestBuildRelayBody_VerifiesAgainstDispatcher(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	user := crypto.PubkeyToAddress(key.PublicKey)
	expiry := time.Now().Add(time.Hour)

	body, err := buildRelayBody(key, dispatcher, big.NewInt(21000), 4, expiry, []byte{0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, user.Hex(), body.User)
	assert.Equal(t, "0x0102", body.Data)
	assert.Equal(t, expiry.Unix(), body.ExpiryTime)

	sig, err := hexutil.Decode(body.Signature)
	require.NoError(t, err)
	hash := services.RelaySigningHash(business.RelayRequest{
		User:       user,
		GasAmount:  big.NewInt(21000),
		Nonce:      4,
		ExpiryTime: time.Unix(body.ExpiryTime, 0),
		Data:       []byte{0x01, 0x02},
	}, dispatcher)
	assert.True(t, services.VerifySignature(hash, sig, user))

	other := common.HexToAddress("0x00000000000000000000000000000000000d0002")
	assert.False(t, services.VerifySignature(services.RelaySigningHash(business.RelayRequest{
		User: user, GasAmount: big.NewInt(21000), Nonce: 4, ExpiryTime: time.Unix(body.ExpiryTime, 0), Data: []byte{0x01, 0x02},
	}, other), sig, user))
}

func TestBuildMetaBody_MatchesExecutorHash(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)
	config := services.MetaTxConfig{ChainID: 56, VerifyingContract: common.HexToAddress("0x00000000000000000000000000000000000c0001")}
	call := []byte{0xa9, 0x05, 0x9c, 0xbb}

	body, err := buildMetaBody(key, config, 0, call)
	require.NoError(t, err)
	assert.Equal(t, "0xa9059cbb", body.FunctionSignature)

	hash, err := services.NewMetaTransactionService(nil, config).TypedDataHash(from, 0, call)
	require.NoError(t, err)
	sig, err := hexutil.Decode(body.Signature)
	require.NoError(t, err)
	assert.True(t, services.VerifySignature(hash, sig, from))
}

func TestCommands(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	rawKey := hexutil.Encode(crypto.FromECDSA(key))

	t.Run("sign-relay", func(t *testing.T) {
		var out bytes.Buffer
		app := newApp()
		app.Writer = &out
		require.NoError(t, app.Run([]string{"relayctl", "sign-relay", "--key", rawKey, "--dispatcher", dispatcher.Hex(), "--nonce", "2"}))

		var body handlers.RelayRequestBody
		require.NoError(t, json.Unmarshal(out.Bytes(), &body))
		assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey).Hex(), body.User)
		assert.Equal(t, uint64(2), body.Nonce)
		assert.Equal(t, "21000", body.GasAmount)
		assert.Empty(t, body.Data)
	})

	t.Run("hash matches sign-relay", func(t *testing.T) {
		var out bytes.Buffer
		app := newApp()
		app.Writer = &out
		require.NoError(t, app.Run([]string{"relayctl", "sign-relay", "--key", rawKey, "--dispatcher", dispatcher.Hex(), "--data", "0xabcd"}))
		var body handlers.RelayRequestBody
		require.NoError(t, json.Unmarshal(out.Bytes(), &body))

		out.Reset()
		app = newApp()
		app.Writer = &out
		require.NoError(t, app.Run([]string{"relayctl", "hash", "--user", body.User, "--dispatcher", dispatcher.Hex(),
			"--data", "0xabcd", "--expiry", fmt.Sprint(body.ExpiryTime)}))

		sig, err := hexutil.Decode(body.Signature)
		require.NoError(t, err)
		hash := common.HexToHash(strings.TrimSpace(out.String()))
		assert.True(t, services.VerifySignature(hash, sig, crypto.PubkeyToAddress(key.PublicKey)))
	})

	t.Run("token", func(t *testing.T) {
		var out bytes.Buffer
		app := newApp()
		app.Writer = &out
		caller := crypto.PubkeyToAddress(key.PublicKey)
		require.NoError(t, app.Run([]string{"relayctl", "token", "--secret", "s3cret", "--caller", caller.Hex()}))

		parsed, err := middleware.NewAuthenticator([]byte("s3cret"), "").ParseCaller(strings.TrimSpace(out.String()))
		require.NoError(t, err)
		assert.Equal(t, caller, parsed)
	})

	t.Run("keygen", func(t *testing.T) {
		var out bytes.Buffer
		app := newApp()
		app.Writer = &out
		require.NoError(t, app.Run([]string{"relayctl", "keygen"}))

		var generated map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &generated))
		generatedKey, err := parseKey(generated["private_key"])
		require.NoError(t, err)
		addr, err := helpers.ParseAddress(generated["address"])
		require.NoError(t, err)
		assert.Equal(t, crypto.PubkeyToAddress(generatedKey.PublicKey), addr)
	})

	t.Run("bad key", func(t *testing.T) {
		app := newApp()
		app.Writer = &bytes.Buffer{}
		assert.Error(t, app.Run([]string{"relayctl", "sign-relay", "--key", "zz", "--dispatcher", dispatcher.Hex()}))
	})
}
