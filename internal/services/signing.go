package services

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// RelayPayloadHash is keccak256 over the tightly packed
// (user, gasAmount, nonce, expiryTime, data, dispatcher) tuple
func RelayPayloadHash(request business.RelayRequest, dispatcher common.Address) common.Hash {
	gasAmount := request.GasAmount
	if gasAmount == nil {
		gasAmount = new(big.Int)
	}
	expiry := request.ExpiryTime.Unix()
	if expiry < 0 {
		expiry = 0
	}

	packed := make([]byte, 0, 20+32*3+len(request.Data)+20)
	packed = append(packed, request.User.Bytes()...)
	packed = append(packed, common.BigToHash(gasAmount).Bytes()...)
	packed = append(packed, common.BigToHash(new(big.Int).SetUint64(request.Nonce)).Bytes()...)
	packed = append(packed, common.BigToHash(big.NewInt(expiry)).Bytes()...)
	packed = append(packed, request.Data...)
	packed = append(packed, dispatcher.Bytes()...)

	return common.BytesToHash(crypto.Keccak256(packed))
}

// RelaySigningHash wraps the payload hash in the Ethereum signed-message prefix
func RelaySigningHash(request business.RelayRequest, dispatcher common.Address) common.Hash {
	payload := RelayPayloadHash(request, dispatcher)
	return common.BytesToHash(accounts.TextHash(payload.Bytes()))
}

// SignRelayRequest produces a 65-byte [R || S || V] signature with V in {27, 28}
func SignRelayRequest(request business.RelayRequest, dispatcher common.Address, key *ecdsa.PrivateKey) ([]byte, error) {
	return signHash(RelaySigningHash(request, dispatcher), key)
}

func signHash(hash common.Hash, key *ecdsa.PrivateKey) ([]byte, error) {
	sig, err := crypto.Sign(hash.Bytes(), key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign hash: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// RecoverSigner returns the address that produced sig over hash. V may be
// given as 0/1 or 27/28.
func RecoverSigner(hash common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes, got %d", crypto.SignatureLength, len(sig))
	}

	normalized := make([]byte, crypto.SignatureLength)
	copy(normalized, sig)
	if normalized[crypto.RecoveryIDOffset] >= 27 {
		normalized[crypto.RecoveryIDOffset] -= 27
	}
	if normalized[crypto.RecoveryIDOffset] > 1 {
		return common.Address{}, fmt.Errorf("invalid recovery id %d", sig[crypto.RecoveryIDOffset])
	}

	pubKey, err := crypto.Ecrecover(hash.Bytes(), normalized)
	if err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(crypto.Keccak256(pubKey[1:])[12:]), nil
}

// VerifySignature reports whether sig over hash was produced by expected
func VerifySignature(hash common.Hash, sig []byte, expected common.Address) bool {
	signer, err := RecoverSigner(hash, sig)
	if err != nil {
		return false
	}
	return signer == expected
}

// SignMetaTransaction signs the EIP-712 digest of a meta-transaction under
// config's domain
func SignMetaTransaction(config MetaTxConfig, from common.Address, nonce uint64, functionSignature []byte, key *ecdsa.PrivateKey) ([]byte, error) {
	hash, _, err := apitypes.TypedDataAndHash(MetaTransactionTypedData(config, from, nonce, functionSignature))
	if err != nil {
		return nil, fmt.Errorf("failed to hash typed data: %w", err)
	}
	return signHash(common.BytesToHash(hash), key)
}
