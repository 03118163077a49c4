package services_test

import (
	"crypto/ecdsa"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
}

var (
	adminAddr      = common.HexToAddress("0x00000000000000000000000000000000000a0001")
	operatorAddr   = common.HexToAddress("0x00000000000000000000000000000000000a0002")
	cancellerAddr  = common.HexToAddress("0x00000000000000000000000000000000000a0003")
	otherAddr      = common.HexToAddress("0x00000000000000000000000000000000000a0004")
	relayerAddr    = common.HexToAddress("0x00000000000000000000000000000000000b0001")
	dispatcherAddr = common.HexToAddress("0x00000000000000000000000000000000000d0001")
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func newUserKey(t *testing.T) (*ecdsa.PrivateKey, common.Address) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key, crypto.PubkeyToAddress(key.PublicKey)
}
