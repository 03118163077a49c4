package main

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/cyphera/cyphera-relay/internal/handlers"
	"github.com/cyphera/cyphera-relay/internal/helpers"
	"github.com/cyphera/cyphera-relay/internal/middleware"
	"github.com/cyphera/cyphera-relay/internal/services"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/urfave/cli/v2"
)

var (
	keyFlag = &cli.StringFlag{
		Name:     "key",
		Usage:    "signer private key in hex",
		EnvVars:  []string{"RELAY_SIGNER_KEY"},
		Required: true,
	}
	nonceFlag = &cli.Uint64Flag{
		Name:  "nonce",
		Usage: "next nonce of the signer",
	}
	dataFlag = &cli.StringFlag{
		Name:  "data",
		Usage: "0x-prefixed call data",
	}
)

var keygenCommand = &cli.Command{
	Name:   "keygen",
	Usage:  "Generate a secp256k1 key and print its address",
	Action: keygen,
}

var signRelayCommand = &cli.Command{
	Name:  "sign-relay",
	Usage: "Sign a relay request and print the API request body",
	Flags: []cli.Flag{
		keyFlag,
		nonceFlag,
		dataFlag,
		&cli.StringFlag{
			Name:     "dispatcher",
			Usage:    "dispatcher address the request is bound to",
			EnvVars:  []string{"DISPATCHER_ADDRESS"},
			Required: true,
		},
		&cli.StringFlag{
			Name:  "gas",
			Usage: "gas amount to sponsor, in wei",
			Value: "21000",
		},
		&cli.DurationFlag{
			Name:  "ttl",
			Usage: "how long the request stays valid",
			Value: time.Hour,
		},
	},
	Action: signRelay,
}

var signMetaCommand = &cli.Command{
	Name:  "sign-meta",
	Usage: "Sign an EIP-712 meta-transaction and print the API request body",
	Flags: []cli.Flag{
		keyFlag,
		nonceFlag,
		&cli.StringFlag{
			Name:     "call",
			Usage:    "0x-prefixed function call to execute",
			Required: true,
		},
		&cli.Int64Flag{
			Name:    "chain-id",
			Usage:   "chain id of the EIP-712 domain",
			EnvVars: []string{"CHAIN_ID"},
			Value:   1,
		},
		&cli.StringFlag{
			Name:    "verifying-contract",
			Usage:   "verifying contract of the EIP-712 domain",
			EnvVars: []string{"ACTION_TARGET_ADDRESS"},
		},
		&cli.StringFlag{
			Name:  "domain-name",
			Usage: "EIP-712 domain name",
		},
		&cli.StringFlag{
			Name:  "domain-version",
			Usage: "EIP-712 domain version",
		},
	},
	Action: signMeta,
}

var hashCommand = &cli.Command{
	Name:  "hash",
	Usage: "Print the digest a user signs for a relay request",
	Flags: []cli.Flag{
		nonceFlag,
		dataFlag,
		&cli.StringFlag{
			Name:     "user",
			Usage:    "user address",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "dispatcher",
			Usage:    "dispatcher address the request is bound to",
			EnvVars:  []string{"DISPATCHER_ADDRESS"},
			Required: true,
		},
		&cli.StringFlag{
			Name:  "gas",
			Usage: "gas amount to sponsor, in wei",
			Value: "21000",
		},
		&cli.Int64Flag{
			Name:     "expiry",
			Usage:    "expiry time in unix seconds",
			Required: true,
		},
	},
	Action: printHash,
}

var tokenCommand = &cli.Command{
	Name:  "token",
	Usage: "Issue an API bearer token for a caller address",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "secret",
			Usage:    "HMAC secret shared with the API",
			EnvVars:  []string{"JWT_SECRET"},
			Required: true,
		},
		&cli.StringFlag{
			Name:     "caller",
			Usage:    "caller address placed in the subject claim",
			Required: true,
		},
		&cli.DurationFlag{
			Name:  "ttl",
			Usage: "token lifetime",
			Value: 24 * time.Hour,
		},
	},
	Action: issueToken,
}

func keygen(c *cli.Context) error {
	key, err := crypto.GenerateKey()
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, map[string]string{
		"address":     crypto.PubkeyToAddress(key.PublicKey).Hex(),
		"private_key": hexutil.Encode(crypto.FromECDSA(key)),
	})
}

func signRelay(c *cli.Context) error {
	key, err := parseKey(c.String(keyFlag.Name))
	if err != nil {
		return err
	}
	dispatcher, err := helpers.ParseAddress(c.String("dispatcher"))
	if err != nil {
		return fmt.Errorf("dispatcher: %w", err)
	}
	gas, err := helpers.ParseAmount(c.String("gas"))
	if err != nil {
		return fmt.Errorf("gas: %w", err)
	}
	data, err := decodeHex(c.String(dataFlag.Name))
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}

	body, err := buildRelayBody(key, dispatcher, gas, c.Uint64(nonceFlag.Name), time.Now().Add(c.Duration("ttl")), data)
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, body)
}

func signMeta(c *cli.Context) error {
	key, err := parseKey(c.String(keyFlag.Name))
	if err != nil {
		return err
	}
	call, err := decodeHex(c.String("call"))
	if err != nil {
		return fmt.Errorf("call: %w", err)
	}
	var verifying common.Address
	if raw := c.String("verifying-contract"); raw != "" {
		if verifying, err = helpers.ParseAddress(raw); err != nil {
			return fmt.Errorf("verifying-contract: %w", err)
		}
	}

	body, err := buildMetaBody(key, services.MetaTxConfig{
		DomainName:        c.String("domain-name"),
		DomainVersion:     c.String("domain-version"),
		ChainID:           c.Int64("chain-id"),
		VerifyingContract: verifying,
	}, c.Uint64(nonceFlag.Name), call)
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, body)
}

func printHash(c *cli.Context) error {
	user, err := helpers.ParseAddress(c.String("user"))
	if err != nil {
		return fmt.Errorf("user: %w", err)
	}
	dispatcher, err := helpers.ParseAddress(c.String("dispatcher"))
	if err != nil {
		return fmt.Errorf("dispatcher: %w", err)
	}
	gas, err := helpers.ParseAmount(c.String("gas"))
	if err != nil {
		return fmt.Errorf("gas: %w", err)
	}
	data, err := decodeHex(c.String(dataFlag.Name))
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}

	hash := services.RelaySigningHash(business.RelayRequest{
		User:       user,
		GasAmount:  gas,
		Nonce:      c.Uint64(nonceFlag.Name),
		ExpiryTime: time.Unix(c.Int64("expiry"), 0),
		Data:       data,
	}, dispatcher)
	_, err = fmt.Fprintln(c.App.Writer, hash.Hex())
	return err
}

func issueToken(c *cli.Context) error {
	caller, err := helpers.ParseAddress(c.String("caller"))
	if err != nil {
		return fmt.Errorf("caller: %w", err)
	}
	token, err := middleware.NewAuthenticator([]byte(c.String("secret")), "").IssueToken(caller, c.Duration("ttl"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, token)
	return err
}

// buildRelayBody signs a relay request for the signer's own address
func buildRelayBody(key *ecdsa.PrivateKey, dispatcher common.Address, gas *big.Int, nonce uint64, expiry time.Time, data []byte) (handlers.RelayRequestBody, error) {
	user := crypto.PubkeyToAddress(key.PublicKey)
	request := business.RelayRequest{
		User:       user,
		GasAmount:  gas,
		Nonce:      nonce,
		ExpiryTime: time.Unix(expiry.Unix(), 0),
		Data:       data,
	}
	sig, err := services.SignRelayRequest(request, dispatcher, key)
	if err != nil {
		return handlers.RelayRequestBody{}, err
	}

	body := handlers.RelayRequestBody{
		User:       user.Hex(),
		GasAmount:  gas.String(),
		Nonce:      nonce,
		ExpiryTime: request.ExpiryTime.Unix(),
		Signature:  hexutil.Encode(sig),
	}
	if len(data) > 0 {
		body.Data = hexutil.Encode(data)
	}
	return body, nil
}

func buildMetaBody(key *ecdsa.PrivateKey, config services.MetaTxConfig, nonce uint64, call []byte) (handlers.MetaTransactionRequest, error) {
	from := crypto.PubkeyToAddress(key.PublicKey)
	sig, err := services.SignMetaTransaction(config, from, nonce, call, key)
	if err != nil {
		return handlers.MetaTransactionRequest{}, err
	}
	return handlers.MetaTransactionRequest{
		From:              from.Hex(),
		Nonce:             nonce,
		FunctionSignature: hexutil.Encode(call),
		Signature:         hexutil.Encode(sig),
	}, nil
}

func parseKey(raw string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(raw), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}
	return key, nil
}

func decodeHex(raw string) ([]byte, error) {
	if raw == "" || raw == "0x" {
		return nil, nil
	}
	return hexutil.Decode(raw)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
