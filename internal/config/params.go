package config

import (
	"bufio"
	"fmt"
	"math/big"
	"os"
	"reflect"
	"time"

	"github.com/cyphera/cyphera-relay/internal/constants"
	"github.com/cyphera/cyphera-relay/internal/helpers"
	"github.com/cyphera/cyphera-relay/internal/services"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
	"github.com/naoina/toml"
)

// Params holds the tunable relay parameters read from the TOML params file.
// Amounts are base-10 strings in wei or token base units.
type Params struct {
	Oracle     OracleParams
	Pool       PoolParams
	Registry   RegistryParams
	Dispatcher DispatcherParams
	MetaTx     MetaTxParams
	Monitor    MonitorParams
}

type OracleParams struct {
	MaxAgeSeconds     int64
	MaxFeedAgeSeconds int64
}

type TierParams struct {
	Name                string
	MinBalanceThreshold string
	CoveragePercent     uint16
	MaxDailyGas         string
	MaxLifetimeGas      string
}

type PoolParams struct {
	MinimumPoolBalance string
	Tiers              []TierParams
}

type RegistryParams struct {
	MinRelayerBalance     string
	RelayerTimeoutSeconds int64
}

type DispatcherParams struct {
	// MaxGasPerRequest is the per-request sponsorship ceiling in wei
	MaxGasPerRequest string
	BatchWorkers     int
	// CallGasLimit caps relayed eth_call execution, in gas units
	CallGasLimit uint64
}

type MetaTxParams struct {
	DomainName    string
	DomainVersion string
}

type MonitorParams struct {
	MinSuccessRate uint64
	MinSamples     uint64
}

var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// DefaultParams mirrors the built-in service defaults
func DefaultParams() Params {
	tiers := services.DefaultTiers()
	tierParams := make([]TierParams, len(tiers))
	for i, t := range tiers {
		tierParams[i] = TierParams{
			Name:                t.Name,
			MinBalanceThreshold: t.MinBalanceThreshold.String(),
			CoveragePercent:     t.CoveragePercent,
			MaxDailyGas:         t.MaxDailyGas.String(),
			MaxLifetimeGas:      t.MaxLifetimeGas.String(),
		}
	}
	return Params{
		Oracle: OracleParams{
			MaxAgeSeconds:     int64(constants.DefaultOracleMaxAge / time.Second),
			MaxFeedAgeSeconds: int64(constants.DefaultMaxFeedAge / time.Second),
		},
		Pool: PoolParams{
			MinimumPoolBalance: helpers.ToWei(10, 18).String(),
			Tiers:              tierParams,
		},
		Registry: RegistryParams{
			MinRelayerBalance:     helpers.ToWei(1, 18).String(),
			RelayerTimeoutSeconds: int64(constants.DefaultRelayerTimeout / time.Second),
		},
		Dispatcher: DispatcherParams{
			MaxGasPerRequest: big.NewInt(constants.DefaultMaxGasPerRequest).String(),
			BatchWorkers:     constants.DefaultBatchWorkers,
			CallGasLimit:     constants.DefaultCallGasLimit,
		},
		MetaTx: MetaTxParams{
			DomainName:    constants.DefaultMetaTxDomainName,
			DomainVersion: constants.DefaultMetaTxDomainVersion,
		},
		Monitor: MonitorParams{
			MinSuccessRate: constants.DefaultMinSuccessRate,
			MinSamples:     10,
		},
	}
}

// LoadParamsFile decodes a TOML params file over params. Keys absent from the
// file keep their current values, a tier list in the file replaces the whole
// table and unknown keys are rejected.
func LoadParamsFile(path string, params *Params) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open params file: %w", err)
	}
	defer f.Close()

	decoded := *params
	decoded.Pool.Tiers = nil
	if err := tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&decoded); err != nil {
		return fmt.Errorf("invalid params file %s: %w", path, err)
	}
	if decoded.Pool.Tiers == nil {
		decoded.Pool.Tiers = params.Pool.Tiers
	}
	if _, err := decoded.GasPoolConfig(); err != nil {
		return err
	}
	if _, err := decoded.RegistryConfig(); err != nil {
		return err
	}
	if _, err := decoded.DispatcherConfig(common.Address{}); err != nil {
		return err
	}

	*params = decoded
	return nil
}

// OracleConfig converts the oracle section
func (p Params) OracleConfig() services.OracleConfig {
	cfg := services.DefaultOracleConfig()
	cfg.MaxAge = time.Duration(p.Oracle.MaxAgeSeconds) * time.Second
	cfg.MaxFeedAge = time.Duration(p.Oracle.MaxFeedAgeSeconds) * time.Second
	return cfg
}

// GasPoolConfig converts the pool section, validating every tier
func (p Params) GasPoolConfig() (services.GasPoolConfig, error) {
	minimum, err := parseAmount("Pool.MinimumPoolBalance", p.Pool.MinimumPoolBalance)
	if err != nil {
		return services.GasPoolConfig{}, err
	}

	tiers := make([]business.Tier, len(p.Pool.Tiers))
	for i, t := range p.Pool.Tiers {
		if t.CoveragePercent > constants.MaxCoveragePercent {
			return services.GasPoolConfig{}, fmt.Errorf("Pool.Tiers[%d].CoveragePercent %d exceeds %d", i, t.CoveragePercent, constants.MaxCoveragePercent)
		}
		tier := business.Tier{Index: i, Name: t.Name, CoveragePercent: t.CoveragePercent}
		if tier.MinBalanceThreshold, err = parseAmount(fmt.Sprintf("Pool.Tiers[%d].MinBalanceThreshold", i), t.MinBalanceThreshold); err != nil {
			return services.GasPoolConfig{}, err
		}
		if tier.MaxDailyGas, err = parseAmount(fmt.Sprintf("Pool.Tiers[%d].MaxDailyGas", i), t.MaxDailyGas); err != nil {
			return services.GasPoolConfig{}, err
		}
		if tier.MaxLifetimeGas, err = parseAmount(fmt.Sprintf("Pool.Tiers[%d].MaxLifetimeGas", i), t.MaxLifetimeGas); err != nil {
			return services.GasPoolConfig{}, err
		}
		tiers[i] = tier
	}

	return services.GasPoolConfig{Tiers: tiers, MinimumPoolBalance: minimum}, nil
}

// RegistryConfig converts the registry section
func (p Params) RegistryConfig() (services.RegistryConfig, error) {
	minBalance, err := parseAmount("Registry.MinRelayerBalance", p.Registry.MinRelayerBalance)
	if err != nil {
		return services.RegistryConfig{}, err
	}
	return services.RegistryConfig{
		MinRelayerBalance: minBalance,
		RelayerTimeout:    time.Duration(p.Registry.RelayerTimeoutSeconds) * time.Second,
	}, nil
}

// DispatcherConfig converts the dispatcher section
func (p Params) DispatcherConfig(address common.Address) (services.DispatcherConfig, error) {
	maxGas, err := parseAmount("Dispatcher.MaxGasPerRequest", p.Dispatcher.MaxGasPerRequest)
	if err != nil {
		return services.DispatcherConfig{}, err
	}
	return services.DispatcherConfig{
		Address:          address,
		MaxGasPerRequest: maxGas,
		BatchWorkers:     p.Dispatcher.BatchWorkers,
	}, nil
}

// CallGasLimit returns the gas-unit cap for relayed calls
func (p Params) CallGasLimit() uint64 {
	if p.Dispatcher.CallGasLimit == 0 {
		return constants.DefaultCallGasLimit
	}
	return p.Dispatcher.CallGasLimit
}

// MetaTxConfig converts the meta-transaction section
func (p Params) MetaTxConfig(chainID int64, verifyingContract common.Address) services.MetaTxConfig {
	return services.MetaTxConfig{
		DomainName:        p.MetaTx.DomainName,
		DomainVersion:     p.MetaTx.DomainVersion,
		ChainID:           chainID,
		VerifyingContract: verifyingContract,
	}
}

// MonitorConfig converts the monitor section
func (p Params) MonitorConfig() services.MonitorConfig {
	return services.MonitorConfig{
		MinSuccessRate: p.Monitor.MinSuccessRate,
		MinSamples:     p.Monitor.MinSamples,
	}
}

func parseAmount(field, raw string) (*big.Int, error) {
	v, err := helpers.ParseAmount(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}
