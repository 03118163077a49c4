package constants

import "time"

// Common string constants used throughout the codebase
const (
	// Log levels
	ErrorLevel = "error"

	// Environments
	ProdEnvironment  = "prod"
	DevEnvironment   = "dev"
	LocalEnvironment = "local"
	TestEnvironment  = "test"

	// ServiceName tags logs and metrics
	ServiceName = "cyphera-relay"
)

// Basis points used for coverage percentages
const (
	BasisPoints        = 10000
	MaxCoveragePercent = 10000
)

// Protocol defaults
const (
	DefaultOracleMaxAge        = time.Hour
	DefaultMaxFeedAge          = 3 * time.Hour
	DefaultRelayerTimeout      = 24 * time.Hour
	DefaultDailyWindow         = 24 * time.Hour
	DefaultTransferDelay       = 2 * 24 * time.Hour
	MinTransferDelay           = 24 * time.Hour
	MaxTransferDelay           = 30 * 24 * time.Hour
	DefaultMaxGasPerRequest    = 1_000_000_000_000_000_000 // 1 ether in wei
	DefaultCallGasLimit        = 500000
	DefaultMinSuccessRate      = 90
	DefaultBatchWorkers        = 16
	NativeUSDDecimals          = 8
	DefaultBalanceCacheTTL     = 30 * time.Second
	DefaultBalanceCacheSize    = 4096
	DefaultMetaTxDomainName    = "Verix Protocol"
	DefaultMetaTxDomainVersion = "1"
)
