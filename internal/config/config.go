package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cyphera/cyphera-relay/internal/helpers"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// SecretResolver resolves a secret from an ARN env var with an env fallback
type SecretResolver interface {
	GetSecretString(ctx context.Context, secretArnEnvVar, fallbackEnvVar string) (string, error)
}

// Config is the process configuration shared by every entrypoint
type Config struct {
	Stage string
	Port  string

	ChainRPCURL       string
	ChainID           int64
	TokenAddress      common.Address
	ActionTarget      common.Address
	DispatcherAddress common.Address
	AdminAddress      common.Address

	NativeSymbol   string
	NativeUSDPrice string
	CMCAPIKey      string

	JWTSecret string

	DatabaseURL   string
	EventQueueURL string

	ResendAPIKey   string
	AlertEmailFrom string
	AlertEmailTo   []string

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int

	Params Params
}

// LoadDotEnv loads a .env file when present. A missing file is not an error.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		logger.Log.Debug("No .env file loaded", zap.Error(err))
	}
}

// Load reads the configuration from the environment. Secrets are resolved
// through secrets; it may be nil to read them from plain env vars only.
func Load(ctx context.Context, secrets SecretResolver) (*Config, error) {
	cfg := &Config{
		Stage:          getEnv("STAGE", helpers.StageLocal),
		Port:           getEnv("PORT", "8000"),
		ChainRPCURL:    os.Getenv("ETH_RPC_URL"),
		NativeSymbol:   getEnv("NATIVE_SYMBOL", "ETH"),
		NativeUSDPrice: os.Getenv("NATIVE_USD_PRICE"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		EventQueueURL:  os.Getenv("EVENT_QUEUE_URL"),
		AlertEmailFrom: os.Getenv("ALERT_EMAIL_FROM"),
		AlertEmailTo:   splitList(os.Getenv("ALERT_EMAIL_TO")),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if !helpers.IsValidStage(cfg.Stage) {
		return nil, fmt.Errorf("invalid STAGE %q: must be one of %s, %s or %s",
			cfg.Stage, helpers.StageProd, helpers.StageDev, helpers.StageLocal)
	}

	var err error
	if cfg.ChainID, err = getEnvInt64("CHAIN_ID", 1); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getEnvFloat("RATE_LIMIT_RPS", 10); err != nil {
		return nil, err
	}
	burst, err := getEnvInt64("RATE_LIMIT_BURST", 20)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitBurst = int(burst)

	addresses := []struct {
		env      string
		target   *common.Address
		required bool
	}{
		{"QUALIFYING_TOKEN_ADDRESS", &cfg.TokenAddress, true},
		{"ACTION_TARGET_ADDRESS", &cfg.ActionTarget, false},
		{"DISPATCHER_ADDRESS", &cfg.DispatcherAddress, true},
		{"ADMIN_ADDRESS", &cfg.AdminAddress, true},
	}
	for _, a := range addresses {
		raw := os.Getenv(a.env)
		if raw == "" {
			if a.required {
				return nil, fmt.Errorf("%s is required", a.env)
			}
			continue
		}
		if *a.target, err = helpers.ParseAddress(raw); err != nil {
			return nil, fmt.Errorf("%s: %w", a.env, err)
		}
	}

	if cfg.ChainRPCURL == "" {
		return nil, fmt.Errorf("ETH_RPC_URL is required")
	}

	cfg.JWTSecret, err = resolveSecret(ctx, secrets, "JWT_SECRET_ARN", "JWT_SECRET")
	if err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.CMCAPIKey, err = resolveSecret(ctx, secrets, "CMC_API_KEY_ARN", "CMC_API_KEY"); err != nil {
		return nil, err
	}
	if cfg.CMCAPIKey == "" && cfg.NativeUSDPrice == "" {
		return nil, fmt.Errorf("either CMC_API_KEY or NATIVE_USD_PRICE must be set")
	}
	if cfg.NativeUSDPrice != "" && cfg.Stage == helpers.StageProd {
		return nil, fmt.Errorf("NATIVE_USD_PRICE is not allowed in %s", helpers.StageProd)
	}
	if cfg.ResendAPIKey, err = resolveSecret(ctx, secrets, "RESEND_API_KEY_ARN", "RESEND_API_KEY"); err != nil {
		return nil, err
	}

	cfg.Params = DefaultParams()
	if path := os.Getenv("RELAY_PARAMS_FILE"); path != "" {
		if err := LoadParamsFile(path, &cfg.Params); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// resolveSecret treats a missing secret as empty; callers decide whether the
// value is required
func resolveSecret(ctx context.Context, secrets SecretResolver, arnEnv, env string) (string, error) {
	if secrets == nil {
		return os.Getenv(env), nil
	}
	if os.Getenv(arnEnv) == "" && os.Getenv(env) == "" {
		return "", nil
	}
	value, err := secrets.GetSecretString(ctx, arnEnv, env)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", env, err)
	}
	return value, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
