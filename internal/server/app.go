package server

import (
	"context"
	"fmt"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	awsclient "github.com/cyphera/cyphera-relay/internal/client/aws"
	"github.com/cyphera/cyphera-relay/internal/client/chain"
	"github.com/cyphera/cyphera-relay/internal/client/coinmarketcap"
	"github.com/cyphera/cyphera-relay/internal/client/email"
	httpClient "github.com/cyphera/cyphera-relay/internal/client/http"
	"github.com/cyphera/cyphera-relay/internal/config"
	"github.com/cyphera/cyphera-relay/internal/constants"
	"github.com/cyphera/cyphera-relay/internal/db"
	"github.com/cyphera/cyphera-relay/internal/events"
	"github.com/cyphera/cyphera-relay/internal/helpers"
	"github.com/cyphera/cyphera-relay/internal/interfaces"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/cyphera/cyphera-relay/internal/middleware"
	"github.com/cyphera/cyphera-relay/internal/services"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// App holds the wired services shared by every entrypoint
type App struct {
	Config *config.Config

	Access     *services.AccessControlService
	Oracle     *services.PriceOracleService
	Pool       *services.GasPoolService
	Registry   *services.RelayerRegistryService
	Dispatcher *services.RelayDispatcherService
	MetaTx     *services.MetaTransactionService
	Monitor    *services.MonitorService

	// EventReader is nil when no database is configured
	EventReader interfaces.IEventReader
	Metrics     *middleware.Metrics

	closers []func()
}

// LoadConfig reads the configuration. Outside local, secrets are resolved
// through AWS Secrets Manager.
func LoadConfig(ctx context.Context) (*config.Config, error) {
	var secrets config.SecretResolver
	if stage := os.Getenv("STAGE"); stage != "" && stage != helpers.StageLocal {
		client, err := awsclient.NewSecretsManagerClient(ctx)
		if err != nil {
			return nil, err
		}
		secrets = client
	}
	return config.Load(ctx, secrets)
}

// NewApp connects to the chain and external services and builds the relay
// services from cfg
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg, Metrics: middleware.NewMetrics()}
	ok := false
	defer func() {
		if !ok {
			app.Close()
		}
	}()

	publisher, err := app.newPublisher(ctx)
	if err != nil {
		return nil, err
	}
	opts := []services.Option{services.WithPublisher(publisher)}

	rpc, err := chain.Dial(ctx, cfg.ChainRPCURL)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, rpc.Close)

	nativeFeed, err := app.newNativeFeed()
	if err != nil {
		return nil, err
	}
	balances, err := chain.NewTokenBalanceSource(rpc, cfg.TokenAddress, constants.DefaultBalanceCacheTTL)
	if err != nil {
		return nil, err
	}

	poolConfig, err := cfg.Params.GasPoolConfig()
	if err != nil {
		return nil, err
	}
	registryConfig, err := cfg.Params.RegistryConfig()
	if err != nil {
		return nil, err
	}
	dispatcherConfig, err := cfg.Params.DispatcherConfig(cfg.DispatcherAddress)
	if err != nil {
		return nil, err
	}

	var executor interfaces.ActionExecutor
	if cfg.ActionTarget != (common.Address{}) {
		executor = chain.NewCallExecutor(rpc, cfg.ActionTarget, cfg.Params.CallGasLimit())
	}

	app.Access = services.NewAccessControlService(cfg.AdminAddress, opts...)
	app.Oracle = services.NewPriceOracleService(chain.NewGasPriceFeed(rpc), nativeFeed, app.Access, cfg.Params.OracleConfig(), opts...)
	app.Pool = services.NewGasPoolService(app.Access, app.Oracle, balances, poolConfig, opts...)
	app.Registry = services.NewRelayerRegistryService(app.Access, registryConfig, opts...)
	app.Dispatcher, err = services.NewRelayDispatcherService(app.Access, app.Registry, app.Pool, executor, dispatcherConfig, opts...)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, app.Dispatcher.Close)
	app.MetaTx = services.NewMetaTransactionService(executor, cfg.Params.MetaTxConfig(cfg.ChainID, cfg.ActionTarget), opts...)
	app.Monitor = services.NewMonitorService(app.Pool, app.Oracle, app.Registry, app.newAlerter(), cfg.Params.MonitorConfig(), opts...)

	// The dispatcher covers gas as an OPERATOR of the pool
	if err := app.Access.GrantRole(ctx, cfg.AdminAddress, constants.RoleOperator, cfg.DispatcherAddress); err != nil {
		return nil, fmt.Errorf("failed to grant dispatcher operator role: %w", err)
	}

	ok = true
	return app, nil
}

// newPublisher fans events out to the log and, when configured, to the
// database event store and an SQS queue
func (a *App) newPublisher(ctx context.Context) (events.Publisher, error) {
	sinks := []events.Sink{events.NewLogSink(logger.Log)}

	if a.Config.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, a.Config.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		store := db.NewEventStore(db.New(pool))
		sinks = append(sinks, store)
		a.EventReader = store
	}

	if a.Config.EventQueueURL != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
		}
		sinks = append(sinks, events.NewSQSSink(sqs.NewFromConfig(awsCfg), a.Config.EventQueueURL))
	}

	return events.NewEmitter(logger.With(zap.String("component", string(logger.ComponentEvents))), sinks...), nil
}

// newNativeFeed prefers CoinMarketCap and falls back to a fixed price
func (a *App) newNativeFeed() (interfaces.PriceFeed, error) {
	if a.Config.CMCAPIKey != "" {
		return coinmarketcap.NewNativeUSDFeed(a.Config.CMCAPIKey, a.Config.NativeSymbol, "",
			httpClient.WithTimeout(10*time.Second),
			httpClient.WithMetricsCollector(a.Metrics),
		), nil
	}

	price, err := helpers.ParseDecimal(a.Config.NativeUSDPrice, constants.NativeUSDDecimals)
	if err != nil {
		return nil, fmt.Errorf("NATIVE_USD_PRICE: %w", err)
	}
	logger.Warn("Using a fixed native USD price", zap.String("price", a.Config.NativeUSDPrice))
	return &services.StaticFeed{
		Name:     "static " + a.Config.NativeSymbol + "/USD",
		Value:    price,
		Decimals: constants.NativeUSDDecimals,
	}, nil
}

// newAlerter emails alerts when Resend is configured and logs them otherwise
func (a *App) newAlerter() interfaces.Alerter {
	if a.Config.ResendAPIKey != "" && a.Config.AlertEmailFrom != "" && len(a.Config.AlertEmailTo) > 0 {
		return email.NewAlerter(a.Config.ResendAPIKey, a.Config.AlertEmailFrom, a.Config.AlertEmailTo)
	}
	return services.NewLogAlerter()
}

// Close releases connections and worker pools in reverse order
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
