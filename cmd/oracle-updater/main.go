package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/cyphera/cyphera-relay/internal/config"
	"github.com/cyphera/cyphera-relay/internal/helpers"
	"github.com/cyphera/cyphera-relay/internal/interfaces"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/cyphera/cyphera-relay/internal/server"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"go.uber.org/zap"
)

const defaultUpdateInterval = 5 * time.Minute

// Application refreshes oracle prices and runs the relay health checks
type Application struct {
	oracle  interfaces.IPriceOracleService
	monitor interfaces.IMonitorService
}

// HandleRequest is one scheduled run. A failed price refresh is returned to
// the runtime; health alerts are delivered by the monitor itself.
func (a *Application) HandleRequest(ctx context.Context) error {
	logger.Info("Starting oracle update")

	timer := logger.NewStructuredLogger(logger.ComponentOracle).NewTimer("update_prices")
	snapshot, err := a.oracle.UpdatePrices(ctx)
	timer.StopWithResult(err == nil, err)
	if err != nil {
		logger.Error("Oracle update failed", zap.Error(err))
	} else {
		logger.Info("Oracle prices updated",
			zap.String("gas_unit_price", snapshot.GasUnitPrice.String()),
			zap.String("native_usd_price", snapshot.NativeUSDPrice.String()))
	}

	var report *business.HealthReport
	checkErr := logger.NewStructuredLogger(logger.ComponentMonitor).LogOperation("health_check", func() error {
		var runErr error
		report, runErr = a.monitor.Check(ctx)
		return runErr
	})
	if checkErr == nil {
		logger.Info("Health check finished",
			zap.Int("alerts", len(report.Alerts)),
			zap.Bool("oracle_stale", report.OracleStale),
			zap.Int("relayers", len(report.Relayers)))
	}

	if err != nil {
		return fmt.Errorf("HandleRequest: update prices: %w", err)
	}
	return checkErr
}

func main() {
	config.LoadDotEnv()

	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = helpers.StageLocal
		log.Printf("Warning: STAGE environment variable not set, defaulting to '%s'", stage)
	}
	if !helpers.IsValidStage(stage) {
		log.Fatalf("Invalid STAGE environment variable: '%s'. Must be one of: %s, %s, %s",
			stage, helpers.StageProd, helpers.StageDev, helpers.StageLocal)
	}

	logger.InitLogger(stage)
	logger.Info("Initializing oracle updater", zap.String("stage", stage))
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	cfg, err := server.LoadConfig(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize relay services", zap.Error(err))
	}
	application := &Application{oracle: app.Oracle, monitor: app.Monitor}

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(application.HandleRequest)
		return
	}
	defer app.Close()

	interval := defaultUpdateInterval
	if raw := os.Getenv("ORACLE_UPDATE_INTERVAL"); raw != "" {
		if interval, err = time.ParseDuration(raw); err != nil || interval <= 0 {
			logger.Warn("Failed to parse ORACLE_UPDATE_INTERVAL, using default", zap.String("value", raw), zap.Error(err))
			interval = defaultUpdateInterval
		}
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	run(runCtx, application, interval)
}

func run(ctx context.Context, application *Application, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Oracle updater running", zap.Duration("interval", interval))
	for {
		if err := application.HandleRequest(ctx); err != nil {
			logger.Warn("Scheduled run failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			logger.Info("Oracle updater stopped")
			return
		case <-ticker.C:
		}
	}
}
