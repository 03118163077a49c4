package services

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/cyphera/cyphera-relay/internal/constants"
	"github.com/cyphera/cyphera-relay/internal/interfaces"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Alert kinds raised by the monitor
const (
	AlertPoolLowBalance    = "pool_low_balance"
	AlertOracleStale       = "oracle_stale"
	AlertSystemPaused      = "system_paused"
	AlertRelayerLowSuccess = "relayer_low_success_rate"
	AlertRelayerIdle       = "relayer_idle"
	AlertRelayerUnderfund  = "relayer_underfunded"
)

// PoolStatusReader is the pool view used by the monitor
type PoolStatusReader interface {
	Status() business.PoolStatus
}

// OracleStatusReader is the oracle view used by the monitor
type OracleStatusReader interface {
	NeedsUpdate() bool
	LatestPrices() (*business.PriceSnapshot, error)
}

// RegistryStatusReader is the registry view used by the monitor
type RegistryStatusReader interface {
	ListRelayers() []business.RelayerAccount
	MinRelayerBalance() *big.Int
	RelayerTimeout() time.Duration
}

// MonitorConfig sets alert thresholds
type MonitorConfig struct {
	// MinSuccessRate is the lowest acceptable relayer success rate in percent
	MinSuccessRate uint64
	// MinSamples is how many relays a relayer needs before its rate is judged
	MinSamples uint64
}

// MonitorService inspects the pool, oracle and relayer network and reports
// findings through an Alerter
type MonitorService struct {
	pool     PoolStatusReader
	oracle   OracleStatusReader
	registry RegistryStatusReader
	alerter  interfaces.Alerter
	config   MonitorConfig

	clock  Clock
	logger *zap.Logger
}

// NewMonitorService creates a monitor. alerter may be nil to only log.
func NewMonitorService(pool PoolStatusReader, oracle OracleStatusReader, registry RegistryStatusReader, alerter interfaces.Alerter, config MonitorConfig, opts ...Option) *MonitorService {
	o := applyOptions(logger.ComponentMonitor, opts)

	if config.MinSuccessRate == 0 {
		config.MinSuccessRate = constants.DefaultMinSuccessRate
	}
	if config.MinSamples == 0 {
		config.MinSamples = 10
	}

	return &MonitorService{
		pool:     pool,
		oracle:   oracle,
		registry: registry,
		alerter:  alerter,
		config:   config,
		clock:    o.clock,
		logger:   o.logger,
	}
}

// Check runs one monitoring pass. The report is returned even when alert
// delivery fails.
func (s *MonitorService) Check(ctx context.Context) (*business.HealthReport, error) {
	now := s.clock()
	status := s.pool.Status()

	report := &business.HealthReport{
		CheckedAt:      now,
		PoolBalance:    status.Balance,
		MinimumBalance: status.MinimumBalance,
		Paused:         status.Paused,
		OracleStale:    s.oracle.NeedsUpdate(),
	}

	if status.Balance.Cmp(status.MinimumBalance) < 0 {
		report.Alerts = append(report.Alerts, business.Alert{
			Kind:     AlertPoolLowBalance,
			Severity: business.SeverityCritical,
			Message:  fmt.Sprintf("gas pool balance %s is below the minimum %s", status.Balance, status.MinimumBalance),
		})
	}

	if snapshot, err := s.oracle.LatestPrices(); err == nil {
		report.LastPriceAt = snapshot.LastUpdateTime
	}
	if report.OracleStale {
		report.Alerts = append(report.Alerts, business.Alert{
			Kind:     AlertOracleStale,
			Severity: business.SeverityWarning,
			Message:  "oracle prices need updating",
		})
	}

	if status.Paused {
		report.Alerts = append(report.Alerts, business.Alert{
			Kind:     AlertSystemPaused,
			Severity: business.SeverityWarning,
			Message:  "relay system is paused",
		})
	}

	s.checkRelayers(now, report)

	if report.Healthy() {
		s.logger.Debug("Monitor pass healthy", zap.Int("relayers", len(report.Relayers)))
		return report, nil
	}

	for _, alert := range report.Alerts {
		s.logger.Warn("Monitor alert",
			zap.String("kind", alert.Kind),
			zap.String("severity", string(alert.Severity)),
			zap.String("message", alert.Message))
	}

	if s.alerter != nil {
		if err := s.alerter.SendAlerts(ctx, *report); err != nil {
			return report, errors.Wrap(err, "failed to send monitor alerts")
		}
	}
	return report, nil
}

func (s *MonitorService) checkRelayers(now time.Time, report *business.HealthReport) {
	minBalance := s.registry.MinRelayerBalance()
	timeout := s.registry.RelayerTimeout()

	for _, relayer := range s.registry.ListRelayers() {
		rate := successRate(relayer.SuccessfulRelays, relayer.FailedRelays)
		idle := now.Sub(relayer.LastActivityTime)
		report.Relayers = append(report.Relayers, business.RelayerHealth{
			Address:     relayer.Address,
			IsActive:    relayer.IsActive,
			Balance:     relayer.Balance,
			SuccessRate: rate,
			IdleFor:     idle,
		})

		if !relayer.IsActive {
			continue
		}
		if relayer.SuccessfulRelays+relayer.FailedRelays >= s.config.MinSamples && rate < s.config.MinSuccessRate {
			report.Alerts = append(report.Alerts, business.Alert{
				Kind:     AlertRelayerLowSuccess,
				Severity: business.SeverityWarning,
				Message:  fmt.Sprintf("relayer %s success rate %d%% is below %d%%", relayer.Address.Hex(), rate, s.config.MinSuccessRate),
			})
		}
		if idle > timeout {
			report.Alerts = append(report.Alerts, business.Alert{
				Kind:     AlertRelayerIdle,
				Severity: business.SeverityWarning,
				Message:  fmt.Sprintf("relayer %s idle for %s and can be evicted", relayer.Address.Hex(), idle.Truncate(time.Second)),
			})
		}
		if relayer.Balance.Cmp(minBalance) < 0 {
			report.Alerts = append(report.Alerts, business.Alert{
				Kind:     AlertRelayerUnderfund,
				Severity: business.SeverityCritical,
				Message:  fmt.Sprintf("relayer %s balance %s is below the minimum %s", relayer.Address.Hex(), relayer.Balance, minBalance),
			})
		}
	}
}

// LogAlerter writes alerts to the log only
type LogAlerter struct {
	logger *zap.Logger
}

// NewLogAlerter creates an alerter backed by the global logger
func NewLogAlerter() *LogAlerter {
	return &LogAlerter{logger: logger.Log.With(zap.String("component", string(logger.ComponentMonitor)))}
}

// SendAlerts implements interfaces.Alerter
func (a *LogAlerter) SendAlerts(_ context.Context, report business.HealthReport) error {
	for _, alert := range report.Alerts {
		a.logger.Error("Relay system alert",
			zap.String("kind", alert.Kind),
			zap.String("severity", string(alert.Severity)),
			zap.String("message", alert.Message),
			zap.Time("checked_at", report.CheckedAt))
	}
	return nil
}
