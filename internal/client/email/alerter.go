package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/cyphera/cyphera-relay/internal/types/business"
	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Sender is the subset of the Resend emails service used by the alerter
type Sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Alerter emails monitor findings through Resend
type Alerter struct {
	sender Sender
	from   string
	to     []string
	logger *zap.Logger
}

// NewAlerter creates an alerter using a Resend API key
func NewAlerter(apiKey, from string, to []string) *Alerter {
	return NewAlerterWithSender(resend.NewClient(apiKey).Emails, from, to)
}

// NewAlerterWithSender creates an alerter around an existing sender
func NewAlerterWithSender(sender Sender, from string, to []string) *Alerter {
	return &Alerter{
		sender: sender,
		from:   from,
		to:     to,
		logger: logger.Log.With(zap.String("component", string(logger.ComponentMonitor))),
	}
}

// SendAlerts implements interfaces.Alerter
func (a *Alerter) SendAlerts(_ context.Context, report business.HealthReport) error {
	if len(report.Alerts) == 0 {
		return nil
	}

	severity := business.SeverityWarning
	for _, alert := range report.Alerts {
		if alert.Severity == business.SeverityCritical {
			severity = business.SeverityCritical
		}
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Relay monitor check at %s\n\n", report.CheckedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&text, "Pool balance: %s (minimum %s)\n\n", report.PoolBalance, report.MinimumBalance)
	for _, alert := range report.Alerts {
		fmt.Fprintf(&text, "[%s] %s: %s\n", strings.ToUpper(string(alert.Severity)), alert.Kind, alert.Message)
	}

	sent, err := a.sender.Send(&resend.SendEmailRequest{
		From:    a.from,
		To:      a.to,
		Subject: fmt.Sprintf("[%s] %d relay alert(s)", strings.ToUpper(string(severity)), len(report.Alerts)),
		Text:    text.String(),
		Headers: map[string]string{"X-Entity-Ref-ID": uuid.New().String()},
		Tags:    []resend.Tag{{Name: "category", Value: "relay_monitor"}},
	})
	if err != nil {
		a.logger.Error("failed to send alert email", zap.Error(err), zap.Int("alerts", len(report.Alerts)))
		return fmt.Errorf("failed to send alert email: %w", err)
	}

	a.logger.Info("alert email sent", zap.String("email_id", sent.Id), zap.Int("alerts", len(report.Alerts)))
	return nil
}
