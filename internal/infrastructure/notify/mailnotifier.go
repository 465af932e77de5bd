// Package notify delivers best-effort alert notifications over SMTP.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/shopfloor-io/shopfloor/internal/domain/alert"
	"github.com/shopfloor-io/shopfloor/internal/domain/shared/events"
	"github.com/shopfloor-io/shopfloor/internal/shared/config"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

// MailNotifier mails the plant quality staff when an alert is raised. It
// consumes AlertRaisedEvent off the dispatcher; delivery is best-effort and
// never feeds back into the dispatch path.
type MailNotifier struct {
	cfg       config.MailConfig
	dialer    *gomail.Dialer
	alertRepo alert.Repository
	logger    logger.Interface
}

// NewMailNotifier creates a new MailNotifier.
func NewMailNotifier(cfg config.MailConfig, alertRepo alert.Repository, log logger.Interface) *MailNotifier {
	return &MailNotifier{
		cfg:       cfg,
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		alertRepo: alertRepo,
		logger:    log,
	}
}

// Subscribe registers the notifier on the event dispatcher. Disabled mail
// config skips registration entirely.
func (n *MailNotifier) Subscribe(dispatcher events.EventDispatcher) error {
	if !n.cfg.Enabled {
		n.logger.Infow("mail notifications disabled, skipping subscription")
		return nil
	}
	if len(n.cfg.To) == 0 {
		n.logger.Warnw("mail notifications enabled but no recipients configured")
		return nil
	}

	handler := events.NewSimpleEventHandler(alert.EventTypeAlertRaised, n.handleAlertRaised)
	return dispatcher.Subscribe(alert.EventTypeAlertRaised, handler)
}

func (n *MailNotifier) handleAlertRaised(event events.DomainEvent) error {
	raised, ok := event.(*alert.AlertRaisedEvent)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := n.alertRepo.GetBySID(ctx, raised.AlertSID)
	if err != nil {
		n.logger.Errorw("failed to load alert for notification",
			"error", err,
			"alert_sid", raised.AlertSID,
		)
		return nil
	}

	if err := n.sendAlertMail(a); err != nil {
		n.logger.Errorw("failed to send alert notification",
			"error", err,
			"alert_sid", a.SID(),
		)
		return nil
	}

	n.logger.Infow("alert notification sent",
		"alert_sid", a.SID(),
		"severity", a.Severity().String(),
		"recipients", len(n.cfg.To),
	)
	return nil
}

func (n *MailNotifier) sendAlertMail(a *alert.ProductionAlert) error {
	subject := fmt.Sprintf("[%s] Quality gate alert: %s", a.Severity().String(), a.TestName())

	var rolePlain, roleHTML strings.Builder
	for _, role := range a.TargetRoles() {
		rolePlain.WriteString(fmt.Sprintf("%s: %s\n", role, a.MessageFor(role)))
		roleHTML.WriteString(fmt.Sprintf("<li><b>%s</b>: %s</li>\n", role, a.MessageFor(role)))
	}

	plainBody := fmt.Sprintf(`Quality gate alert %s

%s

Test:      %s
Reason:    %s
Measured:  %.1f
Threshold: %.1f
Raised:    %s

%s`,
		a.SID(),
		a.Message(),
		a.TestName(),
		a.ReasonCode(),
		a.Measured(),
		a.Threshold(),
		a.RaisedAt().Format(time.RFC3339),
		rolePlain.String(),
	)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Quality gate alert %s</h2>
			<p>%s</p>
			<ul>
				<li>Test: %s</li>
				<li>Reason: %s</li>
				<li>Measured: %.1f</li>
				<li>Threshold: %.1f</li>
				<li>Raised: %s</li>
			</ul>
			<ul>
				%s
			</ul>
		</body>
		</html>
	`,
		a.SID(),
		a.Message(),
		a.TestName(),
		a.ReasonCode(),
		a.Measured(),
		a.Threshold(),
		a.RaisedAt().Format(time.RFC3339),
		roleHTML.String(),
	)

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", n.cfg.To...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
