// internal/adapters/mail/smtp.go
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/fusioncl/inventoryms/internal/core/ports"
	"github.com/fusioncl/inventoryms/internal/pkg/config"
)

// SMTPMailer delivers alert emails over SMTP. In development it only
// logs the message.
type SMTPMailer struct {
	config *config.Config
	logger *slog.Logger
}

var _ ports.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config *config.Config, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		logger: logger.With(slog.String("component", "mailer")),
	}
}

// Send delivers a message to a single recipient
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	m.logger.InfoContext(ctx, "sending email",
		slog.String("to", to),
		slog.String("subject", subject))

	if m.config.App.Environment == "development" {
		m.logger.InfoContext(ctx, "email would be sent",
			slog.String("to", to),
			slog.String("subject", subject),
			slog.String("body", body))
		return nil
	}

	email := m.config.Email
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		email.From, to, subject, body,
	))

	var auth smtp.Auth
	if email.SMTPUser != "" {
		auth = smtp.PlainAuth("", email.SMTPUser, email.SMTPPassword, email.SMTPHost)
	}

	addr := email.SMTPHost + ":" + email.SMTPPort
	if err := smtp.SendMail(addr, auth, email.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.InfoContext(ctx, "email sent successfully")
	return nil
}
