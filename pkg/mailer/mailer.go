// Package mailer sends transactional mail for the portal. An SMTP
// implementation backs production; a logging implementation keeps local
// development working without a mail server.
package mailer

import (
	"context"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Mailer delivers a single message.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger zerolog.Logger
}

// NewSMTPMailer constructs an SMTP-backed mailer.
func NewSMTPMailer(host string, port int, username, password, from string, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		logger: logger.With().Str("component", "smtp_mailer").Logger(),
	}
}

// Send delivers the message, honouring context cancellation.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error().Err(err).Str("subject", subject).Msg("failed to send mail")
		return err
	}
	return nil
}

// LogMailer logs instead of sending. Useful when SMTP is not configured.
type LogMailer struct {
	logger zerolog.Logger
}

// NewLogMailer constructs a logging mailer.
func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With().Str("component", "log_mailer").Logger()}
}

// Send logs the message and reports success.
func (m *LogMailer) Send(_ context.Context, to, subject, _ string) error {
	m.logger.Info().Str("to", maskRecipient(to)).Str("subject", subject).Msg("mail delivery skipped, no SMTP configured")
	return nil
}

func maskRecipient(email string) string {
	if len(email) <= 3 {
		return "***"
	}
	return email[:2] + "***"
}
