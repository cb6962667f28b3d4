// Package notify delivers the check digest: email over SMTP with a
// console fallback, plus an optional Slack webhook channel.
package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/auroraeye/internal/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends a single digest message to all recipients. When SMTP
// settings are absent, the would-be message body is printed instead of
// failing.
type Mailer struct {
	settings *config.Settings
	logger   *zap.Logger
	out      io.Writer

	// send seam for tests; defaults to a real SMTP dial.
	send func(msg *gomail.Message) error
}

// NewMailer creates a mailer for the given settings.
func NewMailer(settings *config.Settings, logger *zap.Logger) *Mailer {
	m := &Mailer{
		settings: settings,
		logger:   logger,
		out:      os.Stdout,
	}
	m.send = func(msg *gomail.Message) error {
		d := gomail.NewDialer(settings.SMTPServer, settings.SMTPPort, settings.SMTPUsername, settings.SMTPPassword)
		return d.DialAndSend(msg)
	}
	return m
}

// SetOutput redirects the console fallback output.
func (m *Mailer) SetOutput(w io.Writer) {
	m.out = w
}

// Send delivers one message to every recipient. Missing SMTP settings
// fall back to printing the body; this is not an error.
func (m *Mailer) Send(recipients []string, subject, plain, html string) error {
	if !m.settings.SMTPConfigured() {
		m.logger.Warn("SMTP credentials not configured, printing message instead",
			zap.Strings("recipients", recipients),
			zap.String("subject", subject))
		fmt.Fprintln(m.out, "Warning: SMTP credentials not configured. Email not sent.")
		fmt.Fprintf(m.out, "Would have sent to: %v\nSubject: %s\n\n%s\n", recipients, subject, plain)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.settings.SMTPUsername)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plain)
	if html != "" {
		msg.AddAlternative("text/html", html)
	}

	m.logger.Debug("connecting to SMTP server",
		zap.String("host", m.settings.SMTPServer),
		zap.Int("port", m.settings.SMTPPort))

	if err := m.send(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	m.logger.Info("email notification sent", zap.Strings("recipients", recipients))
	fmt.Fprintf(m.out, "Email notification sent to %d recipient(s)\n", len(recipients))
	return nil
}
