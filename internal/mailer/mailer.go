// Package mailer sends notification emails through one of two transports:
// the SendGrid HTTP API when an API key is configured, otherwise SMTP when
// username/password credentials are configured.
package mailer

import (
	"context"
	"log/slog"
	"strings"
)

// DefaultFrom is the placeholder sender address used when FROM_EMAIL is
// unset. The SMTP transport substitutes the account username for it.
const DefaultFrom = "noreply@example.com"

const notConfiguredMessage = "Email service not configured. Please set up SendGrid API key or SMTP credentials."

// Config holds the credentials for both transports.
type Config struct {
	SendGridKey  string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	From         string
}

// transport is one concrete delivery mechanism. attempt returns a
// user-facing success message, or an error whose text is the user-facing
// fault message.
type transport interface {
	name() string
	attempt(ctx context.Context, recipient, subject, body string) (string, error)
}

// Sender delivers notification emails. The transport is chosen once at
// construction: SendGrid wins when its key is present, regardless of
// whether SMTP credentials also exist; there is no per-send fallback.
type Sender struct {
	transport transport
	log       *slog.Logger
}

// NewSender builds a Sender from config. With no usable credentials the
// Sender is unconfigured and every send is refused without a network call.
func NewSender(cfg Config, log *slog.Logger) *Sender {
	s := &Sender{log: log}
	switch {
	case cfg.SendGridKey != "":
		s.transport = newSendGridTransport(cfg.SendGridKey, cfg.From)
	case cfg.SMTPUsername != "" && cfg.SMTPPassword != "":
		s.transport = newSMTPTransport(cfg)
	}
	return s
}

// IsConfigured reports whether any transport has usable credentials.
func (s *Sender) IsConfigured() bool {
	return s.transport != nil
}

// Send delivers one email. The returned message is user-facing for both
// outcomes; faults never propagate as errors.
func (s *Sender) Send(ctx context.Context, recipient, subject, body string) (bool, string) {
	if s.transport == nil {
		return false, notConfiguredMessage
	}

	msg, err := s.transport.attempt(ctx, recipient, subject, body)
	if err != nil {
		s.log.Error("email send failed", "transport", s.transport.name(), "recipient", recipient, "error", err)
		return false, err.Error()
	}
	s.log.Info("email sent", "transport", s.transport.name(), "recipient", recipient)
	return true, msg
}

// TestConnection reports configuration status. It does not perform a live
// round-trip.
func (s *Sender) TestConnection() (bool, string) {
	if s.transport == nil {
		return false, "Email service not configured"
	}
	return true, s.transport.name() + " configured"
}

// isHTML reports whether a body should be sent as HTML, detected by
// tag-like substrings.
func isHTML(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "<html>") || strings.Contains(lower, "<p>")
}
