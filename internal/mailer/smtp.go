package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
)

// smtpClient is the subset of *smtp.Client the transport uses; a seam for
// tests.
type smtpClient interface {
	StartTLS(*tls.Config) error
	Auth(smtp.Auth) error
	Mail(string) error
	Rcpt(string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// dialHook allows tests to override SMTP dialing.
var dialHook = func(addr string) (smtpClient, error) {
	return smtp.Dial(addr)
}

// smtpTransport delivers mail over SMTP with STARTTLS.
type smtpTransport struct {
	host string
	port int
	user string
	pass string
	from string
}

func newSMTPTransport(cfg Config) *smtpTransport {
	return &smtpTransport{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUsername,
		pass: cfg.SMTPPassword,
		from: cfg.From,
	}
}

func (t *smtpTransport) name() string { return "SMTP" }

// fromAddress resolves the From header: the configured address unless it is
// the unset placeholder, in which case the account username is used.
func (t *smtpTransport) fromAddress() string {
	if t.from != "" && t.from != DefaultFrom {
		return t.from
	}
	return t.user
}

func (t *smtpTransport) attempt(ctx context.Context, recipient, subject, body string) (string, error) {
	_ = ctx // net/smtp has no context support; transport timeouts apply.

	msg, err := t.buildMessage(recipient, subject, body)
	if err != nil {
		return "", t.transportError(err)
	}

	client, err := dialHook(fmt.Sprintf("%s:%d", t.host, t.port))
	if err != nil {
		return "", t.transportError(err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: t.host}); err != nil {
		return "", t.transportError(err)
	}

	auth := smtp.PlainAuth("", t.user, t.pass, t.host)
	if err := client.Auth(auth); err != nil {
		if strings.Contains(strings.ToLower(t.host), "gmail") {
			return "", fmt.Errorf("Gmail authentication failed. Make sure you're using an App Password, not your regular password. Enable 2FA and generate an App Password in your Google Account settings.")
		}
		return "", fmt.Errorf("Authentication failed for %s: %v", t.host, err)
	}

	if err := client.Mail(t.fromAddress()); err != nil {
		return "", t.transportError(err)
	}
	if err := client.Rcpt(recipient); err != nil {
		return "", t.transportError(err)
	}
	w, err := client.Data()
	if err != nil {
		return "", t.transportError(err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return "", t.transportError(err)
	}
	if err := w.Close(); err != nil {
		return "", t.transportError(err)
	}
	if err := client.Quit(); err != nil {
		return "", t.transportError(err)
	}

	return fmt.Sprintf("Email sent successfully via %s", t.host), nil
}

// buildMessage assembles a multipart/alternative MIME message with a single
// HTML or plain-text sub-part, chosen by scanning the body for markup.
func (t *smtpTransport) buildMessage(recipient, subject, body string) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", t.fromAddress())
	fmt.Fprintf(&buf, "To: %s\r\n", recipient)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", mw.Boundary())
	fmt.Fprintf(&buf, "\r\n")

	contentType := "text/plain"
	if isHTML(body) {
		contentType = "text/html"
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType+`; charset="utf-8"`)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(body)); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (t *smtpTransport) transportError(err error) error {
	return fmt.Errorf("SMTP error: %v. Check your email credentials and server settings.", err)
}
