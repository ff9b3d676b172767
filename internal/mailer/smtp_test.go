package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net/smtp"
	"strings"
	"testing"
)

type fakeSMTPClient struct {
	authErr  error
	tlsErr   error
	authed   bool
	quit     bool
	written  bytes.Buffer
	mailFrom string
	rcptTo   string
}

func (f *fakeSMTPClient) StartTLS(*tls.Config) error { return f.tlsErr }
func (f *fakeSMTPClient) Auth(smtp.Auth) error {
	if f.authErr != nil {
		return f.authErr
	}
	f.authed = true
	return nil
}
func (f *fakeSMTPClient) Mail(from string) error { f.mailFrom = from; return nil }
func (f *fakeSMTPClient) Rcpt(to string) error   { f.rcptTo = to; return nil }
func (f *fakeSMTPClient) Data() (io.WriteCloser, error) {
	return nopWriteCloser{&f.written}, nil
}
func (f *fakeSMTPClient) Quit() error  { f.quit = true; return nil }
func (f *fakeSMTPClient) Close() error { return nil }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func withFakeDial(t *testing.T, client *fakeSMTPClient) {
	t.Helper()
	orig := dialHook
	dialHook = func(addr string) (smtpClient, error) { return client, nil }
	t.Cleanup(func() { dialHook = orig })
}

func smtpConfig() Config {
	return Config{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     587,
		SMTPUsername: "acct@example.com",
		SMTPPassword: "secret",
		From:         DefaultFrom,
	}
}

func TestSMTPSend_Success(t *testing.T) {
	client := &fakeSMTPClient{}
	withFakeDial(t, client)

	s := NewSender(smtpConfig(), testLogger())
	ok, msg := s.Send(context.Background(), "to@example.com", "Subject", "body text")
	if !ok {
		t.Fatalf("expected success, got message %q", msg)
	}
	if msg != "Email sent successfully via smtp.example.com" {
		t.Errorf("unexpected message %q", msg)
	}
	if !client.authed || !client.quit {
		t.Error("expected auth and quit on the session")
	}
	if client.mailFrom != "acct@example.com" {
		t.Errorf("expected placeholder From replaced by username, got %q", client.mailFrom)
	}
	if client.rcptTo != "to@example.com" {
		t.Errorf("unexpected recipient %q", client.rcptTo)
	}
	if !strings.Contains(client.written.String(), "body text") {
		t.Error("message body not written to the session")
	}
}

func TestSMTPSend_GmailAuthFailure(t *testing.T) {
	client := &fakeSMTPClient{authErr: errors.New("535 bad credentials")}
	withFakeDial(t, client)

	cfg := smtpConfig()
	cfg.SMTPHost = "smtp.gmail.com"
	s := NewSender(cfg, testLogger())

	ok, msg := s.Send(context.Background(), "to@example.com", "s", "b")
	if ok {
		t.Fatal("expected failure")
	}
	if !strings.Contains(msg, "App Password") {
		t.Errorf("expected gmail remediation message, got %q", msg)
	}
}

func TestSMTPSend_GenericAuthFailure(t *testing.T) {
	client := &fakeSMTPClient{authErr: errors.New("535 bad credentials")}
	withFakeDial(t, client)

	s := NewSender(smtpConfig(), testLogger())
	ok, msg := s.Send(context.Background(), "to@example.com", "s", "b")
	if ok {
		t.Fatal("expected failure")
	}
	if !strings.Contains(msg, "Authentication failed for smtp.example.com") {
		t.Errorf("expected generic auth message, got %q", msg)
	}
}

func TestSMTPSend_TransportFault(t *testing.T) {
	client := &fakeSMTPClient{tlsErr: errors.New("tls handshake broke")}
	withFakeDial(t, client)

	s := NewSender(smtpConfig(), testLogger())
	ok, msg := s.Send(context.Background(), "to@example.com", "s", "b")
	if ok {
		t.Fatal("expected failure")
	}
	if !strings.HasPrefix(msg, "SMTP error: ") {
		t.Errorf("expected generic SMTP error message, got %q", msg)
	}
}

func TestSMTPSend_DialFailure(t *testing.T) {
	orig := dialHook
	dialHook = func(addr string) (smtpClient, error) { return nil, errors.New("connection refused") }
	t.Cleanup(func() { dialHook = orig })

	s := NewSender(smtpConfig(), testLogger())
	ok, msg := s.Send(context.Background(), "to@example.com", "s", "b")
	if ok {
		t.Fatal("expected failure")
	}
	if !strings.Contains(msg, "connection refused") {
		t.Errorf("expected dial error in message, got %q", msg)
	}
}
