package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/amirasaad/subtracker/pkg/config"
	"github.com/amirasaad/subtracker/pkg/provider"
)

// SMTPMailer sends mail through an SMTP relay with PLAIN auth when a username
// is configured.
type SMTPMailer struct {
	addr   string
	host   string
	from   string
	auth   smtp.Auth
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	logger *slog.Logger
}

// NewSMTPMailer creates an SMTPMailer from the mail settings.
func NewSMTPMailer(cfg *config.Mail, logger *slog.Logger) *SMTPMailer {
	m := &SMTPMailer{
		addr:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		host:   cfg.Host,
		from:   cfg.From,
		send:   smtp.SendMail,
		logger: logger.With("component", "smtp-mailer", "host", cfg.Host),
	}
	if cfg.Username != "" {
		m.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return m
}

// Send implements provider.Mailer. net/smtp has no context support, so ctx
// is only checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, msg provider.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(msg.To, "\r\n") || strings.ContainsAny(msg.Subject, "\r\n") {
		return fmt.Errorf("smtp: header contains line break")
	}
	if err := m.send(m.addr, m.auth, m.from, []string{msg.To}, m.format(msg)); err != nil {
		m.logger.Error("send failed", "to", msg.To, "error", err)
		return fmt.Errorf("%w: %v", provider.ErrProviderUnavailable, err)
	}
	m.logger.Info("email sent", "to", msg.To)
	return nil
}

func (m *SMTPMailer) format(msg provider.Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}
