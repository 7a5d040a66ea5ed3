package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"ecommerce-demo/pkg/utils"

	"go.uber.org/zap"
)

var ErrNoRecipient = errors.New("recipient address is required")

// SMTPMailer delivers plain-text mail through an authenticated relay
type SMTPMailer struct {
	cfg     utils.EmailConfig
	timeout time.Duration
	log     *zap.Logger
}

func NewSMTPMailer(cfg utils.EmailConfig, log *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:     cfg,
		timeout: 15 * time.Second,
		log:     log.With(zap.String("component", "mailer")),
	}
}

func (m *SMTPMailer) from() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	return m.cfg.User
}

// Send blocks until the relay accepted the message or the timeout elapsed
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return ErrNoRecipient
	}

	msg := buildMessage(m.from(), to, subject, body)
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.from(), []string{to}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			m.log.Warn("SMTP delivery failed", zap.Error(err), zap.String("to", to))
			return fmt.Errorf("send mail to %s: %w", to, err)
		}
		m.log.Info("Mail sent", zap.String("to", to), zap.String("subject", subject))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send mail to %s: %w", to, ctx.Err())
	}
}

// headerValue folds line breaks so a value cannot start a new header
var headerValue = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", headerValue.Replace(from))
	fmt.Fprintf(&b, "To: %s\r\n", headerValue.Replace(to))
	fmt.Fprintf(&b, "Subject: %s\r\n", headerValue.Replace(subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// LogMailer writes mail to the log instead of sending it. Used when no
// SMTP host is configured.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log.With(zap.String("component", "mailer"))}
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return ErrNoRecipient
	}
	m.log.Info("Mail (not sent, no SMTP host)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
