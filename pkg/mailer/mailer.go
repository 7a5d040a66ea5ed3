// Package mailer sends transactional email.
package mailer

import (
	"context"

	"ecommerce-demo/pkg/utils"

	"go.uber.org/zap"
)

// Mailer is what the rest of the app sends email through
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// New picks SMTP when a host is configured, otherwise the log mailer
func New(cfg utils.EmailConfig, log *zap.Logger) Mailer {
	if cfg.Host == "" {
		log.Warn("SMTP_HOST not set, emails will only be logged")
		return NewLogMailer(log)
	}
	return NewSMTPMailer(cfg, log)
}
