package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hackgods/clinic-availability/internal/config"
)

// EmailSender delivers a single message. SMTP, SendGrid and the stub all
// satisfy it so callers never depend on a provider.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage is one outbound email.
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Body    string // plain text
	HTML    string // optional
}

// New picks a sender for cfg.MailProvider.
func New(cfg config.Config, logger *zap.Logger) (EmailSender, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.MailProvider {
	case config.MailProviderSMTP:
		if cfg.MailFrom == "" {
			return nil, fmt.Errorf("notify: EMAIL is required for smtp")
		}
		return NewSMTPSender(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.MailFrom,
			Password: cfg.MailPassword,
			FromName: cfg.MailFromName,
		}, logger), nil
	case config.MailProviderSendGrid:
		s := NewSendGridSender(SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.MailFrom,
			FromName:  cfg.MailFromName,
		}, logger)
		if s == nil {
			return nil, fmt.Errorf("notify: SENDGRID_API_KEY is required for sendgrid")
		}
		return s, nil
	case config.MailProviderStub, "":
		return NewStubEmailSender(logger), nil
	default:
		return nil, fmt.Errorf("notify: unsupported mail provider %q", cfg.MailProvider)
	}
}
