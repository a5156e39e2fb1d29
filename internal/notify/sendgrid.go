package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridSender sends mail through the SendGrid v3 API.
type SendGridSender struct {
	client    sendGridClient
	fromEmail string
	fromName  string
	logger    *zap.Logger
}

// NewSendGridSender returns nil when no API key is set.
func NewSendGridSender(cfg SendGridConfig, logger *zap.Logger) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)

	html := msg.HTML
	if html == "" {
		html = msg.Body
	}
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, html)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		s.logger.Error("sendgrid send failed", zap.String("to", msg.To), zap.Error(err))
		return fmt.Errorf("notify: sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		s.logger.Error("sendgrid returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", resp.Body),
			zap.String("to", msg.To),
		)
		return fmt.Errorf("notify: sendgrid returned status %d", resp.StatusCode)
	}

	s.logger.Info("email sent via sendgrid",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}
