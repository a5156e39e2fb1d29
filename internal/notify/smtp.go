package notify

import (
	"context"
	"fmt"

	"github.com/go-gomail/gomail"
	"go.uber.org/zap"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // also the From address
	Password string
	FromName string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender sends mail through an authenticated SMTP relay.
type SMTPSender struct {
	dialer   dialer
	from     string
	fromName string
	logger   *zap.Logger
}

func NewSMTPSender(cfg SMTPConfig, logger *zap.Logger) *SMTPSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPSender{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.Username,
		fromName: cfg.FromName,
		logger:   logger,
	}
}

func (s *SMTPSender) message(msg EmailMessage) *gomail.Message {
	m := gomail.NewMessage()
	if s.fromName != "" {
		m.SetAddressHeader("From", s.from, s.fromName)
	} else {
		m.SetHeader("From", s.from)
	}
	if msg.ToName != "" {
		m.SetAddressHeader("To", msg.To, msg.ToName)
	} else {
		m.SetHeader("To", msg.To)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	return m
}

// Send dials the relay for every message. gomail has no context support, so
// ctx is only checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.dialer.DialAndSend(s.message(msg)); err != nil {
		s.logger.Error("smtp send failed", zap.String("to", msg.To), zap.Error(err))
		return fmt.Errorf("notify: smtp send failed: %w", err)
	}

	s.logger.Info("email sent via smtp", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
