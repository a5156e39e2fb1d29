package notify

import (
	"context"

	"go.uber.org/zap"
)

// StubEmailSender logs messages instead of sending them.
type StubEmailSender struct {
	logger *zap.Logger
}

func NewStubEmailSender(logger *zap.Logger) *StubEmailSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StubEmailSender{logger: logger}
}

func (s *StubEmailSender) Send(ctx context.Context, msg EmailMessage) error {
	s.logger.Info("stub email sender: would send email",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
