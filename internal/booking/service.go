package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hackgods/clinic-availability/internal/metrics"
	"github.com/hackgods/clinic-availability/internal/notify"
	"github.com/hackgods/clinic-availability/internal/validation"
)

type Service struct {
	repo    Repository
	sender  notify.EmailSender
	clinic  string
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(repo Repository, sender notify.EmailSender, clinic string, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sender == nil {
		sender = notify.NewStubEmailSender(logger)
	}
	if clinic == "" {
		clinic = "Nirogyan"
	}
	return &Service{
		repo:    repo,
		sender:  sender,
		clinic:  clinic,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Create stores the booking and then emails a confirmation. A failed email
// does not undo the booking; it is reported through Result.Notified.
func (s *Service) Create(ctx context.Context, req Request) (Result, error) {
	if err := validation.Struct(req); err != nil {
		return Result{}, err
	}
	if err := validation.Date(req.Date); err != nil {
		return Result{}, err
	}

	b := Booking{
		ID:          uuid.New(),
		PatientName: req.PatientName,
		Email:       req.Email,
		Phone:       req.Phone,
		Date:        req.Date,
		Time:        req.Time,
		Doctor:      req.Doctor,
		Specialist:  req.Specialist,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, &b); err != nil {
		s.logger.Error("insert booking failed",
			zap.String("doctor", b.Doctor),
			zap.String("date", b.Date),
			zap.Error(err),
		)
		return Result{}, err
	}

	res := Result{Booking: b, Notified: true, Message: MessageBooked}
	if err := s.sender.Send(ctx, confirmationEmail(b, s.clinic)); err != nil {
		s.logger.Warn("confirmation email failed",
			zap.String("booking_id", b.ID.String()),
			zap.String("to", b.Email),
			zap.Error(err),
		)
		res.Notified = false
		res.Message = MessageBookedNoNotice
	}

	s.metrics.ObserveBooking(res.Notified)
	s.logger.Info("booking created",
		zap.String("booking_id", b.ID.String()),
		zap.String("doctor", b.Doctor),
		zap.String("date", b.Date),
		zap.Bool("notified", res.Notified),
	)
	return res, nil
}
