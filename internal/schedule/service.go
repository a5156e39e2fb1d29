package schedule

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hackgods/clinic-availability/internal/metrics"
	"github.com/hackgods/clinic-availability/internal/validation"
)

type Service struct {
	repo    Repository
	seeder  *Seeder
	loc     *time.Location
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(repo Repository, seeder *Seeder, loc *time.Location, m *metrics.Metrics, logger *zap.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		seeder:  seeder,
		loc:     loc,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Today is the current calendar date in the service's time zone.
func (s *Service) Today() string {
	return s.now().In(s.loc).Format(validation.DateLayout)
}

// GetSchedule returns every doctor's slots for date, seeding it first.
// An empty date means today.
func (s *Service) GetSchedule(ctx context.Context, date string) ([]DoctorSchedule, error) {
	if date == "" {
		date = s.Today()
	}
	if err := validation.Date(date); err != nil {
		return nil, err
	}

	if _, err := s.seeder.EnsureDay(ctx, date); err != nil {
		return nil, fmt.Errorf("ensure day %s: %w", date, err)
	}

	rows, err := s.repo.QueryByDate(ctx, date)
	if err != nil {
		s.logger.Error("query schedule failed", zap.String("date", date), zap.Error(err))
		return nil, err
	}

	return BuildView(date, rows), nil
}

// UpdateSlotStatus sets the status of one (doctor, date, slot) row.
func (s *Service) UpdateSlotStatus(ctx context.Context, u SlotUpdate) error {
	if err := validation.Struct(u); err != nil {
		return err
	}
	if err := validation.Date(u.Date); err != nil {
		return err
	}

	if _, err := s.seeder.EnsureDay(ctx, u.Date); err != nil {
		return fmt.Errorf("ensure day %s: %w", u.Date, err)
	}

	n, err := s.repo.UpdateStatus(ctx, u.Name, u.Date, u.TimeSlot, u.Status)
	if err != nil {
		s.logger.Error("update slot status failed",
			zap.String("doctor", u.Name),
			zap.String("date", u.Date),
			zap.String("time_slot", u.TimeSlot),
			zap.String("status", u.Status),
			zap.Error(err),
		)
		return err
	}

	s.metrics.ObserveStatusUpdate(n > 0)
	if n == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// SeedAhead seeds days consecutive dates starting at from and returns how
// many of them were newly seeded.
func (s *Service) SeedAhead(ctx context.Context, from time.Time, days int) (int, error) {
	start := from.In(s.loc)
	seeded := 0
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format(validation.DateLayout)
		ok, err := s.seeder.EnsureDay(ctx, date)
		if err != nil {
			return seeded, fmt.Errorf("seed %s: %w", date, err)
		}
		if ok {
			seeded++
		}
	}
	return seeded, nil
}
