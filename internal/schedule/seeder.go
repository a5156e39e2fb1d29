package schedule

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hackgods/clinic-availability/internal/metrics"
)

// Seeder makes sure a date holds one row per (doctor, slot) before anything
// reads or writes it.
type Seeder struct {
	repo    Repository
	roster  Roster
	locker  Locker
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewSeeder(repo Repository, roster Roster, locker Locker, m *metrics.Metrics, logger *zap.Logger) *Seeder {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		repo:    repo,
		roster:  roster,
		locker:  locker,
		metrics: m,
		logger:  logger,
	}
}

// EnsureDay seeds date with every doctor x slot row set to available unless
// the date already has rows. It reports whether this call did the seeding.
//
// Count and inserts run in one transaction under a date lock, so concurrent
// first access produces one grid. Any insert failure rolls back the whole
// day; existing rows are never reconciled.
func (s *Seeder) EnsureDay(ctx context.Context, date string) (bool, error) {
	seeded := false

	err := s.locker.WithDateLock(ctx, date, func(ctx context.Context) error {
		return s.repo.InTx(ctx, func(ctx context.Context, tx Repository) error {
			seeded = false

			if err := tx.LockDate(ctx, date); err != nil {
				return err
			}

			count, err := tx.CountForDate(ctx, date)
			if err != nil {
				s.logger.Error("count availability failed", zap.String("date", date), zap.Error(err))
				return err
			}
			if count > 0 {
				return nil
			}

			for _, doctor := range s.roster.Doctors() {
				for _, slot := range s.roster.Slots() {
					if err := tx.InsertRow(ctx, doctor, date, slot, StatusAvailable); err != nil {
						s.logger.Error("insert availability row failed",
							zap.String("doctor", doctor.Name),
							zap.String("date", date),
							zap.String("time_slot", slot),
							zap.Error(err),
						)
						return fmt.Errorf("seed %s %s: %w", doctor.Name, slot, err)
					}
				}
			}

			seeded = true
			return nil
		})
	})
	if err != nil {
		s.metrics.ObserveSeedFailure()
		return false, err
	}

	if seeded {
		s.metrics.ObserveDaySeeded(s.roster.GridSize())
		s.logger.Info("seeded availability",
			zap.String("date", date),
			zap.Int("rows", s.roster.GridSize()),
		)
	}

	return seeded, nil
}
