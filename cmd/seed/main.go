package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hackgods/clinic-availability/internal/app"
	"github.com/hackgods/clinic-availability/internal/booking"
	"github.com/hackgods/clinic-availability/internal/config"
	"github.com/hackgods/clinic-availability/internal/logging"
	"github.com/hackgods/clinic-availability/internal/schedule"
	"github.com/hackgods/clinic-availability/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	days := flag.Int("days", cfg.SeedDaysAhead, "number of days to seed")
	from := flag.String("from", "", "first date to seed (YYYY-MM-DD), default today")
	bookings := flag.Int("bookings", 0, "fake bookings to create per seeded day")
	flag.Parse()

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	start := time.Now().In(cfg.Timezone)
	if *from != "" {
		start, err = time.ParseInLocation(validation.DateLayout, *from, cfg.Timezone)
		if err != nil {
			logger.Fatal("invalid -from date", zap.String("from", *from), zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	a, err := app.New(ctx, cfg, logger, "seed")
	if err != nil {
		logger.Fatal("startup error", zap.Error(err))
	}
	defer a.Close()

	logger.Info("seed starting", zap.String("from", start.Format(validation.DateLayout)), zap.Int("days", *days))

	seeded, err := a.Schedule.SeedAhead(ctx, start, *days)
	if err != nil {
		logger.Fatal("seed availability", zap.Error(err))
	}
	logger.Info("availability seeded", zap.Int("new_days", seeded))

	if *bookings > 0 {
		for i := 0; i < *days; i++ {
			date := start.AddDate(0, 0, i).Format(validation.DateLayout)
			if err := seedBookings(ctx, a, date, *bookings); err != nil {
				logger.Fatal("seed bookings", zap.String("date", date), zap.Error(err))
			}
		}
	}

	logger.Info("seed complete")
}

// seedBookings stores fake bookings directly, skipping confirmation email,
// and marks their slots booked.
func seedBookings(ctx context.Context, a *app.App, date string, count int) error {
	doctors := a.Roster.Doctors()
	slots := a.Roster.Slots()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < count; i++ {
		doctor := doctors[rng.Intn(len(doctors))]
		slot := slots[rng.Intn(len(slots))]

		b := booking.Booking{
			ID:          uuid.New(),
			PatientName: gofakeit.Name(),
			Email:       gofakeit.Email(),
			Phone:       gofakeit.Phone(),
			Date:        date,
			Time:        slot,
			Doctor:      doctor.Name,
			Specialist:  doctor.Specialty,
			CreatedAt:   time.Now().UTC(),
		}
		if err := a.BookingRepo.Insert(ctx, &b); err != nil {
			return err
		}

		err := a.Schedule.UpdateSlotStatus(ctx, schedule.SlotUpdate{
			Name:     doctor.Name,
			Date:     date,
			TimeSlot: slot,
			Status:   schedule.StatusBooked,
		})
		if err != nil {
			return err
		}
	}

	a.Logger.Info("bookings seeded", zap.String("date", date), zap.Int("count", count))
	return nil
}
