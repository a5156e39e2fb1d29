package booking

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PgRepository struct {
	db execer
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	if pool == nil {
		panic("booking: pgx pool required")
	}
	return &PgRepository{db: pool}
}

func (r *PgRepository) Insert(ctx context.Context, b *Booking) error {
	var phone *string
	if b.Phone != "" {
		phone = &b.Phone
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO bookings
			(id, patient_name, email, phone, date, time, doctor, specialist, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		b.ID,
		b.PatientName,
		b.Email,
		phone,
		b.Date,
		b.Time,
		b.Doctor,
		b.Specialist,
		b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("booking: insert: %w", err)
	}
	return nil
}
