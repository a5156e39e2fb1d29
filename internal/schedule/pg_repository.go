package schedule

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PgRepository struct {
	db   querier
	inTx bool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	if pool == nil {
		panic("schedule: pgx pool required")
	}
	return &PgRepository{db: pool}
}

func newPgRepositoryWithQuerier(q querier) *PgRepository {
	return &PgRepository{db: q}
}

func (r *PgRepository) CountForDate(ctx context.Context, date string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM doctor_availability WHERE date = $1
	`, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("schedule: count for date: %w", err)
	}
	return count, nil
}

func (r *PgRepository) InsertRow(ctx context.Context, doctor Doctor, date, slot, status string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO doctor_availability
			(name, specialty, avatar, rating, experience, hospital, date, time_slot, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (name, date, time_slot) DO NOTHING
	`, doctor.Name, doctor.Specialty, doctor.Avatar, doctor.Rating,
		doctor.Experience, doctor.Hospital, date, slot, status)
	if err != nil {
		return fmt.Errorf("schedule: insert row: %w", err)
	}
	return nil
}

func (r *PgRepository) QueryByDate(ctx context.Context, date string) ([]AvailabilitySlot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, specialty, avatar, rating, experience, hospital, date, time_slot, status
		FROM doctor_availability
		WHERE date = $1
		ORDER BY id
	`, date)
	if err != nil {
		return nil, fmt.Errorf("schedule: query by date: %w", err)
	}
	defer rows.Close()

	var result []AvailabilitySlot
	for rows.Next() {
		var s AvailabilitySlot
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Specialty,
			&s.Avatar,
			&s.Rating,
			&s.Experience,
			&s.Hospital,
			&s.Date,
			&s.TimeSlot,
			&s.Status,
		); err != nil {
			return nil, fmt.Errorf("schedule: scan availability row: %w", err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("schedule: query by date: %w", err)
	}

	return result, nil
}

func (r *PgRepository) UpdateStatus(ctx context.Context, doctor, date, slot, status string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE doctor_availability
		SET status = $1,
		    updated_at = now()
		WHERE name = $2
		  AND date = $3
		  AND time_slot = $4
	`, status, doctor, date, slot)
	if err != nil {
		return 0, fmt.Errorf("schedule: update status: %w", err)
	}
	return tag.RowsAffected(), nil
}

// LockDate takes a transaction scoped advisory lock keyed by the date, so
// two transactions seeding the same day run one after the other.
func (r *PgRepository) LockDate(ctx context.Context, date string) error {
	if !r.inTx {
		return fmt.Errorf("schedule: lock date %s outside a transaction", date)
	}
	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "doctor_availability:"+date); err != nil {
		return fmt.Errorf("schedule: lock date: %w", err)
	}
	return nil
}

func (r *PgRepository) InTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error {
	if r.inTx {
		return fn(ctx, r)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("schedule: begin tx: %w", err)
	}

	if err := fn(ctx, &PgRepository{db: tx, inTx: true}); err != nil {
		_ = tx.Rollback(context.WithoutCancel(ctx))
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("schedule: commit tx: %w", err)
	}
	return nil
}
