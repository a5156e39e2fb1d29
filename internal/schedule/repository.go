package schedule

import (
	"context"
	"errors"
)

var (
	ErrSlotNotFound = errors.New("no matching availability slot")
)

// Repository is the availability store.
type Repository interface {
	CountForDate(ctx context.Context, date string) (int, error)

	// InsertRow ignores a row whose (doctor, date, slot) already exists.
	InsertRow(ctx context.Context, doctor Doctor, date, slot, status string) error
	QueryByDate(ctx context.Context, date string) ([]AvailabilitySlot, error)

	// UpdateStatus returns the number of rows changed, 0 or 1.
	UpdateStatus(ctx context.Context, doctor, date, slot, status string) (int64, error)

	// LockDate holds a date-scoped lock until the enclosing transaction ends.
	LockDate(ctx context.Context, date string) error

	// InTx runs fn against a transactional view of the store. Nothing fn
	// wrote is visible to others unless fn returns nil.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error
}

// Locker gives a caller exclusive use of one date while fn runs.
type Locker interface {
	WithDateLock(ctx context.Context, date string, fn func(ctx context.Context) error) error
}
