package schedule

import (
	"context"
	"errors"
	"regexp"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PgRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return newPgRepositoryWithQuerier(mock), mock
}

var availabilityColumns = []string{"id", "name", "specialty", "avatar", "rating", "experience", "hospital", "date", "time_slot", "status"}

func TestPgCountForDate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM doctor_availability WHERE date = $1")).
		WithArgs("2024-01-01").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(54))

	n, err := repo.CountForDate(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 54, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgQueryByDate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, name, specialty").
		WithArgs("2024-01-01").
		WillReturnRows(pgxmock.NewRows(availabilityColumns).
			AddRow(int64(1), "Dr.Sunitha", "General Practice", "a.jpg", 4.8, "10+", "Sunitha General Care", "2024-01-01", "9am-10am", "booked").
			AddRow(int64(2), "Dr.Sunitha", "General Practice", "a.jpg", 4.8, "10+", "Sunitha General Care", "2024-01-01", "10am-11am", "available"))

	rows, err := repo.QueryByDate(context.Background(), "2024-01-01")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, AvailabilitySlot{
		ID: 1,
		Doctor: Doctor{
			Name:       "Dr.Sunitha",
			Specialty:  "General Practice",
			Avatar:     "a.jpg",
			Rating:     4.8,
			Experience: "10+",
			Hospital:   "Sunitha General Care",
		},
		Date:     "2024-01-01",
		TimeSlot: "9am-10am",
		Status:   "booked",
	}, rows[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgQueryByDateError(t *testing.T) {
	repo, mock := newMockRepo(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery("SELECT id, name, specialty").WithArgs("2024-01-01").WillReturnError(boom)

	_, err := repo.QueryByDate(context.Background(), "2024-01-01")
	require.ErrorIs(t, err, boom)
}

func TestPgUpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
	}{
		{"match", 1},
		{"no match", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)

			mock.ExpectExec("UPDATE doctor_availability").
				WithArgs("booked", "Dr.Sunitha", "2024-01-01", "9am-10am").
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))

			n, err := repo.UpdateStatus(context.Background(), "Dr.Sunitha", "2024-01-01", "9am-10am", "booked")
			require.NoError(t, err)
			assert.Equal(t, tt.affected, n)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPgLockDateRequiresTransaction(t *testing.T) {
	repo, _ := newMockRepo(t)
	require.Error(t, repo.LockDate(context.Background(), "2024-01-01"))
}

func TestPgSeederCommitsGridInOneTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)
	roster, err := NewRoster([]Doctor{{Name: "Dr.A", Rating: 4.5}}, []string{"am", "pm"})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs("doctor_availability:2024-01-01").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM doctor_availability")).
		WithArgs("2024-01-01").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	for _, slot := range []string{"am", "pm"} {
		mock.ExpectExec("INSERT INTO doctor_availability").
			WithArgs("Dr.A", "", "", 4.5, "", "", "2024-01-01", slot, StatusAvailable).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	seeded, err := NewSeeder(repo, roster, passthroughLocker{}, nil, nil).EnsureDay(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.True(t, seeded)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgSeederSkipsSeededDay(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs("doctor_availability:2024-01-01").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM doctor_availability")).
		WithArgs("2024-01-01").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(54))
	mock.ExpectCommit()

	seeded, err := NewSeeder(repo, DefaultRoster(), passthroughLocker{}, nil, nil).EnsureDay(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.False(t, seeded)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgSeederRollsBackOnInsertError(t *testing.T) {
	repo, mock := newMockRepo(t)
	roster, err := NewRoster([]Doctor{{Name: "Dr.A"}}, []string{"am", "pm"})
	require.NoError(t, err)
	boom := errors.New("unique violation")

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs("doctor_availability:2024-01-01").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM doctor_availability")).
		WithArgs("2024-01-01").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO doctor_availability").
		WithArgs("Dr.A", "", "", 0.0, "", "", "2024-01-01", "am", StatusAvailable).
		WillReturnError(boom)
	mock.ExpectRollback()

	seeded, err := NewSeeder(repo, roster, passthroughLocker{}, nil, nil).EnsureDay(context.Background(), "2024-01-01")
	require.ErrorIs(t, err, boom)
	assert.False(t, seeded)
	require.NoError(t, mock.ExpectationsWereMet())
}
