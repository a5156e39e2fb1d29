package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hackgods/clinic-availability/internal/metrics"
	"github.com/hackgods/clinic-availability/internal/notify"
	"github.com/hackgods/clinic-availability/internal/validation"
)

type mockEmailSender struct {
	sent []notify.EmailMessage
	err  error
}

func (m *mockEmailSender) Send(ctx context.Context, msg notify.EmailMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type failingRepository struct{ err error }

func (f failingRepository) Insert(ctx context.Context, b *Booking) error { return f.err }

func validRequest() Request {
	return Request{
		PatientName: "Asha",
		Email:       "asha@example.com",
		Date:        "2024-01-01",
		Time:        "9am-10am",
		Doctor:      "Dr.Sunitha",
		Specialist:  "Cardiologist",
	}
}

func TestCreateStoresAndNotifies(t *testing.T) {
	repo := NewMemoryRepository()
	sender := &mockEmailSender{}
	svc := NewService(repo, sender, "Nirogyan", nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC) }

	res, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, res.Notified)
	assert.Equal(t, MessageBooked, res.Message)
	assert.NotEqual(t, uuid.Nil, res.Booking.ID)

	stored := repo.All()
	require.Len(t, stored, 1)
	assert.Equal(t, res.Booking, stored[0])
	assert.Equal(t, "Dr.Sunitha", stored[0].Doctor)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "asha@example.com", msg.To)
	assert.Equal(t, "Appointment Confirmation", msg.Subject)
	for _, want := range []string{"Hi Asha", "Dr.Sunitha", "Cardiologist", "2024-01-01", "9am-10am", "Team Nirogyan"} {
		assert.True(t, strings.Contains(msg.Body, want), "body missing %q", want)
	}
}

func TestCreateRejectsMissingFields(t *testing.T) {
	repo := NewMemoryRepository()
	sender := &mockEmailSender{}
	svc := NewService(repo, sender, "", nil, nil)

	req := validRequest()
	req.Email = ""
	req.Doctor = ""

	_, err := svc.Create(context.Background(), req)
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{"email", "doctor"}, verr.Fields)
	assert.Empty(t, repo.All())
	assert.Empty(t, sender.sent)
}

func TestCreatePhoneIsOptional(t *testing.T) {
	svc := NewService(NewMemoryRepository(), &mockEmailSender{}, "", nil, nil)

	req := validRequest()
	req.Phone = ""
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
}

func TestCreateRejectsMalformedDate(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, &mockEmailSender{}, "", nil, nil)

	req := validRequest()
	req.Date = "01/01/2024"
	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, validation.ErrInvalidDate)
	assert.Empty(t, repo.All())
}

func TestCreateKeepsBookingWhenEmailFails(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	repo := NewMemoryRepository()
	svc := NewService(repo, &mockEmailSender{err: errors.New("smtp down")}, "", m, zap.New(core))

	res, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, res.Notified)
	assert.Equal(t, MessageBookedNoNotice, res.Message)
	assert.Len(t, repo.All(), 1)
	assert.Equal(t, 1, logs.FilterMessage("confirmation email failed").Len())

	count, err := testutil.GatherAndCount(reg, "clinic_booking_notifications_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateSurfacesStorageError(t *testing.T) {
	boom := errors.New("db down")
	sender := &mockEmailSender{}
	svc := NewService(failingRepository{err: boom}, sender, "", nil, nil)

	_, err := svc.Create(context.Background(), validRequest())
	require.ErrorIs(t, err, boom)
	assert.Empty(t, sender.sent)
}
