package booking

import (
	"time"

	"github.com/google/uuid"
)

// Request is the body of POST /api/patients. Phone is optional.
type Request struct {
	PatientName string `json:"patient_name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Phone       string `json:"phone,omitempty"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Doctor      string `json:"doctor" validate:"required"`
	Specialist  string `json:"specialist" validate:"required"`
}

type Booking struct {
	ID          uuid.UUID `json:"id"`
	PatientName string    `json:"patient_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Doctor      string    `json:"doctor"`
	Specialist  string    `json:"specialist"`
	CreatedAt   time.Time `json:"created_at"`
}

// Result is what a successful Create returns. Notified is false when the
// booking was stored but the confirmation email could not be sent.
type Result struct {
	Booking  Booking
	Notified bool
	Message  string
}

const (
	MessageBooked         = "Appointment booked successfully! Confirmation email sent."
	MessageBookedNoNotice = "Appointment booked, but email failed to send."
)
