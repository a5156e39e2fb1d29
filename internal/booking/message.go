package booking

import (
	"fmt"

	"github.com/hackgods/clinic-availability/internal/notify"
)

const confirmationSubject = "Appointment Confirmation"

func confirmationEmail(b Booking, clinic string) notify.EmailMessage {
	body := fmt.Sprintf(`Hi %s,

Your appointment is all set! We've booked you in with one of our experienced specialists.
Here are the details:

Doctor: %s
Specialist in: %s
Date: %s
Time: %s

Have questions or need to change the time? No worries, just give us a call or drop us an email.

Thank you for choosing %s. We're here to make your healthcare experience smooth and stress-free. See you soon!

Take care,
Team %s
`, b.PatientName, b.Doctor, b.Specialist, b.Date, b.Time, clinic, clinic)

	return notify.EmailMessage{
		To:      b.Email,
		ToName:  b.PatientName,
		Subject: confirmationSubject,
		Body:    body,
	}
}
