package schedule

const (
	StatusAvailable = "available"
	StatusBooked    = "booked"
)

// Doctor is copied onto every availability row at seed time.
type Doctor struct {
	Name       string  `json:"name"`
	Specialty  string  `json:"specialty"`
	Avatar     string  `json:"avatar"`
	Rating     float64 `json:"rating"`
	Experience string  `json:"experience"`
	Hospital   string  `json:"hospital"`
}

// AvailabilitySlot is one (doctor, date, time slot) row.
type AvailabilitySlot struct {
	ID int64
	Doctor
	Date     string
	TimeSlot string
	Status   string
}

// DoctorSchedule is the per-doctor view returned for a date.
type DoctorSchedule struct {
	Doctor
	AvailableToday bool              `json:"availableToday"`
	Date           string            `json:"date"`
	Slots          map[string]string `json:"slots"`
}

type SlotUpdate struct {
	Name     string `json:"name" validate:"required"`
	Date     string `json:"date" validate:"required"`
	TimeSlot string `json:"time_slot" validate:"required"`
	Status   string `json:"status" validate:"required"`
}
