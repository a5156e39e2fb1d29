package schedule

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Roster is the fixed set of doctors and slot labels seeded for every date.
// It is built once at start and never mutated.
type Roster struct {
	doctors []Doctor
	slots   []string
}

var defaultDoctors = []Doctor{
	{
		Name:       "Dr.Sunitha",
		Specialty:  "General Practice",
		Avatar:     "https://www.shutterstock.com/image-photo/head-shot-woman-wearing-white-600nw-1529466836.jpg",
		Rating:     4.8,
		Experience: "10+",
		Hospital:   "Sunitha General Care",
	},
	{
		Name:       "Dr.Ramaya",
		Specialty:  "Pediatrics",
		Avatar:     "https://static.vecteezy.com/system/resources/thumbnails/048/638/758/small/female-doctor-in-a-with-a-gray-background-free-photo.jpg",
		Rating:     4.9,
		Experience: "8+",
		Hospital:   "Children's Medical Center",
	},
	{
		Name:       "Dr.Vinay Kumar",
		Specialty:  "General Surgery",
		Avatar:     "https://media.istockphoto.com/id/1311511363/photo/headshot-portrait-of-smiling-male-doctor-with-tablet.jpg?s=612x612&w=0&k=20&c=w5TecWtlA_ZHRpfGh20II-nq5AvnhpFu6BfOfMHuLMA=",
		Rating:     4.5,
		Experience: "8+",
		Hospital:   "Yodha",
	},
	{
		Name:       "Dr.Yashwanth",
		Specialty:  "Dermatology",
		Avatar:     "https://img.freepik.com/free-photo/doctor-offering-medical-teleconsultation_23-2149329007.jpg",
		Rating:     4.6,
		Experience: "8+",
		Hospital:   "Skin Care Specialists",
	},
	{
		Name:       "Dr.Shivaji",
		Specialty:  "Neurology",
		Avatar:     "https://static.vecteezy.com/system/resources/thumbnails/048/628/084/small/doctor-in-casual-attire-with-background-free-photo.jpg",
		Rating:     4.5,
		Experience: "8+",
		Hospital:   "Shivaji Hospital",
	},
	{
		Name:       "Dr.Suresh Varma",
		Specialty:  "Obstetrics & Gynecology",
		Avatar:     "https://static.vecteezy.com/system/resources/thumbnails/059/946/764/small/portrait-of-friendly-european-doctor-in-workwear-with-stethoscope-on-neck-posing-in-clinic-interior-looking-and-smiling-at-camera-photo.jpg",
		Rating:     4.9,
		Experience: "8+",
		Hospital:   "SV Hospital",
	},
}

var defaultSlots = []string{
	"9am-10am", "10am-11am", "11am-12pm", "12pm-1pm",
	"2pm-3pm", "4pm-5pm", "5pm-6pm", "6pm-8pm", "8pm-9pm",
}

// DefaultRoster returns the clinic's six doctors and nine daily slots.
func DefaultRoster() Roster {
	r, err := NewRoster(defaultDoctors, defaultSlots)
	if err != nil {
		panic(err)
	}
	return r
}

// NewRoster validates and copies doctors and slots.
func NewRoster(doctors []Doctor, slots []string) (Roster, error) {
	if len(doctors) == 0 {
		return Roster{}, errors.New("roster: at least one doctor is required")
	}
	if len(slots) == 0 {
		return Roster{}, errors.New("roster: at least one time slot is required")
	}

	names := make(map[string]struct{}, len(doctors))
	for _, d := range doctors {
		if d.Name == "" {
			return Roster{}, errors.New("roster: doctor name is required")
		}
		if _, dup := names[d.Name]; dup {
			return Roster{}, fmt.Errorf("roster: duplicate doctor %q", d.Name)
		}
		names[d.Name] = struct{}{}
	}

	labels := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		if s == "" {
			return Roster{}, errors.New("roster: time slot label is required")
		}
		if _, dup := labels[s]; dup {
			return Roster{}, fmt.Errorf("roster: duplicate time slot %q", s)
		}
		labels[s] = struct{}{}
	}

	return Roster{
		doctors: append([]Doctor(nil), doctors...),
		slots:   append([]string(nil), slots...),
	}, nil
}

type rosterFile struct {
	Doctors []Doctor `json:"doctors"`
	Slots   []string `json:"slots"`
}

// LoadRoster reads a roster from a JSON file shaped as
// {"doctors": [...], "slots": [...]}.
func LoadRoster(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, fmt.Errorf("roster: read %s: %w", path, err)
	}

	var f rosterFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Roster{}, fmt.Errorf("roster: parse %s: %w", path, err)
	}

	return NewRoster(f.Doctors, f.Slots)
}

func (r Roster) Doctors() []Doctor {
	return append([]Doctor(nil), r.doctors...)
}

func (r Roster) Slots() []string {
	return append([]string(nil), r.slots...)
}

// GridSize is the number of rows a fully seeded date holds.
func (r Roster) GridSize() int {
	return len(r.doctors) * len(r.slots)
}
