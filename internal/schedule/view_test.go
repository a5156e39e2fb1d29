package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(doctor Doctor, slot, status string) AvailabilitySlot {
	return AvailabilitySlot{Doctor: doctor, Date: "2024-01-01", TimeSlot: slot, Status: status}
}

func TestBuildViewGroupsByFirstSeenDoctor(t *testing.T) {
	a := Doctor{Name: "Dr.B", Specialty: "Neurology", Rating: 4.1}
	b := Doctor{Name: "Dr.A", Specialty: "Pediatrics", Rating: 4.9}

	rows := []AvailabilitySlot{
		row(a, "9am-10am", StatusAvailable),
		row(b, "9am-10am", StatusBooked),
		row(a, "10am-11am", StatusBooked),
		row(b, "10am-11am", StatusAvailable),
	}

	views := BuildView("2024-01-01", rows)
	require.Len(t, views, 2)

	assert.Equal(t, "Dr.B", views[0].Name)
	assert.Equal(t, "Neurology", views[0].Specialty)
	assert.Equal(t, "Dr.A", views[1].Name)
	for _, v := range views {
		assert.True(t, v.AvailableToday)
		assert.Equal(t, "2024-01-01", v.Date)
	}
	assert.Equal(t, map[string]string{"9am-10am": "available", "10am-11am": "booked"}, views[0].Slots)
	assert.Equal(t, map[string]string{"9am-10am": "booked", "10am-11am": "available"}, views[1].Slots)
}

func TestBuildViewLastWriteWins(t *testing.T) {
	d := Doctor{Name: "Dr.A"}
	views := BuildView("2024-01-01", []AvailabilitySlot{
		row(d, "9am-10am", StatusAvailable),
		row(d, "9am-10am", StatusBooked),
	})

	require.Len(t, views, 1)
	assert.Equal(t, map[string]string{"9am-10am": "booked"}, views[0].Slots)
}

func TestBuildViewDescriptiveFieldsFromFirstRow(t *testing.T) {
	first := Doctor{Name: "Dr.A", Hospital: "First"}
	later := Doctor{Name: "Dr.A", Hospital: "Later"}

	views := BuildView("2024-01-01", []AvailabilitySlot{
		row(first, "9am-10am", StatusAvailable),
		row(later, "10am-11am", StatusAvailable),
	})

	require.Len(t, views, 1)
	assert.Equal(t, "First", views[0].Hospital)
}

func TestBuildViewDoesNotSynthesizeSlots(t *testing.T) {
	d := Doctor{Name: "Dr.A"}
	views := BuildView("2024-01-01", []AvailabilitySlot{row(d, "2pm-3pm", "on-leave")})

	require.Len(t, views, 1)
	assert.Equal(t, map[string]string{"2pm-3pm": "on-leave"}, views[0].Slots)
}

func TestBuildViewEmpty(t *testing.T) {
	views := BuildView("2024-01-01", nil)
	require.NotNil(t, views)
	assert.Empty(t, views)
}

func TestBuildViewCountsMatchDistinctInput(t *testing.T) {
	roster := DefaultRoster()
	var rows []AvailabilitySlot
	for _, d := range roster.Doctors() {
		for _, s := range roster.Slots() {
			rows = append(rows, row(d, s, StatusAvailable))
		}
	}

	views := BuildView("2024-01-01", rows)
	require.Len(t, views, len(roster.Doctors()))
	for _, v := range views {
		assert.Len(t, v.Slots, len(roster.Slots()))
	}
}
