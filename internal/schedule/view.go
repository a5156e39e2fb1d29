package schedule

// BuildView groups the rows of one date into per-doctor schedules. Doctors
// appear in the order their first row appears; a repeated (doctor, slot)
// keeps the last status seen. Only slots present in rows are reported.
func BuildView(date string, rows []AvailabilitySlot) []DoctorSchedule {
	views := make([]DoctorSchedule, 0)
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.Name]
		if !ok {
			i = len(views)
			index[row.Name] = i
			views = append(views, DoctorSchedule{
				Doctor:         row.Doctor,
				AvailableToday: true,
				Date:           date,
				Slots:          make(map[string]string),
			})
		}
		views[i].Slots[row.TimeSlot] = row.Status
	}

	return views
}
