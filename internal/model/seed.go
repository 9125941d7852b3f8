package model

// Seed is the demo dataset used for any collection missing from storage.
func Seed() Snapshot {
	return Snapshot{
		Doctors:      SeedDoctors(),
		Patients:     SeedPatients(),
		Sessions:     SeedSessions(),
		Appointments: SeedAppointments(),
	}
}

func SeedDoctors() []Doctor {
	return []Doctor{
		{ID: "d1", Name: "Dr. Sarah Wilson", Email: "sarah@medpulse.com", Specialty: "Cardiology", Avatar: "https://picsum.photos/seed/doctor1/100/100"},
		{ID: "d2", Name: "Dr. James Chen", Email: "james@medpulse.com", Specialty: "Neurology", Avatar: "https://picsum.photos/seed/doctor2/100/100"},
		{
			ID: "d3", Name: "Dr. Demo Specialist", Email: "doctor@med.com", Specialty: "General Medicine",
			Avatar: "https://picsum.photos/seed/doctor3/100/100",
			Bio:    "A dedicated healthcare professional providing excellence in clinical care and medical management.",
		},
	}
}

func SeedPatients() []Patient {
	return []Patient{
		{ID: "p1", Name: "John Doe", Email: "john@gmail.com", Phone: "555-0199", Avatar: "https://picsum.photos/seed/patient1/100/100", Notifications: []Notification{}},
		{ID: "p-aayush", Name: "Aayush", Email: "aayush12@gmail.com", Phone: "555-0888", Avatar: "https://ui-avatars.com/api/?name=Aayush&background=6366f1&color=fff", Notifications: []Notification{}},
	}
}

func SeedSessions() []Session {
	return []Session{
		{ID: "s1", DoctorID: "d1", DoctorName: "Dr. Sarah Wilson", Date: "2024-06-20", StartTime: "09:00", EndTime: "12:00", MaxPatients: 10, CurrentBookings: 1},
		{ID: "s2", DoctorID: "d3", DoctorName: "Dr. Demo Specialist", Date: "2024-06-21", StartTime: "10:00", EndTime: "14:00", MaxPatients: 8, CurrentBookings: 0},
	}
}

func SeedAppointments() []Appointment {
	return []Appointment{
		{ID: "a1", SessionID: "s1", PatientID: "p1", PatientName: "John Doe", DoctorID: "d1", DoctorName: "Dr. Sarah Wilson", Date: "2024-06-20", Time: "09:30", Status: StatusApproved},
	}
}
