package model

import (
	"slices"
	"time"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Occupies reports whether an appointment in this status counts against
// its session's capacity.
func (s Status) Occupies() bool {
	return s == StatusApproved || s == StatusCompleted
}

type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
)

type Doctor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio,omitempty"`
}

type Patient struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone,omitempty"`
	Avatar         string         `json:"avatar,omitempty"`
	DOB            string         `json:"dob,omitempty"`
	MedicalHistory []string       `json:"medicalHistory,omitempty"`
	BloodGroup     string         `json:"bloodGroup,omitempty"`
	InsuranceID    string         `json:"insuranceId,omitempty"`
	CurrentProblem string         `json:"currentProblem,omitempty"`
	PasswordHash   string         `json:"passwordHash,omitempty"`
	Notifications  []Notification `json:"notifications"`
}

// Session is a doctor's bookable time window.
type Session struct {
	ID              string `json:"id"`
	DoctorID        string `json:"doctorId"`
	DoctorName      string `json:"doctorName"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	MaxPatients     int    `json:"maxPatients"`
	CurrentBookings int    `json:"currentBookings"`
}

// Full reports whether no further booking requests are accepted.
func (s Session) Full() bool {
	return s.CurrentBookings >= s.MaxPatients
}

// Appointment is one patient's booking against a Session. Names, date and
// time are copied from the patient and session when the request is made.
type Appointment struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId"`
	PatientID   string    `json:"patientId"`
	PatientName string    `json:"patientName"`
	DoctorID    string    `json:"doctorId"`
	DoctorName  string    `json:"doctorName"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      Status    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

type Notification struct {
	ID      string           `json:"id"`
	Message string           `json:"message"`
	Date    time.Time        `json:"date"`
	IsRead  bool             `json:"isRead"`
	Type    NotificationType `json:"type"`
}

// Snapshot is the whole persisted state. CurrentUser is nil when nobody is
// logged in.
type Snapshot struct {
	Doctors      []Doctor      `json:"doctors"`
	Patients     []Patient     `json:"patients"`
	Sessions     []Session     `json:"sessions"`
	Appointments []Appointment `json:"appointments"`
	CurrentUser  *AccountRef   `json:"currentUser"`
}

// Clone returns a deep copy so callers can't alias ledger state.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Doctors:      append([]Doctor(nil), s.Doctors...),
		Patients:     make([]Patient, len(s.Patients)),
		Sessions:     append([]Session(nil), s.Sessions...),
		Appointments: append([]Appointment(nil), s.Appointments...),
	}
	for i, p := range s.Patients {
		out.Patients[i] = p.Clone()
	}
	if s.CurrentUser != nil {
		ref := *s.CurrentUser
		out.CurrentUser = &ref
	}
	return out
}

// Clone copies the slices so the result shares nothing with p.
func (p Patient) Clone() Patient {
	p.MedicalHistory = slices.Clone(p.MedicalHistory)
	p.Notifications = slices.Clone(p.Notifications)
	return p
}
