package hospitalv1

type Doctor struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio,omitempty"`
}

type Patient struct {
	Id             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone,omitempty"`
	Avatar         string   `json:"avatar,omitempty"`
	Dob            string   `json:"dob,omitempty"`
	MedicalHistory []string `json:"medicalHistory,omitempty"`
	BloodGroup     string   `json:"bloodGroup,omitempty"`
	InsuranceId    string   `json:"insuranceId,omitempty"`
	CurrentProblem string   `json:"currentProblem,omitempty"`
	UnreadCount    int32    `json:"unreadCount"`
}

type Session struct {
	Id              string `json:"id"`
	DoctorId        string `json:"doctorId"`
	DoctorName      string `json:"doctorName"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	MaxPatients     int32  `json:"maxPatients"`
	CurrentBookings int32  `json:"currentBookings"`
	Full            bool   `json:"full"`
}

type Appointment struct {
	Id          string     `json:"id"`
	SessionId   string     `json:"sessionId"`
	PatientId   string     `json:"patientId"`
	PatientName string     `json:"patientName"`
	DoctorId    string     `json:"doctorId"`
	DoctorName  string     `json:"doctorName"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   *Timestamp `json:"createdAt,omitempty"`
}

type Notification struct {
	Id      string     `json:"id"`
	Message string     `json:"message"`
	Date    *Timestamp `json:"date"`
	IsRead  bool       `json:"isRead"`
	Type    string     `json:"type"`
}

// Account is the logged-in principal. Exactly one of Doctor and Patient is
// set for those roles; both are nil for the admin.
type Account struct {
	Role    string   `json:"role"`
	Id      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Doctor  *Doctor  `json:"doctor,omitempty"`
	Patient *Patient `json:"patient,omitempty"`
}

type Empty struct{}

// ----- auth -----

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string   `json:"token"`
	Account *Account `json:"account"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
}

// ----- bookings -----

type RequestBookingRequest struct {
	SessionId string `json:"sessionId"`
}

// BookingActionRequest names the appointment to approve, reject or complete.
type BookingActionRequest struct {
	AppointmentId string `json:"appointmentId"`
}

type AppointmentResponse struct {
	Appointment *Appointment `json:"appointment"`
}

type ListSessionAppointmentsRequest struct {
	SessionId string `json:"sessionId"`
}

type ListBookingQueueRequest struct {
	Query string `json:"query,omitempty"`
}

// ListDoctorVisitsRequest filters the caller's visits by patient name.
type ListDoctorVisitsRequest struct {
	Query string `json:"query,omitempty"`
}

type AppointmentList struct {
	Appointments []*Appointment `json:"appointments"`
}

// ----- directory -----

type ListDoctorsRequest struct {
	Query string `json:"query,omitempty"`
}

type DoctorList struct {
	Doctors []*Doctor `json:"doctors"`
}

type AddDoctorRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio,omitempty"`
}

// UpdateDoctorRequest leaves absent fields untouched.
type UpdateDoctorRequest struct {
	Id        string  `json:"id"`
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

type DoctorResponse struct {
	Doctor *Doctor `json:"doctor"`
}

type DeleteRequest struct {
	Id string `json:"id"`
}

type ListSessionsRequest struct {
	Query string `json:"query,omitempty"`
}

type SessionList struct {
	Sessions []*Session `json:"sessions"`
}

type AddSessionRequest struct {
	DoctorId    string `json:"doctorId"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	MaxPatients int32  `json:"maxPatients"`
}

type SessionResponse struct {
	Session *Session `json:"session"`
}

type ListPatientsRequest struct {
	Query string `json:"query,omitempty"`
}

type PatientList struct {
	Patients []*Patient `json:"patients"`
}

// UpdateProfileRequest patches the caller's own record. Doctor-only and
// patient-only fields are ignored for the other role.
type UpdateProfileRequest struct {
	Name           *string  `json:"name,omitempty"`
	Email          *string  `json:"email,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	Avatar         *string  `json:"avatar,omitempty"`
	Specialty      *string  `json:"specialty,omitempty"`
	Bio            *string  `json:"bio,omitempty"`
	Dob            *string  `json:"dob,omitempty"`
	BloodGroup     *string  `json:"bloodGroup,omitempty"`
	InsuranceId    *string  `json:"insuranceId,omitempty"`
	CurrentProblem *string  `json:"currentProblem,omitempty"`
	MedicalHistory []string `json:"medicalHistory,omitempty"`
}

type AccountResponse struct {
	Account *Account `json:"account"`
}

// ----- mailbox -----

type NotificationList struct {
	Notifications []*Notification `json:"notifications"`
	Unread        int32           `json:"unread"`
}

type MarkNotificationsReadResponse struct {
	Marked int32 `json:"marked"`
}

type Stats struct {
	Doctors      int32 `json:"doctors"`
	Patients     int32 `json:"patients"`
	Sessions     int32 `json:"sessions"`
	Appointments int32 `json:"appointments"`
	Pending      int32 `json:"pending"`
}
