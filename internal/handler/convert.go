package handler

import (
	hospitalv1 "medpulse/api/hospital/v1"
	"medpulse/internal/model"
)

func toDoctor(d model.Doctor) *hospitalv1.Doctor {
	return &hospitalv1.Doctor{
		Id:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Avatar:    d.Avatar,
		Specialty: d.Specialty,
		Bio:       d.Bio,
	}
}

func toPatient(p model.Patient) *hospitalv1.Patient {
	unread := 0
	for _, n := range p.Notifications {
		if !n.IsRead {
			unread++
		}
	}
	return &hospitalv1.Patient{
		Id:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Avatar:         p.Avatar,
		Dob:            p.DOB,
		MedicalHistory: p.MedicalHistory,
		BloodGroup:     p.BloodGroup,
		InsuranceId:    p.InsuranceID,
		CurrentProblem: p.CurrentProblem,
		UnreadCount:    int32(unread),
	}
}

func toSession(s model.Session) *hospitalv1.Session {
	return &hospitalv1.Session{
		Id:              s.ID,
		DoctorId:        s.DoctorID,
		DoctorName:      s.DoctorName,
		Date:            s.Date,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		MaxPatients:     int32(s.MaxPatients),
		CurrentBookings: int32(s.CurrentBookings),
		Full:            s.Full(),
	}
}

func toAppointment(a model.Appointment) *hospitalv1.Appointment {
	out := &hospitalv1.Appointment{
		Id:          a.ID,
		SessionId:   a.SessionID,
		PatientId:   a.PatientID,
		PatientName: a.PatientName,
		DoctorId:    a.DoctorID,
		DoctorName:  a.DoctorName,
		Date:        a.Date,
		Time:        a.Time,
		Status:      string(a.Status),
		Notes:       a.Notes,
	}
	if !a.CreatedAt.IsZero() {
		out.CreatedAt = hospitalv1.NewTimestamp(a.CreatedAt)
	}
	return out
}

func toAppointments(in []model.Appointment) *hospitalv1.AppointmentList {
	out := make([]*hospitalv1.Appointment, len(in))
	for i := range in {
		out[i] = toAppointment(in[i])
	}
	return &hospitalv1.AppointmentList{Appointments: out}
}

func toNotification(n model.Notification) *hospitalv1.Notification {
	return &hospitalv1.Notification{
		Id:      n.ID,
		Message: n.Message,
		Date:    hospitalv1.NewTimestamp(n.Date),
		IsRead:  n.IsRead,
		Type:    string(n.Type),
	}
}

func toAccount(a model.Account) *hospitalv1.Account {
	out := &hospitalv1.Account{
		Role: string(a.AccountRole()),
		Id:   a.AccountID(),
		Name: a.DisplayName(),
	}
	switch v := a.(type) {
	case model.Admin:
		out.Email = v.Email
	case *model.Doctor:
		out.Email = v.Email
		out.Doctor = toDoctor(*v)
	case *model.Patient:
		out.Email = v.Email
		out.Patient = toPatient(*v)
	}
	return out
}

func doctorPatch(r *hospitalv1.UpdateProfileRequest) model.DoctorPatch {
	return model.DoctorPatch{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Avatar:    r.Avatar,
		Specialty: r.Specialty,
		Bio:       r.Bio,
	}
}

func patientPatch(r *hospitalv1.UpdateProfileRequest) model.PatientPatch {
	return model.PatientPatch{
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Avatar:         r.Avatar,
		DOB:            r.Dob,
		BloodGroup:     r.BloodGroup,
		InsuranceID:    r.InsuranceId,
		CurrentProblem: r.CurrentProblem,
		MedicalHistory: r.MedicalHistory,
	}
}
