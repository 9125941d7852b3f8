package ledger

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"medpulse/internal/model"
)

type DoctorInput struct {
	Name      string
	Email     string
	Phone     string
	Specialty string
	Bio       string
}

type SessionInput struct {
	DoctorID    string
	Date        string
	StartTime   string
	EndTime     string
	MaxPatients int
}

type SignupInput struct {
	Name         string
	Email        string
	Phone        string
	PasswordHash string
}

type Stats struct {
	Doctors      int
	Patients     int
	Sessions     int
	Appointments int
}

func avatarFor(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}

// ----- doctors -----

// Doctors lists doctors whose name or specialty contains query.
func (l *Ledger) Doctors(query string) []model.Doctor {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Doctor
	for _, d := range l.state.Doctors {
		if matches(query, d.Name, d.Specialty) {
			out = append(out, d)
		}
	}
	return out
}

func (l *Ledger) Doctor(id string) (model.Doctor, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	di := l.doctorIndex(id)
	if di < 0 {
		return model.Doctor{}, fmt.Errorf("ledger: doctor %s: %w", id, ErrNotFound)
	}
	return l.state.Doctors[di], nil
}

func (l *Ledger) AddDoctor(ctx context.Context, in DoctorInput) (model.Doctor, error) {
	ctx, span := tracer.Start(ctx, "ledger.add_doctor")
	l.mu.Lock()
	defer l.mu.Unlock()

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Specialty) == "" {
		return model.Doctor{}, l.finish(span, "add_doctor", fmt.Errorf("ledger: doctor name and specialty required: %w", ErrInvalidArgument))
	}
	d := model.Doctor{
		ID:        l.newID(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Specialty: in.Specialty,
		Bio:       in.Bio,
		Avatar:    avatarFor(in.Name),
	}
	l.state.Doctors = append(l.state.Doctors, d)
	l.logger.Info("doctor added", "doctor_id", d.ID)
	return d, l.finish(span, "add_doctor", l.commit(ctx, "add_doctor"))
}

// UpdateDoctor merges the non-nil patch fields into the record. Sessions
// and appointments keep the name they were created with.
func (l *Ledger) UpdateDoctor(ctx context.Context, id string, patch model.DoctorPatch) (model.Doctor, error) {
	ctx, span := tracer.Start(ctx, "ledger.update_doctor")
	l.mu.Lock()
	defer l.mu.Unlock()

	di := l.doctorIndex(id)
	if di < 0 {
		return model.Doctor{}, l.finish(span, "update_doctor", fmt.Errorf("ledger: doctor %s: %w", id, ErrNotFound))
	}
	d := &l.state.Doctors[di]
	d.Apply(patch)
	return *d, l.finish(span, "update_doctor", l.commit(ctx, "update_doctor"))
}

// DeleteDoctor removes a doctor that no session refers to.
func (l *Ledger) DeleteDoctor(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "ledger.delete_doctor")
	l.mu.Lock()
	defer l.mu.Unlock()

	di := l.doctorIndex(id)
	if di < 0 {
		return l.finish(span, "delete_doctor", fmt.Errorf("ledger: doctor %s: %w", id, ErrNotFound))
	}
	for _, s := range l.state.Sessions {
		if s.DoctorID == id {
			return l.finish(span, "delete_doctor", fmt.Errorf("ledger: doctor %s has session %s: %w", id, s.ID, ErrInUse))
		}
	}
	l.state.Doctors = slices.Delete(l.state.Doctors, di, di+1)
	l.forget(model.RoleDoctor, id)
	l.logger.Info("doctor deleted", "doctor_id", id)
	return l.finish(span, "delete_doctor", l.commit(ctx, "delete_doctor"))
}

// ----- sessions -----

// Sessions lists sessions whose doctor name, doctor specialty or date
// contains query.
func (l *Ledger) Sessions(query string) []model.Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Session
	for _, s := range l.state.Sessions {
		specialty := ""
		if di := l.doctorIndex(s.DoctorID); di >= 0 {
			specialty = l.state.Doctors[di].Specialty
		}
		if matches(query, s.DoctorName, s.Date, specialty) {
			out = append(out, s)
		}
	}
	return out
}

func (l *Ledger) Session(id string) (model.Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	si := l.sessionIndex(id)
	if si < 0 {
		return model.Session{}, fmt.Errorf("ledger: session %s: %w", id, ErrNotFound)
	}
	return l.state.Sessions[si], nil
}

func (l *Ledger) AddSession(ctx context.Context, in SessionInput) (model.Session, error) {
	ctx, span := tracer.Start(ctx, "ledger.add_session")
	l.mu.Lock()
	defer l.mu.Unlock()

	if in.MaxPatients < 1 || in.Date == "" || in.StartTime == "" || in.EndTime == "" {
		return model.Session{}, l.finish(span, "add_session",
			fmt.Errorf("ledger: session needs date, times and maxPatients >= 1: %w", ErrInvalidArgument))
	}
	di := l.doctorIndex(in.DoctorID)
	if di < 0 {
		return model.Session{}, l.finish(span, "add_session", fmt.Errorf("ledger: doctor %s: %w", in.DoctorID, ErrNotFound))
	}
	s := model.Session{
		ID:          l.newID(),
		DoctorID:    in.DoctorID,
		DoctorName:  l.state.Doctors[di].Name,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		MaxPatients: in.MaxPatients,
	}
	l.state.Sessions = append(l.state.Sessions, s)
	l.logger.Info("session added", "session_id", s.ID, "doctor_id", s.DoctorID)
	return s, l.finish(span, "add_session", l.commit(ctx, "add_session"))
}

// DeleteSession removes a session with no pending or approved bookings.
// Completed and cancelled history is left in place.
func (l *Ledger) DeleteSession(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "ledger.delete_session")
	l.mu.Lock()
	defer l.mu.Unlock()

	si := l.sessionIndex(id)
	if si < 0 {
		return l.finish(span, "delete_session", fmt.Errorf("ledger: session %s: %w", id, ErrNotFound))
	}
	for _, a := range l.state.Appointments {
		if a.SessionID == id && live(a.Status) {
			return l.finish(span, "delete_session", fmt.Errorf("ledger: session %s has %s appointment %s: %w", id, a.Status, a.ID, ErrInUse))
		}
	}
	l.state.Sessions = slices.Delete(l.state.Sessions, si, si+1)
	l.logger.Info("session deleted", "session_id", id)
	return l.finish(span, "delete_session", l.commit(ctx, "delete_session"))
}

func live(s model.Status) bool {
	return s == model.StatusPending || s == model.StatusApproved
}

// ----- patients -----

// Patients lists patients whose name or email contains query.
func (l *Ledger) Patients(query string) []model.Patient {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Patient
	for _, p := range l.state.Patients {
		if matches(query, p.Name, p.Email) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (l *Ledger) Patient(id string) (model.Patient, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pi := l.patientIndex(id)
	if pi < 0 {
		return model.Patient{}, fmt.Errorf("ledger: patient %s: %w", id, ErrNotFound)
	}
	return l.state.Patients[pi].Clone(), nil
}

// Signup registers a patient with an empty mailbox.
func (l *Ledger) Signup(ctx context.Context, in SignupInput) (model.Patient, error) {
	ctx, span := tracer.Start(ctx, "ledger.signup")
	l.mu.Lock()
	defer l.mu.Unlock()

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return model.Patient{}, l.finish(span, "signup", fmt.Errorf("ledger: name and email required: %w", ErrInvalidArgument))
	}
	if _, taken := l.accountByEmail(in.Email); taken || strings.EqualFold(strings.TrimSpace(in.Email), model.DemoAdmin.Email) {
		return model.Patient{}, l.finish(span, "signup", fmt.Errorf("ledger: email %s: %w", in.Email, ErrAlreadyExists))
	}
	p := model.Patient{
		ID:            "p" + l.newID(),
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		Avatar:        avatarFor(in.Name),
		PasswordHash:  in.PasswordHash,
		Notifications: []model.Notification{},
	}
	l.state.Patients = append(l.state.Patients, p)
	l.logger.Info("patient signed up", "patient_id", p.ID)
	return p.Clone(), l.finish(span, "signup", l.commit(ctx, "signup"))
}

func (l *Ledger) UpdatePatient(ctx context.Context, id string, patch model.PatientPatch) (model.Patient, error) {
	ctx, span := tracer.Start(ctx, "ledger.update_patient")
	l.mu.Lock()
	defer l.mu.Unlock()

	pi := l.patientIndex(id)
	if pi < 0 {
		return model.Patient{}, l.finish(span, "update_patient", fmt.Errorf("ledger: patient %s: %w", id, ErrNotFound))
	}
	p := &l.state.Patients[pi]
	p.Apply(patch)
	return p.Clone(), l.finish(span, "update_patient", l.commit(ctx, "update_patient"))
}

// DeletePatient removes a patient with no pending or approved bookings,
// mailbox included. Their completed and cancelled history stays.
func (l *Ledger) DeletePatient(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "ledger.delete_patient")
	l.mu.Lock()
	defer l.mu.Unlock()

	pi := l.patientIndex(id)
	if pi < 0 {
		return l.finish(span, "delete_patient", fmt.Errorf("ledger: patient %s: %w", id, ErrNotFound))
	}
	for _, a := range l.state.Appointments {
		if a.PatientID == id && live(a.Status) {
			return l.finish(span, "delete_patient", fmt.Errorf("ledger: patient %s has %s appointment %s: %w", id, a.Status, a.ID, ErrInUse))
		}
	}
	l.state.Patients = slices.Delete(l.state.Patients, pi, pi+1)
	l.forget(model.RolePatient, id)
	l.logger.Info("patient deleted", "patient_id", id)
	return l.finish(span, "delete_patient", l.commit(ctx, "delete_patient"))
}

// ----- accounts -----

// AccountByEmail finds a doctor or patient by email, doctors first.
func (l *Ledger) AccountByEmail(email string) (model.Account, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accountByEmail(email)
}

// accountByEmail needs l.mu held.
func (l *Ledger) accountByEmail(email string) (model.Account, bool) {
	email = strings.TrimSpace(email)
	for i := range l.state.Doctors {
		if strings.EqualFold(l.state.Doctors[i].Email, email) {
			d := l.state.Doctors[i]
			return &d, true
		}
	}
	for i := range l.state.Patients {
		if strings.EqualFold(l.state.Patients[i].Email, email) {
			p := l.state.Patients[i].Clone()
			return &p, true
		}
	}
	return nil, false
}

// Account resolves a reference to the live record.
func (l *Ledger) Account(ref model.AccountRef) (model.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch ref.Role {
	case model.RoleAdmin:
		if ref.ID == model.DemoAdmin.ID {
			return model.DemoAdmin, nil
		}
	case model.RoleDoctor:
		if di := l.doctorIndex(ref.ID); di >= 0 {
			d := l.state.Doctors[di]
			return &d, nil
		}
	case model.RolePatient:
		if pi := l.patientIndex(ref.ID); pi >= 0 {
			p := l.state.Patients[pi].Clone()
			return &p, nil
		}
	}
	return nil, fmt.Errorf("ledger: %s account %s: %w", ref.Role, ref.ID, ErrNotFound)
}

// SetCurrentUser records who is logged in; nil logs out.
func (l *Ledger) SetCurrentUser(ctx context.Context, ref *model.AccountRef) error {
	ctx, span := tracer.Start(ctx, "ledger.set_current_user")
	l.mu.Lock()
	defer l.mu.Unlock()
	if ref != nil {
		cp := *ref
		ref = &cp
	}
	l.state.CurrentUser = ref
	return l.finish(span, "set_current_user", l.commit(ctx, "set_current_user"))
}

func (l *Ledger) CurrentUser() *model.AccountRef {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.CurrentUser == nil {
		return nil
	}
	ref := *l.state.CurrentUser
	return &ref
}

// forget logs out a deleted account; callers hold l.mu.
func (l *Ledger) forget(role model.Role, id string) {
	if cu := l.state.CurrentUser; cu != nil && cu.Role == role && cu.ID == id {
		l.state.CurrentUser = nil
	}
}

func (l *Ledger) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Stats{
		Doctors:      len(l.state.Doctors),
		Patients:     len(l.state.Patients),
		Sessions:     len(l.state.Sessions),
		Appointments: len(l.state.Appointments),
	}
}
