package ledger

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"medpulse/internal/model"
)

// forward-only status graph
var transitions = map[model.Status][]model.Status{
	model.StatusPending:  {model.StatusApproved, model.StatusCancelled},
	model.StatusApproved: {model.StatusCompleted},
}

func canTransition(from, to model.Status) bool {
	return slices.Contains(transitions[from], to)
}

// RequestBooking creates a pending appointment for the patient. The session
// counter is checked but not touched; capacity is only taken on approval.
func (l *Ledger) RequestBooking(ctx context.Context, patientID, sessionID string) (model.Appointment, error) {
	ctx, span := tracer.Start(ctx, "ledger.request", trace.WithAttributes(
		attribute.String("medpulse.patient_id", patientID),
		attribute.String("medpulse.session_id", sessionID),
	))
	l.mu.Lock()
	defer l.mu.Unlock()
	appt, err := l.request(ctx, patientID, sessionID)
	return appt, l.finish(span, "request", err)
}

func (l *Ledger) request(ctx context.Context, patientID, sessionID string) (model.Appointment, error) {
	pi := l.patientIndex(patientID)
	if pi < 0 {
		return model.Appointment{}, fmt.Errorf("ledger: patient %s: %w", patientID, ErrNotFound)
	}
	si := l.sessionIndex(sessionID)
	if si < 0 {
		return model.Appointment{}, fmt.Errorf("ledger: session %s: %w", sessionID, ErrNotFound)
	}
	session := l.state.Sessions[si]
	if session.Full() {
		return model.Appointment{}, fmt.Errorf("ledger: session %s has %d/%d bookings: %w",
			sessionID, session.CurrentBookings, session.MaxPatients, ErrCapacityExceeded)
	}

	appt := model.Appointment{
		ID:          l.newID(),
		SessionID:   session.ID,
		PatientID:   patientID,
		PatientName: l.state.Patients[pi].Name,
		DoctorID:    session.DoctorID,
		DoctorName:  session.DoctorName,
		Date:        session.Date,
		Time:        session.StartTime,
		Status:      model.StatusPending,
		CreatedAt:   l.now().UTC(),
	}
	l.state.Appointments = append(l.state.Appointments, appt)
	l.logger.Info("booking requested", "appointment_id", appt.ID, "patient_id", patientID, "session_id", sessionID)
	return appt, l.commit(ctx, "request")
}

// ApproveBooking moves a pending appointment to approved, takes one slot on
// its session and drops a success notification in the patient's mailbox.
// If the snapshot write fails the approval has still been applied.
func (l *Ledger) ApproveBooking(ctx context.Context, appointmentID string) (model.Appointment, error) {
	ctx, span := tracer.Start(ctx, "ledger.approve", trace.WithAttributes(
		attribute.String("medpulse.appointment_id", appointmentID),
	))
	l.mu.Lock()
	defer l.mu.Unlock()
	appt, err := l.approve(ctx, appointmentID)
	return appt, l.finish(span, "approve", err)
}

func (l *Ledger) approve(ctx context.Context, id string) (model.Appointment, error) {
	ai, err := l.transitionable(id, model.StatusApproved)
	if err != nil {
		return model.Appointment{}, err
	}
	a := &l.state.Appointments[ai]
	si := l.sessionIndex(a.SessionID)
	if si < 0 {
		return model.Appointment{}, fmt.Errorf("ledger: session %s of appointment %s: %w", a.SessionID, id, ErrNotFound)
	}
	session := &l.state.Sessions[si]
	if l.policy == CapacityStrict && session.Full() {
		return model.Appointment{}, fmt.Errorf("ledger: approve %s: session %s has %d/%d bookings: %w",
			id, session.ID, session.CurrentBookings, session.MaxPatients, ErrCapacityExceeded)
	}

	a.Status = model.StatusApproved
	session.CurrentBookings++
	l.emit(a.PatientID, model.NotifySuccess,
		fmt.Sprintf("Good news! Your booking with %s on %s has been APPROVED.", a.DoctorName, a.Date))

	if session.CurrentBookings > session.MaxPatients {
		l.logger.Warn("session over capacity", "session_id", session.ID,
			"current_bookings", session.CurrentBookings, "max_patients", session.MaxPatients)
	}
	l.logger.Info("booking approved", "appointment_id", id, "session_id", session.ID)
	return *a, l.commit(ctx, "approve")
}

// RejectBooking cancels a pending appointment. No counter change and no
// notification.
func (l *Ledger) RejectBooking(ctx context.Context, appointmentID string) (model.Appointment, error) {
	ctx, span := tracer.Start(ctx, "ledger.reject", trace.WithAttributes(
		attribute.String("medpulse.appointment_id", appointmentID),
	))
	l.mu.Lock()
	defer l.mu.Unlock()
	appt, err := l.setStatus(ctx, "reject", appointmentID, model.StatusCancelled)
	return appt, l.finish(span, "reject", err)
}

// CompleteBooking marks an approved visit as done. The slot stays counted:
// capacity is total bookings for the session, not concurrent occupancy.
func (l *Ledger) CompleteBooking(ctx context.Context, appointmentID string) (model.Appointment, error) {
	ctx, span := tracer.Start(ctx, "ledger.complete", trace.WithAttributes(
		attribute.String("medpulse.appointment_id", appointmentID),
	))
	l.mu.Lock()
	defer l.mu.Unlock()
	appt, err := l.setStatus(ctx, "complete", appointmentID, model.StatusCompleted)
	return appt, l.finish(span, "complete", err)
}

func (l *Ledger) setStatus(ctx context.Context, op, id string, to model.Status) (model.Appointment, error) {
	ai, err := l.transitionable(id, to)
	if err != nil {
		return model.Appointment{}, err
	}
	a := &l.state.Appointments[ai]
	a.Status = to
	l.logger.Info("booking "+string(to), "appointment_id", id)
	return *a, l.commit(ctx, op)
}

func (l *Ledger) transitionable(id string, to model.Status) (int, error) {
	ai := l.appointmentIndex(id)
	if ai < 0 {
		return -1, fmt.Errorf("ledger: appointment %s: %w", id, ErrNotFound)
	}
	if from := l.state.Appointments[ai].Status; !canTransition(from, to) {
		return -1, fmt.Errorf("ledger: appointment %s %s -> %s: %w", id, from, to, ErrInvalidTransition)
	}
	return ai, nil
}

// Appointment looks up one appointment by id.
func (l *Ledger) Appointment(id string) (model.Appointment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ai := l.appointmentIndex(id)
	if ai < 0 {
		return model.Appointment{}, fmt.Errorf("ledger: appointment %s: %w", id, ErrNotFound)
	}
	return l.state.Appointments[ai], nil
}

// ListForSession yields the session's non-cancelled appointments in
// insertion order. The appointment list is copied when called; filtering
// happens as the sequence is consumed.
func (l *Ledger) ListForSession(sessionID string) iter.Seq[model.Appointment] {
	l.mu.Lock()
	appts := slices.Clone(l.state.Appointments)
	l.mu.Unlock()

	return func(yield func(model.Appointment) bool) {
		for _, a := range appts {
			if a.SessionID != sessionID || a.Status == model.StatusCancelled {
				continue
			}
			if !yield(a) {
				return
			}
		}
	}
}

// BookingQueue is the admin worklist: every appointment whose patient or
// doctor name contains query, pending ones first, original order kept
// within each group.
func (l *Ledger) BookingQueue(query string) []model.Appointment {
	l.mu.Lock()
	defer l.mu.Unlock()

	var pending, rest []model.Appointment
	for _, a := range l.state.Appointments {
		if !matches(query, a.PatientName, a.DoctorName) {
			continue
		}
		if a.Status == model.StatusPending {
			pending = append(pending, a)
		} else {
			rest = append(rest, a)
		}
	}
	return append(pending, rest...)
}

// DoctorVisits lists a doctor's pending, approved and completed
// appointments whose patient name contains query.
func (l *Ledger) DoctorVisits(doctorID, query string) []model.Appointment {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []model.Appointment
	for _, a := range l.state.Appointments {
		if a.DoctorID != doctorID || a.Status == model.StatusCancelled {
			continue
		}
		if matches(query, a.PatientName) {
			out = append(out, a)
		}
	}
	return out
}

// PatientBookings lists every appointment the patient ever requested.
func (l *Ledger) PatientBookings(patientID string) []model.Appointment {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []model.Appointment
	for _, a := range l.state.Appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out
}

// matches is a case-insensitive substring test against any field. An
// empty query matches everything.
func matches(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
