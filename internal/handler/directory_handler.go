package handler

import (
	"context"

	hospitalv1 "medpulse/api/hospital/v1"
	"medpulse/internal/ledger"
	"medpulse/internal/model"
)

func (h *Handler) ListDoctors(ctx context.Context, req *hospitalv1.ListDoctorsRequest) (*hospitalv1.DoctorList, error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}
	docs := h.ledger.Doctors(req.Query)
	out := &hospitalv1.DoctorList{Doctors: make([]*hospitalv1.Doctor, len(docs))}
	for i, d := range docs {
		out.Doctors[i] = toDoctor(d)
	}
	return out, nil
}

func (h *Handler) AddDoctor(ctx context.Context, req *hospitalv1.AddDoctorRequest) (*hospitalv1.DoctorResponse, error) {
	if _, err := caller(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	d, err := h.ledger.AddDoctor(ctx, ledger.DoctorInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Specialty: req.Specialty,
		Bio:       req.Bio,
	})
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &hospitalv1.DoctorResponse{Doctor: toDoctor(d)}, nil
}

func (h *Handler) UpdateDoctor(ctx context.Context, req *hospitalv1.UpdateDoctorRequest) (*hospitalv1.DoctorResponse, error) {
	if _, err := caller(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	d, err := h.ledger.UpdateDoctor(ctx, req.Id, model.DoctorPatch{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Avatar:    req.Avatar,
		Specialty: req.Specialty,
		Bio:       req.Bio,
	})
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &hospitalv1.DoctorResponse{Doctor: toDoctor(d)}, nil
}

func (h *Handler) DeleteDoctor(ctx context.Context, req *hospitalv1.DeleteRequest) (*hospitalv1.Empty, error) {
	if _, err := caller(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := h.ledger.DeleteDoctor(ctx, req.Id); err != nil {
		return nil, h.toStatus(err)
	}
	return &hospitalv1.Empty{}, nil
}

func (h *Handler) ListSessions(ctx context.Context, req *hospitalv1.ListSessionsRequest) (*hospitalv1.SessionList, error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}
	sessions := h.ledger.Sessions(req.Query)
	out := &hospitalv1.SessionList{Sessions: make([]*hospitalv1.Session, len(sessions))}
	for i, s := range sessions {
		out.Sessions[i] = toSession(s)
	}
	return out, nil
}

func (h *Handler) AddSession(ctx context.Context, req *hospitalv1.AddSessionRequest) (*hospitalv1.SessionResponse, error) {
	if _, err := caller(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	s, err := h.ledger.AddSession(ctx, ledger.SessionInput{
		DoctorID:    req.DoctorId,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxPatients: int(req.MaxPatients),
	})
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &hospitalv1.SessionResponse{Session: toSession(s)}, nil
}

func (h *Handler) DeleteSession(ctx context.Context, req *hospitalv1.DeleteRequest) (*hospitalv1.Empty, error) {
	if _, err := caller(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := h.ledger.DeleteSession(ctx, req.Id); err != nil {
		return nil, h.toStatus(err)
	}
	return &hospitalv1.Empty{}, nil
}

func (h *Handler) ListPatients(ctx context.Context, req *hospitalv1.ListPatientsRequest) (*hospitalv1.PatientList, error) {
	if _, err := caller(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	patients := h.ledger.Patients(req.Query)
	out := &hospitalv1.PatientList{Patients: make([]*hospitalv1.Patient, len(patients))}
	for i, p := range patients {
		out.Patients[i] = toPatient(p)
	}
	return out, nil
}

func (h *Handler) DeletePatient(ctx context.Context, req *hospitalv1.DeleteRequest) (*hospitalv1.Empty, error) {
	if _, err := caller(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := h.ledger.DeletePatient(ctx, req.Id); err != nil {
		return nil, h.toStatus(err)
	}
	return &hospitalv1.Empty{}, nil
}

// UpdateProfile merges the request into the caller's own record. The admin
// has no stored profile.
func (h *Handler) UpdateProfile(ctx context.Context, req *hospitalv1.UpdateProfileRequest) (*hospitalv1.AccountResponse, error) {
	me, err := caller(ctx, model.RoleDoctor, model.RolePatient)
	if err != nil {
		return nil, err
	}
	var acct model.Account
	switch me.Role {
	case model.RoleDoctor:
		d, err := h.ledger.UpdateDoctor(ctx, me.ID, doctorPatch(req))
		if err != nil {
			return nil, h.toStatus(err)
		}
		acct = &d
	case model.RolePatient:
		p, err := h.ledger.UpdatePatient(ctx, me.ID, patientPatch(req))
		if err != nil {
			return nil, h.toStatus(err)
		}
		acct = &p
	}
	return &hospitalv1.AccountResponse{Account: toAccount(acct)}, nil
}

// DeleteAccount removes the caller's own record, subject to the same
// dependent checks as the admin deletes.
func (h *Handler) DeleteAccount(ctx context.Context, _ *hospitalv1.Empty) (*hospitalv1.Empty, error) {
	me, err := caller(ctx, model.RoleDoctor, model.RolePatient)
	if err != nil {
		return nil, err
	}
	switch me.Role {
	case model.RoleDoctor:
		err = h.ledger.DeleteDoctor(ctx, me.ID)
	case model.RolePatient:
		err = h.ledger.DeletePatient(ctx, me.ID)
	}
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &hospitalv1.Empty{}, nil
}

func (h *Handler) GetStats(ctx context.Context, _ *hospitalv1.Empty) (*hospitalv1.Stats, error) {
	if _, err := caller(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	st := h.ledger.Stats()
	out := &hospitalv1.Stats{
		Doctors:      int32(st.Doctors),
		Patients:     int32(st.Patients),
		Sessions:     int32(st.Sessions),
		Appointments: int32(st.Appointments),
	}
	for _, a := range h.ledger.BookingQueue("") {
		if a.Status != model.StatusPending {
			break
		}
		out.Pending++
	}
	return out, nil
}
