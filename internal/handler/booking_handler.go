package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	hospitalv1 "medpulse/api/hospital/v1"
	"medpulse/internal/model"
)

func (h *Handler) RequestBooking(ctx context.Context, req *hospitalv1.RequestBookingRequest) (*hospitalv1.AppointmentResponse, error) {
	me, err := caller(ctx, model.RolePatient)
	if err != nil {
		return nil, err
	}
	if req.SessionId == "" {
		return nil, status.Error(codes.InvalidArgument, "sessionId required")
	}
	appt, err := h.ledger.RequestBooking(ctx, me.ID, req.SessionId)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &hospitalv1.AppointmentResponse{Appointment: toAppointment(appt)}, nil
}

func (h *Handler) ApproveBooking(ctx context.Context, req *hospitalv1.BookingActionRequest) (*hospitalv1.AppointmentResponse, error) {
	if _, err := caller(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	appt, err := h.ledger.ApproveBooking(ctx, req.AppointmentId)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &hospitalv1.AppointmentResponse{Appointment: toAppointment(appt)}, nil
}

func (h *Handler) RejectBooking(ctx context.Context, req *hospitalv1.BookingActionRequest) (*hospitalv1.AppointmentResponse, error) {
	if _, err := caller(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	appt, err := h.ledger.RejectBooking(ctx, req.AppointmentId)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &hospitalv1.AppointmentResponse{Appointment: toAppointment(appt)}, nil
}

// CompleteBooking lets a doctor close one of their own approved visits.
func (h *Handler) CompleteBooking(ctx context.Context, req *hospitalv1.BookingActionRequest) (*hospitalv1.AppointmentResponse, error) {
	me, err := caller(ctx, model.RoleDoctor)
	if err != nil {
		return nil, err
	}
	cur, err := h.ledger.Appointment(req.AppointmentId)
	if err != nil {
		return nil, h.toStatus(err)
	}
	// 404 rather than 403 so other doctors' bookings stay hidden
	if cur.DoctorID != me.ID {
		return nil, status.Error(codes.NotFound, "appointment not found")
	}
	appt, err := h.ledger.CompleteBooking(ctx, req.AppointmentId)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &hospitalv1.AppointmentResponse{Appointment: toAppointment(appt)}, nil
}

func (h *Handler) ListSessionAppointments(ctx context.Context, req *hospitalv1.ListSessionAppointmentsRequest) (*hospitalv1.AppointmentList, error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}
	if _, err := h.ledger.Session(req.SessionId); err != nil {
		return nil, h.toStatus(err)
	}
	out := &hospitalv1.AppointmentList{Appointments: []*hospitalv1.Appointment{}}
	for a := range h.ledger.ListForSession(req.SessionId) {
		out.Appointments = append(out.Appointments, toAppointment(a))
	}
	return out, nil
}

func (h *Handler) ListBookingQueue(ctx context.Context, req *hospitalv1.ListBookingQueueRequest) (*hospitalv1.AppointmentList, error) {
	if _, err := caller(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	return toAppointments(h.ledger.BookingQueue(req.Query)), nil
}

func (h *Handler) ListDoctorVisits(ctx context.Context, req *hospitalv1.ListDoctorVisitsRequest) (*hospitalv1.AppointmentList, error) {
	me, err := caller(ctx, model.RoleDoctor)
	if err != nil {
		return nil, err
	}
	return toAppointments(h.ledger.DoctorVisits(me.ID, req.Query)), nil
}

func (h *Handler) ListMyBookings(ctx context.Context, _ *hospitalv1.Empty) (*hospitalv1.AppointmentList, error) {
	me, err := caller(ctx, model.RolePatient)
	if err != nil {
		return nil, err
	}
	return toAppointments(h.ledger.PatientBookings(me.ID)), nil
}

func (h *Handler) ListNotifications(ctx context.Context, _ *hospitalv1.Empty) (*hospitalv1.NotificationList, error) {
	me, err := caller(ctx, model.RolePatient)
	if err != nil {
		return nil, err
	}
	box, err := h.ledger.Notifications(me.ID)
	if err != nil {
		return nil, h.toStatus(err)
	}
	out := &hospitalv1.NotificationList{Notifications: make([]*hospitalv1.Notification, len(box))}
	for i, n := range box {
		out.Notifications[i] = toNotification(n)
		if !n.IsRead {
			out.Unread++
		}
	}
	return out, nil
}

func (h *Handler) MarkNotificationsRead(ctx context.Context, _ *hospitalv1.Empty) (*hospitalv1.MarkNotificationsReadResponse, error) {
	me, err := caller(ctx, model.RolePatient)
	if err != nil {
		return nil, err
	}
	n, err := h.ledger.MarkNotificationsRead(ctx, me.ID)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &hospitalv1.MarkNotificationsReadResponse{Marked: int32(n)}, nil
}
