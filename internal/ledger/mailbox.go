package ledger

import (
	"context"
	"fmt"

	"medpulse/internal/model"
)

// emit appends a notification to the patient's mailbox; callers hold l.mu.
// A missing patient drops the message.
func (l *Ledger) emit(patientID string, typ model.NotificationType, msg string) {
	pi := l.patientIndex(patientID)
	if pi < 0 {
		l.logger.Warn("notification dropped, patient missing", "patient_id", patientID)
		return
	}
	p := &l.state.Patients[pi]
	p.Notifications = append(p.Notifications, model.Notification{
		ID:      l.newID(),
		Message: msg,
		Date:    l.now().UTC(),
		Type:    typ,
	})
}

// Notifications returns the patient's mailbox, newest first.
func (l *Ledger) Notifications(patientID string) ([]model.Notification, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pi := l.patientIndex(patientID)
	if pi < 0 {
		return nil, fmt.Errorf("ledger: patient %s: %w", patientID, ErrNotFound)
	}
	box := l.state.Patients[pi].Notifications
	out := make([]model.Notification, 0, len(box))
	for i := len(box) - 1; i >= 0; i-- {
		out = append(out, box[i])
	}
	return out, nil
}

func (l *Ledger) UnreadCount(patientID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	pi := l.patientIndex(patientID)
	if pi < 0 {
		return 0
	}
	n := 0
	for _, msg := range l.state.Patients[pi].Notifications {
		if !msg.IsRead {
			n++
		}
	}
	return n
}

// MarkNotificationsRead flags every message in the mailbox as read and
// reports how many changed.
func (l *Ledger) MarkNotificationsRead(ctx context.Context, patientID string) (int, error) {
	ctx, span := tracer.Start(ctx, "ledger.mark_read")
	l.mu.Lock()
	defer l.mu.Unlock()

	pi := l.patientIndex(patientID)
	if pi < 0 {
		return 0, l.finish(span, "mark_read", fmt.Errorf("ledger: patient %s: %w", patientID, ErrNotFound))
	}
	box := l.state.Patients[pi].Notifications
	changed := 0
	for i := range box {
		if !box[i].IsRead {
			box[i].IsRead = true
			changed++
		}
	}
	if changed == 0 {
		return 0, l.finish(span, "mark_read", nil)
	}
	return changed, l.finish(span, "mark_read", l.commit(ctx, "mark_read"))
}
