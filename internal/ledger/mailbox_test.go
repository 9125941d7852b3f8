package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medpulse/internal/model"
)

func TestMailboxNewestFirstAndMarkRead(t *testing.T) {
	ctx := context.Background()
	snap := fixture(5)
	snap.Sessions = append(snap.Sessions, model.Session{ID: "s2", DoctorID: "d1", DoctorName: "Dr. Sarah Wilson", Date: "2024-06-22", StartTime: "14:00", EndTime: "15:00", MaxPatients: 5})
	l, rec := newLedger(t, snap)

	first, _ := l.RequestBooking(ctx, "pa", "s1")
	second, _ := l.RequestBooking(ctx, "pa", "s2")
	_, err := l.ApproveBooking(ctx, first.ID)
	require.NoError(t, err)
	_, err = l.ApproveBooking(ctx, second.ID)
	require.NoError(t, err)

	box, err := l.Notifications("pa")
	require.NoError(t, err)
	require.Len(t, box, 2)
	assert.Contains(t, box[0].Message, "2024-06-22")
	assert.Contains(t, box[1].Message, "2024-06-20")
	assert.Equal(t, 2, l.UnreadCount("pa"))

	saves := rec.saves
	n, err := l.MarkNotificationsRead(ctx, "pa")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Zero(t, l.UnreadCount("pa"))
	assert.Equal(t, saves+1, rec.saves)

	// nothing left to change, nothing written
	n, err = l.MarkNotificationsRead(ctx, "pa")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, saves+1, rec.saves)
}

func TestMailboxUnknownPatient(t *testing.T) {
	l, _ := newLedger(t, fixture(1))

	_, err := l.Notifications("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = l.MarkNotificationsRead(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, l.UnreadCount("ghost"))
}

func TestApprovalForDeletedPatientDropsNotification(t *testing.T) {
	snap := fixtureWith(model.StatusPending)
	snap.Appointments[0].PatientID = "gone"
	l, _ := newLedger(t, snap)

	_, err := l.ApproveBooking(context.Background(), "a1")
	require.NoError(t, err)
	for _, p := range l.Snapshot().Patients {
		assert.Empty(t, p.Notifications)
	}
}
