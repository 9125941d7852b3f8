package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medpulse/internal/model"
	"medpulse/pkg/logging"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

type recorder struct {
	saves int
	last  model.Snapshot
	err   error
}

func (r *recorder) Save(_ context.Context, snap model.Snapshot) error {
	r.saves++
	r.last = snap
	return r.err
}

func newLedger(t *testing.T, snap model.Snapshot, opts ...Option) (*Ledger, *recorder) {
	t.Helper()
	rec := &recorder{}
	seq := 0
	base := []Option{
		WithLogger(logging.Discard()),
		WithIDs(func() string { seq++; return fmt.Sprintf("id%d", seq) }),
		WithClock(func() time.Time { return fixedNow }),
	}
	return New(snap, rec, append(base, opts...)...), rec
}

// one doctor, two patients, one session with the given capacity
func fixture(maxPatients int) model.Snapshot {
	return model.Snapshot{
		Doctors:  []model.Doctor{{ID: "d1", Name: "Dr. Sarah Wilson", Specialty: "Cardiology"}},
		Patients: []model.Patient{{ID: "pa", Name: "Alice"}, {ID: "pb", Name: "Bob"}},
		Sessions: []model.Session{{
			ID: "s1", DoctorID: "d1", DoctorName: "Dr. Sarah Wilson",
			Date: "2024-06-20", StartTime: "09:00", EndTime: "12:00", MaxPatients: maxPatients,
		}},
	}
}

// fixtureWith adds one appointment in the given status, keeping the
// session counter consistent.
func fixtureWith(status model.Status) model.Snapshot {
	snap := fixture(5)
	snap.Appointments = []model.Appointment{{
		ID: "a1", SessionID: "s1", PatientID: "pa", PatientName: "Alice",
		DoctorID: "d1", DoctorName: "Dr. Sarah Wilson", Date: "2024-06-20", Time: "09:00", Status: status,
	}}
	if status.Occupies() {
		snap.Sessions[0].CurrentBookings = 1
	}
	return snap
}

func TestRequestBooking(t *testing.T) {
	l, rec := newLedger(t, fixture(2))

	appt, err := l.RequestBooking(context.Background(), "pa", "s1")
	require.NoError(t, err)

	assert.Equal(t, model.Appointment{
		ID: "id1", SessionID: "s1", PatientID: "pa", PatientName: "Alice",
		DoctorID: "d1", DoctorName: "Dr. Sarah Wilson", Date: "2024-06-20", Time: "09:00",
		Status: model.StatusPending, CreatedAt: fixedNow,
	}, appt)

	s, err := l.Session("s1")
	require.NoError(t, err)
	assert.Equal(t, 0, s.CurrentBookings, "request must not touch the counter")
	assert.Equal(t, 1, rec.saves)
	assert.Len(t, rec.last.Appointments, 1)
}

func TestRequestBookingFullSession(t *testing.T) {
	snap := fixtureWith(model.StatusApproved)
	snap.Sessions[0].MaxPatients = 1
	l, rec := newLedger(t, snap)

	_, err := l.RequestBooking(context.Background(), "pb", "s1")
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Len(t, l.Snapshot().Appointments, 1, "no appointment may be created")
	assert.Zero(t, rec.saves)
}

func TestRequestBookingUnknownIDs(t *testing.T) {
	l, _ := newLedger(t, fixture(2))

	_, err := l.RequestBooking(context.Background(), "nobody", "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.RequestBooking(context.Background(), "pa", "nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApproveBooking(t *testing.T) {
	l, rec := newLedger(t, fixtureWith(model.StatusPending))

	appt, err := l.ApproveBooking(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, appt.Status)

	s, _ := l.Session("s1")
	assert.Equal(t, 1, s.CurrentBookings)

	box, err := l.Notifications("pa")
	require.NoError(t, err)
	require.Len(t, box, 1)
	assert.Equal(t, model.NotifySuccess, box[0].Type)
	assert.False(t, box[0].IsRead)
	assert.Equal(t, "Good news! Your booking with Dr. Sarah Wilson on 2024-06-20 has been APPROVED.", box[0].Message)
	assert.Equal(t, fixedNow, box[0].Date)

	other, _ := l.Notifications("pb")
	assert.Empty(t, other)
	assert.Equal(t, 1, rec.saves)
}

func TestRejectBookingHasNoSideEffects(t *testing.T) {
	l, _ := newLedger(t, fixtureWith(model.StatusPending))
	before := l.Snapshot()

	appt, err := l.RejectBooking(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, appt.Status)

	after := l.Snapshot()
	assert.Equal(t, before.Sessions, after.Sessions)
	assert.Equal(t, before.Patients, after.Patients)
	before.Appointments[0].Status = model.StatusCancelled
	assert.Equal(t, before.Appointments, after.Appointments)
}

func TestCompleteBookingKeepsCounter(t *testing.T) {
	l, _ := newLedger(t, fixtureWith(model.StatusApproved))

	appt, err := l.CompleteBooking(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, appt.Status)

	s, _ := l.Session("s1")
	assert.Equal(t, 1, s.CurrentBookings)
	assert.Empty(t, l.Audit())
}

func TestInvalidTransitions(t *testing.T) {
	ops := map[string]func(*Ledger) error{
		"approve":  func(l *Ledger) error { _, err := l.ApproveBooking(context.Background(), "a1"); return err },
		"reject":   func(l *Ledger) error { _, err := l.RejectBooking(context.Background(), "a1"); return err },
		"complete": func(l *Ledger) error { _, err := l.CompleteBooking(context.Background(), "a1"); return err },
	}
	tests := []struct {
		from model.Status
		op   string
	}{
		{model.StatusPending, "complete"},
		{model.StatusApproved, "approve"},
		{model.StatusApproved, "reject"},
		{model.StatusCompleted, "approve"},
		{model.StatusCompleted, "reject"},
		{model.StatusCompleted, "complete"},
		{model.StatusCancelled, "approve"},
		{model.StatusCancelled, "reject"},
		{model.StatusCancelled, "complete"},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+tt.op, func(t *testing.T) {
			l, rec := newLedger(t, fixtureWith(tt.from))
			before := l.Snapshot()

			err := ops[tt.op](l)
			require.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, before, l.Snapshot())
			assert.Zero(t, rec.saves)
		})
	}
}

func TestTransitionsOnMissingAppointment(t *testing.T) {
	l, _ := newLedger(t, fixture(1))
	_, err := l.ApproveBooking(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = l.RejectBooking(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = l.CompleteBooking(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

// Both requests are accepted because the counter only moves on approval,
// so approving both pushes the session past its capacity.
func TestPendingRequestsCanOverApprove(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t, fixture(1))

	a, err := l.RequestBooking(ctx, "pa", "s1")
	require.NoError(t, err)
	b, err := l.RequestBooking(ctx, "pb", "s1")
	require.NoError(t, err)

	_, err = l.ApproveBooking(ctx, a.ID)
	require.NoError(t, err)
	s, _ := l.Session("s1")
	assert.Equal(t, 1, s.CurrentBookings)

	_, err = l.ApproveBooking(ctx, b.ID)
	require.NoError(t, err)
	s, _ = l.Session("s1")
	assert.Equal(t, 2, s.CurrentBookings)
	assert.Greater(t, s.CurrentBookings, s.MaxPatients)
	assert.Empty(t, l.Audit())
}

func TestStrictPolicyRefusesOverApproval(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t, fixture(1), WithCapacityPolicy(CapacityStrict))
	require.Equal(t, "strict", l.Policy().String())

	a, _ := l.RequestBooking(ctx, "pa", "s1")
	b, _ := l.RequestBooking(ctx, "pb", "s1")

	_, err := l.ApproveBooking(ctx, a.ID)
	require.NoError(t, err)

	_, err = l.ApproveBooking(ctx, b.ID)
	require.ErrorIs(t, err, ErrCapacityExceeded)

	still, _ := l.Appointment(b.ID)
	assert.Equal(t, model.StatusPending, still.Status)
	s, _ := l.Session("s1")
	assert.Equal(t, 1, s.CurrentBookings)

	_, err = l.RejectBooking(ctx, b.ID)
	assert.NoError(t, err, "a full session can still have its requests rejected")
}

func TestParseCapacityPolicy(t *testing.T) {
	for in, want := range map[string]CapacityPolicy{"": CapacityAtRequest, "request": CapacityAtRequest, "strict": CapacityStrict} {
		got, err := ParseCapacityPolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseCapacityPolicy("lenient")
	assert.Error(t, err)
}

func TestCounterMatchesAppointmentsUnderRandomCommands(t *testing.T) {
	ctx := context.Background()
	snap := fixture(3)
	snap.Sessions = append(snap.Sessions, model.Session{ID: "s2", DoctorID: "d1", DoctorName: "Dr. Sarah Wilson", Date: "2024-06-21", StartTime: "10:00", EndTime: "11:00", MaxPatients: 2})
	l, _ := newLedger(t, snap)

	rng := rand.New(rand.NewPCG(7, 11))
	patients := []string{"pa", "pb"}
	sessions := []string{"s1", "s2"}
	var ids []string

	for i := 0; i < 500; i++ {
		var err error
		switch op := rng.IntN(4); {
		case op == 0 || len(ids) == 0:
			var a model.Appointment
			a, err = l.RequestBooking(ctx, patients[rng.IntN(2)], sessions[rng.IntN(2)])
			if err == nil {
				ids = append(ids, a.ID)
			}
		case op == 1:
			_, err = l.ApproveBooking(ctx, ids[rng.IntN(len(ids))])
		case op == 2:
			_, err = l.RejectBooking(ctx, ids[rng.IntN(len(ids))])
		default:
			_, err = l.CompleteBooking(ctx, ids[rng.IntN(len(ids))])
		}
		if err != nil && !errors.Is(err, ErrInvalidTransition) && !errors.Is(err, ErrCapacityExceeded) {
			t.Fatalf("step %d: unexpected error %v", i, err)
		}
		require.Empty(t, l.Audit(), "step %d", i)
	}
}

func TestListForSession(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t, fixture(5))

	a, _ := l.RequestBooking(ctx, "pa", "s1")
	b, _ := l.RequestBooking(ctx, "pb", "s1")
	c, _ := l.RequestBooking(ctx, "pa", "s1")
	_, err := l.RejectBooking(ctx, b.ID)
	require.NoError(t, err)

	var got []string
	for appt := range l.ListForSession("s1") {
		got = append(got, appt.ID)
	}
	assert.Equal(t, []string{a.ID, c.ID}, got)

	// stops when the consumer does
	n := 0
	for range l.ListForSession("s1") {
		n++
		break
	}
	assert.Equal(t, 1, n)

	for range l.ListForSession("nope") {
		t.Fatal("unknown session should yield nothing")
	}
}

func TestBookingQueuePendingFirst(t *testing.T) {
	snap := fixture(9)
	mk := func(id, patient string, st model.Status) model.Appointment {
		return model.Appointment{ID: id, SessionID: "s1", PatientName: patient, DoctorName: "Dr. Sarah Wilson", Status: st}
	}
	snap.Appointments = []model.Appointment{
		mk("1", "Alice", model.StatusApproved),
		mk("2", "Bob", model.StatusPending),
		mk("3", "Carol", model.StatusCancelled),
		mk("4", "Dan", model.StatusPending),
		mk("5", "Erin", model.StatusCompleted),
	}
	snap.Sessions[0].CurrentBookings = 2
	l, _ := newLedger(t, snap)

	ids := func(as []model.Appointment) []string {
		var out []string
		for _, a := range as {
			out = append(out, a.ID)
		}
		return out
	}
	assert.Equal(t, []string{"2", "4", "1", "3", "5"}, ids(l.BookingQueue("")))
	assert.Equal(t, []string{"4"}, ids(l.BookingQueue("dan")))
	assert.Len(t, l.BookingQueue("sarah"), 5, "doctor name matches too")
}

func TestDoctorVisitsAndPatientBookings(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t, fixture(5))
	a, _ := l.RequestBooking(ctx, "pa", "s1")
	b, _ := l.RequestBooking(ctx, "pb", "s1")
	_, _ = l.RejectBooking(ctx, b.ID)

	visits := l.DoctorVisits("d1", "")
	require.Len(t, visits, 1)
	assert.Equal(t, a.ID, visits[0].ID)
	assert.Empty(t, l.DoctorVisits("d1", "bob"))

	assert.Len(t, l.PatientBookings("pb"), 1, "cancelled bookings stay in the patient's history")
}

func TestPersistFailureKeepsCommittedState(t *testing.T) {
	l, rec := newLedger(t, fixtureWith(model.StatusPending))
	rec.err = errors.New("disk full")

	appt, err := l.ApproveBooking(context.Background(), "a1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, model.StatusApproved, appt.Status)

	s, _ := l.Session("s1")
	assert.Equal(t, 1, s.CurrentBookings)
	assert.Empty(t, l.Audit())
}
