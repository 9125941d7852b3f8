package model

import "testing"

func TestStatusOccupies(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, false},
		{StatusApproved, true},
		{StatusCompleted, true},
		{StatusCancelled, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Occupies(); got != tt.want {
				t.Errorf("Occupies() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionFull(t *testing.T) {
	s := Session{MaxPatients: 2, CurrentBookings: 1}
	if s.Full() {
		t.Fatal("1/2 should not be full")
	}
	s.CurrentBookings = 2
	if !s.Full() {
		t.Fatal("2/2 should be full")
	}
	s.CurrentBookings = 3
	if !s.Full() {
		t.Fatal("over-approved session should be full")
	}
}

func TestCloneIsDeep(t *testing.T) {
	snap := Seed()
	snap.CurrentUser = &AccountRef{Role: RolePatient, ID: "p1"}
	snap.Patients[0].Notifications = append(snap.Patients[0].Notifications, Notification{ID: "n1"})

	cp := snap.Clone()
	cp.Patients[0].Notifications[0].IsRead = true
	cp.Sessions[0].CurrentBookings = 99
	cp.CurrentUser.ID = "p2"

	if snap.Patients[0].Notifications[0].IsRead {
		t.Error("notification aliased")
	}
	if snap.Sessions[0].CurrentBookings == 99 {
		t.Error("sessions aliased")
	}
	if snap.CurrentUser.ID != "p1" {
		t.Error("current user aliased")
	}
}

func TestPatchMerge(t *testing.T) {
	name := "Dr. New"
	bio := ""
	d := SeedDoctors()[2]
	d.Apply(DoctorPatch{Name: &name, Bio: &bio})
	if d.Name != name || d.Bio != "" {
		t.Errorf("patched fields not applied: %+v", d)
	}
	if d.Specialty != "General Medicine" || d.Email != "doctor@med.com" {
		t.Errorf("untouched fields changed: %+v", d)
	}

	group := "O+"
	p := SeedPatients()[0]
	p.Apply(PatientPatch{BloodGroup: &group, MedicalHistory: []string{"asthma"}})
	if p.BloodGroup != "O+" || len(p.MedicalHistory) != 1 || p.Name != "John Doe" {
		t.Errorf("patient merge: %+v", p)
	}
}

func TestAccountVariants(t *testing.T) {
	doc := SeedDoctors()[0]
	pat := SeedPatients()[0]
	for _, tt := range []struct {
		acct Account
		role Role
		id   string
	}{
		{DemoAdmin, RoleAdmin, "admin"},
		{&doc, RoleDoctor, "d1"},
		{&pat, RolePatient, "p1"},
	} {
		ref := RefOf(tt.acct)
		if ref.Role != tt.role || ref.ID != tt.id {
			t.Errorf("RefOf(%T) = %+v", tt.acct, ref)
		}
	}
}
