package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medpulse/internal/model"
	"medpulse/pkg/logging"
)

func sample() model.Snapshot {
	snap := model.Seed()
	snap.Patients[0].Notifications = []model.Notification{{
		ID: "n1", Message: "hello", Date: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), Type: model.NotifyInfo,
	}}
	snap.CurrentUser = &model.AccountRef{Role: model.RolePatient, ID: snap.Patients[0].ID}
	return snap
}

func TestDecodeFallsBackToSeedPerKey(t *testing.T) {
	raw := map[string][]byte{
		KeyDoctors:     []byte(`[]`),
		KeySessions:    []byte(`{not json`),
		KeyCurrentUser: []byte(`null`),
	}
	snap := decode(raw, logging.Discard())

	assert.Empty(t, snap.Doctors, "a stored empty list wins over the seed")
	assert.NotNil(t, snap.Doctors)
	assert.Equal(t, model.SeedPatients(), snap.Patients)
	assert.Equal(t, model.SeedSessions(), snap.Sessions)
	assert.Equal(t, model.SeedAppointments(), snap.Appointments)
	assert.Nil(t, snap.CurrentUser)
}

func TestEncodeWritesEveryKey(t *testing.T) {
	enc, err := encode(model.Snapshot{})
	require.NoError(t, err)
	require.Len(t, enc, len(Keys))
	assert.JSONEq(t, `[]`, string(enc[KeyDoctors]))
	assert.JSONEq(t, `[]`, string(enc[KeyAppointments]))
	assert.JSONEq(t, `null`, string(enc[KeyCurrentUser]))
}

func TestMemoryEmptyLoadsSeed(t *testing.T) {
	m := NewMemory(logging.Discard())
	snap, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Seed(), snap)
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(logging.Discard())
	want := sample()

	require.NoError(t, m.Save(ctx, want))
	got, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, ok := m.Raw(KeyCurrentUser)
	require.True(t, ok)
	assert.JSONEq(t, `{"role":"PATIENT","id":"`+want.Patients[0].ID+`"}`, string(raw))
}
