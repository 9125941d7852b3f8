// Package store persists the ledger snapshot as a handful of JSON values
// under hms_ keys. Every backend reads and writes the same layout, so a
// snapshot written by one can be copied into another key for key.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"medpulse/internal/model"
	"medpulse/pkg/logging"
)

const (
	KeyDoctors      = "hms_doctors"
	KeyPatients     = "hms_patients"
	KeySessions     = "hms_sessions"
	KeyAppointments = "hms_appointments"
	KeyCurrentUser  = "hms_current_user"
)

// Keys lists every persisted key in write order.
var Keys = []string{KeyDoctors, KeyPatients, KeySessions, KeyAppointments, KeyCurrentUser}

// Backend loads and saves whole snapshots. Save is all-or-nothing where the
// backend supports it.
type Backend interface {
	Load(ctx context.Context) (model.Snapshot, error)
	Save(ctx context.Context, snap model.Snapshot) error
}

// encode turns a snapshot into one JSON document per key. Empty
// collections are written as [] and a logged-out user as null.
func encode(snap model.Snapshot) (map[string][]byte, error) {
	values := map[string]any{
		KeyDoctors:      orEmpty(snap.Doctors),
		KeyPatients:     orEmpty(snap.Patients),
		KeySessions:     orEmpty(snap.Sessions),
		KeyAppointments: orEmpty(snap.Appointments),
		KeyCurrentUser:  snap.CurrentUser,
	}
	out := make(map[string][]byte, len(values))
	for _, key := range Keys {
		b, err := json.Marshal(values[key])
		if err != nil {
			return nil, fmt.Errorf("store: encode %s: %w", key, err)
		}
		out[key] = b
	}
	return out, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// decode builds a snapshot from whatever keys were found. A missing or
// unreadable key falls back to its seed value; the current user falls back
// to nobody.
func decode(raw map[string][]byte, logger *logging.Logger) model.Snapshot {
	snap := model.Snapshot{
		Doctors:      field(raw, KeyDoctors, model.SeedDoctors, logger),
		Patients:     field(raw, KeyPatients, model.SeedPatients, logger),
		Sessions:     field(raw, KeySessions, model.SeedSessions, logger),
		Appointments: field(raw, KeyAppointments, model.SeedAppointments, logger),
	}
	if b, ok := raw[KeyCurrentUser]; ok {
		var ref *model.AccountRef
		if err := json.Unmarshal(b, &ref); err != nil {
			logger.Warn("unreadable key, logging out", "key", KeyCurrentUser, "error", err)
		} else {
			snap.CurrentUser = ref
		}
	}
	return snap
}

func field[T any](raw map[string][]byte, key string, seed func() []T, logger *logging.Logger) []T {
	b, ok := raw[key]
	if !ok {
		return seed()
	}
	var v []T
	if err := json.Unmarshal(b, &v); err != nil {
		logger.Warn("unreadable key, using seed", "key", key, "error", err)
		return seed()
	}
	if v == nil {
		v = []T{}
	}
	return v
}
