package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medpulse/internal/model"
	"medpulse/pkg/logging"
)

func TestFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	f, err := NewFile(dir, logging.Discard())
	require.NoError(t, err)

	want := sample()
	require.NoError(t, f.Save(ctx, want))

	for _, key := range Keys {
		assert.FileExists(t, filepath.Join(dir, key+".json"))
	}
	leftovers, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	assert.Empty(t, leftovers)

	// a fresh handle on the same directory sees the saved state
	again, err := NewFile(dir, logging.Discard())
	require.NoError(t, err)
	got, err := again.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileMissingKeysUseSeed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyDoctors+".json"), []byte(`[{"id":"dx","name":"Dr. X","specialty":"ENT"}]`), 0o644))

	f, err := NewFile(dir, logging.Discard())
	require.NoError(t, err)
	snap, err := f.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Doctors, 1)
	assert.Equal(t, "dx", snap.Doctors[0].ID)
	assert.Equal(t, model.SeedSessions(), snap.Sessions)
	assert.Nil(t, snap.CurrentUser)
}

func TestFileCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewFile(dir, logging.Discard())
	require.NoError(t, err)
	assert.DirExists(t, dir)
}
