package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"medpulse/internal/model"
	"medpulse/pkg/logging"
)

// File stores each key as <dir>/<key>.json. Writes go to a temp file in the
// same directory and are renamed into place, so a crash leaves either the
// old or the new value for a key, never a torn one.
type File struct {
	dir    string
	logger *logging.Logger
}

func NewFile(dir string, logger *logging.Logger) (*File, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: data dir: %w", err)
	}
	return &File{dir: dir, logger: logger}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *File) Load(ctx context.Context) (model.Snapshot, error) {
	raw := make(map[string][]byte, len(Keys))
	for _, key := range Keys {
		if err := ctx.Err(); err != nil {
			return model.Snapshot{}, err
		}
		b, err := os.ReadFile(f.path(key))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return model.Snapshot{}, fmt.Errorf("store: read %s: %w", key, err)
		}
		raw[key] = b
	}
	return decode(raw, f.logger), nil
}

func (f *File) Save(ctx context.Context, snap model.Snapshot) error {
	enc, err := encode(snap)
	if err != nil {
		return err
	}
	for _, key := range Keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f.write(key, enc[key]); err != nil {
			return err
		}
	}
	return nil
}

func (f *File) write(key string, b []byte) error {
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: temp for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("store: rename %s: %w", key, err)
	}
	return nil
}
