package store

import (
	"context"
	"maps"
	"sync"

	"medpulse/internal/model"
	"medpulse/pkg/logging"
)

// Memory keeps the encoded keys in a map. Used by tests and by
// STORE_BACKEND=memory for throwaway demos.
type Memory struct {
	mu     sync.Mutex
	data   map[string][]byte
	logger *logging.Logger
}

func NewMemory(logger *logging.Logger) *Memory {
	if logger == nil {
		logger = logging.Default()
	}
	return &Memory{data: map[string][]byte{}, logger: logger}
}

func (m *Memory) Load(_ context.Context) (model.Snapshot, error) {
	m.mu.Lock()
	raw := maps.Clone(m.data)
	m.mu.Unlock()
	return decode(raw, m.logger), nil
}

func (m *Memory) Save(_ context.Context, snap model.Snapshot) error {
	enc, err := encode(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	maps.Copy(m.data, enc)
	return nil
}

// Raw returns the stored JSON for one key.
func (m *Memory) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	return b, ok
}
