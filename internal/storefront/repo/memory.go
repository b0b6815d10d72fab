package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/vancy-storefront/server/internal/storefront/model"
)

// MemoryStateRepository keeps JSON-encoded entries in a map. It encodes like
// the Redis repository so round trips behave the same.
type MemoryStateRepository struct {
	mu      sync.RWMutex
	entries map[model.Entry][]byte

	// FailSaves makes every save fail; tests use it to check that a failed
	// write leaves in-memory state untouched.
	FailSaves error
}

func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{entries: map[model.Entry][]byte{}}
}

func (m *MemoryStateRepository) Load(_ context.Context, entry model.Entry, dst any) (bool, error) {
	m.mu.RLock()
	b, ok := m.entries[entry]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", entry, err)
	}
	return true, nil
}

func (m *MemoryStateRepository) Save(ctx context.Context, entry model.Entry, value any) error {
	return m.SaveAll(ctx, map[model.Entry]any{entry: value})
}

func (m *MemoryStateRepository) SaveAll(_ context.Context, values map[model.Entry]any) error {
	if m.FailSaves != nil {
		return m.FailSaves
	}
	payloads := make(map[model.Entry][]byte, len(values))
	for entry, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", entry, err)
		}
		payloads[entry] = b
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for entry, b := range payloads {
		m.entries[entry] = b
	}
	return nil
}

func (m *MemoryStateRepository) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = map[model.Entry][]byte{}
	return nil
}

// Raw returns the stored JSON for an entry.
func (m *MemoryStateRepository) Raw(entry model.Entry) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.entries[entry]
	return string(b), ok
}

var _ model.StateRepository = (*MemoryStateRepository)(nil)
