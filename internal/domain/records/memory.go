package records

import (
	"context"
	"sync"
)

// MemorySlots is an in-memory SlotStore. Used in tests and as a degraded
// fallback when the data file cannot be opened.
type MemorySlots struct {
	mu    sync.RWMutex
	slots map[string][]byte

	// FailWrites makes PutSlot return FailErr, simulating an unavailable
	// storage backend.
	FailWrites bool
	FailErr    error
}

// NewMemorySlots creates an empty in-memory slot store.
func NewMemorySlots() *MemorySlots {
	return &MemorySlots{slots: make(map[string][]byte)}
}

// GetSlot returns the stored payload or ErrSlotNotFound.
func (m *MemorySlots) GetSlot(_ context.Context, kind string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.slots[kind]
	if !ok {
		return nil, ErrSlotNotFound
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

// PutSlot stores the payload, replacing any previous value.
func (m *MemorySlots) PutSlot(_ context.Context, kind string, payload []byte) error {
	if m.FailWrites {
		if m.FailErr != nil {
			return m.FailErr
		}
		return ErrSlotNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(payload))
	copy(stored, payload)
	m.slots[kind] = stored
	return nil
}

// Seed pre-populates a slot, bypassing FailWrites.
func (m *MemorySlots) Seed(kind string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[kind] = payload
}
