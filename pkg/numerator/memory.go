package numerator

import (
	"context"
	"sync"
)

// MemorySequences is an in-memory Querier used when durable storage is
// unavailable and in tests. It mimics the sequence table's UPSERT
// semantics: each call advances the keyed counter by the passed
// increment (1 for strict calls). SetNextNumber is not supported through
// the SQL path; use Set directly.
type MemorySequences struct {
	mu   sync.Mutex
	vals map[string]int64
}

// NewMemorySequences creates an empty in-memory sequence source.
func NewMemorySequences() *MemorySequences {
	return &MemorySequences{vals: make(map[string]int64)}
}

// Set pins a sequence to a value; the next strict number is value+1.
func (m *MemorySequences) Set(key string, value int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = value
}

// QueryRowContext advances the counter keyed by args[0].
func (m *MemorySequences) QueryRowContext(_ context.Context, _ string, args ...any) Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	key, _ := args[0].(string)
	var increment int64 = 1
	if len(args) == 2 {
		if v, ok := args[1].(int64); ok {
			increment = v
		}
	}

	m.vals[key] += increment
	return memoryRow{val: m.vals[key]}
}

type memoryRow struct {
	val int64
}

func (r memoryRow) Scan(dest ...any) error {
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = r.val
		}
	}
	return nil
}
