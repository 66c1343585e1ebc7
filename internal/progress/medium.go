package progress

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// Medium is the key-value persistence boundary behind a Store.
type Medium interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists the stored keys that start with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// NopMedium is used when no storage is available. Reads find nothing and
// writes are discarded.
type NopMedium struct{}

var _ Medium = NopMedium{}

func (NopMedium) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NopMedium) Put(context.Context, string, []byte) error         { return nil }
func (NopMedium) Delete(context.Context, string) error              { return nil }
func (NopMedium) Keys(context.Context, string) ([]string, error)    { return nil, nil }

// MemoryMedium keeps values in process memory.
type MemoryMedium struct {
	mu     sync.Mutex
	values map[string][]byte
}

var _ Medium = (*MemoryMedium)(nil)

// NewMemoryMedium creates an empty in-memory medium.
func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{values: make(map[string][]byte)}
}

func (m *MemoryMedium) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

func (m *MemoryMedium) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = slices.Clone(value)
	return nil
}

func (m *MemoryMedium) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryMedium) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys, nil
}
