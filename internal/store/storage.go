package store

import "sync"

// Storage is the string-keyed persistence port the mood store writes through.
// Read reports ok=false when nothing was ever written under key.
type Storage interface {
	Read(key string) (value string, ok bool, err error)
	Write(key, value string) error
}

// MemoryStorage is an in-process Storage, used by tests and --memory runs
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Read(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Write(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
