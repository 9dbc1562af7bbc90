package storage

// MemoryStore is an in-memory Store, used in tests and as a scratch backend.
type MemoryStore struct {
	values   map[string]string
	maxBytes int
}

// NewMemoryStore returns an unbounded in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// NewMemoryStoreWithQuota returns an in-memory store that rejects writes once
// the total size of keys plus values would exceed maxBytes. A maxBytes of 0
// means unlimited.
func NewMemoryStoreWithQuota(maxBytes int) *MemoryStore {
	return &MemoryStore{values: make(map[string]string), maxBytes: maxBytes}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	if m.maxBytes > 0 {
		used := 0
		for k, v := range m.values {
			if k == key {
				continue
			}
			used += len(k) + len(v)
		}
		if used+len(key)+len(value) > m.maxBytes {
			return ErrQuotaExceeded
		}
	}
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	delete(m.values, key)
	return nil
}
