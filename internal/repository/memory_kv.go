package repository

import (
	"sort"
	"sync"
	"time"

	"littlestars/internal/models"
)

// MemoryKVStore keeps entries in process memory. It backs DATABASE_TYPE=memory
// and the service tests.
type MemoryKVStore struct {
	mu      sync.RWMutex
	entries map[string]map[string]models.KVEntry
	now     func() time.Time
}

// NewMemoryKVStore returns an empty store
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{
		entries: make(map[string]map[string]models.KVEntry),
		now:     time.Now,
	}
}

func (s *MemoryKVStore) Get(namespace, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[namespace][key]
	return e.Value, ok, nil
}

func (s *MemoryKVStore) Set(namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.entries[namespace]
	if !ok {
		ns = make(map[string]models.KVEntry)
		s.entries[namespace] = ns
	}
	ns[key] = models.KVEntry{Namespace: namespace, Key: key, Value: value, UpdatedAt: s.now()}
	return nil
}

func (s *MemoryKVStore) Delete(namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries[namespace], key)
	if len(s.entries[namespace]) == 0 {
		delete(s.entries, namespace)
	}
	return nil
}

func (s *MemoryKVStore) Keys(namespace string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	for k := range s.entries[namespace] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryKVStore) ListAll() ([]models.KVEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.KVEntry
	for _, ns := range s.entries {
		for _, e := range ns {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Namespace != out[j].Namespace {
			return out[i].Namespace < out[j].Namespace
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

func (s *MemoryKVStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]map[string]models.KVEntry)
	return nil
}
