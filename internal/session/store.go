package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Store persists reporter records by key
type Store interface {
	Load(ctx context.Context, key string) (Reporter, error)
	Save(ctx context.Context, key string, r Reporter) error
	Clear(ctx context.Context, key string) error
}

// Require loads the record under key and checks it is complete. An
// incomplete record is cleared so the identity step starts over.
func Require(ctx context.Context, store Store, key string) (Reporter, error) {
	r, err := store.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return Reporter{}, ErrIdentityRequired
	}
	if err != nil {
		return Reporter{}, err
	}
	if !r.Complete() {
		if err := store.Clear(ctx, key); err != nil {
			return Reporter{}, fmt.Errorf("clear incomplete session: %w", err)
		}
		return Reporter{}, fmt.Errorf("%w: missing %v", ErrIdentityRequired, r.Missing())
	}
	return r, nil
}

func encode(r Reporter) ([]byte, error) {
	r.ReportDatetime = r.ReportDatetime.UTC()
	return json.Marshal(r)
}

func decode(data []byte) (Reporter, error) {
	var r Reporter
	if err := json.Unmarshal(data, &r); err != nil {
		return Reporter{}, fmt.Errorf("decode reporter session: %w", err)
	}
	return r, nil
}

// MemoryStore keeps encoded records in a map. Records go through the same
// JSON encoding as the SQL store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryStore creates an empty memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, key string) (Reporter, error) {
	m.mu.RLock()
	data, ok := m.records[key]
	m.mu.RUnlock()
	if !ok {
		return Reporter{}, ErrNotFound
	}
	return decode(data)
}

func (m *MemoryStore) Save(_ context.Context, key string, r Reporter) error {
	data, err := encode(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = data
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}
