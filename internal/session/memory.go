package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// MemoryStore keeps JSON-encoded values in process memory. Values go
// through the same encoding as the Redis store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, id Identity, slot Slot, dst any) (bool, error) {
	k, err := key("mem", id, slot)
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	raw, ok := s.values[k]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", slot.Name, err)
	}
	return true, nil
}

func (s *MemoryStore) Save(_ context.Context, id Identity, slot Slot, value any) error {
	k, err := key("mem", id, slot)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", slot.Name, err)
	}

	s.mu.Lock()
	s.values[k] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id Identity, slots ...Slot) error {
	keys := make([]string, 0, len(slots))
	for _, slot := range slots {
		k, err := key("mem", id, slot)
		if err != nil {
			return err
		}
		keys = append(keys, k)
	}

	s.mu.Lock()
	for _, k := range keys {
		delete(s.values, k)
	}
	s.mu.Unlock()
	return nil
}

// EndSession drops every ephemeral value of sessionID.
func (s *MemoryStore) EndSession(sessionID string) {
	prefix := fmt.Sprintf("mem:%s:%s:", Ephemeral, sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.values {
		if strings.HasPrefix(k, prefix) {
			delete(s.values, k)
		}
	}
}
