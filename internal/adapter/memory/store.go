package memory

import (
	"context"
	"sync"

	portstore "github.com/alanyang/promptvault/internal/port/store"
)

var _ portstore.SlotStore = (*SlotStore)(nil)

// SlotStore keeps slots in process memory. Used by tests and by ephemeral
// mode, where the collection is not meant to survive a restart.
type SlotStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewSlotStore() *SlotStore {
	return &SlotStore{slots: make(map[string][]byte)}
}

func (s *SlotStore) Load(_ context.Context, slot string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.slots[slot]
	if !ok {
		return nil, portstore.ErrSlotNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *SlotStore) Save(_ context.Context, slot string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)

	s.mu.Lock()
	s.slots[slot] = stored
	s.mu.Unlock()
	return nil
}
