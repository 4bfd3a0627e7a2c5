package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	appbilling "github.com/spicetrade/backend/internal/application/billing"
)

// InMemoryDismissalStore implements the reminder DismissalStore in process
// memory. Suitable for a single-instance deployment and for tests.
type InMemoryDismissalStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	ttl     time.Duration
}

// NewInMemoryDismissalStore creates an in-memory dismissal store
func NewInMemoryDismissalStore() *InMemoryDismissalStore {
	return &InMemoryDismissalStore{
		entries: make(map[string]time.Time),
		ttl:     dismissalTTL,
	}
}

func dismissalKey(sessionID string, billID uuid.UUID) string {
	return sessionID + ":" + billID.String()
}

// Dismiss marks a bill's reminder as dismissed for this session
func (s *InMemoryDismissalStore) Dismiss(_ context.Context, sessionID string, billID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[dismissalKey(sessionID, billID)] = time.Now().Add(s.ttl)
	return nil
}

// IsDismissed checks whether a bill's reminder was dismissed in this session
func (s *InMemoryDismissalStore) IsDismissed(_ context.Context, sessionID string, billID uuid.UUID) (bool, error) {
	s.mu.RLock()
	expiresAt, ok := s.entries[dismissalKey(sessionID, billID)]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if time.Now().After(expiresAt) {
		s.mu.Lock()
		delete(s.entries, dismissalKey(sessionID, billID))
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}

var _ appbilling.DismissalStore = (*InMemoryDismissalStore)(nil)
