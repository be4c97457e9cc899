package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gautamg795/forkable-menu/internal/domain"
	"github.com/gautamg795/forkable-menu/internal/ports/output"
)

// Compile-time check to ensure MemorySessionStore implements SessionStore interface
var _ output.SessionStore = (*MemorySessionStore)(nil)

// MemorySessionStore struct - Output adapter for in-memory session storage
// Uses sync.Map keyed by account ID. Sessions do not survive a restart.
type MemorySessionStore struct {
	sessions sync.Map
}

// NewMemorySessionStore creates a new in-memory session store
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

// GetSession retrieves the session for an account.
// Returns nil when missing or expired; expired sessions are deleted (lazy cleanup).
func (m *MemorySessionStore) GetSession(ctx context.Context, accountID string, now time.Time) (*domain.SessionRecord, error) {
	value, exists := m.sessions.Load(accountID)
	if !exists {
		return nil, nil
	}

	record, ok := value.(*domain.SessionRecord)
	if !ok {
		// If data is malformed, delete and return nil
		m.sessions.Delete(accountID)
		return nil, nil
	}

	if !record.IsValidAt(now) {
		// Only drop the entry if nobody replaced it meanwhile
		m.sessions.CompareAndDelete(accountID, value)
		return nil, nil
	}

	copied := *record
	return &copied, nil
}

// ReplaceSession stores the record under its account ID, overwriting any previous one
func (m *MemorySessionStore) ReplaceSession(ctx context.Context, record *domain.SessionRecord) error {
	copied := *record
	m.sessions.Store(record.AccountID, &copied)
	return nil
}

// Ping always succeeds
func (m *MemorySessionStore) Ping(ctx context.Context) error {
	return nil
}
