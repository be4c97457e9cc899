package application

import (
	"context"
	"time"

	"github.com/gautamg795/forkable-menu/internal/domain"
	"github.com/gautamg795/forkable-menu/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// SessionCache struct - expiry-aware get/put over a SessionStore
type SessionCache struct {
	store output.SessionStore
	now   func() time.Time
}

// NewSessionCache func - Creates new session cache
func NewSessionCache(store output.SessionStore) *SessionCache {
	return &SessionCache{
		store: store,
		now:   time.Now,
	}
}

// Get returns the account's session only when it is present and unexpired.
// A store failure is logged and reported as a miss.
func (c *SessionCache) Get(ctx context.Context, accountID string) *domain.SessionRecord {
	now := c.now()
	record, err := c.store.GetSession(ctx, accountID, now)
	if err != nil {
		logrus.Warnf("Session lookup failed for %s, treating as miss: %v", accountID, err)
		return nil
	}
	if record == nil || !record.IsValidAt(now) {
		return nil
	}
	return record
}

// Put replaces the account's session with a new record created now
func (c *SessionCache) Put(ctx context.Context, accountID, sessionToken string, expiresAt time.Time) error {
	record := domain.NewSessionRecord(accountID, sessionToken, expiresAt, c.now())
	return c.store.ReplaceSession(ctx, record)
}
