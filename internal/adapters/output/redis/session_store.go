package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gautamg795/forkable-menu/internal/domain"
	"github.com/gautamg795/forkable-menu/internal/ports/output"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "forkable:session:"

var _ output.SessionStore = (*SessionStore)(nil)

// SessionStore struct - Output adapter keeping one JSON record per account under a TTL'd key
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionStore func - Creates new Redis session store
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: keyPrefix,
	}
}

func (r *SessionStore) key(accountID string) string {
	return fmt.Sprintf("%s%s", r.prefix, accountID)
}

// GetSession returns the account's record if present and not expired as of now
func (r *SessionStore) GetSession(ctx context.Context, accountID string, now time.Time) (*domain.SessionRecord, error) {
	data, err := r.client.Get(ctx, r.key(accountID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var record domain.SessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		logrus.Warnf("Dropping unreadable session for %s: %v", accountID, err)
		return nil, nil
	}

	// The key TTL follows the record, but clocks may disagree.
	if !record.IsValidAt(now) {
		return nil, nil
	}
	return &record, nil
}

// ReplaceSession overwrites the account's key; SET replaces atomically
func (r *SessionStore) ReplaceSession(ctx context.Context, record *domain.SessionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	ttl := time.Until(record.ExpiresTime())
	if ttl <= 0 {
		// Nothing valid to keep; make sure a stale record is not left behind either.
		return r.client.Del(ctx, r.key(record.AccountID)).Err()
	}

	if err := r.client.Set(ctx, r.key(record.AccountID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to replace session: %w", err)
	}
	return nil
}

// Ping checks the Redis connection
func (r *SessionStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
