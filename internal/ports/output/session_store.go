package output

import (
	"context"
	"time"

	"github.com/gautamg795/forkable-menu/internal/domain"
)

// SessionStore interface - Output port
// Defines what the application needs for persisting Forkable sessions.
// One record is kept per account. Implementations must be safe for concurrent use.
type SessionStore interface {
	// GetSession retrieves the session record for an account.
	// Returns nil when no record exists or the record has expired as of now.
	// Returns an error only if there is a storage access failure.
	GetSession(ctx context.Context, accountID string, now time.Time) (*domain.SessionRecord, error)

	// ReplaceSession stores the record, removing any previous record for the
	// same account in the same logical step.
	ReplaceSession(ctx context.Context, record *domain.SessionRecord) error

	// Ping checks that the backing storage is reachable.
	Ping(ctx context.Context) error
}
