package output

import (
	"context"

	"github.com/gautamg795/forkable-menu/internal/domain"
)

// ForkableClient interface - Output port
// Defines what the application needs from the Forkable GraphQL API.
type ForkableClient interface {
	// Login creates a Forkable session for the account.
	// Errors wrap domain.ErrLoginRejected, domain.ErrLoginUnreachable or
	// domain.ErrLoginMalformedResponse.
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)

	// QueryDeliveries lists the deliveries scheduled on targetDate (YYYY-MM-DD).
	// Errors wrap domain.ErrQueryUnauthenticated when the session is no longer
	// accepted, otherwise domain.ErrQueryUnreachable or domain.ErrQueryMalformedResponse.
	QueryDeliveries(ctx context.Context, sessionToken, targetDate string) (*domain.DeliverySummary, error)
}
