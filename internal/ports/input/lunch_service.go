package input

import "context"

// LunchService interface - Input port (use case)
type LunchService interface {
	// GetLunchSummary returns the lunch summary text for the configured account.
	// Upstream failures are part of the text; the error is reserved for
	// configuration problems.
	GetLunchSummary(ctx context.Context) (string, error)
}

// LunchNotifier interface - Input port (use case)
type LunchNotifier interface {
	// NotifyLunch pushes the lunch summary to the configured LINE user and returns it
	NotifyLunch(ctx context.Context) (string, error)
}
