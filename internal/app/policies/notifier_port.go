package policies

import "context"

// Notifier delivers a message to a user. Delivery is best-effort: callers
// log failures and never let them fail the surrounding operation.
type Notifier interface {
	Notify(ctx context.Context, userID, subject, body string) error
}
