package notification

import "context"

// Sender delivers a notification to a recipient address. Delivery is
// fire-and-forget from the engine's point of view: a failed send must not
// roll back the state transition that triggered it.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}
