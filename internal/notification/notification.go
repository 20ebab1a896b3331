// Package notification announces booking creation and cancellation to the
// external notification service. Dispatch is best-effort: it runs strictly
// after the owning transaction committed, and failures are logged and
// discarded by the caller, never surfaced to the user.
package notification

import "context"

// Payload carries the enriched notification data. The wire keys follow the
// notification service contract.
type Payload struct {
	Email   string `json:"email"`
	Name    string `json:"nombre"`
	Service string `json:"servicio"`
	Date    string `json:"fecha"`
}

// Dispatcher sends a single outbound call per booking event. Implementations
// must not retry; retry policy, if any, belongs to the notification service.
type Dispatcher interface {
	DispatchCreated(ctx context.Context, payload Payload) error
	DispatchCancelled(ctx context.Context, payload Payload) error
}

// NoOpDispatcher discards every notification.
type NoOpDispatcher struct{}

func (NoOpDispatcher) DispatchCreated(ctx context.Context, payload Payload) error {
	return nil
}

func (NoOpDispatcher) DispatchCancelled(ctx context.Context, payload Payload) error {
	return nil
}
