// File: services/notification/interface.go
package notification

import (
	"context"

	"wrenchly/models"
)

// Dispatcher queues outbound notification jobs. Rendering and delivery are
// the worker's problem; enqueue failures are the caller's to log, never to
// propagate.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload models.NotificationPayload) error
}
