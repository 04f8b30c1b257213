package notification

import (
	"context"
)

// Service delivers workflow events to connected users
type Service interface {
	// Queue hands notifications to background workers and never blocks on delivery
	Queue(ctx context.Context, reqs ...CreateNotificationRequest)

	// Broadcast queues one notification for every recipient; RecipientEmail on req is ignored
	Broadcast(ctx context.Context, recipients []string, req CreateNotificationRequest)

	// SSE subscription
	Subscribe(ctx context.Context, recipientEmail string) (<-chan SSEEvent, func())

	// Lifecycle
	Stop()
}
