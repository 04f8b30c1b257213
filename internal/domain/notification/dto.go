package notification

import (
	"time"
)

// CreateNotificationRequest represents a request to notify one recipient
type CreateNotificationRequest struct {
	RecipientEmail string
	Type           NotificationType
	Title          string
	Message        string
	Data           map[string]interface{}
}

// NotificationResponse represents a notification as streamed to clients
type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// SSEEvent represents a Server-Sent Event
type SSEEvent struct {
	Event string               `json:"event"`
	Data  NotificationResponse `json:"data"`
}
