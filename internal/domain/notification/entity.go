package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeTaskAssigned   NotificationType = "task.assigned"
	TypeTaskUpdated    NotificationType = "task.updated"
	TypeLeaveSubmitted NotificationType = "leave.submitted"
	TypeLeaveForwarded NotificationType = "leave.forwarded"
	TypeLeaveDecided   NotificationType = "leave.decided"
)

// Notification is a transient event pushed to connected dashboards. It is never stored.
// Recipients are carried by the delivery, so one notification may reach several streams.
type Notification struct {
	ID        string
	Type      NotificationType
	Title     string
	Message   string
	Data      map[string]interface{}
	CreatedAt time.Time
}
