package notification

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueDeliversToSubscriber(t *testing.T) {
	svc := NewNotificationService(sse.NewHub(), Config{WorkerCount: 1, QueueSize: 4})
	defer svc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, cleanup := svc.Subscribe(ctx, "suhas.app@gmail.com")
	defer cleanup()

	svc.Queue(ctx,
		notification.CreateNotificationRequest{
			RecipientEmail: "suhas.app@gmail.com",
			Type:           notification.TypeLeaveSubmitted,
			Title:          "Leave request",
			Message:        "Harika applied for leave on 2024-01-20",
			Data:           map[string]interface{}{"date": "2024-01-20"},
		},
		notification.CreateNotificationRequest{Type: notification.TypeTaskUpdated},
	)

	select {
	case event := <-events:
		assert.Equal(t, string(notification.TypeLeaveSubmitted), event.Event)
		assert.Equal(t, "Leave request", event.Data.Title)
		assert.NotEmpty(t, event.Data.ID)
		assert.Equal(t, "2024-01-20", event.Data.Data["date"])
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}
}

func TestQueueWithoutSubscriberIsDropped(t *testing.T) {
	hub := sse.NewHub()
	svc := NewNotificationService(hub, Config{WorkerCount: 1, QueueSize: 1})

	assert.NotPanics(t, func() {
		for i := 0; i < 5; i++ {
			svc.Queue(context.Background(), notification.CreateNotificationRequest{
				RecipientEmail: "nobody@x.io",
				Type:           notification.TypeTaskAssigned,
			})
		}
	})
	svc.Stop()
	require.Equal(t, 0, hub.TotalSubscribers())
}

func TestBroadcastReachesEveryRecipientWithOneNotification(t *testing.T) {
	hub := sse.NewHub()
	svc := NewNotificationService(hub, Config{WorkerCount: 1, QueueSize: 4})
	defer svc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recipients := []string{"vishnu_@gmail.com", "gayatri_@gmail.com"}
	streams := make([]<-chan notification.SSEEvent, 0, len(recipients))
	for _, r := range recipients {
		events, cleanup := svc.Subscribe(ctx, r)
		defer cleanup()
		streams = append(streams, events)
	}
	require.Equal(t, 2, hub.TotalSubscribers())

	svc.Broadcast(ctx, append(recipients, ""), notification.CreateNotificationRequest{
		Type:  notification.TypeLeaveForwarded,
		Title: "Leave request forwarded",
	})

	var ids []string
	for _, events := range streams {
		select {
		case event := <-events:
			assert.Equal(t, string(notification.TypeLeaveForwarded), event.Event)
			ids = append(ids, event.Data.ID)
		case <-time.After(2 * time.Second):
			t.Fatal("no event delivered")
		}
	}
	require.Len(t, ids, 2)
	assert.Equal(t, ids[0], ids[1])
}
