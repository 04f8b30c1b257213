package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

// Config holds notification service configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 256
}

type service struct {
	hub    *sse.Hub
	config Config

	queue    chan delivery
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(hub *sse.Hub, cfg Config) notification.Service {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}

	s := &service{
		hub:    hub,
		config: cfg,
		queue:  make(chan delivery, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)

	return s
}

// delivery is one queued notification and the streams it fans out to
type delivery struct {
	recipients []string
	req        notification.CreateNotificationRequest
}

// worker drains the queue and pushes to SSE subscribers
func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case d := <-s.queue:
			s.deliver(d)
		case <-s.stopCh:
			for {
				select {
				case d := <-s.queue:
					s.deliver(d)
				default:
					slog.Debug("notification worker stopped", "worker", id)
					return
				}
			}
		}
	}
}

func (s *service) deliver(d delivery) {
	n := notification.Notification{
		ID:        uuid.NewString(),
		Type:      d.req.Type,
		Title:     d.req.Title,
		Message:   d.req.Message,
		Data:      d.req.Data,
		CreatedAt: time.Now(),
	}

	s.hub.PublishToMany(d.recipients, sse.Event{
		Event: string(n.Type),
		Data:  toResponse(n),
	})
}

// Queue enqueues notifications; when the queue is full they are dropped
func (s *service) Queue(ctx context.Context, reqs ...notification.CreateNotificationRequest) {
	for _, req := range reqs {
		if req.RecipientEmail == "" {
			continue
		}
		if !s.enqueue(ctx, delivery{recipients: []string{req.RecipientEmail}, req: req}) {
			return
		}
	}
}

// Broadcast enqueues a single delivery shared by all recipients
func (s *service) Broadcast(ctx context.Context, recipients []string, req notification.CreateNotificationRequest) {
	to := make([]string, 0, len(recipients))
	for _, r := range recipients {
		if r != "" {
			to = append(to, r)
		}
	}
	if len(to) == 0 {
		return
	}
	s.enqueue(ctx, delivery{recipients: to, req: req})
}

// enqueue reports false once ctx is done
func (s *service) enqueue(ctx context.Context, d delivery) bool {
	select {
	case s.queue <- d:
	case <-ctx.Done():
		return false
	default:
		slog.Warn("notification dropped", "error", notification.ErrQueueFull, "type", d.req.Type, "recipients", len(d.recipients))
	}
	return true
}

func toResponse(n notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		CreatedAt: n.CreatedAt,
	}
}

// Subscribe creates an SSE subscription for a recipient
func (s *service) Subscribe(ctx context.Context, recipientEmail string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(recipientEmail)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				resp, ok := event.Data.(notification.NotificationResponse)
				if !ok {
					continue
				}
				select {
				case out <- notification.SSEEvent{Event: event.Event, Data: resp}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop drains pending notifications and stops the workers
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	s.wg.Wait()
	slog.Info("notification service stopped")
}
