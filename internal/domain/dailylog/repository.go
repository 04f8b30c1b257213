package dailylog

import (
	"context"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/record"
)

type DailyLogRepository interface {
	// List returns one authoritative log per (employee, date).
	List(ctx context.Context) ([]DailyLog, error)
	// ListRaw returns the stored rows as written, before collapsing.
	ListRaw(ctx context.Context) ([]record.Row, error)
	// Save persists the full current state of a log.
	Save(ctx context.Context, log DailyLog) error
}
