package memory

import (
	"context"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/record"
)

type dailyLogRepository struct {
	store *Store
}

func NewDailyLogRepository(store *Store) dailylog.DailyLogRepository {
	return &dailyLogRepository{store: store}
}

func (r *dailyLogRepository) List(ctx context.Context) ([]dailylog.DailyLog, error) {
	rows, err := r.ListRaw(ctx)
	if err != nil {
		return nil, err
	}
	return dailylog.Collapse(rows), nil
}

func (r *dailyLogRepository) ListRaw(ctx context.Context) ([]record.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if err := r.store.readable(ResourceLogs); err != nil {
		return nil, err
	}
	return cloneRows(r.store.logs), nil
}

func (r *dailyLogRepository) Save(ctx context.Context, log dailylog.DailyLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.writable(ResourceLogs, "POST"); err != nil {
		return err
	}
	r.store.logs = append(r.store.logs, log.Row())
	return nil
}
