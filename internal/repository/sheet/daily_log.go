package sheet

import (
	"context"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/record"
)

type dailyLogRepositoryImpl struct {
	client *Client
}

func NewDailyLogRepository(client *Client) dailylog.DailyLogRepository {
	return &dailyLogRepositoryImpl{client: client}
}

// List implements dailylog.DailyLogRepository. The sheet is append-only so rows are collapsed per key.
func (r *dailyLogRepositoryImpl) List(ctx context.Context) ([]dailylog.DailyLog, error) {
	rows, err := r.client.list(ctx, r.client.logs)
	if err != nil {
		return nil, err
	}
	return dailylog.Collapse(rows), nil
}

// ListRaw implements dailylog.DailyLogRepository.
func (r *dailyLogRepositoryImpl) ListRaw(ctx context.Context) ([]record.Row, error) {
	return r.client.list(ctx, r.client.logs)
}

// Save implements dailylog.DailyLogRepository by appending the full current record.
func (r *dailyLogRepositoryImpl) Save(ctx context.Context, log dailylog.DailyLog) error {
	return r.client.post(ctx, r.client.logs, log.Row())
}
