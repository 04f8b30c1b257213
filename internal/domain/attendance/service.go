package attendance

import (
	"context"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, actor user.Identity) (dailylog.DailyLog, error)
	CheckOut(ctx context.Context, actor user.Identity) (dailylog.DailyLog, error)
	Today(ctx context.Context, actor user.Identity) (TodayResponse, error)
	History(ctx context.Context, actor user.Identity) ([]dailylog.DailyLog, error)
}
