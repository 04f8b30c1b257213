package dashboard

import (
	"context"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
)

type DashboardService interface {
	Get(ctx context.Context, actor user.Identity) (Dashboard, error)
	Analytics(ctx context.Context) (Analytics, error)
	TeamMembers(ctx context.Context, actor user.Identity, department string) ([]user.MemberResponse, error)
}
