package leave

import (
	"context"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
)

type LeaveService interface {
	Submit(ctx context.Context, actor user.Identity, req SubmitLeaveRequest) (LeaveResponse, error)
	Decide(ctx context.Context, actor user.Identity, req DecisionRequest) (LeaveResponse, error)
	ListMine(ctx context.Context, actor user.Identity) ([]LeaveResponse, error)
	ListPending(ctx context.Context, actor user.Identity) ([]LeaveResponse, error)
}
