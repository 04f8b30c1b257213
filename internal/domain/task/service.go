package task

import (
	"context"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
)

type TaskService interface {
	ListFor(ctx context.Context, actor user.Identity) (TaskList, error)
	Assign(ctx context.Context, actor user.Identity, req AssignTaskRequest) (Task, error)
	Split(ctx context.Context, actor user.Identity, req SplitTaskRequest) (SplitResult, error)
	UpdateProgress(ctx context.Context, actor user.Identity, req UpdateProgressRequest) (Task, error)
}
