package task

import (
	"context"
)

type TaskRepository interface {
	List(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, t Task) error
	UpdateProgress(ctx context.Context, taskID string, update ProgressUpdate) error
}
