package sheet

import (
	"context"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/task"
)

type taskRepositoryImpl struct {
	client *Client
}

func NewTaskRepository(client *Client) task.TaskRepository {
	return &taskRepositoryImpl{client: client}
}

// List implements task.TaskRepository. Rows without a task id are skipped.
func (r *taskRepositoryImpl) List(ctx context.Context) ([]task.Task, error) {
	rows, err := r.client.list(ctx, r.client.tasks)
	if err != nil {
		return nil, err
	}

	tasks := make([]task.Task, 0, len(rows))
	for _, row := range rows {
		t := task.FromRow(row)
		if t.ID == "" {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Create implements task.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, t task.Task) error {
	return r.client.post(ctx, r.client.tasks, t.Row())
}

// UpdateProgress implements task.TaskRepository.
func (r *taskRepositoryImpl) UpdateProgress(ctx context.Context, taskID string, update task.ProgressUpdate) error {
	return r.client.patch(ctx, r.client.tasks, task.ColTaskID, taskID, update.Row())
}
