package memory

import (
	"context"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/task"
)

type taskRepository struct {
	store *Store
}

func NewTaskRepository(store *Store) task.TaskRepository {
	return &taskRepository{store: store}
}

func (r *taskRepository) List(ctx context.Context) ([]task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if err := r.store.readable(ResourceTasks); err != nil {
		return nil, err
	}

	tasks := make([]task.Task, 0, len(r.store.tasks))
	for _, row := range r.store.tasks {
		t := task.FromRow(row)
		if t.ID == "" {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, t task.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.writable(ResourceTasks, "POST"); err != nil {
		return err
	}
	r.store.tasks = append(r.store.tasks, t.Row())
	return nil
}

// UpdateProgress patches every row carrying taskID, like the sheet API does.
// A missing id is not an error there either.
func (r *taskRepository) UpdateProgress(ctx context.Context, taskID string, update task.ProgressUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.writable(ResourceTasks, "PATCH"); err != nil {
		return err
	}
	for _, row := range r.store.tasks {
		if row.Get(task.ColTaskID) == taskID {
			row.Overlay(update.Row())
		}
	}
	return nil
}
