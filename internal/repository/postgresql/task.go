package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/metrics"
)

type taskRepositoryImpl struct {
	db      *database.DB
	metrics *metrics.Metrics
}

func NewTaskRepository(db *database.DB, m *metrics.Metrics) task.TaskRepository {
	return &taskRepositoryImpl{db: db, metrics: m}
}

// List implements task.TaskRepository.
func (r *taskRepositoryImpl) List(ctx context.Context) (tasks []task.Task, err error) {
	started := time.Now()
	defer func() { observe(r.metrics, resourceTasks, "select", started, err) }()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT task_id, parent_task, assigned_to, email, department, assigned_by, assigned_date,
			   deadline, title, description, progress, comments
		FROM tasks
		ORDER BY seq
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, storeError(resourceTasks, "select", err)
	}
	defer rows.Close()

	tasks = []task.Task{}
	for rows.Next() {
		var t task.Task
		var assignedBy string
		if err := rows.Scan(
			&t.ID,
			&t.ParentTaskTitle,
			&t.AssignedTo,
			&t.Email,
			&t.Department,
			&assignedBy,
			&t.AssignedDate,
			&t.Deadline,
			&t.Title,
			&t.Description,
			&t.Progress,
			&t.Comments,
		); err != nil {
			return nil, storeError(resourceTasks, "select", err)
		}
		t.AssignedBy = task.AssignedBy(assignedBy)
		t.Status = task.StatusForProgress(t.Progress)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(resourceTasks, "select", err)
	}

	return tasks, nil
}

// Create implements task.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, t task.Task) (err error) {
	started := time.Now()
	defer func() { observe(r.metrics, resourceTasks, "insert", started, err) }()

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (
			task_id, parent_task, assigned_to, email, department, assigned_by, assigned_date,
			deadline, title, description, progress, status, comments
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = q.Exec(ctx, query,
		t.ID,
		t.ParentTaskTitle,
		t.AssignedTo,
		t.Email,
		t.Department,
		string(t.AssignedBy),
		t.AssignedDate,
		t.Deadline,
		t.Title,
		t.Description,
		t.Progress,
		string(t.Status),
		t.Comments,
	)
	if err != nil {
		return storeError(resourceTasks, "insert", err)
	}
	return nil
}

// UpdateProgress implements task.TaskRepository. Comments are only replaced when given.
func (r *taskRepositoryImpl) UpdateProgress(ctx context.Context, taskID string, update task.ProgressUpdate) (err error) {
	started := time.Now()
	defer func() { observe(r.metrics, resourceTasks, "update", started, err) }()

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks
		SET progress = $1,
			status = $2,
			comments = CASE WHEN $3::text = '' THEN comments ELSE $3::text END,
			updated_at = NOW()
		WHERE task_id = $4
	`

	_, err = q.Exec(ctx, query, update.Progress, string(update.Status), update.Comments, taskID)
	if err != nil {
		return storeError(resourceTasks, "update", err)
	}
	return nil
}
