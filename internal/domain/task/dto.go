package task

import (
	"fmt"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/validator"
)

// AssignTaskRequest creates a top-level task. HR assigns to a team lead,
// a team lead assigns to an employee of their own department.
type AssignTaskRequest struct {
	AssigneeEmail string `json:"assignee_email" validate:"required,email"`
	Title         string `json:"title" validate:"notblank,max=255"`
	Description   string `json:"description" validate:"notblank"`
	Deadline      string `json:"deadline,omitempty" validate:"omitempty,date"`
}

func (r *AssignTaskRequest) Validate() error {
	return validator.Struct(r)
}

type SubtaskRequest struct {
	EmployeeName string `json:"employee_name" validate:"notblank"`
	Title        string `json:"title" validate:"notblank,max=255"`
	Description  string `json:"description" validate:"notblank"`
	Deadline     string `json:"deadline,omitempty" validate:"omitempty,date"`
}

type SplitTaskRequest struct {
	ParentTaskID string           `json:"-"`
	Subtasks     []SubtaskRequest `json:"subtasks" validate:"required,min=1,dive"`
}

func (r *SplitTaskRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if validator.IsEmpty(r.ParentTaskID) {
		return validator.ValidationErrors{{Field: "task_id", Message: "task_id is required"}}
	}
	return nil
}

type UpdateProgressRequest struct {
	TaskID   string `json:"-"`
	Progress *int   `json:"progress" validate:"required,min=0,max=100"`
	Comments string `json:"comments,omitempty" validate:"max=1000"`
}

func (r *UpdateProgressRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if validator.IsEmpty(r.TaskID) {
		return validator.ValidationErrors{{Field: "task_id", Message: "task_id is required"}}
	}
	return nil
}

// TaskList is the role-shaped task view. Employees and HR get Assigned,
// team leads get Inbound (from HR) and Outbound (to their team).
type TaskList struct {
	Assigned []Task `json:"assigned,omitempty"`
	Inbound  []Task `json:"inbound,omitempty"`
	Outbound []Task `json:"outbound,omitempty"`
}

type TaskStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Assigned   int `json:"assigned"`
}

func StatsOf(tasks []Task) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusCompleted:
			stats.Completed++
		case StatusInProgress:
			stats.InProgress++
		default:
			stats.Assigned++
		}
	}
	return stats
}

type SplitResult struct {
	ParentTaskID string `json:"parent_task_id"`
	Subtasks     []Task `json:"subtasks"`
}

// SplitError reports a split that stopped part way. Subtasks already written stay written.
type SplitError struct {
	Created []Task
	Total   int
	Err     error
}

func (e *SplitError) Error() string {
	return fmt.Sprintf("split stopped after %d of %d subtasks: %v", len(e.Created), e.Total, e.Err)
}

func (e *SplitError) Unwrap() error {
	return e.Err
}
