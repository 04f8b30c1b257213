package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/service/view"
	"github.com/google/uuid"
)

const idPrefix = "TSK-"

type TaskServiceImpl struct {
	task.TaskRepository
	directory           user.Directory
	clock               clock.Clock
	notificationService notification.Service
	metrics             *metrics.Metrics
}

func NewTaskService(
	taskRepository task.TaskRepository,
	directory user.Directory,
	clk clock.Clock,
	notificationService notification.Service,
	m *metrics.Metrics,
) task.TaskService {
	return &TaskServiceImpl{
		TaskRepository:      taskRepository,
		directory:           directory,
		clock:               clk,
		notificationService: notificationService,
		metrics:             m,
	}
}

// newTaskID returns a time-ordered id that is unique across writers.
func newTaskID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return idPrefix + id.String(), nil
}

// ListFor implements task.TaskService.
func (s *TaskServiceImpl) ListFor(ctx context.Context, actor user.Identity) (task.TaskList, error) {
	tasks, err := s.TaskRepository.List(ctx)
	if err != nil {
		return task.TaskList{}, fmt.Errorf("failed to list tasks: %w", err)
	}
	return view.TasksFor(tasks, actor), nil
}

// Assign implements task.TaskService.
func (s *TaskServiceImpl) Assign(ctx context.Context, actor user.Identity, req task.AssignTaskRequest) (task.Task, error) {
	if err := req.Validate(); err != nil {
		return task.Task{}, err
	}

	assignee, err := s.directory.GetByEmail(req.AssigneeEmail)
	if err != nil {
		return task.Task{}, fmt.Errorf("assignee %s: %w", req.AssigneeEmail, err)
	}

	var assignedBy task.AssignedBy
	switch actor.Role {
	case user.RoleHR:
		if !assignee.IsTeamLead() {
			return task.Task{}, task.ErrAssigneeNotTeamLead
		}
		assignedBy = task.AssignedByHR
	case user.RoleTeamLead:
		if !assignee.IsEmployee() || !actor.SameDepartment(assignee.Department) {
			return task.Task{}, task.ErrAssigneeNotInTeam
		}
		assignedBy = task.AssignedByTeamLead
	default:
		return task.Task{}, user.ErrInsufficientPermissions
	}

	id, err := newTaskID()
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to generate task id: %w", err)
	}

	t := task.Task{
		ID:           id,
		AssignedTo:   assignee.Name,
		Email:        assignee.Email,
		Department:   assignee.Department,
		AssignedBy:   assignedBy,
		AssignedDate: s.clock.Now().Format(dailylog.DateLayout),
		Deadline:     req.Deadline,
		Title:        req.Title,
		Description:  req.Description,
		Progress:     task.MinProgress,
		Status:       task.StatusAssigned,
	}

	if err := s.TaskRepository.Create(ctx, t); err != nil {
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.metrics.Transition("task", string(task.StatusAssigned))
	slog.Info("task assigned", "task_id", t.ID, "by", actor.Email, "to", assignee.Email)
	s.notify(ctx, assignedNotification(t, actor))

	return t, nil
}

// Split implements task.TaskService. Children are written one by one; a
// failure leaves the ones already written in place.
func (s *TaskServiceImpl) Split(ctx context.Context, actor user.Identity, req task.SplitTaskRequest) (task.SplitResult, error) {
	if !actor.IsTeamLead() {
		return task.SplitResult{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return task.SplitResult{}, err
	}

	tasks, err := s.TaskRepository.List(ctx)
	if err != nil {
		return task.SplitResult{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	if _, ok := task.FindByID(tasks, req.ParentTaskID); !ok {
		return task.SplitResult{}, task.ErrTaskNotFound
	}
	parent, ok := task.FindByID(view.InboundFor(tasks, actor), req.ParentTaskID)
	if !ok {
		return task.SplitResult{}, task.ErrParentNotInbound
	}

	assignees := make([]user.Identity, 0, len(req.Subtasks))
	for _, sub := range req.Subtasks {
		member, err := s.directory.FindMember(actor.Department, sub.EmployeeName)
		if err != nil {
			return task.SplitResult{}, fmt.Errorf("%w: %s", task.ErrAssigneeNotInTeam, sub.EmployeeName)
		}
		assignees = append(assignees, member)
	}

	assignedDate := s.clock.Now().Format(dailylog.DateLayout)
	created := make([]task.Task, 0, len(req.Subtasks))

	for i, sub := range req.Subtasks {
		id, err := newTaskID()
		if err != nil {
			return task.SplitResult{}, &task.SplitError{Created: created, Total: len(req.Subtasks), Err: err}
		}

		child := task.Task{
			ID:              id,
			ParentTaskTitle: parent.Title,
			AssignedTo:      assignees[i].Name,
			Email:           assignees[i].Email,
			Department:      actor.Department,
			AssignedBy:      task.AssignedByTeamLead,
			AssignedDate:    assignedDate,
			Deadline:        sub.Deadline,
			Title:           sub.Title,
			Description:     sub.Description,
			Progress:        task.MinProgress,
			Status:          task.StatusAssigned,
		}

		if err := s.TaskRepository.Create(ctx, child); err != nil {
			slog.Error("task split stopped", "parent_task_id", parent.ID, "created", len(created), "total", len(req.Subtasks), "error", err)
			return task.SplitResult{}, &task.SplitError{Created: created, Total: len(req.Subtasks), Err: err}
		}
		created = append(created, child)
		s.metrics.Transition("task", string(task.StatusAssigned))
	}

	slog.Info("task split", "parent_task_id", parent.ID, "by", actor.Email, "subtasks", len(created))

	reqs := make([]notification.CreateNotificationRequest, 0, len(created))
	for _, child := range created {
		reqs = append(reqs, assignedNotification(child, actor))
	}
	s.notify(ctx, reqs...)

	return task.SplitResult{ParentTaskID: parent.ID, Subtasks: created}, nil
}

// UpdateProgress implements task.TaskService.
func (s *TaskServiceImpl) UpdateProgress(ctx context.Context, actor user.Identity, req task.UpdateProgressRequest) (task.Task, error) {
	if err := req.Validate(); err != nil {
		return task.Task{}, err
	}
	if !task.ValidProgress(*req.Progress) {
		return task.Task{}, task.ErrInvalidProgress
	}

	tasks, err := s.TaskRepository.List(ctx)
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	current, ok := task.FindByID(tasks, req.TaskID)
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	if !canUpdate(actor, current) {
		return task.Task{}, task.ErrNotTaskParticipant
	}

	update := task.NewProgressUpdate(*req.Progress, req.Comments)
	if err := s.TaskRepository.UpdateProgress(ctx, current.ID, update); err != nil {
		return task.Task{}, fmt.Errorf("failed to update task progress: %w", err)
	}

	updated := update.Apply(current)
	if updated.Status != current.Status {
		s.metrics.Transition("task", string(updated.Status))
	}
	slog.Info("task progress updated", "task_id", updated.ID, "by", actor.Email, "progress", updated.Progress, "status", updated.Status)

	s.notify(ctx, s.progressNotifications(updated, actor)...)

	return updated, nil
}

// canUpdate allows HR, the team lead of the task's department, and the assignee.
func canUpdate(actor user.Identity, t task.Task) bool {
	switch actor.Role {
	case user.RoleHR:
		return true
	case user.RoleTeamLead:
		if actor.SameDepartment(t.Department) {
			return true
		}
	}
	return isAssignee(actor, t)
}

func isAssignee(actor user.Identity, t task.Task) bool {
	if t.AssignedTo != actor.Name {
		return false
	}
	return t.Email == "" || t.Email == actor.Email
}

// progressNotifications tells whoever handed the task out that it moved.
func (s *TaskServiceImpl) progressNotifications(t task.Task, actor user.Identity) []notification.CreateNotificationRequest {
	var recipients []user.Identity
	switch t.AssignedBy {
	case task.AssignedByHR:
		recipients = s.directory.ListByRole(user.RoleHR)
	case task.AssignedByTeamLead:
		recipients = s.directory.TeamLeadsOf(t.Department)
	}

	var reqs []notification.CreateNotificationRequest
	for _, r := range recipients {
		if r.Email == actor.Email {
			continue
		}
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientEmail: r.Email,
			Type:           notification.TypeTaskUpdated,
			Title:          "Task progress updated",
			Message:        fmt.Sprintf("%s is %d%% done (%s)", t.Title, t.Progress, t.Status),
			Data:           taskData(t),
		})
	}
	return reqs
}

func assignedNotification(t task.Task, actor user.Identity) notification.CreateNotificationRequest {
	return notification.CreateNotificationRequest{
		RecipientEmail: t.Email,
		Type:           notification.TypeTaskAssigned,
		Title:          "New task assigned",
		Message:        fmt.Sprintf("%s assigned you %q", actor.Name, t.Title),
		Data:           taskData(t),
	}
}

func taskData(t task.Task) map[string]interface{} {
	return map[string]interface{}{
		"task_id":  t.ID,
		"title":    t.Title,
		"progress": t.Progress,
		"status":   string(t.Status),
	}
}

func (s *TaskServiceImpl) notify(ctx context.Context, reqs ...notification.CreateNotificationRequest) {
	if s.notificationService == nil || len(reqs) == 0 {
		return
	}
	s.notificationService.Queue(ctx, reqs...)
}
