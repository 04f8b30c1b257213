// Package view derives role-scoped views from a snapshot of the record tables.
// Every function here is pure: it never mutates its input and returns fresh slices.
package view

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

// Snapshot is both tables as read for one request. Logs are already collapsed.
type Snapshot struct {
	Logs  []dailylog.DailyLog
	Tasks []task.Task
}

type Loader struct {
	logs  dailylog.DailyLogRepository
	tasks task.TaskRepository
}

func NewLoader(logs dailylog.DailyLogRepository, tasks task.TaskRepository) *Loader {
	return &Loader{logs: logs, tasks: tasks}
}

// Load fetches both tables in parallel. Either failure fails the snapshot.
func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logs, err := l.logs.List(gctx)
		if err != nil {
			return fmt.Errorf("load daily logs: %w", err)
		}
		snap.Logs = logs
		return nil
	})
	g.Go(func() error {
		tasks, err := l.tasks.List(gctx)
		if err != nil {
			return fmt.Errorf("load tasks: %w", err)
		}
		snap.Tasks = tasks
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Logs fetches only the daily log table.
func (l *Loader) Logs(ctx context.Context) ([]dailylog.DailyLog, error) {
	logs, err := l.logs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load daily logs: %w", err)
	}
	return logs, nil
}

// Tasks fetches only the task table.
func (l *Loader) Tasks(ctx context.Context) ([]task.Task, error) {
	tasks, err := l.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return tasks, nil
}

// TasksFor returns the tasks visible to identity.
func TasksFor(tasks []task.Task, identity user.Identity) task.TaskList {
	switch identity.Role {
	case user.RoleEmployee:
		return task.TaskList{Assigned: filter(tasks, func(t task.Task) bool {
			return t.AssignedTo == identity.Name
		})}
	case user.RoleTeamLead:
		return task.TaskList{
			Inbound:  InboundFor(tasks, identity),
			Outbound: OutboundFor(tasks, identity),
		}
	case user.RoleHR:
		return task.TaskList{Assigned: filter(tasks, func(t task.Task) bool {
			return t.AssignedBy == task.AssignedByHR
		})}
	}
	return task.TaskList{}
}

// InboundFor is the work HR handed to a team lead.
func InboundFor(tasks []task.Task, lead user.Identity) []task.Task {
	return filter(tasks, func(t task.Task) bool {
		return t.AssignedBy == task.AssignedByHR && t.AssignedTo == lead.Name && t.Department == lead.Department
	})
}

// OutboundFor is the work a team lead handed to their department.
func OutboundFor(tasks []task.Task, lead user.Identity) []task.Task {
	return filter(tasks, func(t task.Task) bool {
		return t.AssignedBy == task.AssignedByTeamLead && t.Department == lead.Department
	})
}

// LeaveRecordsFor returns the leave requests identity should see: their own
// for employees, the undecided ones of their department for team leads, and
// the forwarded ones for HR.
// HR never sees Submitted records, even though their HR approval still reads Pending.
func LeaveRecordsFor(logs []dailylog.DailyLog, identity user.Identity) []dailylog.DailyLog {
	switch identity.Role {
	case user.RoleEmployee:
		return filter(logs, func(l dailylog.DailyLog) bool {
			return l.EmployeeName == identity.Name && l.LeaveApplied
		})
	case user.RoleTeamLead:
		return filter(logs, func(l dailylog.DailyLog) bool {
			return identity.SameDepartment(l.Department) && leave.StateOf(l) == leave.StateSubmitted
		})
	case user.RoleHR:
		return filter(logs, func(l dailylog.DailyLog) bool {
			return leave.StateOf(l) == leave.StateForwarded
		})
	}
	return []dailylog.DailyLog{}
}

// AttendanceFor returns identity's attended days, newest first.
func AttendanceFor(logs []dailylog.DailyLog, identity user.Identity) []dailylog.DailyLog {
	out := filter(logs, func(l dailylog.DailyLog) bool {
		return l.EmployeeName == identity.Name && l.HasCheckIn() && l.Status != dailylog.StatusLeaveRequest
	})
	dailylog.SortByDateDesc(out)
	return out
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := []T{}
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
