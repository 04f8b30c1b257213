package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyLogRepository_UpsertByKey(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewDailyLogRepository(setup.DB, nil)

	log := dailylog.DailyLog{
		Date:         "2024-01-20",
		EmployeeName: "Harika",
		Department:   "App Development",
		LeaveApplied: true,
		LeaveStatus:  dailylog.LeaveStatusPending,
		Status:       dailylog.StatusLeaveRequest,
	}
	require.NoError(t, repo.Save(ctx, log))

	log.TeamLeadApproval = dailylog.ApprovalApproved
	log.LeaveStatus = dailylog.LeaveStatusForwardedToHR
	log.Status = dailylog.StatusPendingHRApproval
	require.NoError(t, repo.Save(ctx, log))

	logs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, dailylog.LeaveStatusForwardedToHR, logs[0].LeaveStatus)
	assert.True(t, logs[0].LeaveApplied)

	raw, err := repo.ListRaw(ctx)
	require.NoError(t, err)
	require.Len(t, raw, 2)
	assert.Equal(t, "Pending", raw[0].Get(dailylog.ColLeaveStatus))
	assert.Equal(t, dailylog.Collapse(raw), logs)
}

func TestTaskRepository_CreateAndUpdate(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewTaskRepository(setup.DB, nil)

	require.NoError(t, repo.Create(ctx, task.Task{
		ID:         "TSK-1",
		AssignedTo: "Suhas",
		AssignedBy: task.AssignedByHR,
		Title:      "Mobile App Development",
		Status:     task.StatusAssigned,
		Comments:   "kickoff",
	}))

	require.NoError(t, repo.UpdateProgress(ctx, "TSK-1", task.NewProgressUpdate(100, "")))

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, 100, tasks[0].Progress)
	assert.Equal(t, task.StatusCompleted, tasks[0].Status)
	assert.Equal(t, "kickoff", tasks[0].Comments)
}

func TestWithTransaction_RollsBack(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewTaskRepository(setup.DB, nil)

	err := postgresql.WithTransaction(ctx, setup.DB, func(txCtx context.Context) error {
		require.NoError(t, repo.Create(txCtx, task.Task{ID: "TSK-1", Title: "a"}))
		return repo.Create(txCtx, task.Task{ID: "TSK-1", Title: "duplicate"})
	})
	require.Error(t, err)

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
