package leave

import (
	"context"
	"sync"
	"testing"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/repository/directory"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recordingNotifier struct {
	mu         sync.Mutex
	sent       []notification.CreateNotificationRequest
	broadcasts int
}

func (r *recordingNotifier) Queue(ctx context.Context, reqs ...notification.CreateNotificationRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, reqs...)
}

func (r *recordingNotifier) Broadcast(ctx context.Context, recipients []string, req notification.CreateNotificationRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcasts++
	for _, to := range recipients {
		req.RecipientEmail = to
		r.sent = append(r.sent, req)
	}
}

func (r *recordingNotifier) Subscribe(ctx context.Context, email string) (<-chan notification.SSEEvent, func()) {
	ch := make(chan notification.SSEEvent)
	return ch, func() {}
}

func (r *recordingNotifier) Stop() {}

func (r *recordingNotifier) recipients(kind notification.NotificationType) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, n := range r.sent {
		if n.Type == kind {
			out = append(out, n.RecipientEmail)
		}
	}
	return out
}

type fixture struct {
	svc      leave.LeaveService
	store    *memory.Store
	logs     dailylog.DailyLogRepository
	notifier *recordingNotifier
	dir      user.Directory
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir, err := directory.Load("", bcrypt.MinCost)
	require.NoError(t, err)

	store := memory.NewStore()
	logs := memory.NewDailyLogRepository(store)
	notifier := &recordingNotifier{}

	return fixture{
		svc:      NewLeaveService(logs, dir, notifier, nil),
		store:    store,
		logs:     logs,
		notifier: notifier,
		dir:      dir,
	}
}

func (f fixture) identity(t *testing.T, email string) user.Identity {
	t.Helper()
	i, err := f.dir.GetByEmail(email)
	require.NoError(t, err)
	return i
}

func TestLeaveWorkflow_HarikaForwardedThenApproved(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	harika := f.identity(t, "harikaappdevelopment@gmail.com")
	suhas := f.identity(t, "suhas.app@gmail.com")
	hr := f.identity(t, "vishnu_@gmail.com")

	submitted, err := f.svc.Submit(ctx, harika, leave.SubmitLeaveRequest{
		StartDate: "2024-01-20",
		EndDate:   "2024-01-22",
		Reason:    "Family function",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StateSubmitted, submitted.State)
	assert.Equal(t, "2024-01-20 to 2024-01-22", submitted.LeaveDates)
	assert.Equal(t, []string{"suhas.app@gmail.com"}, f.notifier.recipients(notification.TypeLeaveSubmitted))

	leadQueue, err := f.svc.ListPending(ctx, suhas)
	require.NoError(t, err)
	require.Len(t, leadQueue, 1)

	forwarded, err := f.svc.Decide(ctx, suhas, leave.DecisionRequest{
		EmployeeName: "Harika",
		Date:         "2024-01-20",
		Decision:     leave.DecisionApprove,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StateForwarded, forwarded.State)
	assert.ElementsMatch(t, []string{"vishnu_@gmail.com", "gayatri_@gmail.com"}, f.notifier.recipients(notification.TypeLeaveForwarded))
	assert.Equal(t, 2, f.notifier.broadcasts)

	hrQueue, err := f.svc.ListPending(ctx, hr)
	require.NoError(t, err)
	require.Len(t, hrQueue, 1)
	assert.Equal(t, "Harika", hrQueue[0].EmployeeName)
	assert.Equal(t, dailylog.LeaveStatusForwardedToHR, hrQueue[0].LeaveStatus)

	leadQueue, err = f.svc.ListPending(ctx, suhas)
	require.NoError(t, err)
	assert.Empty(t, leadQueue)

	approved, err := f.svc.Decide(ctx, hr, leave.DecisionRequest{
		EmployeeName: "Harika",
		Date:         "2024-01-20",
		Decision:     leave.DecisionApprove,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StateHRApproved, approved.State)
	assert.Equal(t, dailylog.StatusApproved, approved.Status)

	hrQueue, err = f.svc.ListPending(ctx, hr)
	require.NoError(t, err)
	assert.Empty(t, hrQueue)

	mine, err := f.svc.ListMine(ctx, harika)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, leave.StateHRApproved, mine[0].State)

	assert.Len(t, f.notifier.recipients(notification.TypeLeaveDecided), 2)
}

func TestDecide_Guards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	harika := f.identity(t, "harikaappdevelopment@gmail.com")
	suhas := f.identity(t, "suhas.app@gmail.com")
	steev := f.identity(t, "steev.social@gmail.com")
	hr := f.identity(t, "vishnu_@gmail.com")

	_, err := f.svc.Submit(ctx, harika, leave.SubmitLeaveRequest{StartDate: "2024-01-20", Reason: "Doctor"})
	require.NoError(t, err)

	req := leave.DecisionRequest{EmployeeName: "Harika", Date: "2024-01-20", Decision: leave.DecisionApprove}

	_, err = f.svc.Decide(ctx, hr, req)
	assert.ErrorIs(t, err, leave.ErrForbiddenTransition)

	_, err = f.svc.Decide(ctx, steev, req)
	assert.ErrorIs(t, err, user.ErrNotInDepartment)

	_, err = f.svc.Decide(ctx, suhas, leave.DecisionRequest{EmployeeName: "Harika", Date: "2024-01-21", Decision: leave.DecisionApprove})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	_, err = f.svc.Decide(ctx, suhas, leave.DecisionRequest{EmployeeName: "Harika", Date: "2024-01-20", Decision: "maybe"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	rejected, err := f.svc.Decide(ctx, suhas, leave.DecisionRequest{EmployeeName: "Harika", Date: "2024-01-20", Decision: leave.DecisionReject})
	require.NoError(t, err)
	assert.Equal(t, leave.StateTeamLeadRejected, rejected.State)
	assert.Equal(t, dailylog.ApprovalPending, rejected.HRApproval)

	_, err = f.svc.Decide(ctx, suhas, req)
	assert.ErrorIs(t, err, leave.ErrInvalidTransition)

	hrQueue, err := f.svc.ListPending(ctx, hr)
	require.NoError(t, err)
	assert.Empty(t, hrQueue)
}

func TestDecide_TerminalRequestIsNotRewritten(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	harika := f.identity(t, "harikaappdevelopment@gmail.com")
	suhas := f.identity(t, "suhas.app@gmail.com")
	hr := f.identity(t, "vishnu_@gmail.com")

	_, err := f.svc.Submit(ctx, harika, leave.SubmitLeaveRequest{StartDate: "2024-01-20", Reason: "Doctor"})
	require.NoError(t, err)
	req := leave.DecisionRequest{EmployeeName: "Harika", Date: "2024-01-20", Decision: leave.DecisionApprove}
	_, err = f.svc.Decide(ctx, suhas, req)
	require.NoError(t, err)
	_, err = f.svc.Decide(ctx, hr, req)
	require.NoError(t, err)

	writes, _ := f.store.Writes()
	decided := len(f.notifier.recipients(notification.TypeLeaveDecided))

	for _, who := range []user.Identity{hr, suhas} {
		for _, d := range []leave.Decision{leave.DecisionApprove, leave.DecisionReject} {
			_, err = f.svc.Decide(ctx, who, leave.DecisionRequest{EmployeeName: "Harika", Date: "2024-01-20", Decision: d})
			assert.ErrorIs(t, err, leave.ErrInvalidTransition)
		}
	}

	after, _ := f.store.Writes()
	assert.Equal(t, writes, after)
	assert.Len(t, f.notifier.recipients(notification.TypeLeaveDecided), decided)
}

func TestSubmit_Conflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	harika := f.identity(t, "harikaappdevelopment@gmail.com")

	f.store.Seed([]record.Row{dailylog.DailyLog{
		Date: "2024-01-19", EmployeeName: "Harika", CheckIn: "09:00:00", Status: dailylog.StatusCheckedIn,
	}.Row()}, nil)

	_, err := f.svc.Submit(ctx, harika, leave.SubmitLeaveRequest{StartDate: "2024-01-19", Reason: "Unwell"})
	assert.ErrorIs(t, err, leave.ErrAttendanceOnStartDate)

	_, err = f.svc.Submit(ctx, harika, leave.SubmitLeaveRequest{StartDate: "2024-01-20", Reason: "Trip"})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, harika, leave.SubmitLeaveRequest{StartDate: "2024-01-20", Reason: "Trip again"})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyRequested)

	_, err = f.svc.Submit(ctx, harika, leave.SubmitLeaveRequest{StartDate: "2024-01-22", EndDate: "2024-01-21", Reason: "x"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	logCount, _ := f.store.Writes()
	assert.Equal(t, 2, logCount)
}

func TestSubmit_OnlyEmployees(t *testing.T) {
	f := newFixture(t)
	suhas := f.identity(t, "suhas.app@gmail.com")

	_, err := f.svc.Submit(context.Background(), suhas, leave.SubmitLeaveRequest{StartDate: "2024-01-20", Reason: "x"})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = f.svc.ListPending(context.Background(), f.identity(t, "harikaappdevelopment@gmail.com"))
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestDecide_LegacyPartialRows(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	hr := f.identity(t, "gayatri_@gmail.com")

	// A submission followed by the partial row the old dashboard wrote when forwarding.
	f.store.Seed([]record.Row{
		{
			dailylog.ColDate: "2024-01-20", dailylog.ColEmployeeName: "Harika", dailylog.ColDepartment: "App Development",
			dailylog.ColLeaveApplied: "Yes", dailylog.ColLeaveStatus: "Pending", dailylog.ColTeamLeadApproval: "Pending",
			dailylog.ColHRApproval: "Pending", dailylog.ColStatus: "Leave Request",
		},
		{
			dailylog.ColDate: "2024-01-20", dailylog.ColEmployeeName: "Harika",
			dailylog.ColTeamLeadApproval: "Approved", dailylog.ColStatus: "Pending HR Approval",
		},
	}, nil)

	got, err := f.svc.Decide(ctx, hr, leave.DecisionRequest{EmployeeName: "Harika", Date: "2024-01-20", Decision: leave.DecisionReject})
	require.NoError(t, err)
	assert.Equal(t, leave.StateHRRejected, got.State)
	assert.Equal(t, []string{"harikaappdevelopment@gmail.com"}, f.notifier.recipients(notification.TypeLeaveDecided))
}

func TestSubmit_StoreUnavailable(t *testing.T) {
	f := newFixture(t)
	f.store.SetUnavailable(true)

	_, err := f.svc.Submit(context.Background(), f.identity(t, "harikaappdevelopment@gmail.com"), leave.SubmitLeaveRequest{StartDate: "2024-01-20", Reason: "x"})
	assert.ErrorIs(t, err, record.ErrStoreUnavailable)
}
