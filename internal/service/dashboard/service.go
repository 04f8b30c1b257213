package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/service/view"
)

// composer builds the dashboard body of one role from a snapshot.
type composer func(s *DashboardServiceImpl, actor user.Identity, snap view.Snapshot) interface{}

var composers = map[user.Role]composer{
	user.RoleEmployee: (*DashboardServiceImpl).employeeView,
	user.RoleTeamLead: (*DashboardServiceImpl).teamLeadView,
	user.RoleHR:       (*DashboardServiceImpl).hrView,
}

type DashboardServiceImpl struct {
	loader    *view.Loader
	directory user.Directory
	clock     clock.Clock
}

func NewDashboardService(loader *view.Loader, directory user.Directory, clk clock.Clock) dashboard.DashboardService {
	return &DashboardServiceImpl{
		loader:    loader,
		directory: directory,
		clock:     clk,
	}
}

// Get implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Get(ctx context.Context, actor user.Identity) (dashboard.Dashboard, error) {
	compose, ok := composers[actor.Role]
	if !ok {
		return dashboard.Dashboard{}, user.ErrInsufficientPermissions
	}

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return dashboard.Dashboard{}, err
	}

	return dashboard.Dashboard{Role: actor.Role, View: compose(s, actor, snap)}, nil
}

func (s *DashboardServiceImpl) employeeView(actor user.Identity, snap view.Snapshot) interface{} {
	tasks := view.TasksFor(snap.Tasks, actor).Assigned

	date := s.clock.Now().Format(dailylog.DateLayout)
	var today *dailylog.DailyLog
	if log, ok := dailylog.Find(snap.Logs, dailylog.Key{EmployeeName: actor.Name, Date: date}); ok {
		today = &log
	}

	leaves := view.LeaveRecordsFor(snap.Logs, actor)
	dailylog.SortByDateDesc(leaves)

	return dashboard.EmployeeDashboard{
		User:       user.NewIdentityResponse(actor),
		Tasks:      tasks,
		TaskStats:  task.StatsOf(tasks),
		Today:      attendance.NewTodayResponse(date, today),
		Attendance: view.AttendanceFor(snap.Logs, actor),
		Leaves:     leave.NewLeaveResponses(leaves),
	}
}

func (s *DashboardServiceImpl) teamLeadView(actor user.Identity, snap view.Snapshot) interface{} {
	list := view.TasksFor(snap.Tasks, actor)

	return dashboard.TeamLeadDashboard{
		User:             user.NewIdentityResponse(actor),
		InboundTasks:     list.Inbound,
		OutboundTasks:    list.Outbound,
		InboundStats:     task.StatsOf(list.Inbound),
		OutboundStats:    task.StatsOf(list.Outbound),
		PendingApprovals: leave.NewLeaveResponses(view.LeaveRecordsFor(snap.Logs, actor)),
		Team:             user.NewMemberResponses(s.directory.ListMembers(actor.Department)),
	}
}

func (s *DashboardServiceImpl) hrView(actor user.Identity, snap view.Snapshot) interface{} {
	tasks := view.TasksFor(snap.Tasks, actor).Assigned

	return dashboard.HRDashboard{
		User:             user.NewIdentityResponse(actor),
		AssignedTasks:    tasks,
		TaskStats:        task.StatsOf(tasks),
		PendingApprovals: leave.NewLeaveResponses(view.LeaveRecordsFor(snap.Logs, actor)),
		TeamLeads:        user.NewMemberResponses(s.directory.ListByRole(user.RoleTeamLead)),
		Analytics:        s.analytics(snap),
	}
}

// Analytics implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Analytics(ctx context.Context) (dashboard.Analytics, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return dashboard.Analytics{}, err
	}
	return s.analytics(snap), nil
}

var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

func (s *DashboardServiceImpl) analytics(snap view.Snapshot) dashboard.Analytics {
	stats := task.StatsOf(snap.Tasks)
	result := dashboard.Analytics{
		TotalEmployees: len(s.directory.ListByRole(user.RoleEmployee)),
		TotalTasks:     stats.Total,
		CompletedTasks: stats.Completed,
	}

	// Tasks per department
	byDept := map[string]*dashboard.DepartmentStat{}
	for _, t := range snap.Tasks {
		dept := t.Department
		if dept == "" {
			dept = "Unassigned"
		}
		stat, ok := byDept[dept]
		if !ok {
			stat = &dashboard.DepartmentStat{Department: dept}
			byDept[dept] = stat
		}
		stat.Tasks++
		if t.IsCompleted() {
			stat.Completed++
		}
	}
	result.Departments = make([]dashboard.DepartmentStat, 0, len(byDept))
	for _, stat := range byDept {
		result.Departments = append(result.Departments, *stat)
	}
	sort.Slice(result.Departments, func(i, j int) bool {
		return result.Departments[i].Department < result.Departments[j].Department
	})

	// Leave outcomes and check-ins per weekday
	checkIns := map[time.Weekday]int{}
	for _, l := range snap.Logs {
		switch leave.StateOf(l) {
		case leave.StateHRApproved:
			result.Leave.Approved++
		case leave.StateTeamLeadRejected, leave.StateHRRejected:
			result.Leave.Rejected++
		case leave.StateSubmitted, leave.StateForwarded:
			result.Leave.Pending++
		}

		if !l.HasCheckIn() {
			continue
		}
		day, err := time.Parse(dailylog.DateLayout, l.Date)
		if err != nil {
			continue
		}
		checkIns[day.Weekday()]++
	}

	result.CheckInsByWeekday = make([]dashboard.WeekdayStat, 0, len(weekdays))
	for _, d := range weekdays {
		result.CheckInsByWeekday = append(result.CheckInsByWeekday, dashboard.WeekdayStat{
			Day:      d.String()[:3],
			CheckIns: checkIns[d],
		})
	}

	return result
}

// TeamMembers implements dashboard.DashboardService. Team leads only see their
// own department; HR may pick any, or every employee when none is given.
func (s *DashboardServiceImpl) TeamMembers(ctx context.Context, actor user.Identity, department string) ([]user.MemberResponse, error) {
	switch actor.Role {
	case user.RoleTeamLead:
		if department != "" && !actor.SameDepartment(department) {
			return nil, user.ErrNotInDepartment
		}
		return user.NewMemberResponses(s.directory.ListMembers(actor.Department)), nil
	case user.RoleHR:
		if department == "" {
			return user.NewMemberResponses(s.directory.ListByRole(user.RoleEmployee)), nil
		}
		return user.NewMemberResponses(s.directory.ListMembers(department)), nil
	}
	return nil, fmt.Errorf("team members: %w", user.ErrInsufficientPermissions)
}
