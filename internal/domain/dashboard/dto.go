package dashboard

import (
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
)

// Dashboard is the role-specific landing view of the caller.
type Dashboard struct {
	Role user.Role   `json:"role"`
	View interface{} `json:"view"`
}

type EmployeeDashboard struct {
	User       user.IdentityResponse    `json:"user"`
	Tasks      []task.Task              `json:"tasks"`
	TaskStats  task.TaskStats           `json:"task_stats"`
	Today      attendance.TodayResponse `json:"today"`
	Attendance []dailylog.DailyLog      `json:"attendance"`
	Leaves     []leave.LeaveResponse    `json:"leaves"`
}

type TeamLeadDashboard struct {
	User             user.IdentityResponse `json:"user"`
	InboundTasks     []task.Task           `json:"inbound_tasks"`
	OutboundTasks    []task.Task           `json:"outbound_tasks"`
	InboundStats     task.TaskStats        `json:"inbound_stats"`
	OutboundStats    task.TaskStats        `json:"outbound_stats"`
	PendingApprovals []leave.LeaveResponse `json:"pending_approvals"`
	Team             []user.MemberResponse `json:"team"`
}

type HRDashboard struct {
	User             user.IdentityResponse `json:"user"`
	AssignedTasks    []task.Task           `json:"assigned_tasks"`
	TaskStats        task.TaskStats        `json:"task_stats"`
	PendingApprovals []leave.LeaveResponse `json:"pending_approvals"`
	TeamLeads        []user.MemberResponse `json:"team_leads"`
	Analytics        Analytics             `json:"analytics"`
}

type DepartmentStat struct {
	Department string `json:"department"`
	Tasks      int    `json:"tasks"`
	Completed  int    `json:"completed"`
}

type LeaveStat struct {
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

type WeekdayStat struct {
	Day      string `json:"day"`
	CheckIns int    `json:"check_ins"`
}

type Analytics struct {
	TotalEmployees    int              `json:"total_employees"`
	TotalTasks        int              `json:"total_tasks"`
	CompletedTasks    int              `json:"completed_tasks"`
	Departments       []DepartmentStat `json:"departments"`
	Leave             LeaveStat        `json:"leave"`
	CheckInsByWeekday []WeekdayStat    `json:"check_ins_by_weekday"`
}
