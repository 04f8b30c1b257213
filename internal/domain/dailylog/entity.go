package dailylog

import (
	"sort"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/record"
)

// Wire column names of the daily log table.
const (
	ColDate             = "Date"
	ColEmployeeName     = "Employee Name"
	ColEmail            = "Email"
	ColDepartment       = "Department"
	ColCheckIn          = "Check-In"
	ColCheckOut         = "Check-Out"
	ColTotalHours       = "Total Hours"
	ColLeaveApplied     = "Leave Applied?"
	ColLeaveDates       = "Leave Dates"
	ColReason           = "Reason"
	ColLeaveStatus      = "Leave Status"
	ColTeamLeadApproval = "Team Lead Approval"
	ColHRApproval       = "HR Approval"
	ColStatus           = "Status"
)

// Columns lists the wire columns in sheet order.
var Columns = []string{
	ColDate, ColEmployeeName, ColEmail, ColDepartment, ColCheckIn, ColCheckOut, ColTotalHours,
	ColLeaveApplied, ColLeaveDates, ColReason, ColLeaveStatus, ColTeamLeadApproval, ColHRApproval, ColStatus,
}

type Approval string

const (
	ApprovalNone     Approval = ""
	ApprovalPending  Approval = "Pending"
	ApprovalApproved Approval = "Approved"
	ApprovalRejected Approval = "Rejected"
)

type LeaveStatus string

const (
	LeaveStatusNone          LeaveStatus = ""
	LeaveStatusPending       LeaveStatus = "Pending"
	LeaveStatusApproved      LeaveStatus = "Approved"
	LeaveStatusRejected      LeaveStatus = "Rejected"
	LeaveStatusForwardedToHR LeaveStatus = "Forwarded to HR"
)

type Status string

const (
	StatusCheckedIn         Status = "Checked In"
	StatusCheckedOut        Status = "Checked Out"
	StatusLeaveRequest      Status = "Leave Request"
	StatusPendingHRApproval Status = "Pending HR Approval"
	StatusApproved          Status = "Approved"
	StatusRejected          Status = "Rejected"
)

// DailyLog is one employee-day: attendance and any leave request filed against that date.
type DailyLog struct {
	Date             string      `json:"date"`
	EmployeeName     string      `json:"employee_name"`
	Email            string      `json:"email"`
	Department       string      `json:"department"`
	CheckIn          string      `json:"check_in,omitempty"`
	CheckOut         string      `json:"check_out,omitempty"`
	TotalHours       string      `json:"total_hours,omitempty"`
	LeaveApplied     bool        `json:"leave_applied"`
	LeaveDates       string      `json:"leave_dates,omitempty"`
	Reason           string      `json:"reason,omitempty"`
	LeaveStatus      LeaveStatus `json:"leave_status,omitempty"`
	TeamLeadApproval Approval    `json:"team_lead_approval,omitempty"`
	HRApproval       Approval    `json:"hr_approval,omitempty"`
	Status           Status      `json:"status"`
}

// Key is the soft identity of a daily log.
type Key struct {
	EmployeeName string
	Date         string
}

func (d DailyLog) Key() Key {
	return Key{EmployeeName: d.EmployeeName, Date: d.Date}
}

func (d DailyLog) HasCheckIn() bool {
	return d.CheckIn != ""
}

func (d DailyLog) HasCheckOut() bool {
	return d.CheckOut != ""
}

// Row renders the log with wire column names.
func (d DailyLog) Row() record.Row {
	return record.Row{
		ColDate:             d.Date,
		ColEmployeeName:     d.EmployeeName,
		ColEmail:            d.Email,
		ColDepartment:       d.Department,
		ColCheckIn:          d.CheckIn,
		ColCheckOut:         d.CheckOut,
		ColTotalHours:       d.TotalHours,
		ColLeaveApplied:     record.FormatBool(d.LeaveApplied),
		ColLeaveDates:       d.LeaveDates,
		ColReason:           d.Reason,
		ColLeaveStatus:      string(d.LeaveStatus),
		ColTeamLeadApproval: string(d.TeamLeadApproval),
		ColHRApproval:       string(d.HRApproval),
		ColStatus:           string(d.Status),
	}
}

// FromRow parses a wire row. Unknown columns are ignored and missing ones stay empty.
func FromRow(r record.Row) DailyLog {
	return DailyLog{
		Date:             r.Get(ColDate),
		EmployeeName:     r.Get(ColEmployeeName),
		Email:            r.Get(ColEmail),
		Department:       r.Get(ColDepartment),
		CheckIn:          r.Get(ColCheckIn),
		CheckOut:         r.Get(ColCheckOut),
		TotalHours:       r.Get(ColTotalHours),
		LeaveApplied:     record.ParseBool(r.Get(ColLeaveApplied)),
		LeaveDates:       r.Get(ColLeaveDates),
		Reason:           r.Get(ColReason),
		LeaveStatus:      LeaveStatus(r.Get(ColLeaveStatus)),
		TeamLeadApproval: Approval(r.Get(ColTeamLeadApproval)),
		HRApproval:       Approval(r.Get(ColHRApproval)),
		Status:           Status(r.Get(ColStatus)),
	}
}

// Find returns the log stored under key.
func Find(logs []DailyLog, key Key) (DailyLog, bool) {
	for _, l := range logs {
		if l.Key() == key {
			return l, true
		}
	}
	return DailyLog{}, false
}

// SortByDateDesc orders logs newest first; ties keep their input order.
func SortByDateDesc(logs []DailyLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date > logs[j].Date
	})
}
