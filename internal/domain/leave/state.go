package leave

import (
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
)

// State is the approval position of a leave request, derived from its daily log.
type State string

const (
	StateNone             State = "None"
	StateSubmitted        State = "Submitted"
	StateForwarded        State = "Forwarded"
	StateTeamLeadRejected State = "TeamLeadRejected"
	StateHRApproved       State = "HRApproved"
	StateHRRejected       State = "HRRejected"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// IsTerminal reports whether no further transition exists from s.
func (s State) IsTerminal() bool {
	switch s {
	case StateTeamLeadRejected, StateHRApproved, StateHRRejected:
		return true
	}
	return false
}

// StateOf reads the authoritative state from the approval columns.
// HR outcome beats the team lead outcome, which beats the leave status label.
func StateOf(log dailylog.DailyLog) State {
	if !log.LeaveApplied {
		return StateNone
	}

	switch log.HRApproval {
	case dailylog.ApprovalApproved:
		return StateHRApproved
	case dailylog.ApprovalRejected:
		return StateHRRejected
	}

	switch log.TeamLeadApproval {
	case dailylog.ApprovalRejected:
		return StateTeamLeadRejected
	case dailylog.ApprovalApproved:
		return StateForwarded
	}

	switch log.LeaveStatus {
	case dailylog.LeaveStatusForwardedToHR:
		return StateForwarded
	case dailylog.LeaveStatusRejected:
		return StateTeamLeadRejected
	case dailylog.LeaveStatusApproved:
		return StateHRApproved
	}

	return StateSubmitted
}

type transitionKey struct {
	from     State
	role     user.Role
	decision Decision
}

var transitions = map[transitionKey]State{
	{StateSubmitted, user.RoleTeamLead, DecisionApprove}: StateForwarded,
	{StateSubmitted, user.RoleTeamLead, DecisionReject}:  StateTeamLeadRejected,
	{StateForwarded, user.RoleHR, DecisionApprove}:       StateHRApproved,
	{StateForwarded, user.RoleHR, DecisionReject}:        StateHRRejected,
}

// actingRole is the only role allowed to decide a request sitting in a state.
var actingRole = map[State]user.Role{
	StateSubmitted: user.RoleTeamLead,
	StateForwarded: user.RoleHR,
}

// Transition returns the state reached when role takes decision on a request in from.
func Transition(from State, role user.Role, decision Decision) (State, error) {
	if decision != DecisionApprove && decision != DecisionReject {
		return from, ErrUnknownDecision
	}

	if next, ok := transitions[transitionKey{from, role, decision}]; ok {
		return next, nil
	}

	if from == StateNone {
		return from, ErrLeaveRequestNotFound
	}
	if expected, ok := actingRole[from]; ok && expected != role {
		return from, ErrForbiddenTransition
	}
	if role != user.RoleTeamLead && role != user.RoleHR {
		return from, ErrForbiddenTransition
	}
	return from, ErrInvalidTransition
}

// Apply writes the columns that represent state next onto log.
func Apply(log dailylog.DailyLog, next State) dailylog.DailyLog {
	switch next {
	case StateForwarded:
		log.TeamLeadApproval = dailylog.ApprovalApproved
		log.LeaveStatus = dailylog.LeaveStatusForwardedToHR
		log.Status = dailylog.StatusPendingHRApproval
	case StateTeamLeadRejected:
		log.TeamLeadApproval = dailylog.ApprovalRejected
		log.LeaveStatus = dailylog.LeaveStatusRejected
		log.Status = dailylog.StatusRejected
	case StateHRApproved:
		log.HRApproval = dailylog.ApprovalApproved
		log.LeaveStatus = dailylog.LeaveStatusApproved
		log.Status = dailylog.StatusApproved
	case StateHRRejected:
		log.HRApproval = dailylog.ApprovalRejected
		log.LeaveStatus = dailylog.LeaveStatusRejected
		log.Status = dailylog.StatusRejected
	}
	return log
}
