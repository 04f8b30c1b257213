package task

import "errors"

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrInvalidProgress     = errors.New("progress must be an integer between 0 and 100")
	ErrNotTaskParticipant  = errors.New("not allowed to update this task")
	ErrAssigneeNotTeamLead = errors.New("assignee is not a team lead")
	ErrAssigneeNotInTeam   = errors.New("assignee is not an employee of your department")
	ErrParentNotInbound    = errors.New("task was not assigned to you by HR")
)
