package leave

import "errors"

var (
	ErrLeaveRequestNotFound  = errors.New("leave request not found")
	ErrLeaveAlreadyRequested = errors.New("a leave request already exists for this date")
	ErrAttendanceOnStartDate = errors.New("attendance already recorded on the leave start date")
	ErrInvalidTransition     = errors.New("leave request is not awaiting this decision")
	ErrForbiddenTransition   = errors.New("your role cannot decide this leave request")
	ErrUnknownDecision       = errors.New("decision must be approve or reject")
	ErrEndBeforeStart        = errors.New("end_date must not be before start_date")
)
