package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/record"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/validator"
)

const storeUnavailableMessage = "Record store unavailable, please retry"

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A split that stopped part way reports how far it got
	var splitErr *task.SplitError
	if errors.As(err, &splitErr) {
		slog.Error("task split incomplete", "error", err)
		BadGateway(w, storeUnavailableMessage, map[string]string{
			"created": strconv.Itoa(len(splitErr.Created)),
			"total":   strconv.Itoa(splitErr.Total),
		})
		return
	}

	switch {
	// Record store
	case errors.Is(err, record.ErrStoreUnavailable):
		BadGateway(w, storeUnavailableMessage, nil)

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTooManyAttempts):
		TooManyRequests(w, "Too many login attempts, try again later")

	// User domain errors
	case errors.Is(err, user.ErrIdentityMissing):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrNotInDepartment):
		Forbidden(w, "Not a member of this department")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNotAnEmployee):
		Forbidden(w, "Only employees record attendance")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "Not checked in today")
	case errors.Is(err, dailylog.ErrInvalidClock):
		Conflict(w, "Stored check-in time is unreadable")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveAlreadyRequested):
		Conflict(w, "A leave request already exists for this date")
	case errors.Is(err, leave.ErrAttendanceOnStartDate):
		Conflict(w, "Attendance already recorded on the leave start date")
	case errors.Is(err, leave.ErrForbiddenTransition):
		Forbidden(w, "Your role cannot decide this leave request")
	case errors.Is(err, leave.ErrInvalidTransition):
		Conflict(w, "Leave request is not awaiting this decision")
	case errors.Is(err, leave.ErrUnknownDecision):
		BadRequest(w, "Decision must be approve or reject", nil)

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrInvalidProgress):
		ValidationError(w, map[string]string{"progress": err.Error()})
	case errors.Is(err, task.ErrNotTaskParticipant):
		Forbidden(w, "Not allowed to update this task")
	case errors.Is(err, task.ErrParentNotInbound):
		Forbidden(w, "Task was not assigned to you by HR")
	case errors.Is(err, task.ErrAssigneeNotTeamLead):
		ValidationError(w, map[string]string{"assignee_email": "assignee must be a team lead"})
	case errors.Is(err, task.ErrAssigneeNotInTeam):
		ValidationError(w, map[string]string{"assignee": err.Error()})

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
