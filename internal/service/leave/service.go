package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/service/view"
)

type LeaveServiceImpl struct {
	dailylog.DailyLogRepository
	directory           user.Directory
	notificationService notification.Service
	metrics             *metrics.Metrics
}

func NewLeaveService(
	logRepository dailylog.DailyLogRepository,
	directory user.Directory,
	notificationService notification.Service,
	m *metrics.Metrics,
) leave.LeaveService {
	return &LeaveServiceImpl{
		DailyLogRepository:  logRepository,
		directory:           directory,
		notificationService: notificationService,
		metrics:             m,
	}
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, actor user.Identity, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	if !actor.IsEmployee() {
		return leave.LeaveResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	logs, err := s.DailyLogRepository.List(ctx)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to list daily logs: %w", err)
	}

	if existing, ok := dailylog.Find(logs, dailylog.Key{EmployeeName: actor.Name, Date: req.StartDate}); ok {
		if existing.LeaveApplied {
			return leave.LeaveResponse{}, leave.ErrLeaveAlreadyRequested
		}
		if existing.HasCheckIn() {
			return leave.LeaveResponse{}, leave.ErrAttendanceOnStartDate
		}
	}

	log := dailylog.DailyLog{
		Date:             req.StartDate,
		EmployeeName:     actor.Name,
		Email:            actor.Email,
		Department:       actor.Department,
		LeaveApplied:     true,
		LeaveDates:       req.LeaveDates(),
		Reason:           req.Reason,
		LeaveStatus:      dailylog.LeaveStatusPending,
		TeamLeadApproval: dailylog.ApprovalPending,
		HRApproval:       dailylog.ApprovalPending,
		Status:           dailylog.StatusLeaveRequest,
	}

	if err := s.DailyLogRepository.Save(ctx, log); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to save leave request: %w", err)
	}

	s.metrics.Transition("leave", string(leave.StateSubmitted))
	slog.Info("leave request submitted", "employee", actor.Name, "date", log.Date, "leave_dates", log.LeaveDates)

	s.broadcast(ctx, emailsOf(s.directory.TeamLeadsOf(actor.Department)), notification.CreateNotificationRequest{
		Type:    notification.TypeLeaveSubmitted,
		Title:   "New leave request",
		Message: fmt.Sprintf("%s requested leave for %s", actor.Name, log.LeaveDates),
		Data:    leaveData(log),
	})

	return leave.NewLeaveResponse(log), nil
}

// Decide implements leave.LeaveService.
func (s *LeaveServiceImpl) Decide(ctx context.Context, actor user.Identity, req leave.DecisionRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	logs, err := s.DailyLogRepository.List(ctx)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to list daily logs: %w", err)
	}

	log, ok := dailylog.Find(logs, req.Key())
	if !ok || !log.LeaveApplied {
		return leave.LeaveResponse{}, leave.ErrLeaveRequestNotFound
	}

	if actor.IsTeamLead() && !actor.SameDepartment(log.Department) {
		return leave.LeaveResponse{}, user.ErrNotInDepartment
	}

	from := leave.StateOf(log)
	if from.IsTerminal() {
		return leave.LeaveResponse{}, leave.ErrInvalidTransition
	}
	next, err := leave.Transition(from, actor.Role, req.Decision)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	updated := leave.Apply(log, next)
	if err := s.DailyLogRepository.Save(ctx, updated); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to save leave decision: %w", err)
	}

	s.metrics.Transition("leave", string(next))
	slog.Info("leave request decided",
		"employee", updated.EmployeeName,
		"date", updated.Date,
		"by", actor.Email,
		"from", from,
		"to", next,
	)

	if next == leave.StateForwarded {
		s.broadcast(ctx, emailsOf(s.directory.ListByRole(user.RoleHR)), notification.CreateNotificationRequest{
			Type:    notification.TypeLeaveForwarded,
			Title:   "Leave request forwarded",
			Message: fmt.Sprintf("%s's leave for %s awaits HR approval", updated.EmployeeName, updated.LeaveDates),
			Data:    leaveData(updated),
		})
	}

	if email := s.employeeEmail(updated); email != "" {
		s.notify(ctx, notification.CreateNotificationRequest{
			RecipientEmail: email,
			Type:           notification.TypeLeaveDecided,
			Title:          "Leave request updated",
			Message:        fmt.Sprintf("Your leave for %s is now %s", updated.LeaveDates, updated.LeaveStatus),
			Data:           leaveData(updated),
		})
	}

	return leave.NewLeaveResponse(updated), nil
}

// employeeEmail falls back to the directory for rows written without an email.
func (s *LeaveServiceImpl) employeeEmail(log dailylog.DailyLog) string {
	if log.Email != "" {
		return log.Email
	}
	member, err := s.directory.FindMember(log.Department, log.EmployeeName)
	if err != nil {
		return ""
	}
	return member.Email
}

func (s *LeaveServiceImpl) notify(ctx context.Context, reqs ...notification.CreateNotificationRequest) {
	if s.notificationService == nil || len(reqs) == 0 {
		return
	}
	s.notificationService.Queue(ctx, reqs...)
}

func (s *LeaveServiceImpl) broadcast(ctx context.Context, recipients []string, req notification.CreateNotificationRequest) {
	if s.notificationService == nil || len(recipients) == 0 {
		return
	}
	s.notificationService.Broadcast(ctx, recipients, req)
}

func emailsOf(identities []user.Identity) []string {
	emails := make([]string, 0, len(identities))
	for _, i := range identities {
		emails = append(emails, i.Email)
	}
	return emails
}

func leaveData(log dailylog.DailyLog) map[string]interface{} {
	return map[string]interface{}{
		"employee_name": log.EmployeeName,
		"date":          log.Date,
		"leave_dates":   log.LeaveDates,
		"leave_status":  string(log.LeaveStatus),
	}
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, actor user.Identity) ([]leave.LeaveResponse, error) {
	if !actor.IsEmployee() {
		return nil, user.ErrInsufficientPermissions
	}

	logs, err := s.DailyLogRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily logs: %w", err)
	}

	mine := view.LeaveRecordsFor(logs, actor)
	dailylog.SortByDateDesc(mine)
	return leave.NewLeaveResponses(mine), nil
}

// ListPending implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPending(ctx context.Context, actor user.Identity) ([]leave.LeaveResponse, error) {
	if !actor.IsTeamLead() && !actor.IsHR() {
		return nil, user.ErrInsufficientPermissions
	}

	logs, err := s.DailyLogRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily logs: %w", err)
	}

	return leave.NewLeaveResponses(view.LeaveRecordsFor(logs, actor)), nil
}
