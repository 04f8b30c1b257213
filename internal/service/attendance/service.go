package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/service/view"
)

type AttendanceServiceImpl struct {
	dailylog.DailyLogRepository
	clock   clock.Clock
	metrics *metrics.Metrics
}

func NewAttendanceService(logRepository dailylog.DailyLogRepository, clk clock.Clock, m *metrics.Metrics) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		DailyLogRepository: logRepository,
		clock:              clk,
		metrics:            m,
	}
}

// today loads the caller's record for the business day of now, if any.
func (a *AttendanceServiceImpl) today(ctx context.Context, actor user.Identity, now time.Time) (string, *dailylog.DailyLog, error) {
	date := now.Format(dailylog.DateLayout)

	logs, err := a.DailyLogRepository.List(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to list daily logs: %w", err)
	}

	existing, ok := dailylog.Find(logs, dailylog.Key{EmployeeName: actor.Name, Date: date})
	if !ok {
		return date, nil, nil
	}
	return date, &existing, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, actor user.Identity) (dailylog.DailyLog, error) {
	if !actor.IsEmployee() {
		return dailylog.DailyLog{}, attendance.ErrNotAnEmployee
	}

	now := a.clock.Now()
	date, existing, err := a.today(ctx, actor, now)
	if err != nil {
		return dailylog.DailyLog{}, err
	}

	log := dailylog.DailyLog{Date: date, EmployeeName: actor.Name}
	if existing != nil {
		if existing.HasCheckIn() {
			return dailylog.DailyLog{}, attendance.ErrAlreadyCheckedIn
		}
		// A leave filed against today keeps its columns.
		log = *existing
	}

	log.Email = actor.Email
	log.Department = actor.Department
	log.CheckIn = now.Format(dailylog.ClockLayout)
	log.Status = dailylog.StatusCheckedIn

	if err := a.DailyLogRepository.Save(ctx, log); err != nil {
		return dailylog.DailyLog{}, fmt.Errorf("failed to save check-in: %w", err)
	}

	a.metrics.Transition("attendance", string(dailylog.StatusCheckedIn))
	slog.Info("employee checked in", "employee", actor.Name, "date", log.Date, "check_in", log.CheckIn)

	return log, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, actor user.Identity) (dailylog.DailyLog, error) {
	if !actor.IsEmployee() {
		return dailylog.DailyLog{}, attendance.ErrNotAnEmployee
	}

	now := a.clock.Now()
	_, existing, err := a.today(ctx, actor, now)
	if err != nil {
		return dailylog.DailyLog{}, err
	}
	if existing == nil || !existing.HasCheckIn() {
		return dailylog.DailyLog{}, attendance.ErrNotCheckedIn
	}
	if existing.HasCheckOut() {
		return dailylog.DailyLog{}, attendance.ErrAlreadyCheckedOut
	}

	log := *existing
	log.CheckOut = now.Format(dailylog.ClockLayout)

	hours, err := dailylog.TotalHours(log.CheckIn, log.CheckOut)
	if err != nil {
		return dailylog.DailyLog{}, fmt.Errorf("failed to compute total hours: %w", err)
	}
	log.TotalHours = hours
	log.Status = dailylog.StatusCheckedOut

	if err := a.DailyLogRepository.Save(ctx, log); err != nil {
		return dailylog.DailyLog{}, fmt.Errorf("failed to save check-out: %w", err)
	}

	a.metrics.Transition("attendance", string(dailylog.StatusCheckedOut))
	slog.Info("employee checked out", "employee", actor.Name, "date", log.Date, "total_hours", log.TotalHours)

	return log, nil
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context, actor user.Identity) (attendance.TodayResponse, error) {
	date, existing, err := a.today(ctx, actor, a.clock.Now())
	if err != nil {
		return attendance.TodayResponse{}, err
	}
	return attendance.NewTodayResponse(date, existing), nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, actor user.Identity) ([]dailylog.DailyLog, error) {
	logs, err := a.DailyLogRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily logs: %w", err)
	}
	return view.AttendanceFor(logs, actor), nil
}
