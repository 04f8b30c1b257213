package leave

import (
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date,omitempty" validate:"omitempty,date"`
	Reason    string `json:"reason" validate:"notblank,max=500"`
}

func (r *SubmitLeaveRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.EndDate != "" && r.EndDate < r.StartDate {
		return validator.ValidationErrors{{Field: "end_date", Message: ErrEndBeforeStart.Error()}}
	}
	return nil
}

// LeaveDates renders the span stored in the Leave Dates column.
func (r *SubmitLeaveRequest) LeaveDates() string {
	if r.EndDate == "" || r.EndDate == r.StartDate {
		return r.StartDate
	}
	return r.StartDate + " to " + r.EndDate
}

// DecisionRequest identifies a leave request by its soft key.
type DecisionRequest struct {
	EmployeeName string   `json:"employee_name" validate:"notblank"`
	Date         string   `json:"date" validate:"required,date"`
	Decision     Decision `json:"decision" validate:"required,oneof=approve reject"`
}

func (r *DecisionRequest) Validate() error {
	return validator.Struct(r)
}

func (r *DecisionRequest) Key() dailylog.Key {
	return dailylog.Key{EmployeeName: r.EmployeeName, Date: r.Date}
}

// LeaveResponse is a leave request with its derived state.
type LeaveResponse struct {
	dailylog.DailyLog
	State State `json:"state"`
}

func NewLeaveResponse(log dailylog.DailyLog) LeaveResponse {
	return LeaveResponse{DailyLog: log, State: StateOf(log)}
}

func NewLeaveResponses(logs []dailylog.DailyLog) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, NewLeaveResponse(l))
	}
	return out
}
