package attendance

import "github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"

// TodayResponse describes the caller's attendance for the current day.
type TodayResponse struct {
	Date       string             `json:"date"`
	CheckedIn  bool               `json:"checked_in"`
	CheckedOut bool               `json:"checked_out"`
	Log        *dailylog.DailyLog `json:"log,omitempty"`
}

func NewTodayResponse(date string, log *dailylog.DailyLog) TodayResponse {
	resp := TodayResponse{Date: date, Log: log}
	if log != nil {
		resp.CheckedIn = log.HasCheckIn()
		resp.CheckedOut = log.HasCheckOut()
	}
	return resp
}
