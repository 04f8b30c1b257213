package http

import (
	"net/http"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns the role-specific landing view
	GetDashboard(w http.ResponseWriter, r *http.Request)
	// GetAnalytics returns organisation-wide counters
	GetAnalytics(w http.ResponseWriter, r *http.Request)
	// GetTeamMembers lists employees of a department
	GetTeamMembers(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.Get(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetAnalytics handles GET /dashboard/analytics
func (h *dashboardHandlerImpl) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.Analytics(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTeamMembers handles GET /team/members?department=
func (h *dashboardHandlerImpl) GetTeamMembers(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	department := r.URL.Query().Get("department") // team leads are pinned to their own

	result, err := h.dashboardService.TeamMembers(r.Context(), identity, department)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
