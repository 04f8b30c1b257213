package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	SSEToken(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// Call service
	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Warn("Login service error", "email", loginReq.Email, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User logged in successfully", "email", tokenResponse.User.Email, "role", tokenResponse.User.Role)
	response.SuccessWithMessage(w, "User logged in successfully", tokenResponse)
}

// Me returns the directory entry of the caller.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, user.NewIdentityResponse(identity))
}

// SSEToken issues a short-lived token for the event stream.
func (a *AuthHandlerImpl) SSEToken(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	token, err := a.authService.IssueSSEToken(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, token)
}
