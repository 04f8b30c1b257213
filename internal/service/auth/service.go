package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/metrics"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	directory user.Directory
	jwt.Service
	metrics *metrics.Metrics
}

func NewAuthService(directory user.Directory, jwtService jwt.Service, m *metrics.Metrics) auth.AuthService {
	return &AuthServiceImpl{
		directory: directory,
		Service:   jwtService,
		metrics:   m,
	}
}

// Authenticate implements auth.AuthService.
func (a *AuthServiceImpl) Authenticate(ctx context.Context, email, password string) (user.Identity, error) {
	identity, err := a.directory.GetByEmail(email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.Identity{}, auth.ErrInvalidCredentials
		}
		return user.Identity{}, fmt.Errorf("failed to get identity by email: %w", err)
	}

	if len(password) > user.MaxPasswordBytes {
		return user.Identity{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return user.Identity{}, auth.ErrInvalidCredentials
	}

	return identity, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	identity, err := a.Authenticate(ctx, req.Email, req.Password)
	a.metrics.Login(err == nil)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	accessToken, expiresAt, err := a.Service.GenerateAccessToken(identity)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("user logged in", "email", identity.Email, "role", identity.Role)

	return auth.TokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt,
		User:                 user.NewIdentityResponse(identity),
	}, nil
}

// IssueSSEToken implements auth.AuthService.
func (a *AuthServiceImpl) IssueSSEToken(ctx context.Context, actor user.Identity) (auth.SSETokenResponse, error) {
	token, expiresIn, err := a.Service.GenerateSSEToken(actor.Email)
	if err != nil {
		return auth.SSETokenResponse{}, fmt.Errorf("failed to generate sse token: %w", err)
	}
	return auth.SSETokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}
