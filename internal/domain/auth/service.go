package auth

import (
	"context"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
)

type AuthService interface {
	// Authenticate returns the stored identity iff email and password match exactly.
	Authenticate(ctx context.Context, email, password string) (user.Identity, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	IssueSSEToken(ctx context.Context, actor user.Identity) (SSETokenResponse, error)
}
