package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type identityKey struct{}

// WithIdentity stores the caller's identity on the context.
func WithIdentity(ctx context.Context, identity user.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity resolved by LoadIdentity.
func IdentityFromContext(ctx context.Context) (user.Identity, error) {
	identity, ok := ctx.Value(identityKey{}).(user.Identity)
	if !ok {
		return user.Identity{}, user.ErrIdentityMissing
	}
	return identity, nil
}

// LoadIdentity resolves the token's email against the directory, so role and
// department always come from the directory rather than from the token.
func LoadIdentity(directory user.Directory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			email, ok := claims["email"].(string)
			if !ok || email == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			identity, err := directory.GetByEmail(email)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}
