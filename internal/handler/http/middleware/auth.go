package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired accepts only verified access tokens. It runs after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if tokenType != jwt.TokenTypeAccess || !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hfn)
}
