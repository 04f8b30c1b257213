package middleware

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/ratelimit"
)

// RateLimit rejects requests once the client's address runs out of budget.
// Limiter errors fail open so a limiter outage never locks users out.
func RateLimit(limiter ratelimit.Limiter, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := scope + ":" + clientIP(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				slog.Warn("rate limiter unavailable", "scope", scope, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				response.HandleError(w, auth.ErrTooManyAttempts)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP relies on chi's RealIP having already rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
