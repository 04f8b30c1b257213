package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/ratelimit"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries what the router needs besides the handlers.
type RouterConfig struct {
	Env            string
	Version        string
	AllowedOrigins []string
	LogLevel       slog.Level

	JWTService   jwt.Service
	Directory    user.Directory
	LoginLimiter ratelimit.Limiter
	Metrics      *metrics.Metrics
}

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth         AuthHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Task         TaskHandler
	Dashboard    DashboardHandler
	Record       RecordHandler
	Notification NotificationHandler
}

func NewRouter(cfg RouterConfig, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "teamdesk"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Instrument)
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.RateLimit(cfg.LoginLimiter, "login")).Post("/login", h.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(cfg.JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired)
				r.Use(middleware.LoadIdentity(cfg.Directory))

				r.Get("/me", h.Auth.Me)
				r.Post("/sse-token", h.Auth.SSEToken)
			})
		})

		// EventSource cannot send headers, the stream authenticates with ?jwt=
		r.Get("/events", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(cfg.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(middleware.LoadIdentity(cfg.Directory))

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", h.Dashboard.GetDashboard)
				r.With(middleware.RequirePermission(user.PermissionRecordsView)).Get("/analytics", h.Dashboard.GetAnalytics)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/check-in", h.Attendance.CheckIn)
				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/check-out", h.Attendance.CheckOut)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/today", h.Attendance.Today)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/my", h.Attendance.GetMyAttendance)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.CreateRequest)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/my", h.Leave.GetMyRequests)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Get("/pending", h.Leave.GetPendingRequests)
					r.Post("/decision", h.Leave.Decide)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionTaskView)).Get("/", h.Task.List)
				r.With(middleware.RequirePermission(user.PermissionTaskAssign)).Post("/", h.Task.Assign)
				r.With(middleware.RequirePermission(user.PermissionTaskSplit)).Post("/{id}/split", h.Task.Split)
				r.With(middleware.RequirePermission(user.PermissionTaskUpdate)).Patch("/{id}/progress", h.Task.UpdateProgress)
			})

			r.With(middleware.RequirePermission(user.PermissionTeamView)).Get("/team/members", h.Dashboard.GetTeamMembers)

			r.Route("/records", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionRecordsView))
				r.Get("/daily-logs", h.Record.DailyLogs)
				r.Get("/tasks", h.Record.Tasks)
				r.Get("/export", h.Record.Export)
			})
		})
	})
	return r
}
