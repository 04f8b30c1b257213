package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/config"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/dailylog"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/task"
	appHTTP "github.com/cmlabs-hris/teamdesk-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/ratelimit"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/repository/directory"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/repository/sheet"
	attendanceService "github.com/cmlabs-hris/teamdesk-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/teamdesk-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/teamdesk-backend-go/internal/service/dashboard"
	leaveService "github.com/cmlabs-hris/teamdesk-backend-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/teamdesk-backend-go/internal/service/notification"
	recordService "github.com/cmlabs-hris/teamdesk-backend-go/internal/service/record"
	taskService "github.com/cmlabs-hris/teamdesk-backend-go/internal/service/task"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/service/view"
	"golang.org/x/crypto/bcrypt"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	logRepo, taskRepo, closeStore, err := openStore(ctx, cfg, m)
	if err != nil {
		return err
	}
	defer closeStore()

	dir, err := directory.Load(cfg.App.IdentityFile, bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to load identity directory: %w", err)
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("failed to build jwt service: %w", err)
	}

	hub := sse.NewHub()
	m.WatchStreams(hub.TotalSubscribers)
	notifService := notificationService.NewNotificationService(hub, notificationService.Config{})
	defer notifService.Stop()

	clk := clock.InLocation(cfg.Location())
	loader := view.NewLoader(logRepo, taskRepo)

	authService := serviceAuth.NewAuthService(dir, JWTService, m)
	attendanceSvc := attendanceService.NewAttendanceService(logRepo, clk, m)
	leaveSvc := leaveService.NewLeaveService(logRepo, dir, notifService, m)
	taskSvc := taskService.NewTaskService(taskRepo, dir, clk, notifService, m)
	dashboardSvc := dashboardService.NewDashboardService(loader, dir, clk)
	recordSvc := recordService.NewRecordService(logRepo, loader)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Env:            cfg.App.Env,
		Version:        version,
		AllowedOrigins: []string{cfg.App.FrontendURL},
		LogLevel:       cfg.SlogLevel(),
		JWTService:     JWTService,
		Directory:      dir,
		LoginLimiter:   newLoginLimiter(cfg),
		Metrics:        m,
	}, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authService),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Task:         appHTTP.NewTaskHandler(taskSvc),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
		Record:       appHTTP.NewRecordHandler(recordSvc),
		Notification: appHTTP.NewNotificationHandler(notifService, JWTService),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "store", cfg.Store.Backend, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down", "open_streams", hub.TotalSubscribers())
	// Event streams never finish on their own, close them before draining.
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// openStore builds the repositories of the configured backend.
func openStore(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (dailylog.DailyLogRepository, task.TaskRepository, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendSheet:
		client := sheet.NewClient(ctx, sheet.Config{
			LogsURL:  cfg.Store.LogsURL,
			TasksURL: cfg.Store.TasksURL,
			APIToken: cfg.Store.APIToken,
			Timeout:  cfg.Store.Timeout,
		}, m)
		return sheet.NewDailyLogRepository(client), sheet.NewTaskRepository(client), func() {}, nil

	case config.BackendPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return postgresql.NewDailyLogRepository(db, m), postgresql.NewTaskRepository(db, m), db.Close, nil

	default:
		slog.Warn("using in-memory record store, data is lost on restart")
		store := memory.NewStore()
		return memory.NewDailyLogRepository(store), memory.NewTaskRepository(store), func() {}, nil
	}
}

// newLoginLimiter shares the login budget through Redis when one is configured.
func newLoginLimiter(cfg *config.Config) ratelimit.Limiter {
	if cfg.Redis.Addr == "" {
		return ratelimit.NewTokenBucket(cfg.RateLimit.PerMinute, cfg.RateLimit.PerMinute)
	}
	slog.Info("login rate limit backed by redis", "addr", cfg.Redis.Addr)
	return ratelimit.NewRedisWindow(ratelimit.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password), cfg.RateLimit.PerMinute)
}
