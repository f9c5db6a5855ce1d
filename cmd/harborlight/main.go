package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/harborlight/harborlight/internal/announcements"
	"github.com/harborlight/harborlight/internal/app"
	"github.com/harborlight/harborlight/internal/auth"
	"github.com/harborlight/harborlight/internal/documents"
	"github.com/harborlight/harborlight/internal/finance"
	"github.com/harborlight/harborlight/internal/observability"
	"github.com/harborlight/harborlight/internal/platform/db"
	"github.com/harborlight/harborlight/internal/projects"
	"github.com/harborlight/harborlight/internal/reports"
	"github.com/harborlight/harborlight/internal/shared"
	"github.com/harborlight/harborlight/internal/tasks"
	"github.com/harborlight/harborlight/internal/users"
	"github.com/harborlight/harborlight/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "harborlight_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	auditLogger := shared.NewAuditLogger(dbpool)
	metrics := observability.NewMetrics()

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	actorProvider := auth.NewActorProvider(redisClient, authRepo, cfg.ActorTTL)
	enforcer := auth.Enforcer{Provider: actorProvider, Logger: logger}
	authHandler := auth.NewHandler(logger, authService, actorProvider, sessionManager, csrfManager)

	usersRepo := users.NewRepository(dbpool)
	usersService := users.NewService(usersRepo, actorProvider, auditLogger, logger)
	usersHandler := users.NewHandler(logger, usersService, enforcer)

	projectsRepo := projects.NewRepository(dbpool)
	projectsService := projects.NewService(projectsRepo)
	projectsHandler := projects.NewHandler(logger, projectsService, enforcer)

	tasksRepo := tasks.NewRepository(dbpool)
	tasksService := tasks.NewService(tasksRepo)
	tasksHandler := tasks.NewHandler(logger, tasksService, enforcer)

	documentsRepo := documents.NewRepository(dbpool)
	documentsService := documents.NewService(documentsRepo)
	documentsHandler := documents.NewHandler(logger, documentsService, enforcer)

	announcementsRepo := announcements.NewRepository(dbpool)
	announcementsService := announcements.NewService(announcementsRepo)
	announcementsMarks := announcements.NewReadMarks(redisClient)
	announcementsHandler := announcements.NewHandler(logger, announcementsService, announcementsMarks, enforcer)

	financeRepo := finance.NewRepository(dbpool)
	financeService := finance.NewService(financeRepo, auditLogger, logger)
	financeHandler := finance.NewHandler(logger, financeService, enforcer)

	reportsRepo := reports.NewRepository(dbpool)
	reportsService := reports.NewService(reportsRepo)
	reportsHandler := reports.NewHandler(logger, reportsService, enforcer)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:               logger,
		Config:               cfg,
		SessionManager:       sessionManager,
		CSRFManager:          csrfManager,
		Enforcer:             enforcer,
		AuthHandler:          authHandler,
		UsersHandler:         usersHandler,
		ProjectsHandler:      projectsHandler,
		TasksHandler:         tasksHandler,
		DocumentsHandler:     documentsHandler,
		AnnouncementsHandler: announcementsHandler,
		FinanceHandler:       financeHandler,
		ReportsHandler:       reportsHandler,
		JobHandler:           jobHandler,
		Metrics:              metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
