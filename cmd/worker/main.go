package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/harborlight/harborlight/internal/announcements"
	"github.com/harborlight/harborlight/internal/app"
	"github.com/harborlight/harborlight/internal/observability"
	"github.com/harborlight/harborlight/internal/platform/db"
	"github.com/harborlight/harborlight/internal/tasks"
	"github.com/harborlight/harborlight/internal/users"
	"github.com/harborlight/harborlight/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	deps := jobs.Deps{
		Logger:        logger,
		Metrics:       observability.NewMetrics(),
		Mailer:        jobs.SMTPMailer{Addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort), From: cfg.SMTPFrom},
		Redis:         redisClient,
		Tasks:         tasks.NewRepository(pool),
		Users:         users.NewRepository(pool),
		Announcements: announcements.NewService(announcements.NewRepository(pool)),
	}

	sweepTask, err := jobs.NewSnapshotSweepTask(cfg.ActorTTL)
	if err != nil {
		logger.Error("build sweep task", slog.Any("error", err))
		os.Exit(1)
	}
	digestTask, err := jobs.NewWeeklyDigestTask(7 * 24 * time.Hour)
	if err != nil {
		logger.Error("build digest task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Deps:      deps,
		Cron: []jobs.CronRegistration{
			{Spec: "*/10 * * * *", Task: sweepTask, Options: []asynq.Option{asynq.MaxRetry(1)}},
			{Spec: "0 8 * * 1", Task: digestTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
