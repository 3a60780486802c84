package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/nexus-admin/nexus/internal/app"
	"github.com/nexus-admin/nexus/internal/blog"
	jobmetrics "github.com/nexus-admin/nexus/internal/jobs"
	"github.com/nexus-admin/nexus/internal/permissions"
	"github.com/nexus-admin/nexus/internal/platform/db"
	"github.com/nexus-admin/nexus/internal/roles"
	"github.com/nexus-admin/nexus/internal/users"
	"github.com/nexus-admin/nexus/jobs"
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
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	scanner := jobs.NewIntegrityScanner(jobs.IntegritySources{
		Users:       users.NewPGRepository(pool),
		Roles:       roles.NewPGRepository(pool),
		Permissions: permissions.NewPGRepository(pool),
		Posts:       blog.NewPGRepository(pool),
	}, logger, jobmetrics.NewMetrics(nil))

	scanTask, err := jobs.NewIntegrityScanTask(jobs.IntegrityScanPayload{ReportOnly: true})
	if err != nil {
		logger.Error("build scan task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeIntegrityScan, Handler: scanner.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 3 * * *", Task: scanTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
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
