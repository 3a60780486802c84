package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/nexus-admin/nexus/internal/accesscontrol"
	"github.com/nexus-admin/nexus/internal/app"
	"github.com/nexus-admin/nexus/internal/auth"
	"github.com/nexus-admin/nexus/internal/blog"
	"github.com/nexus-admin/nexus/internal/dashboard"
	"github.com/nexus-admin/nexus/internal/observability"
	"github.com/nexus-admin/nexus/internal/permissions"
	"github.com/nexus-admin/nexus/internal/platform/cache"
	"github.com/nexus-admin/nexus/internal/platform/db"
	"github.com/nexus-admin/nexus/internal/roles"
	"github.com/nexus-admin/nexus/internal/shared"
	"github.com/nexus-admin/nexus/internal/store"
	"github.com/nexus-admin/nexus/internal/users"
	"github.com/nexus-admin/nexus/jobs"
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

	var (
		permRepo permissions.Repository
		roleRepo roles.Repository
		userRepo users.Repository
		postRepo blog.Repository
		acRepo   accesscontrol.Repository
	)
	switch cfg.StoreDriver {
	case app.StoreDriverPostgres:
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		permRepo = permissions.NewPGRepository(pool)
		roleRepo = roles.NewPGRepository(pool)
		userRepo = users.NewPGRepository(pool)
		postRepo = blog.NewPGRepository(pool)
		acRepo = accesscontrol.NewPGRepository(pool)
	default:
		st := store.New()
		store.Seed(st)
		permRepo = st.Permissions()
		roleRepo = st.Roles()
		userRepo = st.Users()
		postRepo = st.Posts()
		acRepo = st.AccessControl()
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis connect", slog.Any("error", err))
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, cfg.SessionCookie, cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())

	permService := permissions.NewService(permRepo)
	var permChecker roles.PermissionChecker
	if cfg.StrictReferences {
		permChecker = permService
	}
	roleService := roles.NewService(roleRepo, permChecker)
	var roleChecker users.RoleChecker
	if cfg.StrictReferences {
		roleChecker = roleService
	}
	userService := users.NewService(userRepo, roleChecker)
	blogService := blog.NewService(postRepo)
	authService := auth.NewService(userRepo)

	acService := accesscontrol.NewService(
		acRepo,
		accesscontrol.UserRolesFunc(func(ctx context.Context, userID string) (string, error) {
			u, err := userService.Get(ctx, userID)
			if err != nil {
				return "", err
			}
			return u.RoleID, nil
		}),
		accesscontrol.RoleMembershipFunc(roleService.PermissionKeys),
		logger,
	)
	guard := accesscontrol.Middleware{Source: acService, Logger: logger, Enforce: cfg.AuthzEnforced}

	dashboardService := dashboard.NewService(userService, roleService, permService, blogService)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SessionManager:     sessionManager,
		AuthHandler:        auth.NewHandler(logger, authService, sessionManager),
		UsersHandler:       users.NewHandler(logger, userService, guard),
		RolesHandler:       roles.NewHandler(logger, roleService, acService, guard),
		PermissionsHandler: permissions.NewHandler(logger, permService, acService, guard),
		BlogHandler:        blog.NewHandler(logger, blogService, guard),
		DashboardHandler:   dashboard.NewHandler(logger, dashboardService, guard),
		JobHandler:         jobs.NewHandler(inspector, logger),
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", cfg.AppAddr), slog.String("store", cfg.StoreDriver))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", slog.Any("error", err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server run", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
