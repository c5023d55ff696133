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

	"github.com/campdir/campdir/internal/app"
	"github.com/campdir/campdir/internal/auth"
	"github.com/campdir/campdir/internal/bootcamps"
	"github.com/campdir/campdir/internal/courses"
	"github.com/campdir/campdir/internal/platform/cache"
	"github.com/campdir/campdir/internal/platform/db"
	"github.com/campdir/campdir/internal/reviews"
	"github.com/campdir/campdir/internal/token"
	"github.com/campdir/campdir/internal/users"
	"github.com/campdir/campdir/jobs"
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	if err := os.MkdirAll(cfg.FileUploadPath, 0o755); err != nil {
		logger.Error("create upload dir", slog.Any("error", err))
		os.Exit(1)
	}

	mailQueue := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := mailQueue.Close(); err != nil {
			logger.Warn("queue close", slog.Any("error", err))
		}
	}()

	tokens := token.NewService(cfg.JWTSecret, cfg.JWTTTL)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, mailQueue)
	authMiddleware := auth.NewMiddleware(tokens, authRepo, logger)
	authHandler := auth.NewHandler(logger, authService, tokens, authMiddleware, cfg.JWTCookieExpire, cfg.IsProduction())

	bootcampRepo := bootcamps.NewRepository(pool)
	bootcampCache := bootcamps.NewCache(redisClient, 10*time.Minute)
	bootcampService := bootcamps.NewService(bootcampRepo, bootcampCache)
	bootcampHandler := bootcamps.NewHandler(logger, bootcampService, authMiddleware, cfg.MaxFileUpload, cfg.FileUploadPath)

	courseRepo := courses.NewRepository(pool)
	courseService := courses.NewService(courseRepo, bootcampService)
	courseHandler := courses.NewHandler(logger, courseService, authMiddleware)

	reviewRepo := reviews.NewRepository(pool)
	reviewService := reviews.NewService(reviewRepo, bootcampService)
	reviewHandler := reviews.NewHandler(logger, reviewService, authMiddleware)

	userRepo := users.NewRepository(pool)
	userService := users.NewService(userRepo)
	userHandler := users.NewHandler(logger, userService, authMiddleware)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		AuthHandler:     authHandler,
		BootcampHandler: bootcampHandler,
		CourseHandler:   courseHandler,
		ReviewHandler:   reviewHandler,
		UserHandler:     userHandler,
		JobHandler:      jobHandler,
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
