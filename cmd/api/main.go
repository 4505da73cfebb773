package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tutordesk/internal/attendance"
	"tutordesk/internal/auth"
	"tutordesk/internal/catalog"
	"tutordesk/internal/config"
	"tutordesk/internal/grades"
	"tutordesk/internal/httpapi"
	"tutordesk/internal/jobs"
	"tutordesk/internal/logging"
	"tutordesk/internal/mediastore"
	"tutordesk/internal/observability"
	"tutordesk/internal/payments"
	"tutordesk/internal/queue"
	"tutordesk/internal/roster"
	"tutordesk/internal/store"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("api failed: %v", err)
	}
}

func run(cfg config.App) error {
	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		return err
	}
	defer lg.Closer()

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "tutordesk-api")
	if err != nil {
		lg.Sugar.Warnw("sentry disabled", "err", err)
	} else {
		defer flushSentry()
	}

	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Migrate(db.Client); err != nil {
		return err
	}

	exec := store.NewExecutor(db.Client)
	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "")
	}

	students := roster.NewService(roster.NewRepository(exec), cfg.StudentCacheTTL, cfg.CacheMaxSize)
	pay := payments.NewService(payments.NewRepository(exec), students, cfg.BucketSize, cfg.PaymentCacheTTL, cfg.CacheMaxSize)
	att := attendance.NewService(attendance.NewRepository(exec), students, pay, cfg.BucketSize)
	cat := catalog.NewRepository(exec)
	gr := grades.NewRepository(exec)

	sessions := auth.NewSessions(redisClient.Client)
	authSvc := auth.NewService(students, sessions,
		auth.AdminCredentials{User: cfg.AdminUser, Password: cfg.AdminPassword},
		cfg.JWTIssuer, cfg.JWTSigningKey, cfg.AccessTTL, cfg.RefreshTTL)
	if cfg.AdminPassword == "" {
		lg.Sugar.Warn("ADMIN_PASSWORD not set, admin login disabled")
	}

	var media *mediastore.Client
	if cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		media = mediastore.New(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		lg.Sugar.Infow("media storage configured", "cloud", cfg.CloudinaryCloudName)
	} else {
		lg.Sugar.Info("media storage not configured, uploads will 503")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := jobs.New(ctx)
	runner.Every(time.Minute, "student_cache_sweep", func(context.Context) error {
		students.SweepCache()
		return nil
	})
	runner.Every(time.Minute, "payment_cache_sweep", func(context.Context) error {
		pay.SweepCache()
		return nil
	})

	server := &httpapi.Server{
		Log:             lg.Base,
		Auth:            authSvc,
		Students:        students,
		Attendance:      att,
		Payments:        pay,
		Catalog:         cat,
		Grades:          gr,
		Queue:           q,
		Media:           media,
		DB:              db,
		Redis:           redisClient,
		RateLimitPerMin: cfg.RateLimitPerMin,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Sugar.Infow("listening", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Base.Info("shutting down", zap.Duration("grace", 10*time.Second))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Sugar.Errorw("forced shutdown", "err", err)
	}

	lg.Base.Info("server exited")
	return nil
}
