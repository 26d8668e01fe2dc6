package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/cache"
	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/database"
	"github.com/justsurfingit/job-board/internal/events"
	"github.com/justsurfingit/job-board/internal/handlers"
	"github.com/justsurfingit/job-board/internal/logger"
	"github.com/justsurfingit/job-board/internal/ratelimit"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database Connection
	db, err := database.Connect(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("database unavailable")
	}

	// 3. Cache and throttling, Redis when configured
	var (
		store        cache.Cache       = cache.NewMemory()
		throttle     ratelimit.Limiter = ratelimit.NewMemory(cfg.ThrottleLimit, cfg.ThrottleWindow)
		authThrottle ratelimit.Limiter = ratelimit.NewMemory(cfg.AuthThrottleLimit, cfg.AuthThrottleWindow)
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logrus.WithError(err).Fatal("invalid REDIS_URL")
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logrus.WithError(err).Warn("redis unreachable, using in-memory cache and throttling")
		} else {
			store = cache.NewRedis(rdb, "jobboard:cache")
			throttle = ratelimit.NewRedis(rdb, cfg.ThrottleLimit, cfg.ThrottleWindow, "jobboard:throttle")
			authThrottle = ratelimit.NewRedis(rdb, cfg.AuthThrottleLimit, cfg.AuthThrottleWindow, "jobboard:auth-throttle")
			logrus.Info("redis connected")
		}
	}

	// 4. Event publisher
	var publisher events.Publisher = events.Noop{}
	if cfg.RabbitMQURL != "" {
		mq, err := events.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logrus.WithError(err).Warn("rabbitmq unreachable, domain events disabled")
		} else {
			defer mq.Close()
			publisher = mq
		}
	}

	// 5. Initialize Core Services (Dependencies)
	llmService, err := services.NewLLMService(ctx, cfg.GeminiKey, cfg.GeminiModel)
	if err != nil {
		logrus.WithError(err).Fatal("llm client")
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	svc := handlers.Services{
		Companies:  services.NewCompanyService(db, publisher, store, cfg.CompaniesCacheTTL),
		Vacancies:  services.NewVacancyService(db, publisher, store),
		Auth:       services.NewAuthService(db, publisher, tokens, cfg.ConfirmationCodeTTL),
		Responses:  services.NewResponseService(db, publisher),
		Reviews:    services.NewReviewService(db, publisher),
		Profiles:   services.NewProfileService(db),
		References: services.NewReferenceService(db),
		LLM:        llmService,
		Matcher:    services.NewMatcherService(db),
	}

	// 6. Background purge of unconfirmed accounts
	services.NewRegistrationSweeper(db, publisher, cfg.SweepInterval, cfg.StaleRegistrationAge).Start(ctx)

	// 7. Setup Router & Routes
	r, err := handlers.NewRouter(handlers.RouterConfig{
		DB:               db,
		Tokens:           tokens,
		Throttle:         throttle,
		AuthThrottle:     authThrottle,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	}, svc)
	if err != nil {
		logrus.WithError(err).Fatal("router setup")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}
	go func() {
		logrus.WithField("port", cfg.HTTPPort).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed to start")
		}
	}()

	// 8. Graceful shutdown
	<-ctx.Done()
	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("forced shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
