package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/chirper/backend/api/handler"
	"github.com/chirper/backend/internal/config"
	"github.com/chirper/backend/internal/infrastructure/monitor"
	"github.com/chirper/backend/internal/infrastructure/outbox"
	pgInfra "github.com/chirper/backend/internal/infrastructure/postgres"
	redisInfra "github.com/chirper/backend/internal/infrastructure/redis"
	"github.com/chirper/backend/internal/mailer"
	"github.com/chirper/backend/internal/middleware"
	"github.com/chirper/backend/internal/router"
	"github.com/chirper/backend/internal/security"
	"github.com/chirper/backend/internal/services"
	"github.com/chirper/backend/internal/services/lifecycle"
	"github.com/chirper/backend/internal/token"
	"github.com/chirper/backend/pkg/httpcontext"
	"github.com/chirper/backend/pkg/logger"
	"github.com/chirper/backend/repository/postgres"
	redisRepo "github.com/chirper/backend/repository/redis"
	authUC "github.com/chirper/backend/usecase/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	outboxStore, err := outbox.Open(cfg.Outbox.Path, "outbox")
	if err != nil {
		zapLogger.Fatal("failed to open mail outbox", zap.Error(err))
	}
	manager.Register("outbox", func(ctx context.Context) error {
		return outboxStore.Close()
	})

	mon := monitor.New(pool, redisClient, outboxStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	smtpSender, err := mailer.NewSMTPSender(mailer.Config{
		Host:         cfg.SMTP.Host,
		Port:         cfg.SMTP.Port,
		Username:     cfg.SMTP.Username,
		Password:     cfg.SMTP.Password,
		From:         cfg.SMTP.From,
		TemplatesDir: cfg.SMTP.TemplatesDir,
	}, zapLogger)
	if err != nil {
		zapLogger.Fatal("mailer setup failed", zap.Error(err))
	}

	mailProcessor := services.NewMailProcessor(
		outboxStore,
		smtpSender,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Outbox.SyncInterval,
			BatchSize:  cfg.Outbox.BatchSize,
			MaxRetries: cfg.Outbox.MaxRetry,
			Retention:  time.Duration(cfg.Outbox.RetentionHours) * time.Hour,
		},
	)
	mailProcessor.Start()
	manager.Register("mail_processor", func(ctx context.Context) error {
		mailProcessor.Stop(ctx)
		return nil
	})

	tokenProvider, err := token.NewProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	if err != nil {
		zapLogger.Fatal("token provider setup failed", zap.Error(err))
	}

	userRepo := postgres.NewUserRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.JWT.TTL)

	hasher := security.NewPasswordHasher(0)
	verifier := security.NewCredentialVerifier(userRepo, hasher, zapLogger)
	notifier := services.NewMailBridge(mailProcessor)

	authService := authUC.New(userRepo, sessionRepo, verifier, tokenProvider, notifier, hasher, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authService, ctxAdapter, zapLogger),
		Password: apiHandler.NewPasswordHandler(authService, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.TokenAuth(tokenProvider, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
