package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Zubair-hussain/xovato-tech/internal/auth"
	"github.com/Zubair-hussain/xovato-tech/internal/config"
	"github.com/Zubair-hussain/xovato-tech/internal/event"
	"github.com/Zubair-hussain/xovato-tech/internal/geo"
	handler "github.com/Zubair-hussain/xovato-tech/internal/handler/http"
	"github.com/Zubair-hussain/xovato-tech/internal/notify"
	"github.com/Zubair-hussain/xovato-tech/internal/personalize"
	"github.com/Zubair-hussain/xovato-tech/internal/repository/postgres"
	"github.com/Zubair-hussain/xovato-tech/internal/service"
	"github.com/Zubair-hussain/xovato-tech/migrations"
	"github.com/Zubair-hussain/xovato-tech/pkg/database"
	"github.com/Zubair-hussain/xovato-tech/pkg/health"
	"github.com/Zubair-hussain/xovato-tech/pkg/httpclient"
	pkgkafka "github.com/Zubair-hussain/xovato-tech/pkg/kafka"
	"github.com/Zubair-hussain/xovato-tech/pkg/tracing"
)

// App wires together all dependencies and runs the review service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "review",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pgCfg := database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}

	pool, err := database.NewPostgresPoolWithLogger(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	database.RegisterPoolMetrics(pool, "review")

	// Run database migrations. The review policies live in the migrations
	// themselves, so the service owns its own row level security setup.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Initialize Redis for one-time login tokens.
	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("host", cfg.RedisHost),
		slog.Int("port", cfg.RedisPort),
	)

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Parse access gate durations.
	tokenTTL, err := time.ParseDuration(cfg.OTPTTL)
	if err != nil {
		return nil, fmt.Errorf("parse login token TTL %q: %w", cfg.OTPTTL, err)
	}
	sessionExpiry, err := time.ParseDuration(cfg.JWTSessionExpiry)
	if err != nil {
		return nil, fmt.Errorf("parse session expiry %q: %w", cfg.JWTSessionExpiry, err)
	}

	// Build the dependency graph.
	allowlist := auth.NewAllowlist(cfg.AdminEmailAllowlist)
	if allowlist.Empty() {
		logger.Warn("admin email allowlist is empty, moderation login is disabled")
	}
	sessionManager := auth.NewSessionManager(cfg.JWTSecret, sessionExpiry)
	tokenStore := auth.NewRedisTokenStore(redisClient)

	reviewRepo := postgres.NewReviewRepository(pool, logger)
	eventProducer := event.NewProducer(producer, logger)

	// The notifier's only retry is its single form-endpoint fallback, so the
	// HTTP client must not add transport-level retries of its own.
	emailClientCfg := httpclient.DefaultConfig()
	emailClientCfg.MaxRetries = 0
	notifier := notify.NewEmailJSSender(notify.EmailJSConfig{
		ServiceID:   cfg.EmailJSServiceID,
		TemplateID:  cfg.EmailJSTemplateID,
		PublicKey:   cfg.EmailJSPublicKey,
		NotifyEmail: cfg.ReviewNotifyEmail,
	}, httpclient.New(emailClientCfg), logger)

	resolver := geo.NewResolver(cfg.GeoFallbackCountry)
	engine := personalize.NewEngine()

	reviewService := service.NewReviewService(reviewRepo, eventProducer, notifier, logger)
	personalizeService := service.NewPersonalizeService(reviewRepo, engine, logger)
	moderationService := service.NewModerationService(reviewRepo, eventProducer, logger)
	gateService := service.NewGateService(allowlist, tokenStore, sessionManager, notifier, cfg.AdminBaseURL, tokenTTL, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.RegisterCritical("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	router := handler.NewRouter(
		reviewService,
		personalizeService,
		moderationService,
		gateService,
		resolver,
		healthHandler,
		logger,
		handler.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Environment:    cfg.Environment,
		},
	)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		redis:          redisClient,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in the correct order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush pending spans from drained requests)
// 3. Kafka producer
// 4. Redis client
// 5. PostgreSQL pool
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// 1. Drain in-flight HTTP requests (5s budget).
	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// 2. Flush pending spans after HTTP drain so in-flight request spans are captured.
	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	// 3. Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// 4. Close Redis client.
	if err := a.redis.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// 5. Close PostgreSQL pool.
	a.pool.Close()

	a.logger.Info("application stopped")
	return errors.Join(errs...)
}
