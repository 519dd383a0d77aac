package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	calendarapp "github.com/lumiso/backend/internal/application/calendar"
	galleryapp "github.com/lumiso/backend/internal/application/gallery"
	leadapp "github.com/lumiso/backend/internal/application/lead"
	onboardingapp "github.com/lumiso/backend/internal/application/onboarding"
	pricingapp "github.com/lumiso/backend/internal/application/pricing"
	"github.com/lumiso/backend/internal/infrastructure/cache"
	"github.com/lumiso/backend/internal/infrastructure/config"
	"github.com/lumiso/backend/internal/infrastructure/logger"
	"github.com/lumiso/backend/internal/infrastructure/persistence"
	"github.com/lumiso/backend/internal/infrastructure/printing"
	"github.com/lumiso/backend/internal/infrastructure/storage"
	"github.com/lumiso/backend/internal/infrastructure/telemetry"
	"github.com/lumiso/backend/internal/interfaces/http/handler"
	"github.com/lumiso/backend/internal/interfaces/http/middleware"
	"github.com/lumiso/backend/internal/interfaces/http/router"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	providers, err := telemetry.Setup(startCtx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to set up telemetry", zap.Error(err))
	}
	if providers.Enabled() {
		otelCore := providers.LogCore(logger.ParseLevel(cfg.Log.Level))
		log = log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, otelCore)
		}))
	}

	log.Info("Starting Lumiso backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithGormLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.InstrumentGorm(db.DB, cfg.Database.DBName); err != nil {
			log.Fatal("Failed to instrument database", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	summaryCache, err := cache.NewLeadSummaryCache(startCtx, cfg.Redis, cache.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to create lead summary cache", zap.Error(err))
	}
	defer func() { _ = summaryCache.Close() }()

	objects := newObjectStorage(startCtx, cfg, log)

	renderer := newRenderer(cfg, log)
	defer func() { _ = renderer.Close() }()

	metrics, err := telemetry.NewStudioMetrics(otel.Meter(telemetry.TracerName))
	if err != nil {
		log.Fatal("Failed to create metrics", zap.Error(err))
	}

	// Repositories
	leadRepo := persistence.NewGormLeadRepository(db.DB)
	statusRepo := persistence.NewGormLeadStatusRepository(db.DB)
	serviceRepo := persistence.NewGormServiceRepository(db.DB)
	sessionRepo := persistence.NewGormSessionRepository(db.DB)
	onboardingRepo := persistence.NewGormOnboardingStateRepository(db.DB)

	// Services
	leadService := leadapp.NewLeadService(leadRepo, statusRepo, summaryCache,
		leadapp.ServiceConfig{
			InactiveDays: cfg.Lifecycle.InactiveDays,
			SummaryTTL:   cfg.Lifecycle.SummaryCacheTTL,
		},
		leadapp.WithMetrics(metrics),
		leadapp.WithLogger(log.Named("lead")),
	)
	statusService := leadapp.NewLeadStatusService(statusRepo)
	catalogService := pricingapp.NewServiceCatalogService(serviceRepo)
	quoteService := pricingapp.NewQuoteService(serviceRepo, printing.NewTemplateEngine(), renderer,
		pricingapp.WithQuoteMetrics(metrics),
		pricingapp.WithQuoteLogger(log.Named("quote")),
		pricingapp.WithStudioName(cfg.App.StudioName),
	)
	scheduleService := calendarapp.NewScheduleService(sessionRepo, leadRepo)
	downloadService := galleryapp.NewDownloadService(objects, cfg.Storage.PresignExpiration, log.Named("gallery"),
		galleryapp.WithDownloadMetrics(metrics))
	onboardingService := onboardingapp.NewOnboardingService(onboardingRepo, 0, log.Named("onboarding"))

	// Handlers
	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, map[string]handler.Pinger{"database": db})
	groups := router.StudioGroups(router.Handlers{
		Leads:      handler.NewLeadHandler(leadService, statusService),
		Pricing:    handler.NewPricingHandler(catalogService, quoteService),
		Calendar:   handler.NewCalendarHandler(scheduleService),
		Gallery:    handler.NewGalleryHandler(downloadService),
		Onboarding: handler.NewOnboardingHandler(onboardingService),
		System:     systemHandler,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	// Middleware order matters:
	// request ID first so every later layer can log it, recovery before
	// anything that may panic, tracing before logging so log lines carry the
	// span, studio resolution before rate limiting and span attributes.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, otel.GetTracerProvider()))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After", "Content-Disposition", "X-Page-Count"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	defaultTenant := uuid.Nil
	if cfg.HTTP.DefaultTenantID != "" {
		defaultTenant = uuid.MustParse(cfg.HTTP.DefaultTenantID)
		log.Warn("Requests without X-Tenant-ID use the default studio", zap.String("tenant_id", defaultTenant.String()))
	}
	engine.Use(middleware.StudioContext(middleware.StudioConfig{
		DefaultTenantID: defaultTenant,
		SkipPaths:       []string{"/health"},
	}))
	engine.Use(middleware.SpanAttributes())

	if cfg.HTTP.RateLimitRequests > 0 {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	httpMetrics, err := middleware.HTTPMetrics(otel.Meter(telemetry.TracerName))
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}
	engine.Use(httpMetrics)

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine)
	r.Register(router.Registrars(groups)...).Setup()
	for _, g := range groups {
		for _, route := range g.Routes(r.BasePath()) {
			log.Debug("Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := providers.Shutdown(ctx); err != nil {
		log.Error("Telemetry shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newObjectStorage returns S3 storage when a bucket is configured and the
// in-memory stub otherwise
func newObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) galleryapp.ObjectStorage {
	if !cfg.Storage.Enabled() {
		log.Warn("Object storage not configured, gallery files are kept in memory")
		return storage.NewStubObjectStorage()
	}

	s3, err := storage.NewS3ObjectStorage(&cfg.Storage,
		storage.WithLogger(log.Named("storage")),
		storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
	)
	if err != nil {
		log.Fatal("Failed to create object storage", zap.Error(err))
	}
	if err := s3.EnsureBucket(ctx); err != nil {
		log.Warn("Could not verify storage bucket", zap.String("bucket", s3.Bucket()), zap.Error(err))
	}
	log.Info("Object storage ready", zap.String("bucket", s3.Bucket()))
	return s3
}

// newRenderer returns the headless Chrome renderer when printing is enabled
func newRenderer(cfg *config.Config, log *zap.Logger) printing.PDFRenderer {
	if !cfg.Printing.Enabled {
		log.Info("Quote PDF rendering disabled")
		return printing.DisabledRenderer{}
	}
	return printing.NewChromedpRenderer(printing.ChromedpConfig{
		DefaultTimeout: cfg.Printing.Timeout,
		RemoteURL:      cfg.Printing.RemoteURL,
		ExecPath:       cfg.Printing.ChromePath,
		NoSandbox:      os.Getuid() == 0,
		Logger:         log.Named("printing"),
	})
}
