package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	caseworkapp "github.com/clubgate/backend/internal/application/casework"
	identityapp "github.com/clubgate/backend/internal/application/identity"
	maintenanceapp "github.com/clubgate/backend/internal/application/maintenance"
	messagingapp "github.com/clubgate/backend/internal/application/messaging"
	visitorapp "github.com/clubgate/backend/internal/application/visitor"
	"github.com/clubgate/backend/internal/domain/messaging"
	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/domain/visitor"
	"github.com/clubgate/backend/internal/infrastructure/auth"
	"github.com/clubgate/backend/internal/infrastructure/cache"
	"github.com/clubgate/backend/internal/infrastructure/config"
	"github.com/clubgate/backend/internal/infrastructure/logger"
	"github.com/clubgate/backend/internal/infrastructure/persistence"
	"github.com/clubgate/backend/internal/infrastructure/scheduler"
	"github.com/clubgate/backend/internal/infrastructure/sms"
	"github.com/clubgate/backend/internal/interfaces/http/handler"
	"github.com/clubgate/backend/internal/interfaces/http/middleware"
	"github.com/clubgate/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ClubGate Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	guestRepo := persistence.NewGormGuestRepository(db.DB)
	visitRepo := persistence.NewGormVisitRepository(db.DB)
	reciprocalMemberRepo := persistence.NewGormReciprocalMemberRepository(db.DB)
	caseRepo := persistence.NewGormCaseRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// SMS gateway selected by configuration
	gateway, err := newSMSGateway(cfg.SMS)
	if err != nil {
		log.Fatal("Failed to initialize SMS gateway", zap.Error(err))
	}
	log.Info("SMS gateway ready", zap.String("provider", string(gateway.Provider())))

	// Idempotency store for outbound messages: Redis when reachable,
	// in-memory otherwise
	var idemStore shared.IdempotencyStore
	redisStore, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory idempotency store", zap.Error(err))
		idemStore = cache.NewInMemoryIdempotencyStore()
	} else {
		idemStore = redisStore
		log.Info("Redis idempotency store connected")
	}
	defer func() {
		if err := idemStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	idemConfig := shared.DefaultIdempotencyConfig()
	if cfg.SMS.IdempotencyTTL > 0 {
		idemConfig.TTL = cfg.SMS.IdempotencyTTL
	}

	// Visit policy from configuration
	policy := visitor.VisitPolicy{
		MaxDailyVisitsPerHost: cfg.Visit.MaxDailyVisitsPerHost,
		MaxMonthlyVisits:      cfg.Visit.MaxMonthlyVisits,
		MaxYearlyVisits:       cfg.Visit.MaxYearlyVisits,
	}

	// Initialize application services
	smsService := messagingapp.NewSMSService(messageRepo, gateway, idemStore, idemConfig, log)
	notifier := messagingapp.NewNotifier(smsService)

	guestService := visitorapp.NewGuestService(guestRepo, visitRepo, log)
	visitService := visitorapp.NewVisitService(visitRepo, guestRepo, policy, notifier, log)
	reciprocalMemberService := visitorapp.NewReciprocalMemberService(reciprocalMemberRepo, log)

	caseService := caseworkapp.NewCaseService(caseRepo, log)
	taskService := caseworkapp.NewTaskService(taskRepo, caseRepo, notifier, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)

	// Background maintenance jobs
	maintenanceService := maintenanceapp.NewMaintenanceService(
		guestService, visitService, reciprocalMemberService, smsService, taskService, policy, log,
	)

	if cfg.Scheduler.Enabled {
		schedulerConfig := scheduler.SchedulerConfig{
			Enabled:           cfg.Scheduler.Enabled,
			MaxConcurrentJobs: cfg.Scheduler.MaxConcurrentJobs,
			JobTimeout:        cfg.Scheduler.JobTimeout,
			RetryAttempts:     cfg.Scheduler.RetryAttempts,
			RetryDelay:        cfg.Scheduler.RetryDelay,
		}
		maintenanceScheduler := scheduler.NewScheduler(schedulerConfig, maintenanceService, log)
		if err := maintenanceScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start maintenance scheduler", zap.Error(err))
		}
		defer func() {
			if err := maintenanceScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping maintenance scheduler", zap.Error(err))
			}
		}()

		triggerConfig := scheduler.DefaultCronTriggerConfig()
		triggerConfig.NightlyRunHour = cfg.Scheduler.NightlyRunHour
		if cfg.Scheduler.DeliveryPollPeriod > 0 {
			triggerConfig.DeliveryPollPeriod = cfg.Scheduler.DeliveryPollPeriod
		}
		if cfg.Scheduler.ReminderPeriod > 0 {
			triggerConfig.ReminderPeriod = cfg.Scheduler.ReminderPeriod
		}
		cronTrigger := scheduler.NewCronTrigger(triggerConfig, maintenanceScheduler, log)
		if err := cronTrigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start cron trigger", zap.Error(err))
		}
		defer func() {
			if err := cronTrigger.Stop(context.Background()); err != nil {
				log.Error("Error stopping cron trigger", zap.Error(err))
			}
		}()

		log.Info("Maintenance scheduler started",
			zap.Int("max_concurrent_jobs", cfg.Scheduler.MaxConcurrentJobs),
			zap.Int("nightly_run_hour", triggerConfig.NightlyRunHour),
		)
	}

	// Initialize HTTP handlers
	guestHandler := handler.NewGuestHandler(guestService)
	visitHandler := handler.NewVisitHandler(visitService)
	reciprocalMemberHandler := handler.NewReciprocalMemberHandler(reciprocalMemberService)
	caseHandler := handler.NewCaseHandler(caseService)
	taskHandler := handler.NewTaskHandler(taskService)
	smsHandler := handler.NewSMSHandler(smsService)
	authHandler := handler.NewAuthHandler(authService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	frontDesk := middleware.RequireRole("admin", "reception")
	legalTeam := middleware.RequireRole("admin", "lawyer")
	adminOnly := middleware.RequireRole("admin")

	// Guest register
	guestRoutes := router.NewDomainGroup("guests", "/guests")
	guestRoutes.Use(frontDesk)
	guestRoutes.POST("", guestHandler.Create)
	guestRoutes.GET("", guestHandler.List)
	guestRoutes.GET("/:id", guestHandler.Get)
	guestRoutes.PUT("/:id", guestHandler.Update)
	guestRoutes.DELETE("/:id", guestHandler.Delete)
	guestRoutes.POST("/:id/approve", guestHandler.Approve)
	guestRoutes.POST("/:id/suspend", guestHandler.Suspend)
	guestRoutes.POST("/:id/revoke", guestHandler.Revoke)

	// Sign-in desk
	visitRoutes := router.NewDomainGroup("visits", "/visits")
	visitRoutes.Use(frontDesk)
	visitRoutes.POST("/sign-in", visitHandler.SignIn)
	visitRoutes.GET("", visitHandler.List)
	visitRoutes.GET("/open", visitHandler.ListOpen)
	visitRoutes.GET("/:id", visitHandler.Get)
	visitRoutes.POST("/:id/sign-out", visitHandler.SignOut)

	// Reciprocal memberships
	reciprocalRoutes := router.NewDomainGroup("reciprocal", "/reciprocal-members")
	reciprocalRoutes.Use(frontDesk)
	reciprocalRoutes.POST("", reciprocalMemberHandler.Create)
	reciprocalRoutes.GET("", reciprocalMemberHandler.List)
	reciprocalRoutes.GET("/:id", reciprocalMemberHandler.Get)
	reciprocalRoutes.PUT("/:id", reciprocalMemberHandler.Update)
	reciprocalRoutes.POST("/:id/revoke", reciprocalMemberHandler.Revoke)
	reciprocalRoutes.DELETE("/:id", reciprocalMemberHandler.Delete)

	// Legal cases
	caseRoutes := router.NewDomainGroup("cases", "/cases")
	caseRoutes.Use(legalTeam)
	caseRoutes.POST("", caseHandler.Create)
	caseRoutes.GET("", caseHandler.List)
	caseRoutes.GET("/:id", caseHandler.Get)
	caseRoutes.PUT("/:id", caseHandler.Update)
	caseRoutes.POST("/:id/close", caseHandler.Close)
	caseRoutes.POST("/:id/reopen", caseHandler.Reopen)

	// Case tasks
	taskRoutes := router.NewDomainGroup("tasks", "/tasks")
	taskRoutes.Use(legalTeam)
	taskRoutes.POST("", taskHandler.Create)
	taskRoutes.GET("", taskHandler.List)
	taskRoutes.GET("/:id", taskHandler.Get)
	taskRoutes.PUT("/:id", taskHandler.Update)
	taskRoutes.POST("/:id/start", taskHandler.Start)
	taskRoutes.POST("/:id/complete", taskHandler.Complete)
	taskRoutes.POST("/:id/cancel", taskHandler.Cancel)

	// Outbound SMS
	messagingRoutes := router.NewDomainGroup("messaging", "/messages")
	messagingRoutes.Use(frontDesk)
	messagingRoutes.POST("", smsHandler.Send)
	messagingRoutes.GET("", smsHandler.List)
	messagingRoutes.GET("/balance", smsHandler.Balance)
	messagingRoutes.GET("/:id", smsHandler.Get)
	messagingRoutes.POST("/:id/resend", smsHandler.Resend)

	// Authentication and staff accounts. Login and refresh carry a
	// stricter rate limit when enabled.
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.AuthRateLimit(authLimiter))
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/change-password", authHandler.ChangePassword)
	authRoutes.POST("/users", adminOnly, authHandler.CreateUser)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(guestRoutes).
		Register(visitRoutes).
		Register(reciprocalRoutes).
		Register(caseRoutes).
		Register(taskRoutes).
		Register(messagingRoutes).
		Register(authRoutes).
		Register(systemRoutes)

	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newSMSGateway builds the configured SMS gateway adapter
func newSMSGateway(cfg config.SMSConfig) (messaging.SMSGateway, error) {
	switch cfg.Provider {
	case "mobilesasa":
		return sms.NewMobileSASAAdapter(cfg.MobileSASA)
	default:
		return sms.NewLeopardAdapter(cfg.Leopard)
	}
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
