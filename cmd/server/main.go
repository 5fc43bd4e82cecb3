package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/kostman/backend/internal/application/billing"
	expenseapp "github.com/kostman/backend/internal/application/expense"
	propertyapp "github.com/kostman/backend/internal/application/property"
	"github.com/kostman/backend/internal/infrastructure/cache"
	"github.com/kostman/backend/internal/infrastructure/config"
	"github.com/kostman/backend/internal/infrastructure/logger"
	"github.com/kostman/backend/internal/infrastructure/persistence"
	"github.com/kostman/backend/internal/infrastructure/scheduler"
	"github.com/kostman/backend/internal/infrastructure/telemetry"
	"github.com/kostman/backend/internal/interfaces/http/handler"
	"github.com/kostman/backend/internal/interfaces/http/middleware"
	"github.com/kostman/backend/internal/interfaces/http/router"
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

	log.Info("Starting KostMan Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize OpenTelemetry tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

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

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		} else {
			log.Info("Database query tracing enabled")
		}
	}

	// Initialize repositories
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	roomRepo := persistence.NewGormRoomRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	rateSettingsRepo := persistence.NewGormRateSettingsRepository(db.DB)
	meterReadingRepo := persistence.NewGormMeterReadingRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)

	// Rate card cache: Redis when configured, in-process otherwise
	var rateCardCache billingapp.RateCardCache
	if cfg.Redis.Host != "" {
		redisCache, err := cache.NewRedisRateCardCache(cache.RedisConfig{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory rate card cache", zap.Error(err))
			rateCardCache = cache.NewInMemoryRateCardCache()
		} else {
			log.Info("Redis rate card cache connected",
				zap.String("host", cfg.Redis.Host),
				zap.Int("port", cfg.Redis.Port),
			)
			rateCardCache = redisCache
		}
	} else {
		rateCardCache = cache.NewInMemoryRateCardCache()
	}

	// Initialize application services
	settingsService := billingapp.NewSettingsService(rateSettingsRepo, rateCardCache)
	meterReadingService := billingapp.NewMeterReadingService(meterReadingRepo, billRepo, roomRepo)
	billingService := billingapp.NewBillingService(billRepo, meterReadingRepo, roomRepo, settingsService)
	reminderService := billingapp.NewReminderService(billRepo, log)
	reminderService.SetDueSoonDays(cfg.Billing.DueSoonDays)
	propertyService := propertyapp.NewPropertyService(propertyRepo, roomRepo)
	roomService := propertyapp.NewRoomService(roomRepo, propertyRepo, tenantRepo, billRepo)
	tenantService := propertyapp.NewTenantService(tenantRepo, roomRepo)
	expenseService := expenseapp.NewExpenseService(expenseRepo, propertyRepo)

	// Start the reminder sweep scheduler (if enabled)
	reminderScheduler := scheduler.NewReminderScheduler(scheduler.ReminderSchedulerConfig{
		Enabled:      cfg.Scheduler.Enabled,
		CronSchedule: cfg.Scheduler.CronSchedule,
		JobTimeout:   cfg.Scheduler.JobTimeout,
	}, reminderService, log)
	if err := reminderScheduler.Start(); err != nil {
		log.Fatal("Failed to start reminder scheduler", zap.Error(err))
	}
	defer func() {
		if err := reminderScheduler.Stop(context.Background()); err != nil {
			log.Error("Error stopping reminder scheduler", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	propertyHandler := handler.NewPropertyHandler(propertyService)
	roomHandler := handler.NewRoomHandler(roomService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	billHandler := handler.NewBillHandler(billingService)
	meterReadingHandler := handler.NewMeterReadingHandler(meterReadingService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	reminderHandler := handler.NewReminderHandler(reminderService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
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

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - OpenTelemetry spans (if enabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, "/health", "/ready", "/api/v1/ping"))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.TraceRequestID())
		engine.Use(middleware.SpanErrorMarker())
	}
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))
	engine.GET("/ready", readyHandler(db))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Property domain (properties, rooms, tenants)
	propertyRoutes := router.NewDomainGroup("property", "")
	propertyRoutes.POST("/properties", propertyHandler.Create)
	propertyRoutes.GET("/properties", propertyHandler.List)
	propertyRoutes.GET("/properties/:id", propertyHandler.GetByID)
	propertyRoutes.PUT("/properties/:id", propertyHandler.Update)
	propertyRoutes.DELETE("/properties/:id", propertyHandler.Delete)

	propertyRoutes.POST("/rooms", roomHandler.Create)
	propertyRoutes.GET("/rooms", roomHandler.List)
	propertyRoutes.GET("/rooms/:id", roomHandler.GetByID)
	propertyRoutes.PUT("/rooms/:id", roomHandler.Update)
	propertyRoutes.DELETE("/rooms/:id", roomHandler.Delete)
	propertyRoutes.POST("/rooms/:id/assign-tenant", roomHandler.AssignTenant)
	propertyRoutes.POST("/rooms/:id/vacate", roomHandler.Vacate)

	propertyRoutes.POST("/tenants", tenantHandler.Create)
	propertyRoutes.GET("/tenants", tenantHandler.List)
	propertyRoutes.GET("/tenants/:id", tenantHandler.GetByID)
	propertyRoutes.PUT("/tenants/:id", tenantHandler.Update)
	propertyRoutes.DELETE("/tenants/:id", tenantHandler.Delete)

	// Billing domain (bills, meter readings, rate settings, reminders)
	billingRoutes := router.NewDomainGroup("billing", "")
	billingRoutes.POST("/bills", billHandler.Generate)
	billingRoutes.GET("/bills", billHandler.List)
	billingRoutes.GET("/bills/:id", billHandler.GetByID)
	billingRoutes.DELETE("/bills/:id", billHandler.Delete)
	billingRoutes.POST("/bills/:id/payments", billHandler.ApplyPayment)
	billingRoutes.DELETE("/bills/:id/payments/:paymentId", billHandler.RemovePayment)
	billingRoutes.POST("/bills/:id/mark-paid", billHandler.MarkPaid)
	billingRoutes.PUT("/bills/:id/period", billHandler.UpdatePeriod)
	billingRoutes.PUT("/bills/:id/details", billHandler.UpdateDetails)

	billingRoutes.POST("/meter-readings", meterReadingHandler.Save)
	billingRoutes.DELETE("/meter-readings/:id", meterReadingHandler.Delete)
	billingRoutes.GET("/rooms/:id/meter-readings", meterReadingHandler.ListByRoom)
	billingRoutes.GET("/rooms/:id/meter-readings/latest", meterReadingHandler.GetLatest)
	billingRoutes.GET("/rooms/:id/meter-readings/:period", meterReadingHandler.GetByRoomAndPeriod)

	billingRoutes.GET("/settings/rates", settingsHandler.Get)
	billingRoutes.PUT("/settings/rates", settingsHandler.Update)

	billingRoutes.GET("/reminders", reminderHandler.GetFeed)
	billingRoutes.POST("/reminders/sweep", reminderHandler.TriggerSweep)

	// Expense domain
	expenseRoutes := router.NewDomainGroup("expense", "")
	expenseRoutes.POST("/expenses", expenseHandler.Create)
	expenseRoutes.GET("/expenses", expenseHandler.List)
	expenseRoutes.GET("/expenses/:id", expenseHandler.GetByID)
	expenseRoutes.PUT("/expenses/:id", expenseHandler.Update)
	expenseRoutes.DELETE("/expenses/:id", expenseHandler.Delete)
	expenseRoutes.GET("/properties/:id/expense-summary", expenseHandler.MonthlySummary)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(propertyRoutes).
		Register(billingRoutes).
		Register(expenseRoutes).
		Register(systemRoutes)

	// Setup routes
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

// readyHandler reports whether the service can serve traffic. Probed by the
// orchestrator, so the response stays minimal and unlogged.
func readyHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
