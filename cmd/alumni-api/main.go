package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/pratik0133/alumni-connect-api/api/swagger"
	"github.com/pratik0133/alumni-connect-api/internal/handler"
	"github.com/pratik0133/alumni-connect-api/internal/middleware"
	"github.com/pratik0133/alumni-connect-api/internal/models"
	"github.com/pratik0133/alumni-connect-api/internal/repository"
	"github.com/pratik0133/alumni-connect-api/internal/service"
	"github.com/pratik0133/alumni-connect-api/pkg/cache"
	"github.com/pratik0133/alumni-connect-api/pkg/config"
	"github.com/pratik0133/alumni-connect-api/pkg/database"
	"github.com/pratik0133/alumni-connect-api/pkg/logger"
	corsmiddleware "github.com/pratik0133/alumni-connect-api/pkg/middleware/cors"
	reqidmiddleware "github.com/pratik0133/alumni-connect-api/pkg/middleware/requestid"
	"github.com/pratik0133/alumni-connect-api/pkg/middleware/secureheaders"
)

// @title Alumni Connect API
// @version 1.0.0
// @description Alumni association portal: registration, donations, jobs, events and stories
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.SecretGenerated {
		logr.Warn("SESSION_SECRET not set, generated a random secret; sessions will not survive a restart")
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to open database", "error", err)
	}
	defer db.Close()

	metricsService := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
			cfg.Cache.Enabled = false
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}
	cacheService := service.NewCacheService(cacheRepo, metricsService, cfg.Cache.StatsTTL, logr, cfg.Cache.Enabled)

	validate := validator.New()

	schemaRepo := repository.NewSchemaRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	donationRepo := repository.NewDonationRepository(db)
	jobRepo := repository.NewJobRepository(db)
	eventRepo := repository.NewEventRepository(db)
	storyRepo := repository.NewStoryRepository(db)

	authService := service.NewAuthService(userRepo, auditRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.Session.Secret,
		Expiration: cfg.Session.Expiration,
		Issuer:     "alumni-connect-api",
	})
	userService := service.NewUserService(userRepo, auditRepo, validate, logr)
	donationService := service.NewDonationService(donationRepo, cacheService, validate, logr, cfg.Cache.StatsTTL)
	jobService := service.NewJobService(jobRepo, validate, logr)
	eventService := service.NewEventService(eventRepo, auditRepo, validate, logr)
	storyService := service.NewStoryService(storyRepo, auditRepo, validate, logr)
	dashboardService := service.NewDashboardService(service.DashboardServiceParams{
		Users:     userRepo,
		Donations: donationRepo,
		Jobs:      jobRepo,
		Events:    eventService,
		Stories:   storyService,
		Cache:     cacheService,
		Logger:    logr,
		CacheTTL:  cfg.Cache.StatsTTL,
	})
	exportService := service.NewExportService(donationRepo, userRepo, logr)
	bootstrapService := service.NewBootstrapService(schemaRepo, userRepo, logr, cfg.SeedAdmin)

	// Mirror of /init-db at process start so a fresh deployment is usable
	// without a manual call.
	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := bootstrapService.Run(startupCtx); err != nil {
		logr.Sugar().Warnw("startup database initialization failed", "error", err)
	}
	cancel()

	authHandler := handler.NewAuthHandler(authService, cfg.Session)
	userHandler := handler.NewUserHandler(userService)
	donationHandler := handler.NewDonationHandler(donationService)
	jobHandler := handler.NewJobHandler(jobService)
	eventHandler := handler.NewEventHandler(eventService)
	storyHandler := handler.NewStoryHandler(storyService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	exportHandler := handler.NewExportHandler(exportService)
	bootstrapHandler := handler.NewBootstrapHandler(bootstrapService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(secureheaders.New())
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(metricsService))

	session := middleware.Session(authService, cfg.Session.CookieName)
	approved := middleware.Approved(authService)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	// Public surface.
	r.GET("/", dashboardHandler.Home)
	r.GET("/health", metricsHandler.Health)
	r.GET("/init-db", bootstrapHandler.InitDB)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", session, authHandler.Logout)
	r.GET("/jobs", jobHandler.List)
	r.GET("/events", eventHandler.List)
	r.GET("/stories", storyHandler.Published)

	// Any authenticated session, approved or not.
	r.GET("/pending-approval", session, authHandler.PendingApproval)

	// Approved members only.
	member := r.Group("/", session, approved)
	member.GET("/profile", userHandler.Profile)
	member.POST("/profile", userHandler.UpdateProfile)
	member.GET("/alumni-dashboard", dashboardHandler.Alumni)
	member.GET("/directory", userHandler.Directory)
	member.POST("/donate", donationHandler.Donate)
	member.GET("/donate", donationHandler.History)
	member.POST("/post-job", jobHandler.Post)
	member.GET("/register-event/:id", eventHandler.Register)
	member.POST("/submit-story", storyHandler.Submit)

	// Admin surface.
	r.GET("/admin-dashboard", session, adminOnly, dashboardHandler.Admin)
	admin := r.Group("/admin", session, adminOnly)
	admin.GET("/pending-users", userHandler.PendingUsers)
	admin.GET("/approve-user/:id", userHandler.ApproveUser)
	admin.GET("/manage-events", eventHandler.Manage)
	admin.POST("/manage-events", eventHandler.Create)
	admin.GET("/manage-stories", storyHandler.Manage)
	admin.GET("/publish-story/:id", storyHandler.Publish)
	admin.GET("/feature-story/:id", storyHandler.Feature)
	exportAudit := middleware.Audit(auditRepo, models.AuditActionExportReport, "report")
	admin.GET("/export/donations", exportAudit, exportHandler.Donations)
	admin.GET("/export/directory", exportAudit, exportHandler.Directory)

	r.GET("/api/donation-stats", session, adminOnly, donationHandler.Stats)
	r.GET("/metrics", session, adminOnly, metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "driver", db.DriverName())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
