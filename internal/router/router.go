package router

import (
	"time"

	"cicloharmony/internal/config"
	"cicloharmony/internal/handler"
	"cicloharmony/internal/infra"
	"cicloharmony/internal/middleware"
	"cicloharmony/internal/repository"
	"cicloharmony/internal/service"
	"cicloharmony/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker, fileStore *infra.FileStore) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	adminRepo := repository.NewAdminUserRepository(db)
	regRepo := repository.NewRegistrationRepository(db)
	historyRepo := repository.NewActionHistoryRepository(db)
	qrRepo := repository.NewQrSettingRepository(db)
	sysRepo := repository.NewSystemSettingRepository(db)
	prefRepo := repository.NewPaymentPreferenceRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	sessionStore := repository.NewWizardSessionStore(rdb, time.Duration(cfg.WizardSessionTTLMinutes)*time.Minute)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(adminRepo, cfg)
	settingsSvc := service.NewSettingsService(qrRepo, sysRepo, prefRepo, rdb)
	wizardSvc := service.NewWizardService(sessionStore, settingsSvc, regRepo, dispatcher, cfg)
	queueSvc := service.NewQueueService(regRepo, historyRepo)
	notifSvc := service.NewNotificationService(notifRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	adminsH := handler.NewAdminsHandler(authSvc)
	wizardH := handler.NewWizardHandler(wizardSvc)
	publicH := handler.NewPublicHandler(notifSvc, settingsSvc)
	regsH := handler.NewRegistrationsHandler(queueSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	notifsH := handler.NewNotificationsHandler(notifSvc)
	uploadsH := handler.NewUploadsHandler(fileStore)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Uploaded QR images and notification videos
	r.Static("/uploads", fileStore.Root())

	// Public funnel — no auth
	wizard := r.Group("/v1/wizard")
	{
		wizard.POST("", wizardH.Start)
		wizard.GET("/:id", wizardH.Get)
		wizard.PUT("/:id/step1", wizardH.Step1)
		wizard.POST("/:id/platform", wizardH.Platform)
		wizard.PUT("/:id/order", wizardH.PrimaryOrder)
		wizard.PUT("/:id/admin-order", wizardH.AdminOrder)
		wizard.POST("/:id/back", wizardH.Back)
		wizard.GET("/:id/ticket", wizardH.Ticket)
	}

	// Public landing reads
	r.GET("/v1/notifications", publicH.Notifications)
	r.GET("/v1/flags", publicH.Flags)
	r.GET("/v1/payment-preferences", publicH.Preferences)
	r.GET("/v1/qr-settings/active", publicH.ActiveQr)

	// Admin auth (public endpoints)
	auth := r.Group("/v1/admin/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected back-office
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	admin := r.Group("/v1/admin", jwtMW, middleware.RequireRole("admin", "superadmin"))
	{
		regs := admin.Group("/registrations")
		{
			regs.GET("/pending", regsH.Pending)
			regs.POST("/:id/decision", regsH.Decide)
			regs.GET("/history", regsH.History)
			regs.DELETE("/history/:id", regsH.DeleteHistory)
		}

		settings := admin.Group("/settings")
		{
			settings.GET("", settingsH.ListSystem)
			settings.PUT("", settingsH.UpsertSystem)
		}

		qr := admin.Group("/qr-settings")
		{
			qr.GET("", settingsH.ListQr)
			qr.PUT("", settingsH.SaveQrGroup)
		}

		prefs := admin.Group("/payment-preferences")
		{
			prefs.GET("", settingsH.ListPreferences)
			prefs.PUT("", settingsH.UpsertPreference)
		}

		notifs := admin.Group("/notifications")
		{
			notifs.GET("", notifsH.List)
			notifs.POST("", notifsH.Create)
			notifs.PUT("/:id", notifsH.Update)
			notifs.DELETE("/:id", notifsH.Delete)
			notifs.PUT("/reorder", notifsH.Reorder)
		}

		admin.POST("/uploads", uploadsH.Upload)

		// Admin user management — superadmin only
		users := admin.Group("/users", middleware.RequireRole("superadmin"))
		{
			users.POST("", adminsH.Create)
			users.GET("", adminsH.List)
			users.PUT("/:id", adminsH.Update)
			users.DELETE("/:id", adminsH.Deactivate)
			users.PATCH("/:id/reactivate", adminsH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
