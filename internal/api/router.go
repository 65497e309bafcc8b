package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/glowdesk/booking-system/internal/api/handler"
	"github.com/glowdesk/booking-system/internal/api/middleware"
	"github.com/glowdesk/booking-system/internal/core/service"
	"github.com/glowdesk/booking-system/internal/infrastructure/config"
	mongodb "github.com/glowdesk/booking-system/internal/infrastructure/db/mongo"
	redisdb "github.com/glowdesk/booking-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit queue is created and started by the caller so its lifecycle is
// tied to the process, not the router.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit service.EventQueue, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.Development())
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("booking"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	appointmentRepo := mongodb.NewAppointmentRepository(db)
	serviceRepo := mongodb.NewServiceRepository(db)

	tokenService := service.NewTokenService(cfg.JWTSecret, 24*time.Hour)
	authService := service.NewAuthService(userRepo, tokenService, log)
	googleService := service.NewGoogleService(service.GoogleConfig{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
	}, userRepo, tokenService, redisdb.NewStateStore(rdb), log)
	dashboardService := service.NewDashboardService(appointmentRepo, userRepo, serviceRepo, audit, log)

	authHandler := handler.NewAuthHandler(authService, googleService, cfg.FrontendURL)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	authMiddleware := middleware.Auth(tokenService)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/google", authHandler.GoogleRedirect)
	auth.GET("/google/callback", authHandler.GoogleCallback)
	auth.GET("/google/status", authHandler.GoogleStatus)
	auth.GET("/me", authHandler.Me, authMiddleware)

	// --- Dashboard routes (all authenticated) ---
	dashboard := e.Group("/dashboard", authMiddleware)
	dashboard.GET("/stats", dashboardHandler.Stats)
	dashboard.GET("/revenue", dashboardHandler.Revenue)
	dashboard.GET("/staff", dashboardHandler.Staff)
	dashboard.GET("/appointments/today", dashboardHandler.Today)
	dashboard.PATCH("/appointments/:id", dashboardHandler.UpdateStatus)
	dashboard.GET("/services", dashboardHandler.Services)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
