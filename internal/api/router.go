package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/voyariestuff/tours-api/internal/api/handler"
	"github.com/voyariestuff/tours-api/internal/api/middleware"
	"github.com/voyariestuff/tours-api/internal/core/domain"
	"github.com/voyariestuff/tours-api/internal/core/ports"
	"github.com/voyariestuff/tours-api/internal/core/service"
	"github.com/voyariestuff/tours-api/internal/infrastructure/config"
	mongodb "github.com/voyariestuff/tours-api/internal/infrastructure/db/mongo"
	redisdb "github.com/voyariestuff/tours-api/internal/infrastructure/db/redis"
	"github.com/voyariestuff/tours-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	recompute ports.RatingRecomputer,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tours"))

	// --- Dependencies ---
	principalRepo := mongodb.NewPrincipalRepository(db)
	tourRepo := mongodb.NewTourRepository(db)
	requestRepo := mongodb.NewBookingRequestRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)
	submitGuard := redisdb.NewSubmitGuard(rdb)

	sessions := service.NewSessionService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(principalRepo, sessions, cfg.AdminEmailDomain)
	tourService := service.NewTourService(tourRepo, log)
	requestService := service.NewRequestService(requestRepo, tourRepo, submitGuard, log)
	reviewService := service.NewReviewService(reviewRepo, tourRepo, recompute, log)

	authHandler := handler.NewAuthHandler(authService, cfg.TokenTTL, cfg.CookieSecure)
	tourHandler := handler.NewTourHandler(tourService)
	requestHandler := handler.NewRequestHandler(requestService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	requireAuth := middleware.Auth(sessions, log)
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/register-client", authHandler.RegisterClient)
	e.POST("/api/register-admin", authHandler.RegisterAdmin)
	e.POST("/api/logout", authHandler.Logout)
	e.GET("/api/check-auth", authHandler.CheckAuth, requireAuth)

	// --- Tour catalog (reads public, mutations admin-gated) ---
	e.GET("/api/tours", tourHandler.List)
	e.GET("/api/tours/:id", tourHandler.Get)
	e.POST("/api/tours", tourHandler.Create, requireAuth, requireAdmin)
	e.PATCH("/api/tours/:id", tourHandler.Update, requireAuth, requireAdmin)
	e.DELETE("/api/tours/:id", tourHandler.Delete, requireAuth, requireAdmin)

	// --- Booking requests ---
	e.POST("/api/tours/:id/request", requestHandler.Submit, requireAuth)
	e.GET("/api/tours/:id/requests", requestHandler.ListByTour, requireAuth)
	e.GET("/api/admin/requests", requestHandler.ListAll, requireAuth, requireAdmin)
	e.GET("/api/admin/requests/:id", requestHandler.Get, requireAuth, requireAdmin)
	e.PATCH("/api/admin/requests/:id", requestHandler.Transition, requireAuth, requireAdmin)

	// --- Reviews ---
	e.GET("/api/tours/:id/reviews", reviewHandler.ListByTour)
	e.POST("/api/tours/:id/reviews", reviewHandler.Submit, requireAuth)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
