package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/hirepath/jobportal-api/docs"
	"github.com/hirepath/jobportal-api/internal/api/handler"
	"github.com/hirepath/jobportal-api/internal/api/middleware"
	"github.com/hirepath/jobportal-api/internal/core/service"
	mongodb "github.com/hirepath/jobportal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/hirepath/jobportal-api/internal/infrastructure/db/redis"
	"github.com/hirepath/jobportal-api/internal/infrastructure/queue"
	"github.com/hirepath/jobportal-api/internal/infrastructure/storage"
)

const indexTimeout = 10 * time.Second

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	store *storage.Store,
	jwtSecret string,
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
	e.Use(echoprometheus.NewMiddleware("jobportal"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	eventRepo := mongodb.NewEventRepository(db)
	cache := redisdb.NewProfileCache(rdb)
	tokens := service.NewTokenIssuer(jwtSecret, 24*time.Hour)

	indexCtx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()
	if err := userRepo.EnsureIndexes(indexCtx); err != nil {
		log.Warn().Err(err).Msg("user uniqueness indexes not ensured")
	}

	activityService := service.NewActivityService(eventRepo, log)
	dispatcher := queue.NewDispatcher(0, activityService, log)
	dispatcher.Start(context.Background())

	userService := service.NewUserService(userRepo, eventRepo, store, tokens, cache, dispatcher, log)
	userHandler := handler.NewUserHandler(userService)
	authMiddleware := middleware.Auth(tokens)

	// --- User routes ---
	users := e.Group("/api/v1/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.POST("/logout", userHandler.Logout)
	users.PUT("/profile", userHandler.UpdateProfile, authMiddleware)
	users.GET("/me", userHandler.Me, authMiddleware)
	users.GET("/activity", userHandler.Activity, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational surface ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
