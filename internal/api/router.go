package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/mindtrack/stress-api/docs"
	"github.com/mindtrack/stress-api/internal/api/handler"
	"github.com/mindtrack/stress-api/internal/api/middleware"
	"github.com/mindtrack/stress-api/internal/core/service"
	"github.com/mindtrack/stress-api/internal/infrastructure/config"
	mongodb "github.com/mindtrack/stress-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mindtrack/stress-api/internal/infrastructure/db/redis"
	"github.com/mindtrack/stress-api/internal/infrastructure/upstream"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("stress"))

	// --- Dependencies ---
	tokens := service.NewTokenIssuer(cfg.JWTSecret, 0)
	authRepo := mongodb.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, tokens)
	authHandler := handler.NewAuthHandler(authService)
	authMiddleware := middleware.Auth(tokens)

	predictor := upstream.NewPredictorClient(cfg.Predictor.URL, cfg.Predictor.Timeout)
	resultCache := redisdb.NewResultCache(rdb)
	predictionRepo := mongodb.NewPredictionRepository(db)
	predictionService := service.NewPredictionService(predictor, resultCache, predictionRepo, log)
	predictHandler := handler.NewPredictHandler(predictionService)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authMiddleware)

	// --- Prediction routes ---
	// /api/predict is open while every other resource requires a token; this
	// mirrors the questionnaire flow as deployed. A bearer token, when
	// present and valid, attaches the result to the caller's history.
	e.POST("/api/predict", predictHandler.Predict, middleware.OptionalAuth(tokens))
	e.GET("/api/predictions", predictHandler.History, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
