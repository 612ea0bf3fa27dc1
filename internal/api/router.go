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

	"github.com/Sandesh007711/todoList/internal/api/handler"
	"github.com/Sandesh007711/todoList/internal/api/middleware"
	"github.com/Sandesh007711/todoList/internal/core/service"
	mongodb "github.com/Sandesh007711/todoList/internal/infrastructure/db/mongo"
	redisdb "github.com/Sandesh007711/todoList/internal/infrastructure/db/redis"
)

// Options carries the external dependencies and settings the router needs.
type Options struct {
	DB         *mongo.Database
	Redis      *redis.Client
	JWTSecret  string
	TokenTTL   time.Duration
	CORSOrigin string
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{opts.CORSOrigin},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("todolist"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(opts.DB)
	todoRepo := mongodb.NewTodoRepository(opts.DB)
	denylist := redisdb.NewDenylist(opts.Redis)

	authService := service.NewAuthService(userRepo, opts.JWTSecret, opts.TokenTTL)
	todoService := service.NewTodoService(todoRepo, opts.Log)

	authHandler := handler.NewAuthHandler(authService, todoService, denylist)
	todoHandler := handler.NewTodoHandler(todoService)
	healthHandler := handler.NewHealthHandler(opts.DB, opts.Redis)
	authMW := middleware.Auth(opts.JWTSecret, denylist)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- User routes ---
	credentialLimiter := middleware.RateLimit(5, 10)
	users := e.Group("/api/users")
	users.POST("/register", authHandler.Register, credentialLimiter)
	users.POST("/login", authHandler.Login, credentialLimiter)
	users.GET("/me", authHandler.Me, authMW)
	users.POST("/logout", authHandler.Logout, authMW)

	// --- Todo routes (all owner-scoped) ---
	todos := e.Group("/api/todos", authMW)
	todos.GET("", todoHandler.List)
	todos.POST("", todoHandler.Create)
	todos.GET("/history", todoHandler.History)
	todos.GET("/history/byDate", todoHandler.HistoryByDate)
	todos.GET("/:id", todoHandler.Get)
	todos.PUT("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)

	return e
}
