package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskly/task-system/internal/api/handler"
	"github.com/taskly/task-system/internal/api/middleware"
	"github.com/taskly/task-system/internal/core/domain"
	"github.com/taskly/task-system/internal/core/service"
	infraauth "github.com/taskly/task-system/internal/infrastructure/auth"
	"github.com/taskly/task-system/internal/infrastructure/config"
	mongodb "github.com/taskly/task-system/internal/infrastructure/db/mongo"
	redisdb "github.com/taskly/task-system/internal/infrastructure/db/redis"
	"github.com/taskly/task-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("taskapi"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	hasher := infraauth.NewBcryptHasher()
	tokens := infraauth.NewJWTTokenService(cfg.JWTSecret, cfg.TokenTTL)
	userCache := redisdb.NewUserCache(rdb, userRepo, cfg.Redis.UserCacheTTL, log)

	authService := service.NewAuthService(userRepo, hasher, tokens, log)
	taskService := service.NewTaskService(taskRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)

	authRequired := middleware.Auth(tokens, userCache)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.SignUp)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authRequired)

	// --- Task routes (role gate deliberately empty: any authenticated
	// caller passes; the ownership policy lives in the use cases) ---
	tasks := e.Group("/v1/tasks", authRequired, middleware.RequireRoles())
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Admin routes ---
	admin := e.Group("/v1/admin", authRequired, middleware.RequireRoles(domain.RoleAdmin))
	admin.GET("/users/:id", authHandler.GetUser)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
