package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskdesk/todo-system/internal/api/handler"
	"github.com/taskdesk/todo-system/internal/api/middleware"
	"github.com/taskdesk/todo-system/internal/core/domain"
	"github.com/taskdesk/todo-system/internal/core/ports"
	"github.com/taskdesk/todo-system/internal/core/service"
	mongodb "github.com/taskdesk/todo-system/internal/infrastructure/db/mongo"
	"github.com/taskdesk/todo-system/internal/pkg/config"
	"github.com/taskdesk/todo-system/internal/pkg/password"
	"github.com/taskdesk/todo-system/internal/pkg/token"
)

// Dependencies carries the externally constructed collaborators the router
// wires together.
type Dependencies struct {
	Mongo  *mongo.Database
	Redis  *redis.Client
	Config *config.Config
	// LoginLimiter and Audit are injected so main can bind the Redis
	// throttle and the async audit dispatcher; tests substitute stubs.
	LoginLimiter ports.LoginLimiter
	Audit        ports.AuditRecorder
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("todoapi"))

	// --- Dependencies ---
	users := mongodb.NewUserRepository(deps.Mongo)
	todos := mongodb.NewTodoRepository(deps.Mongo)
	books := mongodb.NewBookRepository(deps.Mongo)

	hasher := password.NewBcryptHasher(0) // default cost
	codec := token.NewJWTCodec(deps.Config.JWTSecret)

	authService := service.NewAuthService(users, hasher, codec, deps.LoginLimiter, deps.Audit, deps.Config.TokenTTL(), deps.Logger)
	todoService := service.NewTodoService(todos, deps.Logger)
	bookService := service.NewBookService(books, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	todoHandler := handler.NewTodoHandler(todoService)
	bookHandler := handler.NewBookHandler(bookService)

	authRequired := middleware.Auth(codec)
	adminOnly := middleware.RequireRole(users, domain.RoleAdmin)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/token", authHandler.Token)

	// --- User routes ---
	user := e.Group("/user", authRequired)
	user.GET("", userHandler.Profile)
	user.PUT("/password", userHandler.ChangePassword)

	// --- Todo routes ---
	todo := e.Group("/todos", authRequired)
	todo.GET("", todoHandler.List)
	todo.POST("", todoHandler.Create)
	todo.GET("/:id", todoHandler.Get)
	todo.PUT("/:id", todoHandler.Update)
	todo.DELETE("/:id", todoHandler.Delete)

	// --- Admin routes ---
	admin := e.Group("/admin", authRequired, adminOnly)
	admin.GET("/todos", todoHandler.ListAll)

	// --- Book catalog routes ---
	book := e.Group("/books", authRequired)
	book.GET("", bookHandler.List)
	book.POST("", bookHandler.Create)
	book.GET("/:id", bookHandler.Get)
	book.PUT("/:id", bookHandler.Update)
	book.DELETE("/:id", bookHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
