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
	"golang.org/x/time/rate"

	_ "github.com/sociogram/social-api/docs"
	"github.com/sociogram/social-api/internal/api/handler"
	"github.com/sociogram/social-api/internal/api/middleware"
	"github.com/sociogram/social-api/internal/core/ports"
	"github.com/sociogram/social-api/internal/core/service"
	mongodb "github.com/sociogram/social-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sociogram/social-api/internal/infrastructure/db/redis"
	"github.com/sociogram/social-api/internal/pkg/security"
)

const sessionTTL = 15 * 24 * time.Hour

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, assets ports.AssetStore, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("social"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	sessions := redisdb.NewSessionStore(rdb)
	sanitizer := security.NewTextSanitizer()

	authService := service.NewAuthService(userRepo, sessions, jwtSecret, sessionTTL, log)
	userService := service.NewUserService(userRepo, notificationRepo, assets, sanitizer, log)
	postService := service.NewPostService(postRepo, userRepo, notificationRepo, assets, sanitizer, log)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	requireAuth := middleware.Auth(jwtSecret, sessions)
	// 10 signup/login attempts per minute per client.
	limiter := middleware.NewRateLimiter(rate.Limit(10.0/60.0), 10)

	// --- Auth ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup, limiter.Middleware())
	auth.POST("/login", authHandler.Login, limiter.Middleware())
	auth.POST("/logout", authHandler.Logout, requireAuth)
	auth.GET("/me", authHandler.Me, requireAuth)

	// --- Posts ---
	posts := e.Group("/api/posts", requireAuth)
	posts.GET("/all", postHandler.All)
	posts.GET("/liked", postHandler.Liked)
	posts.GET("/following", postHandler.Following)
	posts.GET("/user/:username", postHandler.ByUser)
	posts.POST("/create", postHandler.Create)
	posts.POST("/like/:id", postHandler.ToggleLike)
	posts.POST("/comment/:id", postHandler.Comment)
	posts.DELETE("/:id", postHandler.Delete)

	// --- Users ---
	users := e.Group("/api/users", requireAuth)
	users.GET("/profile/:username", userHandler.Profile)
	users.GET("/suggested", userHandler.Suggested)
	users.POST("/follow/:id", userHandler.ToggleFollow)
	users.POST("/update", userHandler.Update)

	// --- Notifications ---
	notifications := e.Group("/api/notifications", requireAuth)
	notifications.GET("", notificationHandler.List)
	notifications.DELETE("", notificationHandler.DeleteAll)
	notifications.DELETE("/:id", notificationHandler.DeleteOne)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
