package router

import (
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"

	"github.com/fanpulse/backend/internal/api"
	"github.com/fanpulse/backend/internal/middleware"
	"github.com/fanpulse/backend/internal/service"
)

// Options are the router's optional collaborators.
type Options struct {
	// LoginLimiter throttles the login endpoint; nil disables throttling.
	LoginLimiter *middleware.RateLimiter
	// AllowedOrigins for CORS.
	AllowedOrigins []string
	Logger         *zap.Logger
}

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	dashboardHandler *api.DashboardHandler,
	feedbackHandler *api.FeedbackHandler,
	authService service.IAuthService,
	opts Options,
) *gin.Engine {
	router := gin.New()
	router.Use(middleware.ErrorHandler(opts.Logger))
	router.Use(middleware.CORS(opts.AllowedOrigins))

	router.GET("/health", feedbackHandler.Health)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		login := auth.Group("")
		if opts.LoginLimiter != nil {
			login.Use(opts.LoginLimiter.RateLimitMiddleware())
		}
		login.POST("/login", authHandler.Login)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		protected.GET("/auth/me", authHandler.Me)
		dashboardHandler.RegisterRoutes(protected)
		feedbackHandler.RegisterRoutes(protected)
	}

	return router
}
