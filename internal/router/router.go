package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/AVKharkova/foodgram/config"
	"github.com/AVKharkova/foodgram/internal/api"
	"github.com/AVKharkova/foodgram/internal/middleware"
)

// Setup configures the application routes.
func Setup(
	cfg *config.Config,
	authHandler *api.AuthHandler,
	catalogHandler *api.CatalogHandler,
	recipeHandler *api.RecipeHandler,
	shortLinkHandler *api.ShortLinkHandler,
	validator middleware.TokenValidator,
	writeLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1)
	catalogHandler.RegisterRoutes(v1)

	// Reads are anonymous-friendly; flags need the viewer when present.
	public := v1.Group("")
	public.Use(middleware.OptionalAuthMiddleware(validator))
	recipeHandler.RegisterPublicRoutes(public)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	if writeLimiter != nil {
		protected.Use(writeLimiter.Middleware())
	}
	recipeHandler.RegisterProtectedRoutes(protected)

	shortLinkHandler.RegisterRoutes(router)

	// Local image storage mode serves uploads directly.
	if cfg.S3Bucket == "" && cfg.MediaDir != "" {
		router.Static("/media", cfg.MediaDir)
	}

	return router
}
