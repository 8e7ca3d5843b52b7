package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AVKharkova/foodgram/config"
	"github.com/AVKharkova/foodgram/internal/api"
	"github.com/AVKharkova/foodgram/internal/database"
	"github.com/AVKharkova/foodgram/internal/middleware"
	"github.com/AVKharkova/foodgram/internal/router"
	"github.com/AVKharkova/foodgram/internal/server"
	"github.com/AVKharkova/foodgram/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	imageService, err := service.NewImageService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db, imageService)
	relationService := service.NewRelationService(db)
	shoppingListService := service.NewShoppingListService(db)
	shortLinkService := service.NewShortLinkService(db)
	catalogService := service.NewCatalogService(db)

	var writeLimiter *middleware.RateLimiter
	if cfg.RedisAddr != "" {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		writeLimiter = middleware.NewRecipeWriteRateLimiter(redisClient)
	}

	engine := router.Setup(
		cfg,
		api.NewAuthHandler(authService),
		api.NewCatalogHandler(catalogService),
		api.NewRecipeHandler(cfg, recipeService, relationService, shoppingListService, shortLinkService),
		api.NewShortLinkHandler(shortLinkService),
		authService,
		writeLimiter,
	)
	srv := server.New(cfg, engine)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s...", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
