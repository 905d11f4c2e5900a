package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"recipehub/database"
	"recipehub/internal/config"
	"recipehub/internal/http-api/handler"
	"recipehub/internal/http-api/middleware"
	"recipehub/internal/http-api/repository"
	"recipehub/internal/http-api/service"
	"recipehub/internal/media"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("could not connect to database", "error", err)
		os.Exit(1)
	}
	// the cache is optional: short links fall back to the database
	cache, err := database.ConnectRedis(cfg, logger)
	if err != nil {
		logger.Warn("redis unavailable, short-link cache disabled", "error", err)
		cache = nil
	}

	images, err := media.NewStore(cfg.MediaPath)
	if err != nil {
		logger.Error("could not prepare media storage", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	recipeRepo := repository.NewRecipeRepo(db)
	ingredientRepo := repository.NewIngredientRepo(db)
	tagRepo := repository.NewTagRepo(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewShoppingCartRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	shortLinkRepo := repository.NewShortLinkRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := service.NewUserService(userRepo, subRepo, images)
	recipeService := service.NewRecipeService(recipeRepo, ingredientRepo, tagRepo, favoriteRepo, cartRepo, subRepo, images)
	favoriteService := service.NewFavoriteService(favoriteRepo, recipeRepo)
	cartService := service.NewShoppingCartService(cartRepo, recipeRepo)
	subService := service.NewSubscriptionService(subRepo, userRepo, recipeRepo)
	shortLinkService := service.NewShortLinkService(shortLinkRepo, recipeRepo, cache, cfg)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.AccessTokenTTL)
	userHandler := handler.NewUserHandler(userService, subService, cfg.PageSize, cfg.MaxPageSize)
	recipeHandler := handler.NewRecipeHandler(recipeService, favoriteService, cartService, shortLinkService, cfg.PageSize, cfg.MaxPageSize)
	tagHandler := handler.NewTagHandler(tagRepo)
	ingredientHandler := handler.NewIngredientHandler(ingredientRepo)
	shortLinkHandler := handler.NewShortLinkHandler(shortLinkService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	authRequired := middleware.AuthMiddleware(authService)
	authOptional := middleware.OptionalAuthMiddleware(authService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit(rate.Limit(1), 5))
		authHandler.RegisterRoutes(auth)

		userHandler.RegisterRoutes(api.Group("/users"), authRequired, authOptional)
		recipeHandler.RegisterRoutes(api.Group("/recipes"), authRequired, authOptional)
		tagHandler.RegisterRoutes(api.Group("/tags"), authRequired, middleware.RequireAdmin())
		ingredientHandler.RegisterRoutes(api.Group("/ingredients"), authRequired, middleware.RequireAdmin())
	}

	shortLinkHandler.RegisterRoutes(r)
	r.Static("/media", cfg.MediaPath)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting api server", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
