package main

import (
	"log"
	"net/http"
	"os"

	_ "wishlist/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"wishlist/internal/auth"
	"wishlist/internal/cache"
	"wishlist/internal/config"
	"wishlist/internal/db"
	"wishlist/internal/handler"
	"wishlist/internal/logger"
	"wishlist/internal/model"
	"wishlist/internal/repository"
	"wishlist/internal/router"
	"wishlist/internal/service"
	"wishlist/internal/session"
	"wishlist/internal/view"
)

// @title Wishlist API
// @version 1.0
// @description Wishlist application JSON API with JWT authentication. The HTML surface lives at the site root.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	e := echo.New()
	e.Use(middleware.RequestID())
	e.Renderer = view.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Log.Fatalw("database init", "err", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		logger.Log.Info("RESET_DB=true detected, dropping all tables...")
		for _, table := range []interface{}{&model.Item{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				logger.Log.Warnw("drop table", "err", err)
			}
		}
		logger.Log.Info("tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(&model.User{}, &model.Item{}); err != nil {
		logger.Log.Fatalw("auto-migrate", "err", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	sessions := session.NewStore(cacheClient)

	// Initialize services
	userService := service.NewUserService(userRepo)
	itemService := service.NewItemService(itemRepo, cacheClient)
	authService := service.NewAuthService(userService, jwtService, tokenStore)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, sessions)
	itemHandler := handler.NewItemHandler(itemService)
	apiAuthHandler := handler.NewAPIAuthHandler(authService)
	apiItemHandler := handler.NewAPIItemHandler(itemService)

	// Register routes
	router.Register(
		e,
		cfg,
		sessions,
		authHandler,
		itemHandler,
		apiAuthHandler,
		apiItemHandler,
	)

	addr := ":" + cfg.ServerPort
	logger.Log.Infow("starting server", "addr", addr)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Log.Fatalw("server start", "err", err)
	}
}
