package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	glog "github.com/labstack/gommon/log"

	"taskboard/docs" // swagger docs
	"taskboard/internal/auth"
	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/handler"
	"taskboard/internal/repository"
	"taskboard/internal/router"
	"taskboard/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Taskboard API
// @version 1.0
// @description Personal task management API with categories, per-user task scoping and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true
	if cfg.IsDevelopment() {
		e.Logger.SetLevel(glog.DEBUG)
	} else {
		e.Logger.SetLevel(glog.INFO)
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		if err := db.Reset(gormDB); err != nil {
			log.Printf("Warning: failed to drop tables: %v", err)
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("%v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	hasher := auth.NewPasswordHasher(0)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, hasher)
	userService := service.NewUserService(userRepo, cacheClient)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient)
	taskService := service.NewTaskService(taskRepo, categoryRepo)

	if cfg.SeedCategories {
		created, updated, err := categoryService.SeedCategories(context.Background(), service.DefaultCategories)
		if err != nil {
			log.Fatalf("seed categories: %v", err)
		}
		log.Printf("Categories seeded: %d created, %d updated", created, updated)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("database handle: %v", err)
	}
	defer sqlDB.Close()

	router.Register(e, cfg, jwtService, router.Handlers{
		Users:      handler.NewUserHandler(userService, authService, cfg.IsDevelopment()),
		Categories: handler.NewCategoryHandler(categoryService, cfg.IsDevelopment()),
		Tasks:      handler.NewTaskHandler(taskService, cfg.IsDevelopment()),
	}, map[string]router.Pinger{
		"database": router.PingFunc(sqlDB.PingContext),
		"redis":    cacheClient,
	})

	if cfg.OverdueScanSpec != "" {
		scanner := service.NewOverdueScanner(taskRepo, e.Logger, time.Local)
		if err := scanner.Start(cfg.OverdueScanSpec); err != nil {
			log.Fatalf("%v", err)
		}
		defer scanner.Stop()
	}

	docs.SwaggerInfo.Host = swaggerHost(cfg)
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}

// swaggerHost strips any scheme from SWAGGER_HOST, which may be given as a URL.
func swaggerHost(cfg *config.Config) string {
	if cfg.SwaggerHost == "" {
		return "localhost:" + cfg.ServerPort
	}
	host := strings.TrimPrefix(cfg.SwaggerHost, "https://")
	host = strings.TrimPrefix(host, "http://")
	return strings.TrimSuffix(host, "/")
}
