package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "musicmentor/docs" // swagger docs
	"musicmentor/internal/auth"
	"musicmentor/internal/cache"
	"musicmentor/internal/config"
	"musicmentor/internal/db"
	"musicmentor/internal/handler"
	"musicmentor/internal/model"
	"musicmentor/internal/repository"
	"musicmentor/internal/router"
	"musicmentor/internal/service"
)

// @title Music Mentor API
// @version 1.0
// @description Music-lesson marketplace backend: registration, class catalog, enrollment basket, and card payments.
// @host localhost:5000
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Class{},
		&model.Selection{},
		&model.Payment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	classRepo := repository.NewClassRepository(gormDB)
	selectionRepo := repository.NewSelectionRepository(gormDB)
	paymentRepo := repository.NewPaymentRepository(gormDB)
	enrollmentRepo := repository.NewEnrollmentRepository(gormDB)

	// Services
	tokenService := auth.NewTokenService(cfg.JWTSecret)
	userService := service.NewUserService(userRepo)
	classService := service.NewClassService(classRepo, cacheClient)
	selectionService := service.NewSelectionService(selectionRepo)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, paymentRepo, service.NewLocalIntentProvider())

	// Handlers
	tokenHandler := handler.NewTokenHandler(tokenService)
	userHandler := handler.NewUserHandler(userService)
	classHandler := handler.NewClassHandler(classService)
	selectionHandler := handler.NewSelectionHandler(selectionService)
	paymentHandler := handler.NewPaymentHandler(enrollmentService)

	router.Register(
		e,
		cfg,
		tokenHandler,
		userHandler,
		classHandler,
		selectionHandler,
		paymentHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
