package main

import (
	"context"
	"log"
	"net/http"

	_ "contactapp/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"contactapp/internal/auth"
	"contactapp/internal/cache"
	"contactapp/internal/config"
	"contactapp/internal/db"
	"contactapp/internal/handler"
	"contactapp/internal/mailer"
	"contactapp/internal/model"
	"contactapp/internal/repository"
	"contactapp/internal/router"
	"contactapp/internal/service"
	"contactapp/internal/storage"
)

// @title Contact App API
// @version 1.0
// @description Multi-tenant contact management API with JWT authentication and email verification.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Contact{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	tokens := auth.NewTokenService(cfg.JWTSecret, auth.TTLConfig{
		Access:            cfg.AccessTokenTTL,
		Refresh:           cfg.RefreshTokenTTL,
		EmailVerification: cfg.VerifyTokenTTL,
		PasswordReset:     cfg.ResetTokenTTL,
	})

	mailQueue := mailer.NewQueue(
		mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom),
		64,
	)
	defer mailQueue.Close()

	uploader, err := storage.NewS3Uploader(context.Background(), storage.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokens, cacheClient, mailQueue, storage.NewGravatarSource(), cfg.AppBaseURL)
	userService := service.NewUserService(userRepo, cacheClient)
	contactService := service.NewContactService(contactRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, uploader)
	contactHandler := handler.NewContactHandler(contactService)
	healthHandler := handler.NewHealthHandler(userService)

	// Register routes
	router.Register(
		e,
		cfg,
		tokens,
		userService,
		authHandler,
		userHandler,
		contactHandler,
		healthHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
