package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "firesafe/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"firesafe/internal/auth"
	"firesafe/internal/cache"
	"firesafe/internal/config"
	"firesafe/internal/db"
	"firesafe/internal/handler"
	"firesafe/internal/model"
	"firesafe/internal/repository"
	"firesafe/internal/router"
	"firesafe/internal/service"
)

// @title Fire Safety Store API
// @version 1.0
// @description E-commerce backend for fire safety equipment with orders, reviews and 3-D Secure payments.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.Printf("database close: %v", err)
		}
	}()

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Address{},
		&model.Order{},
		&model.OrderItem{},
		&model.Review{},
		&model.PasswordReset{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	addressRepo := repository.NewAddressRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	resetRepo := repository.NewPasswordResetRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	mailer := service.NewMailer(service.MailConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

	authService := service.NewAuthService(userRepo, jwtService)
	productService := service.NewProductService(productRepo, cacheClient)
	addressService := service.NewAddressService(addressRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, userRepo, mailer)
	reviewService := service.NewReviewService(reviewRepo, productRepo)
	userService := service.NewUserService(userRepo, addressRepo, orderRepo)
	resetService := service.NewPasswordResetService(resetRepo, userRepo, mailer, cfg.FrontendURL)
	paymentService := service.NewPaymentService(orderRepo, cfg.MidtransServerKey, cfg.MidtransSandbox, cfg.FrontendURL)

	// Expired reset tokens are swept hourly for the life of the process.
	go resetService.RunCleanup(ctx, time.Hour)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, gormDB, jwtService, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Product: handler.NewProductHandler(productService),
		Order:   handler.NewOrderHandler(orderService),
		Address: handler.NewAddressHandler(addressService),
		Review:  handler.NewReviewHandler(reviewService),
		User:    handler.NewUserHandler(userService),
		Reset:   handler.NewPasswordResetHandler(resetService),
		Payment: handler.NewPaymentHandler(paymentService),
	})

	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
