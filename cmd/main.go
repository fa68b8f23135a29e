package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mukesh-on-github/Zyrokart/internal/api"
	"github.com/mukesh-on-github/Zyrokart/internal/api/handler"
	"github.com/mukesh-on-github/Zyrokart/internal/api/router"
	"github.com/mukesh-on-github/Zyrokart/internal/appcontext"
	"github.com/mukesh-on-github/Zyrokart/internal/config"
	"github.com/rs/zerolog"
)

// @title zyrokart
// @version 1.0
// @description e-commerce backend

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the Firebase ID token. Example: "Bearer {token}"

func main() {
	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal(err)
		return
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// 初始化 handler
	productHandler := handler.NewProductHandler(app.ProductService, app.CategoryService)
	cartHandler := handler.NewCartHandler(app.CartService)
	orderHandler := handler.NewOrderHandler(app.OrderService)
	paymentHandler := handler.NewPaymentHandler(app.PaymentService)
	wishlistHandler := handler.NewWishlistHandler(app.WishlistService)
	addressHandler := handler.NewAddressHandler(app.AddressService)
	userHandler := handler.NewUserHandler(app.UserService)
	aiHandler := handler.NewAIHandler(app.AIService)

	server := api.NewServer(productHandler, cartHandler, orderHandler, paymentHandler,
		wishlistHandler, addressHandler, userHandler, aiHandler)

	// 設置路由
	r := router.SetupRouter(server, app.AuthVerifier, app.Cf.AdminEmails, &logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", app.Cf.ServerPort),
		Handler: r,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutDownCompleted := make(chan struct{}, 1)
	// 監聽退出訊號
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		if err := app.Shutdown(shutdownCtx); err != nil {
			log.Printf("Application shutdown error: %v", err)
		}

		shutDownCompleted <- struct{}{}
	}()

	// 啟動服務
	log.Printf("Server starting on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal(err)
	}
	<-shutDownCompleted
	log.Printf("closed completed")
}
