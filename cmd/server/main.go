package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ridecircle/ridecircle_client/config"
	"github.com/ridecircle/ridecircle_client/internal/api"
	"github.com/ridecircle/ridecircle_client/internal/api/handler"
	"github.com/ridecircle/ridecircle_client/internal/app"
	"github.com/ridecircle/ridecircle_client/internal/pkg/ws"
)

func main() {
	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化会话和服务
	a, closer, err := app.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	defer closer.Close()
	log.Printf("Session store: %s", cfg.Session.Backend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 订阅数据失败不影响启动，页面会展示错误
	if err := a.Subscriptions.Init(ctx); err != nil {
		log.Printf("Init subscription data failed: %v", err)
	}

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()
	relay, err := startToastRelay(ctx, cfg, wsHub)
	if err != nil {
		log.Fatalf("Failed to start toast relay: %v", err)
	}
	if relay != nil {
		defer relay.Close()
	}

	// 初始化 Handler
	pageHandler := handler.NewPageHandler(a.API, a.Clubs, a.Trips, a.Reviews)
	authHandler := handler.NewAuthHandler(a.Auth, a.Subscriptions, wsHub)
	userHandler := handler.NewUserHandler(a.Users, a.Clubs, a.Trips, a.Foods, a.Bookings, a.Subscriptions)
	clubHandler := handler.NewClubHandler(a.Clubs, wsHub)
	tripHandler := handler.NewTripHandler(a.Trips, a.Clubs, wsHub)
	reviewHandler := handler.NewReviewHandler(a.Reviews, a.Trips, wsHub)
	restaurantHandler := handler.NewRestaurantHandler(a.Restaurants, a.Bookings, wsHub)
	foodHandler := handler.NewFoodHandler(a.Foods, wsHub)
	subscriptionHandler := handler.NewSubscriptionHandler(a.Subscriptions, wsHub)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.CORS.AllowedOrigins)

	// 初始化 Router
	router := api.NewRouter(
		pageHandler,
		authHandler,
		userHandler,
		clubHandler,
		tripHandler,
		reviewHandler,
		restaurantHandler,
		foodHandler,
		subscriptionHandler,
		websocketHandler,
		a.Session,
		a.Subscriptions,
		cfg,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router.Setup(),
	}

	// 启动服务器
	go func() {
		log.Printf("Server starting on %s, API %s", srv.Addr, cfg.API.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
