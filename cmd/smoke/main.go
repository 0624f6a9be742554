package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ridecircle/ridecircle_client/config"
	"github.com/ridecircle/ridecircle_client/internal/app"
	"github.com/ridecircle/ridecircle_client/internal/session"
)

var (
	baseURL  = flag.String("base-url", "", "API base url, defaults to config api.base_url")
	username = flag.String("username", "testuser", "Account used for the scenario")
	password = flag.String("password", "test123", "Password of the account")
	clubID   = flag.Int64("club", 1, "Club to join and leave")
	tripID   = flag.Int64("trip", 1, "Trip to register for")
	timeout  = flag.Duration("timeout", 30*time.Second, "Overall deadline")
)

func main() {
	flag.Parse()

	cfg, err := config.Default()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}

	// 会话只保存在内存中，不影响本地已登录的用户
	a := app.New(cfg, session.NewMemoryStore())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	log.Printf("Running smoke scenario against %s", a.API.BaseURL())
	sc := scenario{username: *username, password: *password, clubID: *clubID, tripID: *tripID}
	if err := sc.run(ctx, a); err != nil {
		log.Fatalf("Smoke scenario failed: %v", err)
	}
	log.Println("Smoke scenario passed")
}
